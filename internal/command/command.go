package command

import (
	"errors"
	"fmt"
	"strings"

	"payarakit/internal/product"
)

// Action is a user-level operation on a project.
type Action int

const (
	Start Action = iota
	Reload
	Stop
	Bundle
	Transform
	Dev
	Deploy
	Undeploy
	Login
	ListApplications
	ListNamespaces
	ListSubscriptions
)

var actionNames = map[Action]string{
	Start:             "start",
	Reload:            "reload",
	Stop:              "stop",
	Bundle:            "bundle",
	Transform:         "transform",
	Dev:               "dev",
	Deploy:            "deploy",
	Undeploy:          "undeploy",
	Login:             "login",
	ListApplications:  "list-applications",
	ListNamespaces:    "list-namespaces",
	ListSubscriptions: "list-subscriptions",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ErrUnsupported marks an action that the product line, backend or current
// flags cannot perform.
var ErrUnsupported = errors.New("unsupported action")

// UnsupportedError describes why an action was refused.
type UnsupportedError struct {
	Line    product.Line
	Backend product.Backend
	Action  Action
	Reason  string
}

func (e *UnsupportedError) Error() string {
	msg := fmt.Sprintf("%s is not supported for %s/%s", e.Action, e.Line, e.Backend)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *UnsupportedError) Unwrap() error { return ErrUnsupported }

// Property is a -Dname=value argument. Quoted values are rendered inside
// single quotes in the display form.
type Property struct {
	Name   string
	Value  string
	Quoted bool
}

func (p Property) arg(quote bool) string {
	if quote && p.Quoted {
		return "-D" + p.Name + "='" + p.Value + "'"
	}
	return "-D" + p.Name + "=" + p.Value
}

// Command is a synthesized build tool invocation.
type Command struct {
	Executable string
	Goals      []string
	Properties []Property
}

// Args returns the argument vector for direct execution, without shell
// quoting.
func (c Command) Args() []string {
	args := make([]string, 0, len(c.Goals)+len(c.Properties))
	args = append(args, c.Goals...)
	for _, p := range c.Properties {
		args = append(args, p.arg(false))
	}
	return args
}

// String renders the command line as it would be typed in a terminal.
func (c Command) String() string {
	parts := make([]string, 0, 1+len(c.Goals)+len(c.Properties))
	parts = append(parts, c.Executable)
	parts = append(parts, c.Goals...)
	for _, p := range c.Properties {
		parts = append(parts, p.arg(true))
	}
	return strings.Join(parts, " ")
}

func (c *Command) goals(goals ...string) *Command {
	c.Goals = append(c.Goals, goals...)
	return c
}

func (c *Command) prop(name, value string) *Command {
	c.Properties = append(c.Properties, Property{Name: name, Value: value})
	return c
}

func (c *Command) quoted(name, value string) *Command {
	c.Properties = append(c.Properties, Property{Name: name, Value: value, Quoted: true})
	return c
}
