package command

import (
	"payarakit/internal/descriptor"
	"payarakit/internal/product"
	"payarakit/internal/remote"
)

const (
	resourcesGoal   = "resources:resources"
	compileGoal     = "compiler:compile"
	warExplodedGoal = "war:exploded"
	packageGoal     = "package"

	debugAgent = "-agentlib:jdwp=transport=dt_socket,server=n,suspend=n,address="

	transformGoal = "fish.payara.transformer:fish.payara.transformer.maven:0.2.14:run"
)

// Request carries everything needed to synthesize one command.
type Request struct {
	Line    product.Line
	Backend product.Backend
	Flags   descriptor.Flags
	Action  Action
	// Debug attaches a JDWP agent on Start.
	Debug bool
	// Executable overrides the backend's default tool (mvn, gradle).
	Executable string

	// Subscription and Namespace scope the Cloud list actions.
	Subscription string
	Namespace    string

	// Source and Target are the Transform input and output directories.
	Source string
	Target string
}

// Synthesize builds the build tool invocation for req. It fails with an
// error wrapping ErrUnsupported when the combination cannot be performed.
// It never touches the filesystem or network.
func Synthesize(req Request) (Command, error) {
	coord, ok := product.CoordinateFor(req.Line, req.Backend)
	if !ok {
		return Command{}, unsupported(req, "no plugin for this backend")
	}

	cmd := Command{Executable: req.Executable}
	if cmd.Executable == "" {
		cmd.Executable = req.Backend.Executable()
	}

	if req.Action == Transform {
		return transform(cmd, req)
	}

	var err error
	switch req.Line {
	case product.Micro:
		if req.Backend == product.Gradle {
			err = microGradle(&cmd, coord, req)
		} else {
			err = microMaven(&cmd, coord, req)
		}
	case product.Cloud:
		err = cloudMaven(&cmd, coord, req)
	case product.Server:
		err = serverMaven(&cmd, coord, req)
	default:
		err = unsupported(req, "unknown product line")
	}
	if err != nil {
		return Command{}, err
	}
	return cmd, nil
}

// TransformCommand builds the Jakarta EE namespace migration command that
// rewrites source into target.
func TransformCommand(line product.Line, backend product.Backend, source, target string) (Command, error) {
	return Synthesize(Request{Line: line, Backend: backend, Action: Transform, Source: source, Target: target})
}

// ReloadCommand builds the incremental redeploy command. It fails unless
// flags select exploded mode.
func ReloadCommand(line product.Line, backend product.Backend, flags descriptor.Flags) (Command, error) {
	return Synthesize(Request{Line: line, Backend: backend, Flags: flags, Action: Reload})
}

func microMaven(cmd *Command, coord product.Coordinate, req Request) error {
	switch req.Action {
	case Start:
		switch {
		case req.Flags.UseUberJar:
			cmd.goals(coord.Goal("bundle"), coord.Goal("start"))
		case req.Flags.Exploded:
			cmd.goals(resourcesGoal, compileGoal, warExplodedGoal, coord.Goal("start")).
				prop("exploded", "true").
				prop("deployWar", "true")
		default:
			cmd.goals(packageGoal, coord.Goal("start"))
		}
		if req.Debug {
			cmd.prop("debug", debugAgent+req.Flags.EffectiveDebugPort())
		}
	case Reload:
		if !req.Flags.Exploded {
			return unsupported(req, "reload requires an exploded war artifact")
		}
		cmd.goals(resourcesGoal, compileGoal, warExplodedGoal, coord.Goal("reload"))
	case Stop:
		cmd.goals(coord.Goal("stop"))
	case Bundle:
		cmd.goals(coord.Goal("bundle"))
	default:
		return unsupported(req, "")
	}
	return nil
}

// microGradle has no uber-jar start; useUberJar is ignored.
func microGradle(cmd *Command, _ product.Coordinate, req Request) error {
	switch req.Action {
	case Start:
		if req.Flags.Exploded {
			cmd.goals("warExplode", "microStart").
				prop("payaraMicro.deployWar", "true").
				prop("payaraMicro.exploded", "true")
		} else {
			cmd.goals("build", "microStart").
				prop("payaraMicro.deployWar", "true")
		}
		if req.Debug {
			cmd.prop("payaraMicro.debug", debugAgent+req.Flags.EffectiveDebugPort())
		}
	case Reload:
		if !req.Flags.Exploded {
			return unsupported(req, "reload requires an exploded war artifact")
		}
		cmd.goals("warExplode", "microReload")
	case Stop:
		cmd.goals("microStop")
	case Bundle:
		cmd.goals("microBundle")
	default:
		return unsupported(req, "")
	}
	return nil
}

func cloudMaven(cmd *Command, coord product.Coordinate, req Request) error {
	switch req.Action {
	case Start, Dev, Deploy, Undeploy:
		if req.Debug && req.Action == Start {
			return unsupported(req, "the cloud plugin has no debug agent option; start without --debug")
		}
		cmd.goals(packageGoal, coord.Goal(req.Action.String()))
	case Stop, Login, ListSubscriptions:
		cmd.goals(coord.Goal(req.Action.String()))
	case ListNamespaces:
		cmd.goals(coord.Goal(req.Action.String()))
		selector(cmd, "subscriptionName", req.Subscription)
	case ListApplications:
		cmd.goals(coord.Goal(req.Action.String()))
		selector(cmd, "subscriptionName", req.Subscription)
		selector(cmd, "namespaceName", req.Namespace)
	case Reload:
		return unsupported(req, "reload is only available for Payara Micro")
	default:
		return unsupported(req, "")
	}
	return nil
}

// selector adds a quoted remote selector unless the value is blank or still
// loading.
func selector(cmd *Command, name, value string) {
	if remote.Selectable(value) {
		cmd.quoted(name, value)
	}
}

func serverMaven(cmd *Command, coord product.Coordinate, req Request) error {
	switch req.Action {
	case Start:
		if req.Flags.Exploded {
			cmd.goals(resourcesGoal, compileGoal, warExplodedGoal, coord.VersionedGoal("dev")).
				prop("payara.exploded", "true")
		} else {
			cmd.goals(packageGoal, coord.VersionedGoal("dev"))
		}
		if req.Debug {
			cmd.prop("payara.debug", debugAgent+req.Flags.EffectiveDebugPort())
		}
	case Reload:
		return unsupported(req, "reload is only available for Payara Micro")
	default:
		return unsupported(req, "")
	}
	return nil
}

func transform(cmd Command, req Request) (Command, error) {
	if req.Line != product.Micro || req.Backend != product.Maven {
		return Command{}, unsupported(req, "the transformer runs on Payara Micro Maven projects only")
	}
	cmd.goals(packageGoal, transformGoal).
		prop("selectedSource", req.Source).
		prop("selectedTarget", req.Target)
	return cmd, nil
}

func unsupported(req Request, reason string) error {
	return &UnsupportedError{Line: req.Line, Backend: req.Backend, Action: req.Action, Reason: reason}
}
