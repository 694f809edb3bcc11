package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"payarakit/internal/command"
	"payarakit/internal/product"
	"payarakit/internal/project"
)

type actionOptions struct {
	debug        bool
	dryRun       bool
	subscription string
	namespace    string
}

type actionSpec struct {
	action command.Action
	short  string
	debug  bool
}

var actionSpecs = []actionSpec{
	{command.Start, "Start the application (Micro, Server) or build and deploy it (Cloud)", true},
	{command.Stop, "Stop the running application", false},
	{command.Reload, "Redeploy an exploded Payara Micro application", false},
	{command.Bundle, "Package the application as a Payara Micro uber jar", false},
	{command.Dev, "Run the Payara Cloud development loop", false},
	{command.Deploy, "Deploy the application to Payara Cloud", false},
	{command.Undeploy, "Remove the application from Payara Cloud", false},
	{command.Login, "Log in to Payara Cloud", false},
}

func newActionCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(actionSpecs))
	for _, def := range actionSpecs {
		cmds = append(cmds, newActionCmd(def))
	}
	return cmds
}

func newActionCmd(def actionSpec) *cobra.Command {
	var opts actionOptions
	cmd := &cobra.Command{
		Use:   def.action.String(),
		Short: def.short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAction(cmd, def.action, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the build tool command instead of running it")
	if def.debug {
		cmd.Flags().BoolVar(&opts.debug, "debug", false, "Attach a JDWP agent on the configured debug port (not available for Payara Cloud)")
	}
	return cmd
}

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List Payara Cloud resources through the build plugin",
	}

	for _, sub := range []struct {
		use    string
		action command.Action
		scoped []string
	}{
		{"applications", command.ListApplications, []string{"subscription", "namespace"}},
		{"namespaces", command.ListNamespaces, []string{"subscription"}},
		{"subscriptions", command.ListSubscriptions, nil},
	} {
		var opts actionOptions
		action := sub.action
		c := &cobra.Command{
			Use:   sub.use,
			Short: "Run the plugin's " + action.String() + " goal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runAction(cmd, action, opts)
			},
		}
		c.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Print the build tool command instead of running it")
		for _, name := range sub.scoped {
			switch name {
			case "subscription":
				c.Flags().StringVar(&opts.subscription, "subscription", "", "Subscription name (defaults to cloud.subscription)")
			case "namespace":
				c.Flags().StringVar(&opts.namespace, "namespace", "", "Namespace name (defaults to cloud.namespace)")
			}
		}
		cmd.AddCommand(c)
	}
	return cmd
}

func runAction(cmd *cobra.Command, action command.Action, opts actionOptions) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.project()
	if err != nil {
		return err
	}

	var passwords project.PasswordSource
	if p.Line == product.Server {
		store, closer, err := s.credentials()
		if err != nil {
			s.logger.Warnf("credential store unavailable: %v", err)
		} else {
			defer closer.Close()
			passwords = store
		}
	}

	flags := p.Configuration(s.cfg, passwords)
	req := p.Request(s.cfg, action, flags)
	req.Debug = opts.debug
	req.Subscription = firstNonBlank(opts.subscription, s.cfg.Cloud.Subscription)
	req.Namespace = firstNonBlank(opts.namespace, s.cfg.Cloud.Namespace)

	c, err := command.Synthesize(req)
	if err != nil {
		s.logger.Errorf("%s: %v", action, err)
		return err
	}

	var env []command.EnvVar
	if p.Line == product.Server {
		env = command.ServerEnv(flags, s.cfg.Server.Properties)
	}
	return execute(cmd, s, c, p.Descriptor.Dir(), env, opts.dryRun)
}

type plannedCommand struct {
	Command string   `json:"command"`
	Args    []string `json:"args"`
	Dir     string   `json:"dir"`
	Env     []string `json:"env,omitempty"`
}

// execute prints c for --dry-run, as JSON with --json, otherwise runs it in
// dir with output streamed to the terminal.
func execute(cmd *cobra.Command, s *session, c command.Command, dir string, env []command.EnvVar, dryRun bool) error {
	if dryRun {
		masked := command.Environ(maskSecrets(env, false))
		if outputJSON {
			return writeJSON(cmd, plannedCommand{Command: c.Executable, Args: c.Args(), Dir: dir, Env: masked})
		}
		out := cmd.OutOrStdout()
		for _, kv := range masked {
			fmt.Fprintln(out, "export "+kv)
		}
		fmt.Fprintln(out, c.String())
		return nil
	}

	s.logger.Infof("running %s in %s", c, dir)
	_, err := c.Run(commandContext(cmd), newRunner(), command.RunOptions{
		Dir:    dir,
		Env:    command.Environ(env),
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	})
	if err != nil {
		s.logger.Errorf("%s failed: %v", c.Executable, err)
		return fmt.Errorf("%s failed: %w", c.Executable, err)
	}
	return nil
}

// maskSecrets hides secret values unless show is set.
func maskSecrets(env []command.EnvVar, show bool) []command.EnvVar {
	out := make([]command.EnvVar, len(env))
	for i, v := range env {
		if v.Secret && !show && v.Value != "" {
			v.Value = "********"
		}
		out[i] = v
	}
	return out
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
