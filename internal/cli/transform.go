package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"payarakit/internal/command"
	"payarakit/internal/project"
	"payarakit/internal/tui"
)

var (
	transformSource string
	transformDest   string
	transformDryRun bool
)

func newTransformCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transform",
		Short: "Migrate a Payara Micro project from javax to the Jakarta EE 10 namespace",
		Args:  cobra.NoArgs,
		RunE:  runTransform,
	}
	cmd.Flags().StringVar(&transformSource, "source", "", "Project to migrate (defaults to the detected project)")
	cmd.Flags().StringVar(&transformDest, "dest", "", "Directory receiving the migrated copy (defaults to the project's parent)")
	cmd.Flags().BoolVar(&transformDryRun, "dry-run", false, "Print the transformer command instead of running it")
	return cmd
}

func runTransform(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	root := s.paths.Root
	if transformSource != "" {
		root = s.paths.Resolve(transformSource)
	}
	p, err := s.projectAt(root)
	if err != nil {
		return err
	}

	source := p.Descriptor.Dir()
	dest := filepath.Dir(source)
	if transformDest != "" {
		dest = s.paths.Resolve(transformDest)
	}
	target := project.TransformTarget(source, dest)

	if transformDryRun {
		c, err := command.TransformCommand(p.Line, p.Backend(), source, target)
		if err != nil {
			return err
		}
		c.Executable = s.cfg.Executable(p.Backend())
		return execute(cmd, s, c, source, nil, true)
	}

	var (
		stdout = cmd.OutOrStdout()
		stderr = cmd.ErrOrStderr()
		status *tui.StatusWriter
	)
	if tui.DetectMode(cmd.ErrOrStderr(), outputJSON) == tui.ModeTUI {
		// The spinner owns the terminal; transformer output goes to the log.
		status = tui.NewStatusWriter(cmd.ErrOrStderr())
		status.Update(fmt.Sprintf("migrating %s", p.Name))
		w := s.logger.Writer()
		defer w.Close()
		stdout, stderr = w, w
	}

	migration := project.Migration{
		Runner:     newRunner(),
		Executable: s.cfg.Executable(p.Backend()),
		Timeout:    s.cfg.Transform.Timeout,
		Interval:   s.cfg.Transform.PollInterval,
		Stdout:     stdout,
		Stderr:     stderr,
		Logger:     s.logger,
	}
	out, err := migration.Run(commandContext(cmd), p.Line, p.Backend(), source, dest)
	if err != nil {
		if status != nil {
			status.Finish("failed", err.Error())
		}
		return err
	}
	if status != nil {
		status.Finish("ok", "migrated to "+out)
	}

	if outputJSON {
		return writeJSON(cmd, map[string]string{"source": source, "target": out})
	}
	if status == nil {
		fmt.Fprintf(cmd.OutOrStdout(), "Migrated %s to %s\n", source, out)
	}
	return nil
}
