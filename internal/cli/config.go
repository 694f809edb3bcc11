package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"payarakit/internal/command"
	"payarakit/internal/config"
	"payarakit/internal/paths"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit payarakit.yaml",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration, environment overrides included",
		Args:  cobra.NoArgs,
		RunE:  runConfigShow,
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "edit",
		Short: "Open payarakit.yaml in $EDITOR, creating it first if needed",
		Args:  cobra.NoArgs,
		RunE:  runConfigEdit,
	})
	return cmd
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}

	cfg, err := config.LoadWithEnv(commandContext(cmd), pp.ConfigFile, envLookuper())
	if err != nil {
		return err
	}
	if outputJSON {
		return writeJSON(cmd, cfg)
	}

	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprint(out, string(data))
	if !strings.HasSuffix(string(data), "\n") {
		fmt.Fprintln(out)
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	if err := pp.EnsureRoot(); err != nil {
		return err
	}
	if err := ensureConfigFileExists(pp); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := splitEditorCommand(editor)
	if len(parts) == 0 {
		return fmt.Errorf("invalid EDITOR value: %q", editor)
	}

	args := append(parts[1:], pp.ConfigFile)
	if _, err := newRunner().Run(commandContext(cmd), parts[0], args, command.RunOptions{
		Dir:    pp.Root,
		Stdin:  cmd.InOrStdin(),
		Stdout: cmd.OutOrStdout(),
		Stderr: cmd.ErrOrStderr(),
	}); err != nil {
		return fmt.Errorf("editor exited with error: %w", err)
	}
	return nil
}

// ensureConfigFileExists writes the default configuration when the project
// has none yet.
func ensureConfigFileExists(pp paths.ProjectPaths) error {
	if _, err := os.Stat(pp.ConfigFile); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("stat config: %w", err)
	}

	data, err := config.Default().Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(pp.ConfigFile, data, 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}

// splitEditorCommand handles simple EDITOR values such as "nano" or
// "code -w".
func splitEditorCommand(value string) []string {
	return strings.Fields(value)
}
