package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"payarakit/internal/config"
	"payarakit/internal/paths"
	"payarakit/internal/tools"
	"payarakit/internal/tui"
)

func newToolsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tools",
		Short: "Inspect the build tools payarakit drives",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List resolved tool versions against their minimums",
		Args:  cobra.NoArgs,
		RunE:  runToolsList,
	})
	return cmd
}

func runToolsList(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	cfg, err := config.LoadWithEnv(commandContext(cmd), pp.ConfigFile, envLookuper())
	if err != nil {
		return err
	}

	statuses := detectTools(cmd, cfg)
	if outputJSON {
		return writeJSON(cmd, statuses)
	}
	printStatusTable(cmd, statuses)
	return nil
}

// detectTools probes the configured Maven and Gradle commands and the Java
// runtime, honouring tool_minimums.
func detectTools(cmd *cobra.Command, cfg config.Config) []tools.Status {
	ctx := tools.WithMinimums(commandContext(cmd), cfg.ToolMinimums)
	return tools.Detect(ctx, newRunner(), map[string]string{
		tools.Maven:  cfg.Executables.Maven,
		tools.Gradle: cfg.Executables.Gradle,
	})
}

func printStatusTable(cmd *cobra.Command, statuses []tools.Status) {
	out := cmd.OutOrStdout()
	if len(statuses) == 0 {
		fmt.Fprintln(out, "(no tool statuses)")
		return
	}

	rows := make([]tools.Status, len(statuses))
	copy(rows, statuses)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Tool < rows[j].Tool
	})

	table := newTable(out, "TOOL", "VERSION", "MINIMUM", "OK", "PATH")
	for _, st := range rows {
		ok := tui.StatusStyle("ok").Render("yes")
		if !st.Satisfied {
			ok = tui.StatusStyle("error").Render("no")
		}
		path := st.Path
		if path == "" {
			path = "(missing)"
		}
		table.Append([]string{st.Tool, tui.NonEmptyOrDash(st.Version), tui.NonEmptyOrDash(st.Minimum), ok, path})
	}
	table.Render()

	for _, st := range rows {
		if st.Error != "" {
			fmt.Fprintf(out, "%s: %s\n", st.Tool, st.Error)
		}
		for _, note := range st.Notes {
			fmt.Fprintf(out, "  %s\n", note)
		}
	}
}
