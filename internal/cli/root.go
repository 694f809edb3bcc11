package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	projectDir  string
	outputJSON  bool
	productFlag string
	backendFlag string
)

// Execute runs the root cobra command.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "payarakit",
		Short:         "Run, package and deploy Payara Micro, Server and Cloud projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&projectDir, "project", "", "Path to project directory")
	cmd.PersistentFlags().BoolVar(&outputJSON, "json", false, "Output machine-readable JSON")
	cmd.PersistentFlags().StringVar(&productFlag, "product", "", "Force the product line (micro, cloud, server)")
	cmd.PersistentFlags().StringVar(&backendFlag, "backend", "", "Force the build tool (maven, gradle)")

	cmd.AddCommand(newDetectCmd())
	for _, c := range newActionCmds() {
		cmd.AddCommand(c)
	}
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newCloudCmd())
	cmd.AddCommand(newTransformCmd())
	cmd.AddCommand(newEnvCmd())
	cmd.AddCommand(newPasswordCmd())
	cmd.AddCommand(newConfigCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newToolsCmd())

	newCmd := newNewCmd()
	cmd.AddCommand(newCmd)
	// new scaffolds a fresh project; detection flags don't apply.
	for _, name := range []string{"product", "backend"} {
		if f := newCmd.InheritedFlags().Lookup(name); f != nil {
			f.Hidden = true
		}
	}

	return cmd
}
