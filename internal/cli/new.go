package cli

import (
	"github.com/spf13/cobra"

	"payarakit/internal/command"
	"payarakit/internal/product"
)

var (
	newArchetype command.Archetype
	newDryRun    bool
)

func newNewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "new",
		Short: "Generate a Payara Micro Maven project from the archetype",
		Args:  cobra.NoArgs,
		RunE:  runNew,
	}
	cmd.Flags().StringVar(&newArchetype.GroupID, "group-id", "", "Maven groupId of the new project")
	cmd.Flags().StringVar(&newArchetype.ArtifactID, "artifact-id", "", "Maven artifactId of the new project")
	cmd.Flags().StringVar(&newArchetype.Version, "version", "", "Project version (default 1.0-SNAPSHOT)")
	cmd.Flags().StringVar(&newArchetype.ContextRoot, "context-root", "", "Application context root")
	cmd.Flags().BoolVar(&newArchetype.AutoBindHTTP, "auto-bind-http", false, "Let Payara Micro pick a free HTTP port")
	cmd.Flags().StringVar(&newArchetype.MicroVersion, "micro-version", "", "Payara Micro version; below 6 selects the legacy archetype")
	cmd.Flags().StringVar(&newArchetype.JDKVersion, "jdk-version", "", "Java release of the generated project")
	cmd.Flags().BoolVar(&newDryRun, "dry-run", false, "Print the archetype command instead of running it")
	_ = cmd.MarkFlagRequired("group-id")
	_ = cmd.MarkFlagRequired("artifact-id")
	return cmd
}

func runNew(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	c, err := command.ArchetypeCommand(newArchetype)
	if err != nil {
		return err
	}
	c.Executable = s.cfg.Executable(product.Maven)
	return execute(cmd, s, c, s.paths.Root, nil, newDryRun)
}
