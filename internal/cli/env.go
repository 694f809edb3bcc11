package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"payarakit/internal/command"
	"payarakit/internal/product"
)

var envShowSecrets bool

func newEnvCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "env",
		Short: "Show the environment passed to Payara Server launches",
		Args:  cobra.NoArgs,
		RunE:  runEnv,
	}
	cmd.Flags().BoolVar(&envShowSecrets, "show-secrets", false, "Print the admin password in clear text")
	return cmd
}

type envEntry struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Secret bool   `json:"secret,omitempty"`
}

func runEnv(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.project()
	if err != nil {
		return err
	}
	if p.Line != product.Server {
		return fmt.Errorf("%s is a Payara %s project; only Payara Server launches take an environment", p.Name, p.Line)
	}

	store, closer, err := s.credentials()
	if err != nil {
		return err
	}
	defer closer.Close()

	flags := p.Configuration(s.cfg, store)
	env := maskSecrets(command.ServerEnv(flags, s.cfg.Server.Properties), envShowSecrets)

	if outputJSON {
		entries := make([]envEntry, 0, len(env))
		for _, v := range env {
			entries = append(entries, envEntry{Name: v.Name, Value: v.Value, Secret: v.Secret})
		}
		return writeJSON(cmd, entries)
	}

	table := newTable(cmd.OutOrStdout(), "NAME", "VALUE")
	for _, v := range env {
		table.Append([]string{v.Name, v.Value})
	}
	table.Render()
	return nil
}
