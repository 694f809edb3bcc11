package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"payarakit/internal/descriptor"
	"payarakit/internal/tui"
)

func newDetectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "detect",
		Short: "Show the detected product line, build file and plugin settings",
		RunE:  runDetect,
	}
}

type detectResult struct {
	Root       string           `json:"root"`
	Product    string           `json:"product"`
	Backend    string           `json:"backend"`
	Descriptor string           `json:"descriptor"`
	Name       string           `json:"name"`
	Flags      descriptor.Flags `json:"flags"`
}

func runDetect(cmd *cobra.Command, _ []string) error {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	p, err := s.project()
	if err != nil {
		return err
	}
	flags := p.Configuration(s.cfg, nil)

	if outputJSON {
		return writeJSON(cmd, detectResult{
			Root:       p.Root,
			Product:    p.Line.String(),
			Backend:    p.Backend().String(),
			Descriptor: p.Descriptor.Path(),
			Name:       p.Name,
			Flags:      flags,
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s, %s)\n", tui.HeaderStyle.Render("PROJECT:"), p.Name, p.Line, p.Backend())
	fmt.Fprintf(out, "%s %s\n\n", tui.HeaderStyle.Render("BUILD FILE:"), p.Descriptor.Path())

	table := newTable(out, "SETTING", "VALUE")
	table.AppendBulk(flagRows(flags))
	table.Render()
	return nil
}

// flagRows lists the effective settings, skipping blank strings.
func flagRows(f descriptor.Flags) [][]string {
	rows := [][]string{
		{"useUberJar", strconv.FormatBool(f.UseUberJar)},
		{"exploded", strconv.FormatBool(f.Exploded)},
		{"remote", strconv.FormatBool(f.Remote)},
	}
	for _, kv := range [][2]string{
		{"contextRoot", f.ContextRoot},
		{"payaraHome", f.PayaraHome},
		{"payaraVersion", f.PayaraVersion},
		{"domainName", f.DomainName},
		{"instanceName", f.InstanceName},
		{"host", f.Host},
		{"protocol", f.Protocol},
		{"httpPort", f.HTTPPort},
		{"httpsPort", f.HTTPSPort},
		{"adminPort", f.AdminPort},
		{"user", f.User},
	} {
		if kv[1] != "" {
			rows = append(rows, []string{kv[0], kv[1]})
		}
	}
	return append(rows, []string{"debugPort", f.EffectiveDebugPort()})
}
