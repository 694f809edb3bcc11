package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"payarakit/internal/config"
	"payarakit/internal/credential"
	"payarakit/internal/logx"
	"payarakit/internal/paths"
	"payarakit/internal/product"
	"payarakit/internal/project"
	"payarakit/internal/tools"
)

func newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check build tools, configuration and project detection",
		RunE:  runDoctor,
	}
}

type healthCheck struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // "ok", "warning", "error"
	Summary string `json:"summary"`
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	pp, err := paths.Resolve(projectDir)
	if err != nil {
		return err
	}
	exists, err := paths.DirExists(pp.Root)
	if err != nil {
		return fmt.Errorf("stat project dir: %w", err)
	}
	if !exists {
		return fmt.Errorf("project directory does not exist: %s", pp.Root)
	}

	cfg, cfgErr := config.LoadWithEnv(commandContext(cmd), pp.ConfigFile, envLookuper())
	if cfgErr == nil {
		if productFlag != "" {
			cfg.Product = productFlag
		}
		if backendFlag != "" {
			cfg.Backend = backendFlag
		}
	}

	checks := []healthCheck{
		checkTools(detectTools(cmd, cfg)),
		checkConfig(pp, cfg, cfgErr),
	}
	if cfgErr != nil {
		return writeDoctorResult(cmd, pp.Root, checks)
	}

	p, projectCheck := checkProject(pp, cfg)
	checks = append(checks, projectCheck)
	if p != nil && p.Line == product.Server {
		checks = append(checks, checkPayaraHome(pp, p, cfg))
	}
	if keyPath, err := keyFilePath(); err == nil {
		checks = append(checks, checkKeyFile(afero.NewOsFs(), keyPath))
	}

	return writeDoctorResult(cmd, pp.Root, checks)
}

func checkTools(statuses []tools.Status) healthCheck {
	var (
		found   []string
		missing []string
		failed  bool
	)
	for _, st := range statuses {
		switch {
		case st.Version != "" && st.Satisfied:
			found = append(found, st.Tool+" "+st.Version)
		case st.Satisfied:
			missing = append(missing, st.Tool+" (optional)")
		default:
			failed = true
			missing = append(missing, st.Tool)
		}
	}

	summary := joinComma(found)
	if len(missing) > 0 {
		summary = strings.TrimPrefix(summary+"; missing or outdated: "+joinComma(missing), "; ")
	}
	switch {
	case failed:
		return healthCheck{Name: "Tools", Status: "error", Summary: summary}
	case len(missing) > 0:
		return healthCheck{Name: "Tools", Status: "warning", Summary: summary}
	}
	return healthCheck{Name: "Tools", Status: "ok", Summary: summary}
}

func checkConfig(pp paths.ProjectPaths, cfg config.Config, cfgErr error) healthCheck {
	if cfgErr != nil {
		return healthCheck{Name: "Config", Status: "error", Summary: cfgErr.Error()}
	}

	var warnings, errs []string
	for _, v := range cfg.ValidateStrict(pp.Root) {
		switch v.Level {
		case "warning":
			warnings = append(warnings, v.Message)
		case "error":
			errs = append(errs, v.Message)
		}
	}

	summary := "defaults"
	if ok, _ := paths.FileExists(pp.ConfigFile); ok {
		summary = filepath.Base(pp.ConfigFile)
	}
	if len(errs) > 0 {
		return healthCheck{Name: "Config", Status: "error", Summary: fmt.Sprintf("%s; %s", summary, joinComma(errs))}
	}
	if len(warnings) > 0 {
		return healthCheck{Name: "Config", Status: "warning", Summary: fmt.Sprintf("%s; %s", summary, joinComma(warnings))}
	}
	return healthCheck{Name: "Config", Status: "ok", Summary: summary}
}

func checkProject(pp paths.ProjectPaths, cfg config.Config) (*project.Project, healthCheck) {
	opts, err := project.OptionsFromConfig(cfg)
	if err != nil {
		return nil, healthCheck{Name: "Project", Status: "error", Summary: err.Error()}
	}
	opts.Logger = logx.Discard()
	p, err := project.Open(pp.Root, opts)
	if errors.Is(err, project.ErrNotFound) {
		return nil, healthCheck{Name: "Project", Status: "warning", Summary: "no Payara build file found"}
	}
	if err != nil {
		return nil, healthCheck{Name: "Project", Status: "error", Summary: err.Error()}
	}

	rel, relErr := filepath.Rel(pp.Root, p.Descriptor.Path())
	if relErr != nil {
		rel = p.Descriptor.Path()
	}
	return p, healthCheck{
		Name:    "Project",
		Status:  "ok",
		Summary: fmt.Sprintf("%s (Payara %s, %s) in %s", p.Name, p.Line, p.Backend(), rel),
	}
}

func checkPayaraHome(pp paths.ProjectPaths, p *project.Project, cfg config.Config) healthCheck {
	home := strings.TrimSpace(p.Configuration(cfg, nil).PayaraHome)
	if home == "" {
		return healthCheck{Name: "Payara home", Status: "warning", Summary: "not set"}
	}
	home = pp.Resolve(home)
	if err := config.ValidatePayaraHome(home); err != nil {
		return healthCheck{Name: "Payara home", Status: "error", Summary: err.Error()}
	}
	return healthCheck{Name: "Payara home", Status: "ok", Summary: home}
}

func checkKeyFile(fs afero.Fs, keyPath string) healthCheck {
	if credential.LoadKey(fs, keyPath, nil) == credential.DefaultKey {
		return healthCheck{
			Name:    "Key file",
			Status:  "warning",
			Summary: fmt.Sprintf("using the built-in key; write a 16 byte ASCII key to %s", keyPath),
		}
	}
	return healthCheck{Name: "Key file", Status: "ok", Summary: keyPath}
}

func writeDoctorResult(cmd *cobra.Command, projectRoot string, checks []healthCheck) error {
	if outputJSON {
		return writeJSON(cmd, checks)
	}

	bold := lipgloss.NewStyle().Bold(true).Inline(true)
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("2")).Inline(true)
	yellow := lipgloss.NewStyle().Foreground(lipgloss.Color("3")).Inline(true)
	red := lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Inline(true)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, bold.Render("PROJECT HEALTH:")+" "+projectRoot)

	for _, c := range checks {
		var statusStr string
		switch c.Status {
		case "ok":
			statusStr = green.Render("OK")
		case "warning":
			statusStr = yellow.Render("WARN")
		case "error":
			statusStr = red.Render("ERROR")
		}
		fmt.Fprintf(out, "  %-13s %s    %s\n", c.Name+":", statusStr, c.Summary)
	}

	return nil
}

func joinComma(items []string) string {
	return strings.Join(items, ", ")
}
