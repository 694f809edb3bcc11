package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"payarakit/internal/product"
)

// ValidationResult captures a single validation finding.
type ValidationResult struct {
	Level   string `json:"level"` // "error" or "warning"
	Message string `json:"message"`
}

// ValidateStrict runs all strict validations against the config and returns
// structured results. Relative paths resolve against projectRoot.
func (c Config) ValidateStrict(projectRoot string) []ValidationResult {
	var results []ValidationResult
	results = append(results, c.validateSelection()...)
	results = append(results, c.validatePorts()...)
	results = append(results, c.validatePayaraHome(projectRoot)...)
	results = append(results, c.validateCloud()...)
	results = append(results, c.validateCredentials()...)
	return results
}

func (c Config) validateSelection() []ValidationResult {
	var (
		results []ValidationResult
		line    product.Line
		backend product.Backend
		lineErr error
		backErr error
	)
	if c.Product != "" {
		if line, lineErr = product.ParseLine(c.Product); lineErr != nil {
			results = append(results, ValidationResult{Level: "error", Message: lineErr.Error()})
		}
	}
	if c.Backend != "" {
		if backend, backErr = product.ParseBackend(c.Backend); backErr != nil {
			results = append(results, ValidationResult{Level: "error", Message: backErr.Error()})
		}
	}
	if c.Product != "" && c.Backend != "" && lineErr == nil && backErr == nil && !product.Supports(line, backend) {
		results = append(results, ValidationResult{
			Level:   "error",
			Message: fmt.Sprintf("Payara %s has no %s plugin", line, backend),
		})
	}
	return results
}

func (c Config) validatePorts() []ValidationResult {
	ports := []struct {
		name  string
		value string
	}{
		{"debug_port", c.DebugPort},
		{"server.http_port", c.Server.HTTPPort},
		{"server.https_port", c.Server.HTTPSPort},
		{"server.admin_port", c.Server.AdminPort},
	}

	var results []ValidationResult
	for _, p := range ports {
		value := strings.TrimSpace(p.value)
		if value == "" {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 1 || n > 65535 {
			results = append(results, ValidationResult{
				Level:   "error",
				Message: fmt.Sprintf("%s %q is not a valid port", p.name, p.value),
			})
		}
	}
	return results
}

func (c Config) validatePayaraHome(projectRoot string) []ValidationResult {
	home := strings.TrimSpace(c.Server.PayaraHome)
	if home == "" {
		return nil
	}
	if !filepath.IsAbs(home) {
		home = filepath.Join(projectRoot, home)
	}
	if err := ValidatePayaraHome(home); err != nil {
		return []ValidationResult{{Level: "error", Message: err.Error()}}
	}
	return nil
}

func (c Config) validateCloud() []ValidationResult {
	raw := strings.TrimSpace(c.Cloud.APIURL)
	if raw == "" {
		return nil
	}
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("cloud.api_url %q is not an absolute URL", raw),
		}}
	}
	if u.Scheme != "https" {
		return []ValidationResult{{
			Level:   "warning",
			Message: fmt.Sprintf("cloud.api_url %q does not use https", raw),
		}}
	}
	return nil
}

func (c Config) validateCredentials() []ValidationResult {
	switch c.Credentials.Backend {
	case "", CredentialsLevelDB, CredentialsKeyring:
		return nil
	default:
		return []ValidationResult{{
			Level:   "error",
			Message: fmt.Sprintf("credentials.backend %q must be %s or %s", c.Credentials.Backend, CredentialsLevelDB, CredentialsKeyring),
		}}
	}
}

var apiJarPattern = regexp.MustCompile(`^(payara|glassfish)-api.*\.jar$`)

// ValidatePayaraHome checks that home looks like a Payara Server
// installation: bin and glassfish/modules directories, with the server API
// jar in modules.
func ValidatePayaraHome(home string) error {
	for _, dir := range []string{"bin", filepath.Join("glassfish", "modules")} {
		info, err := os.Stat(filepath.Join(home, dir))
		if err != nil || !info.IsDir() {
			return fmt.Errorf("payara home %s: missing %s directory", home, dir)
		}
	}

	entries, err := os.ReadDir(filepath.Join(home, "glassfish", "modules"))
	if err != nil {
		return fmt.Errorf("payara home %s: %w", home, err)
	}
	for _, e := range entries {
		if !e.IsDir() && apiJarPattern.MatchString(e.Name()) {
			return nil
		}
	}
	return fmt.Errorf("payara home %s: no server api jar in glassfish/modules", home)
}
