package project

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"payarakit/internal/command"
	"payarakit/internal/config"
	"payarakit/internal/descriptor"
	"payarakit/internal/logx"
	"payarakit/internal/product"
)

// ErrNotFound is returned when no build file under the root declares a
// Payara plugin.
var ErrNotFound = errors.New("no Payara build file found")

// Project is a detected Payara project.
type Project struct {
	Root       string
	Line       product.Line
	Coordinate product.Coordinate
	Descriptor *descriptor.Descriptor
	// Flags are the settings declared in the build file.
	Flags descriptor.Flags
	Name  string
}

// Backend reports the build tool of the project.
func (p *Project) Backend() product.Backend { return p.Descriptor.Backend() }

// Options narrows detection. Nil Line or Backend means try all.
type Options struct {
	Fs      afero.Fs
	Logger  logrus.FieldLogger
	Line    *product.Line
	Backend *product.Backend
}

// OptionsFromConfig pins Line and Backend to the values set in cfg.
func OptionsFromConfig(cfg config.Config) (Options, error) {
	var opts Options
	if cfg.Product != "" {
		line, err := product.ParseLine(cfg.Product)
		if err != nil {
			return Options{}, err
		}
		opts.Line = &line
	}
	if cfg.Backend != "" {
		backend, err := product.ParseBackend(cfg.Backend)
		if err != nil {
			return Options{}, err
		}
		opts.Backend = &backend
	}
	return opts, nil
}

// Open detects the product line and backend of the project at root. Lines
// are tried in product.Lines order and Maven before Gradle.
func Open(root string, opts Options) (*Project, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	logger := logx.OrDiscard(opts.Logger)
	locator := descriptor.NewLocator(fs, logger)

	lines := product.Lines()
	if opts.Line != nil {
		lines = []product.Line{*opts.Line}
	}
	backends := []product.Backend{product.Maven, product.Gradle}
	if opts.Backend != nil {
		backends = []product.Backend{*opts.Backend}
	}

	var tried []string
	for _, line := range lines {
		for _, backend := range backends {
			coord, ok := product.CoordinateFor(line, backend)
			if !ok {
				continue
			}
			tried = append(tried, line.String()+"/"+backend.String())
			d, found := locator.Locate(root, backend, coord)
			if !found {
				continue
			}
			logger.Debugf("detected %s project via %s", line, d.Path())
			return &Project{
				Root:       root,
				Line:       line,
				Coordinate: coord,
				Descriptor: d,
				Flags:      descriptor.Extract(d, coord),
				Name:       descriptor.ProjectName(fs, d),
			}, nil
		}
	}
	if len(tried) == 0 {
		return nil, fmt.Errorf("%w under %s: no plugin exists for the requested product and backend", ErrNotFound, root)
	}
	return nil, fmt.Errorf("%w under %s (tried %s)", ErrNotFound, root, strings.Join(tried, ", "))
}

// PasswordSource yields the stored admin password.
type PasswordSource interface {
	Load() (string, bool)
}

// Configuration overlays user settings and the stored password on the build
// file flags. Non-empty config values win.
func (p *Project) Configuration(cfg config.Config, passwords PasswordSource) descriptor.Flags {
	flags := p.Flags

	override := func(dst *string, value string) {
		if strings.TrimSpace(value) != "" {
			*dst = value
		}
	}
	s := cfg.Server
	override(&flags.ContextRoot, s.ContextRoot)
	override(&flags.PayaraHome, s.PayaraHome)
	override(&flags.PayaraVersion, s.PayaraVersion)
	override(&flags.DomainName, s.DomainName)
	override(&flags.InstanceName, s.InstanceName)
	override(&flags.Host, s.Host)
	override(&flags.Protocol, s.Protocol)
	override(&flags.HTTPPort, s.HTTPPort)
	override(&flags.HTTPSPort, s.HTTPSPort)
	override(&flags.AdminPort, s.AdminPort)
	override(&flags.User, s.User)
	override(&flags.DebugPort, cfg.DebugPort)
	if s.Exploded != nil {
		flags.Exploded = *s.Exploded
	}
	if s.Remote != nil {
		flags.Remote = *s.Remote
	}

	if passwords != nil {
		if pw, ok := passwords.Load(); ok {
			flags.Password = pw
		}
	}
	return flags
}

// Request prepares a command request for action with flags.
func (p *Project) Request(cfg config.Config, action command.Action, flags descriptor.Flags) command.Request {
	return command.Request{
		Line:       p.Line,
		Backend:    p.Backend(),
		Flags:      flags,
		Action:     action,
		Executable: cfg.Executable(p.Backend()),
	}
}
