package descriptor

import (
	"path/filepath"
	"strings"

	"github.com/beevik/etree"

	"payarakit/internal/product"
)

// Descriptor is a build file that was validated to declare a Payara plugin.
// It is immutable once returned by Locate.
type Descriptor struct {
	path    string
	backend product.Backend
	root    *etree.Element
	text    string
}

// Path is the absolute location of the build file.
func (d *Descriptor) Path() string { return d.path }

// Dir is the directory holding the build file.
func (d *Descriptor) Dir() string { return filepath.Dir(d.path) }

// Backend reports which build tool the file belongs to.
func (d *Descriptor) Backend() product.Backend { return d.backend }

// Text returns the raw contents of a Gradle build file. It is empty for Maven.
func (d *Descriptor) Text() string { return d.text }

// Flags is the flat set of plugin settings read from a build file and later
// overlaid with user configuration.
type Flags struct {
	UseUberJar    bool   `json:"use_uber_jar"`
	Exploded      bool   `json:"exploded"`
	Remote        bool   `json:"remote"`
	ContextRoot   string `json:"context_root,omitempty"`
	PayaraHome    string `json:"payara_home,omitempty"`
	PayaraVersion string `json:"payara_version,omitempty"`
	DomainName    string `json:"domain_name,omitempty"`
	InstanceName  string `json:"instance_name,omitempty"`
	Host          string `json:"host,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
	HTTPPort      string `json:"http_port,omitempty"`
	HTTPSPort     string `json:"https_port,omitempty"`
	AdminPort     string `json:"admin_port,omitempty"`
	DebugPort     string `json:"debug_port,omitempty"`
	User          string `json:"user,omitempty"`

	// Password is filled from the credential store for the lifetime of a
	// command and never written back to disk.
	Password string `json:"-" yaml:"-"`
}

// DefaultDebugPort is used when no debug port is configured.
const DefaultDebugPort = "9007"

// EffectiveDebugPort returns the configured debug port, or DefaultDebugPort
// when it is unset or blank.
func (f Flags) EffectiveDebugPort() string {
	port := strings.TrimSpace(f.DebugPort)
	if port == "" {
		return DefaultDebugPort
	}
	return port
}

var boolFlags = map[string]func(*Flags, bool){
	"useUberJar": func(f *Flags, v bool) { f.UseUberJar = v },
	"exploded":   func(f *Flags, v bool) { f.Exploded = v },
	"remote":     func(f *Flags, v bool) { f.Remote = v },
}

var stringFlags = map[string]func(*Flags, string){
	"contextRoot":   func(f *Flags, v string) { f.ContextRoot = v },
	"payaraVersion": func(f *Flags, v string) { f.PayaraVersion = v },
	"domainName":    func(f *Flags, v string) { f.DomainName = v },
	"instanceName":  func(f *Flags, v string) { f.InstanceName = v },
	"host":          func(f *Flags, v string) { f.Host = v },
	"protocol":      func(f *Flags, v string) { f.Protocol = v },
	"httpPort":      func(f *Flags, v string) { f.HTTPPort = v },
	"httpsPort":     func(f *Flags, v string) { f.HTTPSPort = v },
	"adminPort":     func(f *Flags, v string) { f.AdminPort = v },
}
