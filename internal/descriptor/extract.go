package descriptor

import (
	"path/filepath"

	"github.com/spf13/afero"

	"payarakit/internal/product"
)

// Extract reads the plugin settings declared for coord in the descriptor.
// Boolean flags default to false and are only switched on by a literal
// "true". An absent plugin section yields zero Flags.
func Extract(d *Descriptor, coord product.Coordinate) Flags {
	if d == nil {
		return Flags{}
	}
	switch d.backend {
	case product.Maven:
		return extractMaven(d.root, coord)
	case product.Gradle:
		return extractGradle(d.text)
	default:
		return Flags{}
	}
}

// ProjectName resolves a display name for the project owning d. Maven uses
// <name> or <artifactId>; Gradle reads rootProject.name from a sibling
// settings.gradle. Both fall back to the directory name.
func ProjectName(fs afero.Fs, d *Descriptor) string {
	if d == nil {
		return ""
	}
	var name string
	switch d.backend {
	case product.Maven:
		name = mavenName(d.root)
	case product.Gradle:
		if fs == nil {
			fs = afero.NewOsFs()
		}
		if data, err := afero.ReadFile(fs, filepath.Join(d.Dir(), "settings.gradle")); err == nil {
			name = gradleRootName(string(data))
		}
	}
	if name == "" {
		name = filepath.Base(d.Dir())
	}
	return name
}
