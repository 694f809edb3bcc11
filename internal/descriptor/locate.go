package descriptor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/beevik/etree"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"payarakit/internal/logx"
	"payarakit/internal/product"
)

// skippedDirs are never searched for build files. Maven copies pom.xml into
// target/classes/META-INF, which would otherwise shadow the real descriptor.
var skippedDirs = map[string]bool{
	"target":       true,
	"node_modules": true,
}

// Locator finds the build file that declares a given plugin under a project
// root.
type Locator struct {
	fs     afero.Fs
	logger logrus.FieldLogger
}

// NewLocator returns a Locator reading from fs. A nil logger discards output.
func NewLocator(fs afero.Fs, logger logrus.FieldLogger) *Locator {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Locator{fs: fs, logger: logx.OrDiscard(logger)}
}

// Locate walks root for files named after the backend's descriptor and
// returns the first one that declares coord. Candidates are visited in walk
// order. Files that cannot be read or parsed are logged and skipped. ok is
// false when nothing qualifies.
func (l *Locator) Locate(root string, backend product.Backend, coord product.Coordinate) (*Descriptor, bool) {
	name := backend.DescriptorFile()
	var found *Descriptor

	errStop := errors.New("stop")
	err := afero.Walk(l.fs, root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			l.logger.Debugf("walk %s: %v", path, err)
			if info != nil && info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if info.IsDir() {
			if path != root && (skippedDirs[info.Name()] || strings.HasPrefix(info.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if info.Name() != name {
			return nil
		}

		d, err := l.load(path, backend)
		if err != nil {
			l.logger.Warnf("skip build file %s: %v", path, err)
			return nil
		}
		if !IsPlugin(d, coord) {
			l.logger.Debugf("build file %s does not declare %s", path, coordName(coord))
			return nil
		}
		found = d
		return errStop
	})
	if err != nil && !errors.Is(err, errStop) {
		l.logger.Warnf("search %s for %s: %v", root, name, err)
	}
	return found, found != nil
}

// Load parses a single build file without checking which plugin it declares.
func (l *Locator) Load(path string, backend product.Backend) (*Descriptor, error) {
	return l.load(path, backend)
}

func (l *Locator) load(path string, backend product.Backend) (*Descriptor, error) {
	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	d := &Descriptor{path: abs, backend: backend}
	switch backend {
	case product.Maven:
		doc := etree.NewDocument()
		if err := doc.ReadFromBytes(data); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if doc.Root() == nil {
			return nil, fmt.Errorf("parse %s: no root element", path)
		}
		d.root = doc.Root()
	case product.Gradle:
		d.text = string(data)
	default:
		return nil, fmt.Errorf("unsupported backend %s", backend)
	}
	return d, nil
}

// IsPlugin reports whether the descriptor declares the plugin identified by
// coord. Maven requires a build/plugins/plugin entry whose groupId and
// artifactId both match. Gradle accepts the plugin id or artifact id appearing
// anywhere in the file text.
func IsPlugin(d *Descriptor, coord product.Coordinate) bool {
	if d == nil {
		return false
	}
	switch d.backend {
	case product.Maven:
		return len(pluginElements(d.root, coord)) > 0
	case product.Gradle:
		if coord.PluginID != "" && strings.Contains(d.text, coord.PluginID) {
			return true
		}
		return coord.ArtifactID != "" && strings.Contains(d.text, coord.ArtifactID)
	default:
		return false
	}
}

func coordName(c product.Coordinate) string {
	if c.PluginID != "" {
		return c.PluginID
	}
	return c.GroupID + ":" + c.ArtifactID
}
