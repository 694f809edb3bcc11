package paths

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectPaths captures canonical locations for a Payara project.
type ProjectPaths struct {
	Root       string
	ConfigFile string
	MetaDir    string
	LogsDir    string
}

// Resolve determines the project root using the optional --project flag or the
// current working directory when the flag is empty.
func Resolve(projectFlag string) (ProjectPaths, error) {
	var (
		root string
		err  error
	)

	if projectFlag != "" {
		root, err = filepath.Abs(projectFlag)
	} else {
		root, err = os.Getwd()
	}
	if err != nil {
		return ProjectPaths{}, fmt.Errorf("resolve project root: %w", err)
	}

	return newProjectPaths(root), nil
}

func newProjectPaths(root string) ProjectPaths {
	metaDir := filepath.Join(root, ".payarakit")
	return ProjectPaths{
		Root:       root,
		ConfigFile: filepath.Join(root, "payarakit.yaml"),
		MetaDir:    metaDir,
		LogsDir:    filepath.Join(metaDir, "logs"),
	}
}

// Resolve returns value relative to the project root unless it is absolute.
func (p ProjectPaths) Resolve(value string) string {
	if value == "" || filepath.IsAbs(value) {
		return filepath.Clean(value)
	}
	return filepath.Join(p.Root, value)
}

// EnsureRoot makes sure the project root exists on disk.
func (p ProjectPaths) EnsureRoot() error {
	if err := os.MkdirAll(p.Root, 0o755); err != nil {
		return fmt.Errorf("create project root: %w", err)
	}
	return nil
}

// GlobalDir returns the user-level Payara directory (~/.payara), shared with
// the IDE plugins. It creates the directory if it does not exist.
func GlobalDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("detect user home: %w", err)
	}
	dir := filepath.Join(home, ".payara")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create global dir: %w", err)
	}
	return dir, nil
}

// KeyFile returns the credential key file path (~/.payara/plugin_key).
func KeyFile() (string, error) {
	global, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(global, "plugin_key"), nil
}

// PropertyStoreDir returns the directory of the local property database
// (~/.payara/payarakit-properties).
func PropertyStoreDir() (string, error) {
	global, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(global, "payarakit-properties"), nil
}

// FileExists reports whether a path exists and is a regular file.
func FileExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.Mode().IsRegular(), nil
}

// DirExists reports whether a path exists and is a directory.
func DirExists(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, err
	}
	return info.IsDir(), nil
}
