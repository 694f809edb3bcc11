package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func TestResolveUsesFlag(t *testing.T) {
	root := t.TempDir()
	pp, err := Resolve(root)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if pp.Root != root {
		t.Fatalf("Root = %s, want %s", pp.Root, root)
	}
	if want := filepath.Join(root, "payarakit.yaml"); pp.ConfigFile != want {
		t.Fatalf("ConfigFile = %s, want %s", pp.ConfigFile, want)
	}
	if want := filepath.Join(root, ".payarakit", "logs"); pp.LogsDir != want {
		t.Fatalf("LogsDir = %s, want %s", pp.LogsDir, want)
	}
}

func TestProjectPathsResolve(t *testing.T) {
	root := t.TempDir()
	pp := newProjectPaths(root)

	if got, want := pp.Resolve("out"), filepath.Join(root, "out"); got != want {
		t.Fatalf("Resolve(relative) = %s, want %s", got, want)
	}
	abs := filepath.Join(t.TempDir(), "elsewhere")
	if got := pp.Resolve(abs); got != abs {
		t.Fatalf("Resolve(absolute) = %s, want %s", got, abs)
	}
}

func TestGlobalFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	key, err := KeyFile()
	if err != nil {
		t.Fatalf("KeyFile: %v", err)
	}
	if want := filepath.Join(home, ".payara", "plugin_key"); key != want {
		t.Fatalf("KeyFile = %s, want %s", key, want)
	}
	if ok, _ := DirExists(filepath.Join(home, ".payara")); !ok {
		t.Fatal("expected ~/.payara to be created")
	}

	dir, err := PropertyStoreDir()
	if err != nil {
		t.Fatalf("PropertyStoreDir: %v", err)
	}
	if filepath.Dir(dir) != filepath.Join(home, ".payara") {
		t.Fatalf("PropertyStoreDir = %s, want under ~/.payara", dir)
	}
}

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "pom.xml")
	if err := os.WriteFile(file, []byte("<project/>"), 0o644); err != nil {
		t.Fatal(err)
	}

	if ok, err := FileExists(file); err != nil || !ok {
		t.Fatalf("FileExists(file) = %v, %v", ok, err)
	}
	if ok, _ := FileExists(dir); ok {
		t.Fatal("FileExists(dir) = true, want false")
	}
	if ok, err := DirExists(dir); err != nil || !ok {
		t.Fatalf("DirExists(dir) = %v, %v", ok, err)
	}
	if ok, err := DirExists(filepath.Join(dir, "missing")); err != nil || ok {
		t.Fatalf("DirExists(missing) = %v, %v", ok, err)
	}
}
