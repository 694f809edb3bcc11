package tools

import (
	"runtime"
	"sort"
)

// Tool names.
const (
	Maven  = "maven"
	Gradle = "gradle"
	Java   = "java"
)

var toolDefinitions = map[string]ToolDefinition{
	Maven: {
		Name:           Maven,
		MinimumVersion: "3.6.0",
		Binary:         BinarySpec{Executable: executableName("mvn"), VersionSwitch: "-v", Marker: "Apache Maven"},
	},
	Gradle: {
		Name:           Gradle,
		MinimumVersion: "6.0",
		Optional:       true,
		Binary:         BinarySpec{Executable: executableName("gradle"), VersionSwitch: "--version", Marker: "Gradle "},
	},
	Java: {
		Name:           Java,
		MinimumVersion: "11",
		Binary:         BinarySpec{Executable: executableName("java"), VersionSwitch: "-version", Marker: "version"},
	},
}

func executableName(base string) string {
	if runtime.GOOS == "windows" {
		switch base {
		case "mvn", "gradle":
			return base + ".cmd"
		}
		return base + ".exe"
	}
	return base
}

// KnownTools returns the list of checked tool names.
func KnownTools() []string {
	names := make([]string, 0, len(toolDefinitions))
	for name := range toolDefinitions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Definition returns the tool definition for the provided name.
func Definition(name string) (ToolDefinition, bool) {
	def, ok := toolDefinitions[name]
	return def, ok
}
