package tools

import "runtime"

var packageNames = map[string]map[string]string{
	"darwin":  {Maven: "maven", Gradle: "gradle", Java: "openjdk@17"},
	"linux":   {Maven: "maven", Gradle: "gradle", Java: "openjdk-17-jdk"},
	"windows": {Maven: "maven", Gradle: "gradle", Java: "temurin17"},
}

func installHints(tool string) []string {
	pkg := packageNames[runtime.GOOS][tool]

	switch runtime.GOOS {
	case "darwin":
		return []string{"Install " + tool + " via Homebrew: brew install " + pkg}
	case "linux":
		return []string{"Install " + tool + " with your distro package manager, e.g. sudo apt install " + pkg}
	case "windows":
		return []string{"Install " + tool + " via Chocolatey: choco install " + pkg}
	default:
		return []string{"Install " + tool + " using your platform's package manager"}
	}
}
