package descriptor

import (
	"regexp"
	"strings"
)

var (
	payaraMicroBlock = regexp.MustCompile(`payaraMicro\s*\{([^}]*)\}`)
	rootProjectName  = regexp.MustCompile(`(?m)^\s*rootProject\.name\s*=\s*(.+?)\s*$`)
)

// extractGradle reads assignments from the first payaraMicro { ... } block.
// A line sets a flag only when it is exactly "<name> = <value>"; later lines
// win over earlier ones.
func extractGradle(text string) Flags {
	var flags Flags
	match := payaraMicroBlock.FindStringSubmatch(text)
	if match == nil {
		return flags
	}

	for _, line := range strings.Split(match[1], "\n") {
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		if set, ok := boolFlags[key]; ok {
			set(&flags, value == "true")
			continue
		}
		if set, ok := stringFlags[key]; ok {
			if v := unquote(value); v != "" {
				set(&flags, v)
			}
		}
	}
	return flags
}

// gradleRootName reads rootProject.name from settings.gradle contents.
func gradleRootName(settings string) string {
	match := rootProjectName.FindStringSubmatch(settings)
	if match == nil {
		return ""
	}
	return unquote(match[1])
}

func unquote(value string) string {
	value = strings.TrimSpace(value)
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' || first == '"') && first == last {
			return value[1 : len(value)-1]
		}
	}
	return value
}
