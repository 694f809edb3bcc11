package tools

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"payarakit/internal/command"
)

func readVersion(ctx context.Context, runner command.Runner, def ToolDefinition, path string) (string, error) {
	res, err := runner.Run(ctx, path, []string{def.Binary.VersionSwitch}, command.RunOptions{})
	if err != nil {
		return "", fmt.Errorf("%s version: %w", def.Name, err)
	}
	// java prints its banner on stderr.
	output := string(res.Stdout) + "\n" + string(res.Stderr)
	version := parseVersion(output, def.Binary.Marker)
	if version == "" {
		return "", fmt.Errorf("%s version: unrecognised output", def.Name)
	}
	// Java 8 and older report themselves as 1.x.
	if def.Name == Java && strings.HasPrefix(version, "1.") {
		version = strings.TrimPrefix(version, "1.")
	}
	return version, nil
}

var versionRegex = regexp.MustCompile(`[0-9]+(?:\.[0-9]+)*`)

// parseVersion returns the first dotted number on the first line containing
// marker.
func parseVersion(output, marker string) string {
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		idx := strings.Index(line, marker)
		if idx < 0 {
			continue
		}
		if match := versionRegex.FindString(line[idx+len(marker):]); match != "" {
			return match
		}
	}
	return ""
}

func meetsMinimum(version, minimum string) bool {
	if minimum == "" {
		return true
	}
	if version == "" {
		return false
	}

	vParts := numericParts(version)
	mParts := numericParts(minimum)
	for len(vParts) < len(mParts) {
		vParts = append(vParts, 0)
	}
	for len(mParts) < len(vParts) {
		mParts = append(mParts, 0)
	}
	for i := range vParts {
		if vParts[i] > mParts[i] {
			return true
		}
		if vParts[i] < mParts[i] {
			return false
		}
	}
	return true
}

func numericParts(version string) []int {
	var parts []int
	current := strings.Builder{}
	flush := func() {
		if current.Len() > 0 {
			val, _ := strconv.Atoi(current.String())
			parts = append(parts, val)
			current.Reset()
		}
	}
	for _, r := range version {
		if r >= '0' && r <= '9' {
			current.WriteRune(r)
			continue
		}
		flush()
	}
	flush()
	return parts
}
