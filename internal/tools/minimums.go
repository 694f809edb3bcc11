package tools

import (
	"context"
	"fmt"
	"strings"
)

// minimums maps a lower-cased tool name to a configured minimum version.
type minimums map[string]string

type minimumsKey struct{}

// WithMinimums returns ctx carrying the tool_minimums of payarakit.yaml.
// Blank entries are dropped and names match case-insensitively.
func WithMinimums(ctx context.Context, raw map[string]string) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	m := make(minimums, len(raw))
	for name, v := range raw {
		if v = strings.TrimSpace(v); v != "" {
			m[strings.ToLower(name)] = v
		}
	}
	if len(m) == 0 {
		return ctx
	}
	return context.WithValue(ctx, minimumsKey{}, m)
}

func minimumsFrom(ctx context.Context) minimums {
	if ctx == nil {
		return nil
	}
	m, _ := ctx.Value(minimumsKey{}).(minimums)
	return m
}

// effectiveMinimum lets a project raise, never lower, the built-in minimum
// of def.
func effectiveMinimum(ctx context.Context, def ToolDefinition) (string, []string) {
	builtin := strings.TrimSpace(def.MinimumVersion)
	configured := minimumsFrom(ctx)[strings.ToLower(def.Name)]

	switch {
	case configured == "" || configured == builtin:
		return builtin, nil
	case meetsMinimum(configured, builtin):
		return configured, []string{fmt.Sprintf("tool_minimums.%s raises the minimum to %s", def.Name, configured)}
	}
	return builtin, []string{fmt.Sprintf("tool_minimums.%s %s is below the built-in %s and was ignored", def.Name, configured, builtin)}
}
