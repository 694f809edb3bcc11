package command

import (
	"sort"
	"strconv"
	"strings"

	"payarakit/internal/descriptor"
)

// EnvVar is one environment variable passed to a Payara Server launch.
type EnvVar struct {
	Name   string
	Value  string
	Secret bool
}

// ServerEnv builds the environment a Payara Server start expects.
// PAYARA_EXPLODED and PAYARA_REMOTE are always present; every other variable
// is set only when its value is non-blank. properties become
// PAYARA_JAVA_COMMANDLINE_OPTIONS as comma-joined -Dkey=value pairs.
func ServerEnv(flags descriptor.Flags, properties map[string]string) []EnvVar {
	var env []EnvVar
	add := func(name, value string) {
		if value = strings.TrimSpace(value); value != "" {
			env = append(env, EnvVar{Name: name, Value: value})
		}
	}

	env = append(env,
		EnvVar{Name: "PAYARA_EXPLODED", Value: strconv.FormatBool(flags.Exploded)},
		EnvVar{Name: "PAYARA_REMOTE", Value: strconv.FormatBool(flags.Remote)},
	)
	add("PAYARA_CONTEXT_PATH", flags.ContextRoot)
	add("PAYARA_SERVER_PATH", flags.PayaraHome)
	add("PAYARA_SERVER_VERSION", flags.PayaraVersion)
	add("PAYARA_DOMAIN_NAME", flags.DomainName)
	add("PAYARA_INSTANCE_NAME", flags.InstanceName)
	add("PAYARA_HOST_NAME", flags.Host)
	add("PAYARA_PROTOCOL", flags.Protocol)
	add("PAYARA_HTTP_PORT", flags.HTTPPort)
	add("PAYARA_HTTPS_PORT", flags.HTTPSPort)
	add("PAYARA_ADMIN_PORT", flags.AdminPort)
	if strings.TrimSpace(flags.DebugPort) != "" {
		add("PAYARA_DEBUG", "true")
		add("PAYARA_DEBUG_PORT", flags.DebugPort)
	}
	add("PAYARA_ADMIN_USER", flags.User)
	if pw := strings.TrimSpace(flags.Password); pw != "" {
		env = append(env, EnvVar{Name: "PAYARA_ADMIN_PASSWORD", Value: pw, Secret: true})
	}

	if len(properties) > 0 {
		keys := make([]string, 0, len(properties))
		for k := range properties {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		opts := make([]string, 0, len(keys))
		for _, k := range keys {
			opts = append(opts, "-D"+k+"="+properties[k])
		}
		add("PAYARA_JAVA_COMMANDLINE_OPTIONS", strings.Join(opts, ","))
	}
	return env
}

// Environ renders env as NAME=value pairs for exec.
func Environ(env []EnvVar) []string {
	out := make([]string, 0, len(env))
	for _, v := range env {
		out = append(out, v.Name+"="+v.Value)
	}
	return out
}
