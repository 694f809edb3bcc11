package tools

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"payarakit/internal/command"
)

var lookPath = exec.LookPath

// Detect returns the status of each known tool. executables maps a tool name
// to a configured command (for example ./mvnw) that replaces the default
// executable.
func Detect(ctx context.Context, runner command.Runner, executables map[string]string) []Status {
	if ctx == nil {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
	}
	if runner == nil {
		runner = command.CmdRunner{}
	}

	statuses := make([]Status, 0, len(toolDefinitions))
	for _, name := range KnownTools() {
		def, _ := Definition(name)
		if exe := executables[name]; exe != "" {
			def.Binary.Executable = exe
		}
		statuses = append(statuses, detectOne(ctx, runner, def))
	}
	return statuses
}

func detectOne(ctx context.Context, runner command.Runner, def ToolDefinition) Status {
	minimum, notes := effectiveMinimum(ctx, def)
	status := Status{Tool: def.Name, Minimum: minimum, Notes: notes}

	path, err := lookPath(def.Binary.Executable)
	if err != nil {
		status.Error = fmt.Sprintf("%s not found in PATH", def.Binary.Executable)
		status.Notes = append(status.Notes, installHints(def.Name)...)
		status.Satisfied = def.Optional
		return status
	}
	status.Path = path

	version, err := readVersion(ctx, runner, def, path)
	if err != nil {
		status.Error = err.Error()
		return status
	}
	status.Version = version
	status.Satisfied = meetsMinimum(version, minimum)
	if !status.Satisfied {
		status.Error = fmt.Sprintf("version %s below minimum %s", version, minimum)
	}
	return status
}
