package product

import (
	"fmt"
	"strings"
)

// Line identifies a Payara product line.
type Line int

const (
	Micro Line = iota
	Cloud
	Server
)

// Lines lists every product line in detection order.
func Lines() []Line {
	return []Line{Micro, Cloud, Server}
}

func (l Line) String() string {
	switch l {
	case Micro:
		return "micro"
	case Cloud:
		return "cloud"
	case Server:
		return "server"
	default:
		return fmt.Sprintf("line(%d)", int(l))
	}
}

// ParseLine maps a user-supplied name to a product line.
func ParseLine(value string) (Line, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "micro", "payara-micro":
		return Micro, nil
	case "cloud", "payara-cloud":
		return Cloud, nil
	case "server", "payara-server":
		return Server, nil
	default:
		return 0, fmt.Errorf("unknown product %q (expected micro, cloud or server)", value)
	}
}

// Backend identifies the build tool driving a project.
type Backend int

const (
	Maven Backend = iota
	Gradle
)

func (b Backend) String() string {
	switch b {
	case Maven:
		return "maven"
	case Gradle:
		return "gradle"
	default:
		return fmt.Sprintf("backend(%d)", int(b))
	}
}

// ParseBackend maps a user-supplied name to a backend.
func ParseBackend(value string) (Backend, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "maven", "mvn":
		return Maven, nil
	case "gradle":
		return Gradle, nil
	default:
		return 0, fmt.Errorf("unknown backend %q (expected maven or gradle)", value)
	}
}

// DescriptorFile is the build descriptor file name for the backend.
func (b Backend) DescriptorFile() string {
	if b == Gradle {
		return "build.gradle"
	}
	return "pom.xml"
}

// Executable is the default build tool executable for the backend.
func (b Backend) Executable() string {
	if b == Gradle {
		return "gradle"
	}
	return "mvn"
}
