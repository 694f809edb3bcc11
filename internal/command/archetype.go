package command

import (
	"errors"
	"strconv"
	"strings"
)

const (
	archetypeGroup    = "fish.payara.maven.archetypes"
	archetypeArtifact = "payara-micro-maven-archetype"
	// legacyArchetype generates projects for Payara Micro 5 and older.
	legacyArchetype = "1.4.0"
)

// Archetype describes a new Payara Micro Maven project.
type Archetype struct {
	GroupID      string
	ArtifactID   string
	Version      string
	ContextRoot  string
	AutoBindHTTP bool
	MicroVersion string
	JDKVersion   string
}

// ArchetypeCommand builds the mvn archetype:generate invocation for a.
func ArchetypeCommand(a Archetype) (Command, error) {
	if strings.TrimSpace(a.GroupID) == "" || strings.TrimSpace(a.ArtifactID) == "" {
		return Command{}, errors.New("archetype requires a group id and an artifact id")
	}
	version := a.Version
	if version == "" {
		version = "1.0-SNAPSHOT"
	}

	cmd := Command{Executable: "mvn"}
	cmd.goals("archetype:generate").
		prop("interactiveMode", "false").
		prop("archetypeGroupId", archetypeGroup).
		prop("archetypeArtifactId", archetypeArtifact).
		prop("archetypeVersion", archetypeVersion(a.MicroVersion)).
		prop("groupId", a.GroupID).
		prop("artifactId", a.ArtifactID).
		prop("version", version).
		prop("autoBindHttp", strconv.FormatBool(a.AutoBindHTTP))
	if a.ContextRoot != "" {
		cmd.prop("contextRoot", a.ContextRoot)
	}
	cmd.prop("addPayaraApi", "true")
	if a.MicroVersion != "" {
		cmd.prop("payaraMicroVersion", a.MicroVersion)
	}
	if a.JDKVersion != "" {
		cmd.prop("jdkVersion", a.JDKVersion)
	}
	return cmd, nil
}

// archetypeVersion picks the legacy archetype for Micro versions below 6 and
// the latest release otherwise.
func archetypeVersion(microVersion string) string {
	tokens := strings.Split(microVersion, ".")
	if len(tokens) > 1 {
		if major, err := strconv.Atoi(tokens[0]); err == nil && major < 6 {
			return legacyArchetype
		}
	}
	return "RELEASE"
}
