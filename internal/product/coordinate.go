package product

// Coordinate identifies the build plugin that marks a project as belonging to
// a product line.
type Coordinate struct {
	GroupID    string
	ArtifactID string
	Version    string
	// Prefix is the short plugin prefix Maven resolves goals against.
	Prefix string
	// PluginID is the Gradle plugin id; empty for Maven-only plugins.
	PluginID string
}

const mavenPluginGroup = "fish.payara.maven.plugins"

var coordinates = map[Line]map[Backend]Coordinate{
	Micro: {
		Maven: {
			GroupID:    mavenPluginGroup,
			ArtifactID: "payara-micro-maven-plugin",
			Prefix:     "payara-micro",
		},
		Gradle: {
			ArtifactID: "payara-micro-gradle-plugin",
			PluginID:   "fish.payara.micro-gradle-plugin",
		},
	},
	Cloud: {
		Maven: {
			GroupID:    mavenPluginGroup,
			ArtifactID: "payara-cloud-maven-plugin",
			Prefix:     "payara-cloud",
		},
	},
	Server: {
		Maven: {
			GroupID:    mavenPluginGroup,
			ArtifactID: "payara-server-maven-plugin",
			Version:    "1.0.0-Alpha3",
			Prefix:     "payara-server",
		},
	},
}

// CoordinateFor returns the plugin coordinate for the product line on the
// backend. ok is false when the line has no plugin for that backend.
func CoordinateFor(line Line, backend Backend) (Coordinate, bool) {
	byBackend, ok := coordinates[line]
	if !ok {
		return Coordinate{}, false
	}
	c, ok := byBackend[backend]
	return c, ok
}

// Supports reports whether the product line ships a plugin for the backend.
func Supports(line Line, backend Backend) bool {
	_, ok := CoordinateFor(line, backend)
	return ok
}

// Goal renders the fully-qualified Maven goal for the coordinate.
func (c Coordinate) Goal(goal string) string {
	return c.GroupID + ":" + c.ArtifactID + ":" + goal
}

// VersionedGoal renders the goal pinned to the coordinate's version. Without
// a version it matches Goal.
func (c Coordinate) VersionedGoal(goal string) string {
	if c.Version == "" {
		return c.Goal(goal)
	}
	return c.GroupID + ":" + c.ArtifactID + ":" + c.Version + ":" + goal
}
