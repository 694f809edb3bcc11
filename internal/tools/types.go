package tools

// Status captures the resolved state of a build prerequisite.
type Status struct {
	Tool      string   `json:"tool"`
	Version   string   `json:"version,omitempty"`
	Minimum   string   `json:"minimum,omitempty"`
	Path      string   `json:"path,omitempty"`
	Satisfied bool     `json:"satisfied"`
	Error     string   `json:"error,omitempty"`
	Notes     []string `json:"notes,omitempty"`
}

// BinarySpec describes how to ask an executable for its version.
type BinarySpec struct {
	Executable    string
	VersionSwitch string
	// Marker selects the output line carrying the version.
	Marker string
}

// ToolDefinition contains metadata required to check a tool.
type ToolDefinition struct {
	Name           string
	MinimumVersion string
	// Optional tools only matter for some projects; a missing optional tool
	// is reported but not treated as a failure.
	Optional bool
	Binary   BinarySpec
}
