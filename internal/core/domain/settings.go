package domain

// DefaultProjectFile is the project description looked up in the project directory.
const DefaultProjectFile = "project.hcl"

// DefaultSettingsFile is the optional tool settings file in the project directory.
const DefaultSettingsFile = "tupcfg.yaml"

// DefaultBuildDir is the build directory used when none is configured.
const DefaultBuildDir = "build"

// Settings holds the tool configuration after merging the settings file and
// command line flags.
type Settings struct {
	ProjectDir        string
	ProjectFile       string
	SettingsFile      string
	BuildDir          string
	Generator         GeneratorKind
	EnvPassthrough    []string
	Jobs              int
	SerialIncludeScan bool
}
