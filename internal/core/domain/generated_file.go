package domain

// GeneratedFile records a file written by the generator, so that later runs
// can tell generated files from hand-written ones and notice hand edits.
type GeneratedFile struct {
	// Path is relative to the build directory, slash separated.
	Path   string `json:"path"`
	Digest string `json:"digest"`
}

// GeneratedMarker is the comment line identifying files written by tupcfg.
const GeneratedMarker = "# Generated by tupcfg. Do not edit."
