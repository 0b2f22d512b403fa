package domain

import "strings"

// GeneratorKind names a backend turning the graph into native build files.
type GeneratorKind string

const (
	// GeneratorTup emits one Tupfile per output directory.
	GeneratorTup GeneratorKind = "tup"
	// GeneratorMakefile emits a self-contained Makefile.
	GeneratorMakefile GeneratorKind = "makefile"
)

// ParseGeneratorKind converts a user supplied name into a GeneratorKind.
func ParseGeneratorKind(s string) (GeneratorKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(GeneratorTup):
		return GeneratorTup, nil
	case string(GeneratorMakefile), "make":
		return GeneratorMakefile, nil
	}
	return "", Fail(ErrUnknownGenerator, "use --generator tup or --generator makefile", "generator", s)
}

// String implements fmt.Stringer.
func (k GeneratorKind) String() string { return string(k) }
