package domain

import (
	"errors"

	"go.trai.ch/zerr"
)

var (
	// ErrConfiguration is returned when the project description cannot be turned into a graph.
	ErrConfiguration = zerr.New("configuration error")

	// ErrResolution is returned when a collaborator cannot locate a library, binary or file.
	ErrResolution = zerr.New("resolution error")

	// ErrGeneration is returned when writing generated files fails.
	ErrGeneration = zerr.New("generation error")

	// ErrUnknownCommandElement is returned when a command argument tree holds an
	// element that is neither a literal, a node nor a group.
	ErrUnknownCommandElement = zerr.New("unknown command element")

	// ErrTargetConflict is returned when a different target is registered at a path already in use.
	ErrTargetConflict = zerr.New("conflicting target at path")

	// ErrCommandConflict is returned when a second command claims an already produced target.
	ErrCommandConflict = zerr.New("target already has a producing command")

	// ErrForeignNode is returned when a node owned by another build is registered.
	ErrForeignNode = zerr.New("node belongs to another build")

	// ErrMissingSearchDirectory is returned when an include search directory does not exist.
	ErrMissingSearchDirectory = zerr.New("include search directory does not exist")

	// ErrMissingSourceDirectory is returned when a required source directory does not exist.
	ErrMissingSourceDirectory = zerr.New("source directory does not exist")

	// ErrUnknownGenerator is returned for an unsupported generator name.
	ErrUnknownGenerator = zerr.New("unknown generator")

	// ErrUnknownNodeReference is returned when the project description references an undeclared node.
	ErrUnknownNodeReference = zerr.New("reference to undeclared node")

	// ErrInvalidEnvironmentName is returned for an environment variable name that is not a shell identifier.
	ErrInvalidEnvironmentName = zerr.New("invalid environment variable name")

	// ErrInvalidSettings is returned when the settings file does not match its schema.
	ErrInvalidSettings = zerr.New("invalid settings")
)

var configurationErrors = []error{
	ErrConfiguration,
	ErrUnknownCommandElement,
	ErrTargetConflict,
	ErrCommandConflict,
	ErrForeignNode,
	ErrMissingSearchDirectory,
	ErrMissingSourceDirectory,
	ErrUnknownGenerator,
	ErrUnknownNodeReference,
	ErrInvalidEnvironmentName,
	ErrInvalidSettings,
}

const hintKey = "hint"

// Fail wraps sentinel so that errors.Is keeps matching it and attaches a
// remediation hint followed by optional key/value metadata pairs.
func Fail(sentinel error, hint string, kv ...any) error {
	err := zerr.Wrap(sentinel, "")
	if hint != "" {
		err = zerr.With(err, hintKey, hint)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			continue
		}
		err = zerr.With(err, key, kv[i+1])
	}
	return err
}

// Hint returns the first remediation hint found along the error chain.
func Hint(err error) string {
	for err != nil {
		var z *zerr.Error
		if !errors.As(err, &z) {
			return ""
		}
		if h, ok := z.Metadata()[hintKey].(string); ok && h != "" {
			return h
		}
		err = z.Unwrap()
	}
	return ""
}

// IsConfigurationError reports whether err belongs to the configuration class,
// which aborts before any file is generated.
func IsConfigurationError(err error) bool {
	for _, sentinel := range configurationErrors {
		if errors.Is(err, sentinel) {
			return true
		}
	}
	return false
}
