package logger

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// hintKey is the metadata key carrying a remediation hint.
const hintKey = "hint"

type messager interface {
	Message() string
}

type metadataCarrier interface {
	Metadata() map[string]any
}

type unwrapper interface {
	Unwrap() error
}

// errorEntry is one message of an error chain with the metadata attached to it.
type errorEntry struct {
	message  string
	metadata map[string]any
}

// collectErrorEntries walks the chain of err. Wrappers without a message
// only carry metadata, which is attached to the next entry with a message.
func collectErrorEntries(err error) []errorEntry {
	var entries []errorEntry
	pending := map[string]any{}

	for current := err; current != nil; {
		m, ok := current.(messager)
		if !ok {
			entries = append(entries, errorEntry{message: current.Error(), metadata: pending})
			break
		}
		if mc, ok := current.(metadataCarrier); ok {
			for k, v := range mc.Metadata() {
				if _, set := pending[k]; !set {
					pending[k] = v
				}
			}
		}
		if m.Message() != "" {
			entries = append(entries, errorEntry{message: m.Message(), metadata: pending})
			pending = map[string]any{}
		}
		u, ok := current.(unwrapper)
		if !ok {
			break
		}
		current = u.Unwrap()
	}

	if len(entries) == 0 {
		entries = append(entries, errorEntry{message: err.Error(), metadata: pending})
	}
	return entries
}

// formatErrorEntries renders the chain: the main error, its metadata, the
// causes, and finally the first remediation hint.
func formatErrorEntries(entries []errorEntry) string {
	var lines []string
	var hint string

	for i, e := range entries {
		msgLines := strings.Split(e.message, "\n")
		indent := "  "
		if i == 0 {
			lines = append(lines, "Error: "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, "       "+line)
			}
		} else {
			if i == 1 {
				lines = append(lines, "", "  Caused by:")
			}
			indent = "      "
			lines = append(lines, "    → "+msgLines[0])
			for _, line := range msgLines[1:] {
				lines = append(lines, indent+line)
			}
		}

		for _, k := range slices.Sorted(maps.Keys(e.metadata)) {
			if k == hintKey {
				if h, ok := e.metadata[k].(string); ok && hint == "" {
					hint = h
				}
				continue
			}
			lines = append(lines, fmt.Sprintf("%s%s=%v", indent, k, e.metadata[k]))
		}
	}

	if hint != "" {
		lines = append(lines, "Hint: "+hint)
	}
	return strings.Join(lines, "\n")
}
