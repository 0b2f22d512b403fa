// export_test.go exports private functions for white-box testing.
package logger

// ExportErrorFormatting exports the private error formatting functions for testing.
var (
	CollectErrorEntries = collectErrorEntries
	FormatErrorEntries  = formatErrorEntries
)

// EntryParts exposes errorEntry fields for assertions.
func EntryParts(e errorEntry) (string, map[string]any) {
	return e.message, e.metadata
}
