// Package makefile generates a self-contained Makefile from the build graph.
package makefile

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/tupcfg/internal/core/domain"
)

var wordEscaper = strings.NewReplacer(
	"$", "$$",
	" ", `\ `,
	"#", `\#`,
	":", `\:`,
)

// Escape returns p as a single make target or prerequisite word.
func Escape(p string) string {
	return wordEscaper.Replace(p)
}

// Recipe returns s quoted as one shell word inside a recipe line.
func Recipe(s string) string {
	return strings.ReplaceAll(domain.ShellQuote(s), "$", "$$")
}

// Writer accumulates Makefile text. Every file starts with the generated marker.
type Writer struct {
	sb strings.Builder
}

// NewWriter creates a new Writer.
func NewWriter() *Writer {
	w := &Writer{}
	w.sb.WriteString(domain.GeneratedMarker + "\n")
	return w
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.sb.WriteString("\n")
}

// Default writes a variable assignment that the environment or the command
// line may override.
func (w *Writer) Default(name, value string) {
	w.sb.WriteString(name + " ?= " + value + "\n")
}

// Phony declares targets as phony.
func (w *Writer) Phony(targets ...string) {
	w.sb.WriteString(".PHONY: " + strings.Join(targets, " ") + "\n")
}

// Rule writes a rule. Targets and prerequisites must already be escaped;
// recipe lines are written verbatim after a tab.
func (w *Writer) Rule(targets, prerequisites []string, recipe ...string) {
	w.sb.WriteString(strings.Join(targets, " ") + ":")
	for _, p := range prerequisites {
		w.sb.WriteString(" " + p)
	}
	w.sb.WriteString("\n")
	for _, line := range recipe {
		w.sb.WriteString("\t" + line + "\n")
	}
}

// Include writes an optional include directive.
func (w *Writer) Include(path string) {
	w.sb.WriteString("-include " + path + "\n")
}

// Bytes returns the accumulated text.
func (w *Writer) Bytes() []byte {
	return []byte(w.sb.String())
}

// Rel returns p relative to dir, slash separated.
func Rel(p domain.Path, dir string) string {
	return filepath.ToSlash(p.Rel(dir))
}

// ReconfigureRule writes the rule re-running the configuration when one of
// the files the build was configured from is newer than the Makefile at
// self. Sub-builds re-run the configuration of their top-level build. The
// first config file is the project description and is passed back through
// --file.
func ReconfigureRule(w *Writer, b *domain.Build, self string) {
	if len(b.ConfigFiles()) == 0 {
		return
	}
	dir := filepath.Dir(self)

	top := b
	for top.Parent() != nil {
		top = top.Parent()
	}

	prerequisites := make([]string, 0, len(b.ConfigFiles()))
	for _, f := range b.ConfigFiles() {
		prerequisites = append(prerequisites, Escape(Rel(domain.NewPath(dir, f), dir)))
	}

	project := Rel(domain.NewPath(dir, b.ProjectDir()), dir)
	projectFile := Rel(domain.NewPath(dir, b.ConfigFiles()[0]), b.ProjectDir())
	buildDir := Rel(domain.NewPath(dir, top.Directory()), b.ProjectDir())

	w.Rule([]string{Escape(filepath.Base(self))}, prerequisites,
		"@cd "+Recipe(project)+" && $(TUPCFG) generate --file "+Recipe(projectFile)+
			" --build-dir "+Recipe(buildDir)+" --generator "+top.Generator().String(),
		"@touch $@",
	)
}

// hasMarker reports whether the file at path starts with the generated marker.
func hasMarker(path string) bool {
	f, err := os.Open(path) //nolint:gosec // Path comes from walking the build directory
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, len(domain.GeneratedMarker))
	if _, err := io.ReadFull(f, buf); err != nil {
		return false
	}
	return string(buf) == domain.GeneratedMarker
}
