package makefile

import (
	"path/filepath"
	"slices"
	"strings"

	"go.trai.ch/tupcfg/internal/core/domain"
)

// DepfileSuffix is appended to a target path to name its header dependency file.
const DepfileSuffix = ".depend.mk"

var cFamily = []string{".c", ".cc", ".cpp", ".cxx", ".C", ".m", ".mm"}

// IsCSource reports whether path names a file the include scanner understands.
func IsCSource(path string) bool {
	return slices.Contains(cFamily, filepath.Ext(path))
}

// RenderDepfile returns a dependency file making targets depend on headers.
// Every header also gets an empty rule so a deleted header does not stop make.
func RenderDepfile(targets []string, headers []string) []byte {
	w := NewWriter()
	escaped := make([]string, 0, len(headers))
	for _, h := range headers {
		escaped = append(escaped, Escape(filepath.ToSlash(h)))
	}
	names := make([]string, 0, len(targets))
	for _, t := range targets {
		names = append(names, Escape(t))
	}
	w.Rule(names, escaped)
	for _, h := range escaped {
		w.Rule([]string{h}, nil)
	}
	return w.Bytes()
}

// UnionHeaders merges the scan results of sources into one sorted list
// without duplicates, leaving out the sources themselves.
func UnionHeaders(sources []string, scans ...[]string) []string {
	var headers []string
	for _, found := range scans {
		for _, h := range found {
			if !slices.Contains(sources, h) && !slices.Contains(headers, h) {
				headers = append(headers, h)
			}
		}
	}
	slices.Sort(headers)
	return headers
}

// SearchDirs returns the include directories named in argv through -I,
// -isystem and -iquote, resolved against cwd.
func SearchDirs(argv []string, cwd string) []string {
	var dirs []string
	add := func(d string) {
		p := domain.NewPath(cwd, d).String()
		if !slices.Contains(dirs, p) {
			dirs = append(dirs, p)
		}
	}
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		for _, flag := range []string{"-I", "-isystem", "-iquote"} {
			if !strings.HasPrefix(arg, flag) {
				continue
			}
			if arg == flag {
				if i+1 < len(argv) {
					i++
					add(argv[i])
				}
			} else {
				add(strings.TrimPrefix(arg, flag))
			}
			break
		}
	}
	return dirs
}

// cSources returns the C family inputs of c, explicit ones first.
func cSources(c *domain.Command) []string {
	var out []string
	for _, n := range slices.Concat(c.Inputs(), c.ImplicitInputs()) {
		if n.IsDirectory() {
			continue
		}
		if _, ok := n.(*domain.Target); ok {
			continue
		}
		if p := n.Path().String(); IsCSource(p) && !slices.Contains(out, p) {
			out = append(out, p)
		}
	}
	return out
}
