package makefile_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/tupcfg/internal/adapters/makefile"
	"go.trai.ch/tupcfg/internal/core/domain"
)

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"obj/main.o", "obj/main.o"},
		{"my file.o", `my\ file.o`},
		{"a$b", "a$$b"},
		{"c:/x#1", `c\:/x\#1`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, makefile.Escape(tt.in), tt.in)
	}
}

func TestRecipe(t *testing.T) {
	assert.Equal(t, "plain/path", makefile.Recipe("plain/path"))
	assert.Equal(t, "'cost $$5'", makefile.Recipe("cost $5"))
}

func TestSearchDirs(t *testing.T) {
	argv := []string{
		"cc", "-Iinclude", "-I", "/abs/inc", "-isystem", "sys", "-iquoteq",
		"-I", "include", "-c", "main.c", "-I",
	}
	assert.Equal(t, []string{
		"/work/include",
		"/abs/inc",
		"/work/sys",
		"/work/q",
	}, makefile.SearchDirs(argv, "/work"))
}

func TestIsCSource(t *testing.T) {
	for _, p := range []string{"a.c", "b.cc", "c.cpp", "d.cxx", "e.C", "f.m", "g.mm"} {
		assert.True(t, makefile.IsCSource(p), p)
	}
	for _, p := range []string{"a.h", "b.o", "c", "d.s"} {
		assert.False(t, makefile.IsCSource(p), p)
	}
}

func TestReconfigureRule_SubBuild(t *testing.T) {
	b := domain.NewBuild("/project", "out", domain.GeneratorTup)
	sub := b.EnsureDependencyBuild()
	sub.SetConfigFiles("project.hcl")

	w := makefile.NewWriter()
	makefile.ReconfigureRule(w, sub, "/project/out/dependencies/Makefile")

	assert.Equal(t,
		domain.GeneratedMarker+"\n"+
			"Makefile: ../../project.hcl\n"+
			"\t@cd ../.. && $(TUPCFG) generate --file project.hcl --build-dir out --generator tup\n"+
			"\t@touch $@\n",
		string(w.Bytes()))
}

func TestReconfigureRule_ProjectFile(t *testing.T) {
	b := domain.NewBuild("/project", "build", domain.GeneratorMakefile)
	b.SetConfigFiles("conf/other.hcl", "tupcfg.yaml")

	w := makefile.NewWriter()
	makefile.ReconfigureRule(w, b, "/project/build/Makefile")

	assert.Equal(t,
		domain.GeneratedMarker+"\n"+
			"Makefile: ../conf/other.hcl ../tupcfg.yaml\n"+
			"\t@cd .. && $(TUPCFG) generate --file conf/other.hcl --build-dir build --generator makefile\n"+
			"\t@touch $@\n",
		string(w.Bytes()))
}

func TestReconfigureRule_NoConfigFiles(t *testing.T) {
	b := domain.NewBuild("/project", "out", domain.GeneratorMakefile)

	w := makefile.NewWriter()
	makefile.ReconfigureRule(w, b, "/project/out/Makefile")

	assert.Equal(t, domain.GeneratedMarker+"\n", string(w.Bytes()))
}

func TestUnionHeaders(t *testing.T) {
	got := makefile.UnionHeaders(
		[]string{"/p/a.c", "/p/b.c"},
		[]string{"/p/z.h", "/p/b.c", "/p/a.h"},
		[]string{"/p/a.h", "/p/m.h"},
	)
	assert.Equal(t, []string{"/p/a.h", "/p/m.h", "/p/z.h"}, got)
	assert.Empty(t, makefile.UnionHeaders(nil))
}
