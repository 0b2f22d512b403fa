// Package include resolves the headers reachable from C and C++ sources.
package include

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/tupcfg/internal/core/domain"
	"go.trai.ch/tupcfg/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

var directive = regexp.MustCompile(`^\s*#\s*include\s*([<"])([^>"]+)[>"]`)

var _ ports.IncludeScanner = (*Solver)(nil)

// Solver follows include directives recursively. Quoted includes are looked
// up next to the including file first, then along the search path; angle
// includes only along the search path. The first match wins and includes
// that resolve nowhere are dropped.
//
// A Solver caches file lookups and the direct includes of every file it
// reads until Reset is called.
type Solver struct {
	jobs   int
	serial bool

	mu     sync.Mutex
	stats  map[string]bool
	direct map[string][]string
}

// NewSolver creates a Solver scanning with a pool of jobs workers, or
// runtime.NumCPU() workers when jobs is not positive.
func NewSolver(jobs int) *Solver {
	s := &Solver{}
	s.Configure(jobs, false)
	s.Reset()
	return s
}

// Configure sets the worker pool size; serial selects the single threaded variant.
func (s *Solver) Configure(jobs int, serial bool) {
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = jobs
	s.serial = serial
}

// Reset drops every cached lookup.
func (s *Solver) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stats = make(map[string]bool)
	s.direct = make(map[string][]string)
}

// Scan returns the sorted absolute paths of the files reachable from root.
// root itself is part of the result only when an include cycle leads back to it.
func (s *Solver) Scan(ctx context.Context, root string, searchDirs []string) ([]string, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to resolve source path"), "path", root)
	}

	dirs := make([]string, 0, len(searchDirs))
	for _, dir := range searchDirs {
		abs, err := filepath.Abs(dir)
		if err != nil {
			return nil, zerr.With(zerr.Wrap(err, "failed to resolve search directory"), "path", dir)
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			return nil, domain.Fail(domain.ErrMissingSearchDirectory,
				"create the directory or remove it from the include path", "path", abs)
		}
		dirs = append(dirs, abs)
	}

	s.mu.Lock()
	serial, jobs := s.serial, s.jobs
	s.mu.Unlock()

	var found map[string]struct{}
	if serial {
		found, err = s.scanSerial(ctx, root, dirs)
	} else {
		found, err = s.scanPool(ctx, root, dirs, jobs)
	}
	if err != nil {
		return nil, err
	}

	result := make([]string, 0, len(found))
	for path := range found {
		result = append(result, path)
	}
	slices.Sort(result)
	return result, nil
}

// scanSerial drains a pending set on the calling goroutine.
func (s *Solver) scanSerial(ctx context.Context, root string, dirs []string) (map[string]struct{}, error) {
	visited := map[string]struct{}{root: {}}
	found := make(map[string]struct{})
	pending := []string{root}

	for len(pending) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		file := pending[len(pending)-1]
		pending = pending[:len(pending)-1]

		includes, err := s.includes(file, dirs)
		if err != nil {
			return nil, err
		}
		for _, inc := range includes {
			found[inc] = struct{}{}
			if _, ok := visited[inc]; ok {
				continue
			}
			visited[inc] = struct{}{}
			pending = append(pending, inc)
		}
	}
	return found, nil
}

type scanResult struct {
	includes []string
	err      error
}

// scanPool feeds a fixed set of workers from a shared queue. The calling
// goroutine owns the visited set and the queue; workers only read files.
// Scanning ends when the queue is empty and no file is in flight, after
// which the work channel is closed to stop the workers.
func (s *Solver) scanPool(ctx context.Context, root string, dirs []string, jobs int) (map[string]struct{}, error) {
	g, gctx := errgroup.WithContext(ctx)
	work := make(chan string)
	done := make(chan scanResult)

	for range jobs {
		g.Go(func() error {
			for file := range work {
				includes, err := s.includes(file, dirs)
				select {
				case done <- scanResult{includes: includes, err: err}:
				case <-gctx.Done():
					return gctx.Err()
				}
			}
			return nil
		})
	}

	visited := map[string]struct{}{root: {}}
	found := make(map[string]struct{})
	queue := []string{root}
	inflight := 0
	var scanErr error

loop:
	for len(queue) > 0 || inflight > 0 {
		var send chan string
		var next string
		if len(queue) > 0 && scanErr == nil {
			send = work
			next = queue[0]
		} else if inflight == 0 {
			break
		}

		select {
		case send <- next:
			queue = queue[1:]
			inflight++
		case res := <-done:
			inflight--
			if res.err != nil {
				if scanErr == nil {
					scanErr = res.err
				}
				continue
			}
			for _, inc := range res.includes {
				found[inc] = struct{}{}
				if _, ok := visited[inc]; ok {
					continue
				}
				visited[inc] = struct{}{}
				queue = append(queue, inc)
			}
		case <-gctx.Done():
			if scanErr == nil {
				scanErr = gctx.Err()
			}
			break loop
		}
	}

	close(work)
	if err := g.Wait(); err != nil && scanErr == nil {
		scanErr = err
	}
	if scanErr != nil {
		return nil, scanErr
	}
	return found, nil
}

// includes returns the resolved direct includes of file, in directive order.
func (s *Solver) includes(file string, dirs []string) ([]string, error) {
	key := file + "\x00" + strings.Join(dirs, "\x00")

	s.mu.Lock()
	cached, ok := s.direct[key]
	s.mu.Unlock()
	if ok {
		return cached, nil
	}

	data, err := os.ReadFile(file) //nolint:gosec // Path comes from the build description or a resolved include
	if err != nil {
		return nil, domain.Fail(domain.ErrResolution,
			"check that the source file exists and is readable", "path", file, "cause", err.Error())
	}

	var resolved []string
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), len(data)+1)
	for sc.Scan() {
		m := directive.FindStringSubmatch(sc.Text())
		if m == nil {
			continue
		}
		if path, ok := s.resolve(file, m[1] == `"`, strings.TrimSpace(m[2]), dirs); ok {
			resolved = append(resolved, path)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to scan source file"), "path", file)
	}

	s.mu.Lock()
	s.direct[key] = resolved
	s.mu.Unlock()
	return resolved, nil
}

func (s *Solver) resolve(from string, quoted bool, name string, dirs []string) (string, bool) {
	if filepath.IsAbs(name) {
		return filepath.Clean(name), s.isFile(filepath.Clean(name))
	}
	if quoted {
		if candidate := filepath.Join(filepath.Dir(from), name); s.isFile(candidate) {
			return candidate, true
		}
	}
	for _, dir := range dirs {
		if candidate := filepath.Join(dir, name); s.isFile(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (s *Solver) isFile(path string) bool {
	s.mu.Lock()
	ok, cached := s.stats[path]
	s.mu.Unlock()
	if cached {
		return ok
	}

	info, err := os.Stat(path)
	ok = err == nil && info.Mode().IsRegular()

	s.mu.Lock()
	s.stats[path] = ok
	s.mu.Unlock()
	return ok
}
