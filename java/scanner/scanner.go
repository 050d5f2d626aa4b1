// Package scanner loads jars, class directories and single class files into
// java containers.
package scanner

import (
	"archive/zip"
	"bytes"
	"cmp"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"github.com/dhamidi/javil/classfile"
	"github.com/dhamidi/javil/java"
)

var log = commonlog.GetLogger("javil.scanner")

// ErrUnsupportedPath is returned for paths that are neither a directory, a
// jar or zip archive, nor a .class file.
var ErrUnsupportedPath = errors.New("scanner: unsupported classpath entry")

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

type Request struct {
	ID        string
	Path      string
	CreatedAt time.Time
}

// Result describes one load. Errors lists class files that were skipped;
// a load with skipped entries still completes.
type Result struct {
	ID        string
	Status    Status
	Request   Request
	Container *java.Container
	Error     string
	Errors    []string
	StartedAt time.Time
	EndedAt   time.Time
	Progress  int
	Total     int
}

func (r *Result) ProgressPercent() int {
	if r.Total == 0 {
		return 0
	}
	return (r.Progress * 100) / r.Total
}

// entry is one class file found in a classpath entry.
type entry struct {
	name string
	open func() (io.ReadCloser, error)
	cf   *classfile.ClassFile
	err  error
}

// Load reads every class file under path into a new container attached to
// resolver and registers the container once it is complete.
//
// Class files are parsed concurrently and ingested outer types first, so
// nested types always find their declaring type. Class files that fail to
// parse or ingest are logged and listed in the result; only a path that
// cannot be read at all, or a cancelled ctx, is an error.
func Load(ctx context.Context, path string, resolver *java.Resolver) (*Result, error) {
	return load(ctx, Request{Path: path, CreatedAt: time.Now()}, resolver, nil)
}

// LoadAll loads paths in order, so types in earlier entries shadow types
// of the same name in later ones.
func LoadAll(ctx context.Context, paths []string, resolver *java.Resolver) ([]*Result, error) {
	results := make([]*Result, 0, len(paths))
	for _, p := range paths {
		r, err := Load(ctx, p, resolver)
		if err != nil {
			return results, err
		}
		results = append(results, r)
	}
	return results, nil
}

func load(ctx context.Context, req Request, resolver *java.Resolver, onProgress func(done, total int)) (*Result, error) {
	result := &Result{
		ID:        req.ID,
		Status:    StatusInProgress,
		Request:   req,
		StartedAt: time.Now(),
	}
	fail := func(err error) (*Result, error) {
		result.Status = StatusFailed
		result.Error = err.Error()
		result.EndedAt = time.Now()
		return result, err
	}

	entries, closer, err := collect(req.Path)
	if err != nil {
		return fail(err)
	}
	defer closer()

	result.Total = len(entries)
	log.Debugf("loading %d class files from %s", len(entries), req.Path)

	if err := parseAll(ctx, entries, func(done int) {
		if onProgress != nil {
			onProgress(done, len(entries))
		}
	}); err != nil {
		return fail(err)
	}
	result.Progress = len(entries)

	slices.SortStableFunc(entries, func(a, b *entry) int {
		return cmpOr(cmp.Compare(nestingDepth(a.name), nestingDepth(b.name)), cmp.Compare(a.name, b.name))
	})

	c := java.NewContainer(req.Path, resolver)
	for _, e := range entries {
		if e.err == nil {
			_, e.err = c.AddClassFile(e.cf)
		}
		if e.err != nil {
			log.Warningf("skipping %s in %s: %s", e.name, req.Path, e.err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", e.name, e.err))
		}
	}
	resolver.AddContainer(c)

	result.Container = c
	result.Status = StatusCompleted
	result.EndedAt = time.Now()
	log.Infof("loaded %d types from %s", c.Len(), req.Path)
	return result, nil
}

func parseAll(ctx context.Context, entries []*entry, progress func(done int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	var done atomic.Int64
	for _, e := range entries {
		e := e
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			e.cf, e.err = parseEntry(e)
			progress(int(done.Add(1)))
			return nil
		})
	}
	return g.Wait()
}

func parseEntry(e *entry) (*classfile.ClassFile, error) {
	rc, err := e.open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return classfile.Parse(rc)
}

// nestingDepth counts the "$" separators of a class file's simple name.
func nestingDepth(name string) int {
	return strings.Count(path.Base(name), "$")
}

// wanted reports whether a file in a classpath entry holds a type.
func wanted(name string) bool {
	if !strings.HasSuffix(name, ".class") || strings.HasPrefix(name, "META-INF/") {
		return false
	}
	switch path.Base(name) {
	case "module-info.class", "package-info.class":
		return false
	}
	return true
}

func collect(p string) ([]*entry, func(), error) {
	info, err := os.Stat(p)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case info.IsDir():
		entries, err := collectDirectory(p)
		return entries, func() {}, err
	case strings.HasSuffix(p, ".jar") || strings.HasSuffix(p, ".zip"):
		return collectArchive(p)
	case strings.HasSuffix(p, ".class"):
		return []*entry{fileEntry(filepath.Base(p), p)}, func() {}, nil
	}
	return nil, nil, fmt.Errorf("%w: %s", ErrUnsupportedPath, p)
}

func fileEntry(name, p string) *entry {
	return &entry{name: name, open: func() (io.ReadCloser, error) { return os.Open(p) }}
}

func collectDirectory(root string) ([]*entry, error) {
	var entries []*entry
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		if rel = filepath.ToSlash(rel); wanted(rel) {
			entries = append(entries, fileEntry(rel, p))
		}
		return nil
	})
	return entries, err
}

func collectArchive(p string) ([]*entry, func(), error) {
	r, err := zip.OpenReader(p)
	if err != nil {
		return nil, nil, err
	}
	entries, err := zipEntries(&r.Reader, "")
	if err != nil {
		r.Close()
		return nil, nil, err
	}
	return entries, func() { r.Close() }, nil
}

// zipEntries lists the class files of an archive. Jars nested in the
// archive are read into memory and contribute their class files too.
func zipEntries(r *zip.Reader, prefix string) ([]*entry, error) {
	var entries []*entry
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch {
		case wanted(f.Name):
			entries = append(entries, &entry{name: prefix + f.Name, open: f.Open})
		case strings.HasSuffix(f.Name, ".jar") && prefix == "":
			nested, err := nestedJar(f)
			if err != nil {
				log.Warningf("skipping nested jar %s: %s", f.Name, err)
				continue
			}
			entries = append(entries, nested...)
		}
	}
	return entries, nil
}

func nestedJar(f *zip.File) ([]*entry, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return zipEntries(r, f.Name+"!")
}

// Scanner loads classpath entries in the background, one at a time in
// submission order.
type Scanner struct {
	mu       sync.RWMutex
	submitMu sync.Mutex // queues requests in ID order
	resolver *java.Resolver
	scans    map[string]*Result
	requests chan Request
	nextID   int
}

func New(resolver *java.Resolver) *Scanner {
	s := &Scanner{
		resolver: resolver,
		scans:    make(map[string]*Result),
		requests: make(chan Request, 100),
	}
	go s.run()
	return s
}

func (s *Scanner) run() {
	for req := range s.requests {
		s.processScan(req)
	}
}

func (s *Scanner) processScan(req Request) {
	s.mu.Lock()
	s.scans[req.ID].Status = StatusInProgress
	s.scans[req.ID].StartedAt = time.Now()
	s.mu.Unlock()

	result, err := load(context.Background(), req, s.resolver, func(done, total int) {
		s.mu.Lock()
		s.scans[req.ID].Progress = done
		s.scans[req.ID].Total = total
		s.mu.Unlock()
	})
	if err != nil {
		log.Errorf("scan %s of %s failed: %s", req.ID, req.Path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.scans[req.ID] = result
}

// Submit queues path for loading and returns the scan's ID. It blocks
// while the queue is full, but the scan is visible to Get right away.
func (s *Scanner) Submit(path string) string {
	s.submitMu.Lock()
	defer s.submitMu.Unlock()

	s.mu.Lock()
	s.nextID++
	req := Request{ID: fmt.Sprintf("%d", s.nextID), Path: path, CreatedAt: time.Now()}
	s.scans[req.ID] = &Result{
		ID:      req.ID,
		Status:  StatusPending,
		Request: req,
	}
	s.mu.Unlock()

	s.requests <- req
	return req.ID
}

// Get returns a snapshot of the scan.
func (s *Scanner) Get(id string) (Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.scans[id]
	if !ok {
		return Result{}, false
	}
	return *result, true
}

// List returns snapshots of every scan ordered by ID.
func (s *Scanner) List() []Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	results := make([]Result, 0, len(s.scans))
	for _, r := range s.scans {
		results = append(results, *r)
	}
	slices.SortFunc(results, func(a, b Result) int {
		return cmpOr(cmp.Compare(len(a.ID), len(b.ID)), cmp.Compare(a.ID, b.ID))
	})
	return results
}

// Wait blocks until the scan has finished or ctx is done.
func (s *Scanner) Wait(ctx context.Context, id string) (Result, error) {
	ticker := time.NewTicker(10 * time.Millisecond)
	defer ticker.Stop()
	for {
		r, ok := s.Get(id)
		if !ok {
			return Result{}, fmt.Errorf("scanner: unknown scan %q", id)
		}
		if r.Status == StatusCompleted || r.Status == StatusFailed {
			return r, nil
		}
		select {
		case <-ctx.Done():
			return r, ctx.Err()
		case <-ticker.C:
		}
	}
}
