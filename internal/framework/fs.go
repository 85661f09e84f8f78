// Package framework provides read-only access to a framework tree. Every
// method routes its path through safety.Builder before touching the
// underlying filesystem.
package framework

import (
	"errors"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/boshu2/fwcheck/internal/mode"
	"github.com/boshu2/fwcheck/internal/safety"
)

// FS is a read-only view of the framework rooted at the mode's prefix.
type FS struct {
	fsys  fs.FS
	paths *safety.Builder
}

// New wraps fsys (the working directory) for the given mode.
func New(fsys fs.FS, m mode.ExecutionMode) *FS {
	return &FS{
		fsys:  fsys,
		paths: safety.NewBuilder(m.Prefix),
	}
}

// Resolve returns the validated, prefixed path for rel.
func (f *FS) Resolve(rel string) (string, error) {
	return f.paths.Build(rel)
}

// Stat returns file info for rel.
func (f *FS) Stat(rel string) (fs.FileInfo, error) {
	p, err := f.paths.Build(rel)
	if err != nil {
		return nil, err
	}
	return fs.Stat(f.fsys, p)
}

// ReadFile returns the content of rel.
func (f *FS) ReadFile(rel string) ([]byte, error) {
	p, err := f.paths.Build(rel)
	if err != nil {
		return nil, err
	}
	return fs.ReadFile(f.fsys, p)
}

// ReadDir lists rel, sorted by name.
func (f *FS) ReadDir(rel string) ([]fs.DirEntry, error) {
	p, err := f.paths.Build(rel)
	if err != nil {
		return nil, err
	}
	return fs.ReadDir(f.fsys, p)
}

// MarkdownFiles returns the relative paths of regular *.md files directly in
// dir, sorted lexically. A missing directory yields an empty list and no
// error. Each entry name is validated as it is joined, so a hostile file
// name surfaces as a *safety.SecurityError.
func (f *FS) MarkdownFiles(dir string) ([]string, error) {
	entries, err := f.ReadDir(dir)
	if err != nil {
		if errors.Is(err, safety.ErrUnsafePath) {
			return nil, err
		}
		return nil, nil
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !e.Type().IsRegular() {
			continue
		}
		if !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		// Joined without cleaning so the validator sees the name as found.
		rel := dir + "/" + e.Name()
		if _, err := f.paths.Build(rel); err != nil {
			return nil, err
		}
		files = append(files, rel)
	}
	sort.Strings(files)
	return files, nil
}

// Stem returns the file name of rel without directory and extension.
func Stem(rel string) string {
	return strings.TrimSuffix(path.Base(rel), path.Ext(rel))
}
