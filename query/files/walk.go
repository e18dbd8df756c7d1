package files

import (
	"context"
	"os"
	"path/filepath"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/filter"
	"github.com/lguimbarda/min-query/query/more"
	"github.com/lguimbarda/min-query/query/transform"
)

// Entry is a path found by Walk.
type Entry struct {
	Path  string
	IsDir bool
}

// Glob creates a Sequence of the paths matching pattern, in lexical
// order. The pattern is matched on every traversal.
func Glob(pattern string) core.Sequence[string] {
	return core.Deferred(func(context.Context) ([]string, error) {
		return filepath.Glob(pattern)
	})
}

func readDir(e Entry) core.Sequence[Entry] {
	if !e.IsDir {
		return core.Empty[Entry]()
	}
	return core.Deferred(func(context.Context) ([]Entry, error) {
		des, err := os.ReadDir(e.Path)
		if err != nil {
			return nil, err
		}
		out := make([]Entry, len(des))
		for i, de := range des {
			out[i] = Entry{Path: filepath.Join(e.Path, de.Name()), IsDir: de.IsDir()}
		}
		return out, nil
	})
}

// Walk creates a Sequence of root and everything below it, depth first,
// with the entries of a directory in lexical order. Directories are read
// as the walk reaches them; an unreadable directory is a fault at its
// position and the walk goes on.
func Walk(root string) core.Sequence[Entry] {
	return more.TraverseDepthFirst(Entry{Path: root, IsDir: true}, readDir)
}

// WalkFiles creates a Sequence of the paths of the regular files below
// root, in the order of Walk.
func WalkFiles(root string) core.Sequence[string] {
	files := filter.Where(func(e Entry) bool { return !e.IsDir }).Apply(Walk(root))
	return transform.Select(func(e Entry) (string, error) { return e.Path, nil }).Apply(files)
}
