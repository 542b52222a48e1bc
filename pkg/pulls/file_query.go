package pulls

import (
	"context"
	"path"
	"strings"

	"github.com/ryo246912/gh-pulls/pkg/models"
)

// FileQuery filters the changed files of a pull request.
type FileQuery struct {
	pr *PullRequest
}

func (q *FileQuery) Get(ctx context.Context) ([]models.File, error) {
	return q.pr.Files(ctx)
}

func (q *FileQuery) where(ctx context.Context, keep func(models.File) bool) ([]models.File, error) {
	files, err := q.Get(ctx)
	if err != nil {
		return nil, err
	}
	matched := []models.File{}
	for _, f := range files {
		if keep(f) {
			matched = append(matched, f)
		}
	}
	return matched, nil
}

func (q *FileQuery) WhereAdded(ctx context.Context) ([]models.File, error) {
	return q.where(ctx, models.File.IsAdded)
}

func (q *FileQuery) WhereModified(ctx context.Context) ([]models.File, error) {
	return q.where(ctx, models.File.IsModified)
}

func (q *FileQuery) WhereRemoved(ctx context.Context) ([]models.File, error) {
	return q.where(ctx, models.File.IsRemoved)
}

func (q *FileQuery) WhereRenamed(ctx context.Context) ([]models.File, error) {
	return q.where(ctx, models.File.IsRenamed)
}

// WherePath keeps files matching a glob such as "src/*.go". A pattern
// ending in "/**" matches everything below that directory.
func (q *FileQuery) WherePath(ctx context.Context, pattern string) ([]models.File, error) {
	return q.where(ctx, func(f models.File) bool { return matchPath(pattern, f.Filename) })
}

// WhereExtension keeps files with extension ext, given with or without
// the leading dot.
func (q *FileQuery) WhereExtension(ctx context.Context, ext string) ([]models.File, error) {
	ext = strings.TrimPrefix(ext, ".")
	return q.where(ctx, func(f models.File) bool { return f.Extension() == ext })
}

func (q *FileQuery) Stats(ctx context.Context) (models.FileStats, error) {
	files, err := q.Get(ctx)
	if err != nil {
		return models.FileStats{}, err
	}
	return models.StatsFor(files), nil
}

func matchPath(pattern, name string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return strings.HasPrefix(name, prefix+"/")
	}
	ok, err := path.Match(pattern, name)
	return err == nil && ok
}
