package pullrequest

import (
	"context"
	"fmt"
	"strings"

	"bbcli/internal/errcodes"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
	"github.com/sourcegraph/go-diff/diff"
)

type Change struct {
	Path string
	// Type is the server's change type, e.g. ADD, MODIFY, DELETE, MOVE.
	Type string
}

type FileStat struct {
	Path    string
	Added   int
	Removed int
}

type DiffOptions struct {
	ID   EntityID
	Stat bool
}

type Diff struct {
	ID      EntityID
	Changes []Change
	Stats   []FileStat
}

type DiffService struct {
	api      API
	git      GitContext
	progress Progress
}

func NewDiffService(api API, git GitContext, p Progress) *DiffService {
	return &DiffService{api: api, git: git, progress: progressOrNoop(p)}
}

func (ds *DiffService) Diff(ctx context.Context, o *DiffOptions) (*Diff, error) {
	if o.ID <= 0 {
		return nil, errcodes.ErrInvalidPRNumber
	}

	repo, err := ds.git.BaseRepo()
	if err != nil {
		return nil, err
	}

	ds.progress.Start(fmt.Sprintf("Fetching changes of PR #%d", o.ID))
	values, err := ds.changes(ctx, bitbucket.Changes(ds.api.Host(), repo.Project, repo.Repository, int(o.ID)))
	ds.progress.Done(err)
	if err != nil {
		return nil, err
	}

	d := &Diff{ID: o.ID, Changes: values}
	if !o.Stat {
		return d, nil
	}

	r, err := ds.api.Get(ctx, bitbucket.RawDiff(ds.api.Host(), repo.Project, repo.Repository, int(o.ID)))
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, bitbucket.HTTPError(r)
	}

	d.Stats, err = ParseStats(r.Raw)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (ds *DiffService) changes(ctx context.Context, url string) ([]Change, error) {
	r, err := ds.api.Get(ctx, url)
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, bitbucket.HTTPError(r)
	}

	changes := []Change{}
	for _, v := range r.Body.Get("values").Array() {
		changes = append(changes, Change{
			Path: v.Get("path.toString").String(),
			Type: v.Get("type").String(),
		})
	}

	return changes, nil
}

func trimDiffPrefix(name string) string {
	if name == "/dev/null" {
		return ""
	}
	if strings.HasPrefix(name, "a/") || strings.HasPrefix(name, "b/") {
		return name[2:]
	}

	return name
}

// ParseStats counts added and removed lines per file of a unified diff.
// Changed lines count as one removal and one addition.
func ParseStats(raw []byte) ([]FileStat, error) {
	files, err := diff.ParseMultiFileDiff(raw)
	if err != nil {
		return nil, errors.Wrap(err, "could not parse diff")
	}

	stats := make([]FileStat, 0, len(files))
	for _, f := range files {
		path := trimDiffPrefix(f.NewName)
		if path == "" {
			path = trimDiffPrefix(f.OrigName)
		}

		s := f.Stat()
		stats = append(stats, FileStat{
			Path:    path,
			Added:   int(s.Added + s.Changed),
			Removed: int(s.Deleted + s.Changed),
		})
	}

	return stats, nil
}
