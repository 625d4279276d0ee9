package pullrequest

import (
	"context"
	"fmt"

	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
)

type DeleteOptions struct {
	IDs []EntityID
	Yes bool
}

// DeleteResult keeps every requested id in exactly one bucket.
type DeleteResult struct {
	Succeeded []EntityID
	Failed    map[EntityID]error
	// FailedOrder preserves the order failures happened in.
	FailedOrder []EntityID
	Skipped     []EntityID
}

func (r *DeleteResult) fail(id EntityID, err error) {
	r.Failed[id] = err
	r.FailedOrder = append(r.FailedOrder, id)
}

// Err summarizes failures, nil when every deletion succeeded or was
// skipped.
func (r *DeleteResult) Err() error {
	if len(r.FailedOrder) == 0 {
		return nil
	}

	ids := make([]int, 0, len(r.FailedOrder))
	for _, id := range r.FailedOrder {
		ids = append(ids, int(id))
	}

	return errors.WithStack(&errcodes.DeleteFailedError{Failed: ids})
}

type DeleteService struct {
	api      API
	git      GitContext
	confirm  Confirmer
	progress Progress
	// Preview, when set, runs before each confirmation.
	Preview func(ctx context.Context, id EntityID) error
}

func NewDeleteService(api API, git GitContext, c Confirmer, p Progress) *DeleteService {
	return &DeleteService{api: api, git: git, confirm: c, progress: progressOrNoop(p)}
}

// Delete removes each pull request in turn. A failure never stops the
// remaining deletions.
func (ds *DeleteService) Delete(ctx context.Context, o *DeleteOptions) (*DeleteResult, error) {
	if len(o.IDs) == 0 {
		return nil, errcodes.ErrMissingID
	}
	for _, id := range o.IDs {
		if id <= 0 {
			return nil, errcodes.ErrInvalidPRNumber
		}
	}

	repo, err := ds.git.BaseRepo()
	if err != nil {
		return nil, err
	}

	res := &DeleteResult{
		Succeeded: []EntityID{},
		Failed:    map[EntityID]error{},
		Skipped:   []EntityID{},
	}

	for _, id := range o.IDs {
		if ds.Preview != nil {
			if err := ds.Preview(ctx, id); err != nil {
				res.fail(id, err)
				continue
			}
		}

		if !o.Yes {
			ok, err := ds.confirm.Confirm(fmt.Sprintf("Delete PR #%d", id))
			if err != nil {
				return res, err
			}
			if !ok {
				res.Skipped = append(res.Skipped, id)
				continue
			}
		}

		ds.progress.Start(fmt.Sprintf("Deleting PR #%d", id))
		err := ds.deleteOne(ctx, repo, id)
		ds.progress.Done(err)
		if err != nil {
			res.fail(id, err)
			continue
		}

		res.Succeeded = append(res.Succeeded, id)
	}

	return res, nil
}

func (ds *DeleteService) deleteOne(ctx context.Context, repo *gitutils.RepoRef, id EntityID) error {
	pr, err := getPullRequest(ctx, ds.api, repo, id)
	if err != nil {
		return err
	}

	r, err := ds.api.Delete(
		ctx,
		bitbucket.PullRequestDelete(ds.api.Host(), repo.Project, repo.Repository, int(id)),
		bitbucket.VersionBody(pr.Version),
	)
	if err != nil {
		return err
	}

	return versionedResult(r, id, pr.Version)
}
