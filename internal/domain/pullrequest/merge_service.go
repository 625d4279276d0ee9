package pullrequest

import (
	"context"
	"fmt"
	"net/http"

	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

type MergeOptions struct {
	ID                 EntityID
	DeleteSourceBranch bool
	Rebase             bool
	Yes                bool
}

type Merged struct {
	ID          EntityID
	Source      string
	Destination string
	Strategy    string
	// BranchDeleted is false when deletion was not requested or the server
	// refused it; BranchKept tells the two apart.
	BranchDeleted bool
	BranchKept    bool
}

type MergeService struct {
	api      API
	git      GitContext
	confirm  Confirmer
	progress Progress
}

func NewMergeService(api API, git GitContext, c Confirmer, p Progress) *MergeService {
	return &MergeService{api: api, git: git, confirm: c, progress: progressOrNoop(p)}
}

// step runs fn between progress markers.
func (ms *MergeService) step(msg string, fn func() error) error {
	ms.progress.Start(msg)
	err := fn()
	ms.progress.Done(err)

	return err
}

func (ms *MergeService) Merge(ctx context.Context, o *MergeOptions) (*Merged, error) {
	if o.ID <= 0 {
		return nil, errcodes.ErrInvalidPRNumber
	}

	repo, err := ms.git.BaseRepo()
	if err != nil {
		return nil, err
	}

	err = ms.step(fmt.Sprintf("Validating merge for PR #%d", o.ID), func() error {
		return ms.checkEligibility(ctx, repo, o.ID)
	})
	if err != nil {
		return nil, err
	}

	if o.Rebase {
		err = ms.step(fmt.Sprintf("Rebasing PR #%d", o.ID), func() error {
			return ms.rebase(ctx, repo, o.ID)
		})
		if err != nil {
			return nil, err
		}
	}

	pr, err := getPullRequest(ctx, ms.api, repo, o.ID)
	if err != nil {
		return nil, err
	}

	res := &Merged{
		ID:          o.ID,
		Source:      pr.Source,
		Destination: pr.Destination,
		Strategy:    ms.strategy(ctx, repo),
	}

	if !o.Yes {
		msg := fmt.Sprintf("Merge PR #%d from %s into %s", o.ID, pr.Source, pr.Destination)
		if res.Strategy != "" {
			msg += fmt.Sprintf(" using '%s'", res.Strategy)
		}
		ok, err := ms.confirm.Confirm(msg)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, errcodes.ErrAborted
		}
	}

	err = ms.step(fmt.Sprintf("Merging PR #%d", o.ID), func() error {
		return ms.submit(ctx, repo, o.ID)
	})
	if err != nil {
		return nil, err
	}

	if o.DeleteSourceBranch {
		err = ms.step(fmt.Sprintf("Deleting source branch '%s'", pr.Source), func() error {
			deleted, err := ms.deleteSource(ctx, repo, o.ID, pr.Source)
			res.BranchDeleted = deleted
			res.BranchKept = !deleted
			return err
		})
		if err != nil {
			return res, err
		}
	}

	return res, nil
}

func (ms *MergeService) checkEligibility(ctx context.Context, repo *gitutils.RepoRef, id EntityID) error {
	r, err := ms.api.Get(ctx, bitbucket.Merge(ms.api.Host(), repo.Project, repo.Repository, int(id)))
	if err != nil {
		return err
	}
	if !r.IsSuccess() {
		return bitbucket.HTTPError(r)
	}

	if r.Body.Get("canMerge").Bool() {
		return nil
	}

	reasons := []string{}
	for _, v := range r.Body.Get("vetoes").Array() {
		msg := v.Get("summaryMessage").String()
		if d := v.Get("detailedMessage").String(); d != "" {
			msg += ": " + d
		}
		reasons = append(reasons, msg)
	}

	return errors.WithStack(&errcodes.MergeBlockedError{
		ID:         int(id),
		Conflicted: r.Body.Get("conflicted").Bool(),
		Reasons:    reasons,
	})
}

func (ms *MergeService) rebase(ctx context.Context, repo *gitutils.RepoRef, id EntityID) error {
	pr, err := getPullRequest(ctx, ms.api, repo, id)
	if err != nil {
		return err
	}

	r, err := ms.api.Post(
		ctx,
		bitbucket.Rebase(ms.api.Host(), repo.Project, repo.Repository, int(id)),
		bitbucket.RebaseBody(pr.Version),
	)
	if err != nil {
		return err
	}

	return versionedResult(r, id, pr.Version)
}

func (ms *MergeService) submit(ctx context.Context, repo *gitutils.RepoRef, id EntityID) error {
	pr, err := getPullRequest(ctx, ms.api, repo, id)
	if err != nil {
		return err
	}

	r, err := ms.api.Post(
		ctx,
		bitbucket.MergeSubmit(ms.api.Host(), repo.Project, repo.Repository, int(id), pr.Version),
		bitbucket.MergeBody(repo.Project, repo.Repository, int(id), pr.Source, pr.Destination),
	)
	if err != nil {
		return err
	}

	return versionedResult(r, id, pr.Version)
}

// versionedResult maps a conflict on a version checked request to a stale
// version error.
func versionedResult(r *bitbucket.Response, id EntityID, version int) error {
	switch {
	case r.IsSuccess():
		return nil
	case r.StatusCode == http.StatusConflict:
		log.Debug().
			Str("exception", r.Body.Get("errors.0.exceptionName").String()).
			Msg(r.Body.Get("errors.0.message").String())
		return errors.WithStack(&errcodes.StaleVersionError{ID: int(id), Version: version})
	default:
		return bitbucket.HTTPError(r)
	}
}

// strategy is informational, so failures only get logged.
func (ms *MergeService) strategy(ctx context.Context, repo *gitutils.RepoRef) string {
	r, err := ms.api.Get(ctx, bitbucket.MergeConfig(ms.api.Host(), repo.Project, repo.Repository))
	if err != nil {
		log.Debug().Err(err).Msg("could not read merge config")
		return ""
	}
	if !r.IsSuccess() {
		log.Debug().Int("status", r.StatusCode).Msg("could not read merge config")
		return ""
	}

	return r.Body.Get("mergeConfig.defaultStrategy.name").String()
}

func (ms *MergeService) deleteSource(
	ctx context.Context,
	repo *gitutils.RepoRef,
	id EntityID,
	branch string,
) (bool, error) {
	host := ms.api.Host()
	r, err := ms.api.Get(ctx, bitbucket.CleanupCheck(host, repo.Project, repo.Repository, int(id), true))
	if err != nil {
		return false, err
	}
	if !r.IsSuccess() {
		return false, bitbucket.HTTPError(r)
	}

	if !r.Body.Get("deleteSourceRef").Bool() {
		return false, nil
	}

	r, err = ms.api.Delete(
		ctx,
		bitbucket.Branches(host, repo.Project, repo.Repository),
		bitbucket.DeleteBranchBody(branch),
	)
	if err != nil {
		return false, err
	}
	if !r.IsSuccess() {
		return false, bitbucket.HTTPError(r)
	}

	return true, nil
}
