package pullrequest

import (
	"context"
	"fmt"
	"strings"

	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
)

type ReviewOptions struct {
	ID     EntityID
	Action Action
}

type Reviewed struct {
	ID     EntityID
	User   string
	Status ReviewStatus
}

type ReviewService struct {
	api      API
	git      GitContext
	progress Progress
}

func NewReviewService(api API, git GitContext, p Progress) *ReviewService {
	return &ReviewService{api: api, git: git, progress: progressOrNoop(p)}
}

// WhoAmI resolves the user the credentials belong to.
func WhoAmI(ctx context.Context, api API) (string, error) {
	r, err := api.Get(ctx, bitbucket.WhoAmI(api.Host()))
	if err != nil {
		return "", err
	}
	if !r.IsSuccess() {
		return "", bitbucket.HTTPError(r)
	}

	user := strings.TrimSpace(string(r.Raw))
	if user == "" {
		return "", errors.New("server did not report the current user")
	}

	return user, nil
}

func validateReview(o *ReviewOptions) error {
	if o.ID <= 0 {
		return errcodes.ErrInvalidPRNumber
	}
	if _, err := ParseAction(string(o.Action)); err != nil {
		return err
	}

	return nil
}

func (rs *ReviewService) Review(ctx context.Context, o *ReviewOptions) (*Reviewed, error) {
	if err := validateReview(o); err != nil {
		return nil, err
	}

	repo, err := rs.git.BaseRepo()
	if err != nil {
		return nil, err
	}

	rs.progress.Start(fmt.Sprintf("Reviewing PR #%d", o.ID))
	res, err := rs.review(ctx, repo, o)
	rs.progress.Done(err)

	return res, err
}

func (rs *ReviewService) review(
	ctx context.Context,
	repo *gitutils.RepoRef,
	o *ReviewOptions,
) (*Reviewed, error) {
	user, err := WhoAmI(ctx, rs.api)
	if err != nil {
		return nil, err
	}

	status := o.Action.Status()
	r, err := rs.api.Put(
		ctx,
		bitbucket.Participant(rs.api.Host(), repo.Project, repo.Repository, int(o.ID), user),
		bitbucket.ParticipantBody(user, string(status)),
	)
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, bitbucket.HTTPError(r)
	}

	return &Reviewed{ID: o.ID, User: user, Status: status}, nil
}
