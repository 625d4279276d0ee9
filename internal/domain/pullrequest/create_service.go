package pullrequest

import (
	"context"
	"fmt"
	"net/http"

	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"
)

type CreateOptions struct {
	Target string
	Rebase bool
}

// Draft is everything gathered before a pull request is submitted.
type Draft struct {
	Repo         gitutils.RepoRef
	RepositoryID int
	Title        string
	Description  string
	Source       string
	Destination  string
	Reviewers    []string
}

type Created struct {
	ID  EntityID
	URL string
	// Existing is set when an open pull request for the same branches
	// already exists; Message then holds the server's explanation.
	Existing bool
	Message  string
}

type CreateService struct {
	api      API
	git      GitContext
	progress Progress
}

func NewCreateService(api API, git GitContext, p Progress) *CreateService {
	return &CreateService{api: api, git: git, progress: progressOrNoop(p)}
}

// Prepare validates the branches, optionally rebases, and resolves the
// repository id and its default reviewers.
func (cs *CreateService) Prepare(ctx context.Context, o *CreateOptions) (*Draft, error) {
	if o.Target == "" {
		return nil, errcodes.ErrMissingTarget
	}

	source, err := cs.git.CurrentBranch()
	if err != nil {
		return nil, err
	}
	if source == o.Target {
		return nil, errcodes.ErrSameBranch
	}

	if o.Rebase {
		cs.progress.Start(fmt.Sprintf("Rebasing %s with %s", source, o.Target))
		err := cs.git.Rebase(ctx, o.Target)
		cs.progress.Done(err)
		if err != nil {
			return nil, err
		}
	}

	repo, err := cs.git.BaseRepo()
	if err != nil {
		return nil, err
	}

	title, description, err := cs.git.TitleAndDescription()
	if err != nil {
		return nil, err
	}

	d := &Draft{
		Repo:        *repo,
		Title:       title,
		Description: description,
		Source:      source,
		Destination: o.Target,
		Reviewers:   []string{},
	}

	cs.progress.Start(fmt.Sprintf("Gathering facts on '%s'", repo.Repository))
	err = cs.gatherFacts(ctx, d)
	cs.progress.Done(err)
	if err != nil {
		return nil, err
	}

	return d, nil
}

func (cs *CreateService) gatherFacts(ctx context.Context, d *Draft) error {
	host := cs.api.Host()

	r, err := cs.api.Get(ctx, bitbucket.ProjectRepos(host, d.Repo.Project))
	if err != nil {
		return err
	}
	if !r.IsSuccess() {
		return bitbucket.HTTPError(r)
	}

	for _, v := range r.Body.Get("values").Array() {
		if v.Get("name").String() == d.Repo.Repository {
			d.RepositoryID = int(v.Get("id").Int())
		}
	}

	if d.RepositoryID == 0 {
		return nil
	}

	r, err = cs.api.Get(ctx, bitbucket.DefaultReviewers(
		host,
		d.Repo.Project,
		d.Repo.Repository,
		d.RepositoryID,
		d.Source,
		d.Destination,
	))
	if err != nil {
		return err
	}
	if !r.IsSuccess() {
		return bitbucket.HTTPError(r)
	}

	for _, u := range r.Body.Array() {
		if name := u.Get("name").String(); name != "" {
			d.Reviewers = append(d.Reviewers, name)
		}
	}

	return nil
}

// Submit posts the draft. A conflict naming an existing pull request is
// reported as that pull request rather than as a failure.
func (cs *CreateService) Submit(ctx context.Context, d *Draft) (*Created, error) {
	cs.progress.Start("Creating Pull Request")
	created, err := cs.submit(ctx, d)
	cs.progress.Done(err)

	return created, err
}

func (cs *CreateService) submit(ctx context.Context, d *Draft) (*Created, error) {
	if d.Source == d.Destination {
		return nil, errcodes.ErrSameBranch
	}

	r, err := cs.api.Post(
		ctx,
		bitbucket.PullRequests(cs.api.Host(), d.Repo.Project, d.Repo.Repository),
		bitbucket.PullRequestBody(&bitbucket.PullRequestBodyOptions{
			Project:     d.Repo.Project,
			Repository:  d.Repo.Repository,
			Title:       d.Title,
			Description: d.Description,
			Source:      d.Source,
			Destination: d.Destination,
			Reviewers:   d.Reviewers,
		}),
	)
	if err != nil {
		return nil, err
	}

	switch r.StatusCode {
	case http.StatusCreated:
		href := r.Body.Get("links.self.0.href").String()
		id, err := idFromHref(href)
		if err != nil {
			return nil, err
		}

		return &Created{ID: id, URL: href}, nil
	case http.StatusConflict:
		existing := r.Body.Get("errors.0.existingPullRequest.links.self.0.href")
		if !existing.Exists() {
			return nil, bitbucket.HTTPError(r)
		}

		id, err := idFromHref(existing.String())
		if err != nil {
			return nil, err
		}

		return &Created{
			ID:       id,
			URL:      existing.String(),
			Existing: true,
			Message:  r.Body.Get("errors.0.message").String(),
		}, nil
	default:
		return nil, bitbucket.HTTPError(r)
	}
}
