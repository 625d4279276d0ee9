package pullrequest

import (
	"context"
	"strconv"
	"strings"
	"time"

	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"
)

// API is the authenticated REST surface the services talk to.
type API interface {
	Host() string
	Get(ctx context.Context, url string) (*bitbucket.Response, error)
	Post(ctx context.Context, url, body string) (*bitbucket.Response, error)
	Put(ctx context.Context, url, body string) (*bitbucket.Response, error)
	Delete(ctx context.Context, url, body string) (*bitbucket.Response, error)
	Paginate(ctx context.Context, url string) ([]gjson.Result, error)
}

// GitContext is the local working copy the commands run in.
type GitContext interface {
	CurrentBranch() (string, error)
	BaseRepo() (*gitutils.RepoRef, error)
	TitleAndDescription() (string, string, error)
	Rebase(ctx context.Context, target string) error
}

type Confirmer interface {
	Confirm(msg string) (bool, error)
}

// Progress reports a long running step. Done receives the step's outcome.
type Progress interface {
	Start(msg string)
	Done(err error)
}

type noProgress struct{}

func (noProgress) Start(string) {}
func (noProgress) Done(error)   {}

func progressOrNoop(p Progress) Progress {
	if p == nil {
		return noProgress{}
	}

	return p
}

// idFromHref extracts the pull request id from the last segment of its
// self link.
func idFromHref(href string) (EntityID, error) {
	segments := strings.Split(strings.TrimRight(href, "/"), "/")
	id, err := strconv.Atoi(segments[len(segments)-1])
	if err != nil {
		return 0, errors.Wrapf(err, "unexpected pull request link %q", href)
	}

	return EntityID(id), nil
}

func parseUser(v gjson.Result) User {
	return User{
		DisplayName: v.Get("displayName").String(),
		Username:    v.Get("name").String(),
		Email:       v.Get("emailAddress").String(),
		Active:      v.Get("active").Bool(),
	}
}

func parseOutcome(v gjson.Result) MergeOutcome {
	o := v.Get("properties.mergeResult.outcome")
	if !o.Exists() {
		return OutcomeClean
	}

	return ParseMergeOutcome(o.String())
}

func parseEntity(v gjson.Result) *Entity {
	reviewers := []Reviewer{}
	v.Get("reviewers").ForEach(func(_, r gjson.Result) bool {
		reviewers = append(reviewers, Reviewer{
			User:   parseUser(r.Get("user")),
			Status: ParseReviewStatus(r.Get("status").String()),
		})
		return true
	})

	var updated time.Time
	if ms := v.Get("updatedDate"); ms.Exists() {
		updated = time.UnixMilli(ms.Int())
	}

	return &Entity{
		ID:          EntityID(v.Get("id").Int()),
		Version:     int(v.Get("version").Int()),
		Title:       v.Get("title").String(),
		Description: v.Get("description").String(),
		State:       ParseState(v.Get("state").String()),
		Source:      v.Get("fromRef.displayId").String(),
		Destination: v.Get("toRef.displayId").String(),
		Repository:  v.Get("fromRef.repository.slug").String(),
		Project:     v.Get("fromRef.repository.project.key").String(),
		Author:      parseUser(v.Get("author.user")),
		Reviewers:   reviewers,
		Outcome:     parseOutcome(v),
		URL:         v.Get("links.self.0.href").String(),
		Updated:     updated,
	}
}

// getPullRequest reads a pull request, including its current version.
func getPullRequest(ctx context.Context, api API, repo *gitutils.RepoRef, id EntityID) (*Entity, error) {
	r, err := api.Get(ctx, bitbucket.PullRequest(api.Host(), repo.Project, repo.Repository, int(id)))
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, bitbucket.HTTPError(r)
	}

	return parseEntity(r.Body), nil
}
