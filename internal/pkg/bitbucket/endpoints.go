package bitbucket

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Endpoint builders are pure string templates over the Bitbucket Server
// REST API. They never fail and never touch the network.

func base(host string) string {
	return strings.TrimRight(host, "/")
}

func repoAPI(host, project, repository string) string {
	return fmt.Sprintf(
		"%s/rest/api/latest/projects/%s/repos/%s",
		base(host),
		project,
		repository,
	)
}

// EncodeBranch encodes the path separators of a branch name for use in a
// query string.
func EncodeBranch(branch string) string {
	return strings.ReplaceAll(branch, "/", "%2F")
}

func InboxCount(host string) string {
	return base(host) + "/rest/api/latest/inbox/pull-requests/count"
}

func Inbox(host, role string) string {
	return fmt.Sprintf(
		"%s/rest/api/latest/inbox/pull-requests?role=%s&avatarSize=64",
		base(host),
		role,
	)
}

func ProjectRepos(host, project string) string {
	return fmt.Sprintf(
		"%s/rest/api/latest/projects/%s/repos?start=0&limit=10000",
		base(host),
		project,
	)
}

func DefaultReviewers(host, project, repository string, repoID int, from, to string) string {
	query := fmt.Sprintf(
		"avatarSize=32&sourceRepoId=%d&sourceRefId=refs%%2Fheads%%2F%s&targetRepoId=%d&targetRefId=refs%%2Fheads%%2F%s",
		repoID,
		EncodeBranch(from),
		repoID,
		EncodeBranch(to),
	)

	return fmt.Sprintf(
		"%s/rest/default-reviewers/latest/projects/%s/repos/%s/reviewers?%s",
		base(host),
		project,
		repository,
		query,
	)
}

// PullRequests is the creation endpoint.
func PullRequests(host, project, repository string) string {
	return fmt.Sprintf(
		"%s/rest/api/1.0/projects/%s/repos/%s/pull-requests",
		base(host),
		project,
		repository,
	)
}

func RepoPullRequests(host, project, repository string) string {
	return repoAPI(host, project, repository) + "/pull-requests"
}

func PullRequest(host, project, repository string, id int) string {
	return fmt.Sprintf("%s/pull-requests/%d", repoAPI(host, project, repository), id)
}

// PullRequestDelete expects a DELETE carrying VersionBody.
func PullRequestDelete(host, project, repository string, id int) string {
	return PullRequest(host, project, repository, id)
}

func Changes(host, project, repository string, id int) string {
	return PullRequest(host, project, repository, id) +
		"/changes?start=0&limit=1000&changeScope=unreviewed"
}

func RawDiff(host, project, repository string, id int) string {
	return PullRequest(host, project, repository, id) + ".diff"
}

func WhoAmI(host string) string {
	return base(host) + "/plugins/servlet/applinks/whoami"
}

func Participant(host, project, repository string, id int, user string) string {
	return fmt.Sprintf(
		"%s/participants/%s?avatarSize=32",
		PullRequest(host, project, repository, id),
		user,
	)
}

// Merge answers whether the pull request can be merged.
func Merge(host, project, repository string, id int) string {
	return PullRequest(host, project, repository, id) + "/merge"
}

func MergeSubmit(host, project, repository string, id, version int) string {
	return fmt.Sprintf("%s?version=%d", Merge(host, project, repository, id), version)
}

func MergeConfig(host, project, repository string) string {
	return repoAPI(host, project, repository) + "/settings/pull-requests"
}

func Rebase(host, project, repository string, id int) string {
	return fmt.Sprintf(
		"%s/rest/git/latest/projects/%s/repos/%s/pull-requests/%d/rebase",
		base(host),
		project,
		repository,
		id,
	)
}

func CleanupCheck(host, project, repository string, id int, deleteSource bool) string {
	return fmt.Sprintf(
		"%s/rest/pull-request-cleanup/latest/projects/%s/repos/%s/pull-requests/%d?deleteSourceRef=%t&retargetDependents=%t",
		base(host),
		project,
		repository,
		id,
		deleteSource,
		deleteSource,
	)
}

func Branches(host, project, repository string) string {
	return fmt.Sprintf(
		"%s/rest/branch-utils/latest/projects/%s/repos/%s/branches",
		base(host),
		project,
		repository,
	)
}

func marshal(v interface{}) string {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	// Only plain structs of strings, ints and bools are encoded here.
	_ = enc.Encode(v)

	return strings.TrimSuffix(buf.String(), "\n")
}

type PullRequestBodyOptions struct {
	Project     string
	Repository  string
	Title       string
	Description string
	Source      string
	Destination string
	Reviewers   []string
}

func refBody(branch, project, repository string) bbRef {
	return bbRef{
		ID: "refs/heads/" + branch,
		Repository: bbRefRepository{
			Slug:    repository,
			Name:    repository,
			Project: bbProject{Key: project},
		},
	}
}

func PullRequestBody(o *PullRequestBodyOptions) string {
	reviewers := make([]bbReviewerRef, 0, len(o.Reviewers))
	for _, name := range o.Reviewers {
		reviewers = append(reviewers, bbReviewerRef{User: bbUserRef{Name: name}})
	}

	return marshal(bbPROptions{
		Title:       o.Title,
		Description: o.Description,
		State:       "OPEN",
		Open:        true,
		Closed:      false,
		FromRef:     refBody(o.Source, o.Project, o.Repository),
		ToRef:       refBody(o.Destination, o.Project, o.Repository),
		Locked:      false,
		Reviewers:   reviewers,
	})
}

func MergeBody(project, repository string, id int, from, to string) string {
	return marshal(bbMergeOptions{
		AutoSubject: false,
		Message: fmt.Sprintf(
			"Merge pull request #%d in %s/%s from %s to %s",
			id,
			project,
			repository,
			from,
			to,
		),
	})
}

func VersionBody(version int) string {
	return marshal(bbVersion{Version: version})
}

func RebaseBody(version int) string {
	return VersionBody(version)
}

func ParticipantBody(user, status string) string {
	return marshal(bbParticipant{
		User:     bbUserRef{Name: user},
		Approved: status == "APPROVED",
		Status:   status,
	})
}

func DeleteBranchBody(branch string) string {
	return marshal(bbDeleteBranch{Name: "refs/heads/" + branch, DryRun: false})
}
