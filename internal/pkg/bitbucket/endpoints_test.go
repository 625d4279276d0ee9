package bitbucket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const host = "https://bitbucket.example.com"

func TestEndpoints(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{
			"inbox count",
			InboxCount(host),
			host + "/rest/api/latest/inbox/pull-requests/count",
		},
		{
			"inbox for role",
			Inbox(host, "AUTHOR"),
			host + "/rest/api/latest/inbox/pull-requests?role=AUTHOR&avatarSize=64",
		},
		{
			"project repositories",
			ProjectRepos(host, "PROJ"),
			host + "/rest/api/latest/projects/PROJ/repos?start=0&limit=10000",
		},
		{
			"default reviewers encode branch separators",
			DefaultReviewers(host, "PROJ", "repo", 42, "feature/x", "develop"),
			host + "/rest/default-reviewers/latest/projects/PROJ/repos/repo/reviewers" +
				"?avatarSize=32&sourceRepoId=42&sourceRefId=refs%2Fheads%2Ffeature%2Fx" +
				"&targetRepoId=42&targetRefId=refs%2Fheads%2Fdevelop",
		},
		{
			"create pull request",
			PullRequests(host, "PROJ", "repo"),
			host + "/rest/api/1.0/projects/PROJ/repos/repo/pull-requests",
		},
		{
			"repository pull requests",
			RepoPullRequests(host, "PROJ", "repo"),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests",
		},
		{
			"single pull request",
			PullRequest(host, "PROJ", "repo", 7),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7",
		},
		{
			"delete pull request",
			PullRequestDelete(host, "PROJ", "repo", 7),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7",
		},
		{
			"changes",
			Changes(host, "PROJ", "repo", 7),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7/changes?start=0&limit=1000&changeScope=unreviewed",
		},
		{
			"raw diff",
			RawDiff(host, "PROJ", "repo", 7),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7.diff",
		},
		{
			"whoami",
			WhoAmI(host),
			host + "/plugins/servlet/applinks/whoami",
		},
		{
			"participant",
			Participant(host, "PROJ", "repo", 7, "jdoe"),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7/participants/jdoe?avatarSize=32",
		},
		{
			"merge eligibility",
			Merge(host, "PROJ", "repo", 7),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7/merge",
		},
		{
			"merge submit",
			MergeSubmit(host, "PROJ", "repo", 7, 3),
			host + "/rest/api/latest/projects/PROJ/repos/repo/pull-requests/7/merge?version=3",
		},
		{
			"merge config",
			MergeConfig(host, "PROJ", "repo"),
			host + "/rest/api/latest/projects/PROJ/repos/repo/settings/pull-requests",
		},
		{
			"rebase",
			Rebase(host, "PROJ", "repo", 7),
			host + "/rest/git/latest/projects/PROJ/repos/repo/pull-requests/7/rebase",
		},
		{
			"cleanup check",
			CleanupCheck(host, "PROJ", "repo", 7, true),
			host + "/rest/pull-request-cleanup/latest/projects/PROJ/repos/repo/pull-requests/7?deleteSourceRef=true&retargetDependents=true",
		},
		{
			"branches",
			Branches(host, "PROJ", "repo"),
			host + "/rest/branch-utils/latest/projects/PROJ/repos/repo/branches",
		},
		{
			"trailing slash on host is trimmed",
			WhoAmI(host + "/"),
			host + "/plugins/servlet/applinks/whoami",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestEndpointsArePure(t *testing.T) {
	t.Run("same inputs give the same url", func(t *testing.T) {
		a := DefaultReviewers(host, "PROJ", "repo", 1, "a/b", "c")
		b := DefaultReviewers(host, "PROJ", "repo", 1, "a/b", "c")
		assert.Equal(t, a, b)
	})

	t.Run("same inputs give the same body", func(t *testing.T) {
		o := &PullRequestBodyOptions{
			Project:     "PROJ",
			Repository:  "repo",
			Title:       "t",
			Source:      "a",
			Destination: "b",
			Reviewers:   []string{"x", "y"},
		}
		assert.Equal(t, PullRequestBody(o), PullRequestBody(o))
	})
}

func TestBodies(t *testing.T) {
	t.Run("merge body", func(t *testing.T) {
		assert.JSONEq(
			t,
			`{"autoSubject":false,"message":"Merge pull request #7 in PROJ/repo from feature/x to develop"}`,
			MergeBody("PROJ", "repo", 7, "feature/x", "develop"),
		)
	})

	t.Run("version bodies", func(t *testing.T) {
		assert.Equal(t, `{"version":3}`, VersionBody(3))
		assert.Equal(t, `{"version":3}`, RebaseBody(3))
	})

	t.Run("participant body approves only on APPROVED", func(t *testing.T) {
		assert.JSONEq(
			t,
			`{"user":{"name":"jdoe"},"approved":true,"status":"APPROVED"}`,
			ParticipantBody("jdoe", "APPROVED"),
		)
		assert.JSONEq(
			t,
			`{"user":{"name":"jdoe"},"approved":false,"status":"NEEDS_WORK"}`,
			ParticipantBody("jdoe", "NEEDS_WORK"),
		)
	})

	t.Run("delete branch body", func(t *testing.T) {
		assert.JSONEq(
			t,
			`{"name":"refs/heads/feature/x","dryRun":false}`,
			DeleteBranchBody("feature/x"),
		)
	})

	t.Run("pull request body", func(t *testing.T) {
		got := PullRequestBody(&PullRequestBodyOptions{
			Project:     "PROJ",
			Repository:  "repo",
			Title:       "Add <thing> & more",
			Description: "desc",
			Source:      "feature/x",
			Destination: "develop",
			Reviewers:   []string{"alice"},
		})

		assert.JSONEq(t, `{
			"title": "Add <thing> & more",
			"description": "desc",
			"state": "OPEN",
			"open": true,
			"closed": false,
			"fromRef": {
				"id": "refs/heads/feature/x",
				"repository": {"slug": "repo", "name": "repo", "project": {"key": "PROJ"}}
			},
			"toRef": {
				"id": "refs/heads/develop",
				"repository": {"slug": "repo", "name": "repo", "project": {"key": "PROJ"}}
			},
			"locked": false,
			"reviewers": [{"user": {"name": "alice"}}]
		}`, got)
	})

	t.Run("pull request body without reviewers has an empty list", func(t *testing.T) {
		got := PullRequestBody(&PullRequestBodyOptions{Source: "a", Destination: "b"})
		assert.Contains(t, got, `"reviewers":[]`)
	})
}
