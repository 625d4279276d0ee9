package cmdcreate

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"bbcli/internal/cli/paramutils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const host = pullrequest.MockHost

func newGit() *pullrequest.MockGit {
	return &pullrequest.MockGit{
		Branch: "feature/x",
		Repo:   &gitutils.RepoRef{Project: "PROJ", Repository: "repo"},
		Title:  "Add thing",
	}
}

func newAPI(createStatus int, createBody string) *pullrequest.MockAPI {
	return pullrequest.NewMockAPI().
		On("GET", bitbucket.ProjectRepos(host, "PROJ"), http.StatusOK, `{"values":[]}`).
		On("POST", bitbucket.PullRequests(host, "PROJ", "repo"), createStatus, createBody)
}

func noClipboard(t *testing.T) *[]string {
	old := copyToClipboard
	t.Cleanup(func() { copyToClipboard = old })

	copied := []string{}
	copyToClipboard = func(s string) bool {
		copied = append(copied, s)
		return true
	}

	return &copied
}

func Test_fillFlagParams(t *testing.T) {
	t.Run("fills with flag parameters", func(t *testing.T) {
		params := &cmdParams{}
		fillFlagParams(&paramutils.MockPreqFlagSet{StringMap: map[string]interface{}{
			"target": "develop",
			"yes":    true,
			"rebase": true,
		}}, params)

		assert.Equal(t, &cmdParams{Target: "develop", Yes: true, Rebase: true}, params)
	})

	t.Run("fills with fallback parameters", func(t *testing.T) {
		params := &cmdParams{}
		fillFlagParams(&paramutils.MockPreqFlagSet{}, params)
		assert.Equal(t, &cmdParams{}, params)
	})
}

type mockFinder struct {
	branch string
	err    error
}

func (m mockFinder) ClosestBranch([]string) (string, error) { return m.branch, m.err }

func Test_fillTargetParam(t *testing.T) {
	old := promptInput
	defer func() { promptInput = old }()

	t.Run("keeps the flag value without prompting", func(t *testing.T) {
		promptInput = func(string, string) (string, error) {
			t.Fatal("unexpected prompt")
			return "", nil
		}

		params := &cmdParams{Target: "main"}
		assert.NoError(t, fillTargetParam(mockFinder{branch: "develop"}, params))
		assert.Equal(t, "main", params.Target)
	})

	t.Run("suggests the closest branch", func(t *testing.T) {
		suggested := ""
		promptInput = func(_ string, d string) (string, error) {
			suggested = d
			return d, nil
		}

		params := &cmdParams{}
		assert.NoError(t, fillTargetParam(mockFinder{branch: "develop"}, params))
		assert.Equal(t, "develop", suggested)
		assert.Equal(t, "develop", params.Target)
	})

	t.Run("no suggestion when none is found", func(t *testing.T) {
		suggested := "x"
		promptInput = func(_ string, d string) (string, error) {
			suggested = d
			return "release", nil
		}

		params := &cmdParams{}
		assert.NoError(t, fillTargetParam(mockFinder{err: errors.New("none")}, params))
		assert.Equal(t, "", suggested)
		assert.Equal(t, "release", params.Target)
	})
}

func Test_execute(t *testing.T) {
	created := `{"id":5,"links":{"self":[{"href":"` + host + `/projects/PROJ/repos/repo/pull-requests/5"}]}}`

	t.Run("creates after confirmation and copies the url", func(t *testing.T) {
		copied := noClipboard(t)
		api := newAPI(http.StatusCreated, created)
		c := &pullrequest.MockConfirmer{Default: true}
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, newGit(), c, &cmdParams{Target: "develop"})
		require.NoError(t, err)

		assert.Equal(t, []string{"Create pull request"}, c.Messages)
		assert.Equal(t, []string{host + "/projects/PROJ/repos/repo/pull-requests/5"}, *copied)
		assert.Contains(t, out.String(), "created pull request #5")
		assert.Contains(t, out.String(), "URL copied to clipboard")
	})

	t.Run("declining aborts before submitting", func(t *testing.T) {
		noClipboard(t)
		api := newAPI(http.StatusCreated, created)

		err := execute(context.Background(), &bytes.Buffer{}, api, newGit(),
			&pullrequest.MockConfirmer{Default: false}, &cmdParams{Target: "develop"})
		assert.ErrorIs(t, err, errcodes.ErrAborted)
		assert.Equal(t, 0, api.CallsTo("POST"))
	})

	t.Run("same branch fails without requests", func(t *testing.T) {
		api := pullrequest.NewMockAPI()

		err := execute(context.Background(), &bytes.Buffer{}, api, newGit(),
			&pullrequest.MockConfirmer{}, &cmdParams{Target: "feature/x", Yes: true})
		assert.ErrorIs(t, err, errcodes.ErrSameBranch)
		assert.Empty(t, api.Calls)
	})

	t.Run("existing pull request is reported", func(t *testing.T) {
		noClipboard(t)
		api := newAPI(http.StatusConflict, `{"errors":[{"message":"exists","existingPullRequest":`+created+`}]}`)
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, newGit(), nil, &cmdParams{Target: "develop", Yes: true})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "pull request #5 already exists")
	})

	t.Run("shows the diff when asked", func(t *testing.T) {
		noClipboard(t)
		api := newAPI(http.StatusCreated, created).
			On("GET", bitbucket.Changes(host, "PROJ", "repo", 5), http.StatusOK,
				`{"values":[{"path":{"toString":"main.go"},"type":"ADD"}]}`)
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, newGit(), nil, &cmdParams{Target: "develop", Yes: true, Diff: true})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "main.go")
	})
}
