package cmddelete

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

func Test_fillFlagParams(t *testing.T) {
	t.Run("reads repeated ids", func(t *testing.T) {
		params := &cmdParams{}
		err := fillFlagParams(&paramutils.MockPreqFlagSet{StringMap: map[string]interface{}{
			"id":  []int{3, 4},
			"yes": true,
		}}, params)
		require.NoError(t, err)
		assert.Equal(t, &cmdParams{IDs: []pullrequest.EntityID{3, 4}, Yes: true}, params)
	})

	t.Run("rejects invalid ids", func(t *testing.T) {
		err := fillFlagParams(&paramutils.MockPreqFlagSet{StringMap: map[string]interface{}{
			"id": []int{0},
		}}, &cmdParams{})
		assert.ErrorIs(t, err, errcodes.ErrInvalidPRNumber)
	})
}

func Test_fillIDsParam(t *testing.T) {
	old := promptInput
	defer func() { promptInput = old }()

	t.Run("prompts when no ids were given", func(t *testing.T) {
		promptInput = func(string, string) (string, error) { return "5, 6", nil }

		params := &cmdParams{}
		require.NoError(t, fillIDsParam(params))
		assert.Equal(t, []pullrequest.EntityID{5, 6}, params.IDs)
	})

	t.Run("keeps flag ids", func(t *testing.T) {
		promptInput = func(string, string) (string, error) {
			t.Fatal("unexpected prompt")
			return "", nil
		}

		params := &cmdParams{IDs: []pullrequest.EntityID{1}}
		assert.NoError(t, fillIDsParam(params))
	})
}

func Test_execute(t *testing.T) {
	const host = pullrequest.MockHost
	git := &pullrequest.MockGit{Repo: &gitutils.RepoRef{Project: "PROJ", Repository: "repo"}}

	t.Run("prints the summary and fails when one deletion fails", func(t *testing.T) {
		api := pullrequest.NewMockAPI().
			On("GET", bitbucket.PullRequest(host, "PROJ", "repo", 1), http.StatusOK, `{"version":0}`).
			On("DELETE", bitbucket.PullRequestDelete(host, "PROJ", "repo", 1), http.StatusNoContent, ``).
			On("GET", bitbucket.PullRequest(host, "PROJ", "repo", 2), http.StatusNotFound, `{}`)
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, git, nil,
			&cmdParams{IDs: []pullrequest.EntityID{1, 2}, Yes: true})

		var failed *errcodes.DeleteFailedError
		require.True(t, errors.As(err, &failed))
		assert.Equal(t, []int{2}, failed.Failed)
		assert.Contains(t, out.String(), "Deleted:")
		assert.Contains(t, out.String(), "Failed:")
	})

	t.Run("previews the diff before asking", func(t *testing.T) {
		api := pullrequest.NewMockAPI().
			On("GET", bitbucket.Changes(host, "PROJ", "repo", 1), http.StatusOK,
				`{"values":[{"path":{"toString":"README.md"},"type":"MODIFY"}]}`)
		c := &pullrequest.MockConfirmer{Default: false}
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, git, c,
			&cmdParams{IDs: []pullrequest.EntityID{1}, Diff: true})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "README.md")
		assert.Contains(t, out.String(), "Skipped:")
		assert.Equal(t, []string{"Delete PR #1"}, c.Messages)
	})
}
