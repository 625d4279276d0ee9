package show

import (
	"bytes"
	"context"
	"testing"

	"bbcli/internal/cli/paramutils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/bitbucket"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_fillFlagParams(t *testing.T) {
	t.Run("defaults to the current repository", func(t *testing.T) {
		params := &cmdParams{}
		require.NoError(t, fillFlagParams(&paramutils.MockPreqFlagSet{}, params))
		assert.Equal(t, pullrequest.RoleCurrent, params.Role)
		assert.False(t, params.All)
	})

	t.Run("reads role and all", func(t *testing.T) {
		params := &cmdParams{}
		require.NoError(t, fillFlagParams(&paramutils.MockPreqFlagSet{StringMap: map[string]interface{}{
			"role": "Reviewer",
			"all":  true,
		}}, params))
		assert.Equal(t, &cmdParams{Role: pullrequest.RoleReviewer, All: true}, params)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		err := fillFlagParams(&paramutils.MockPreqFlagSet{StringMap: map[string]interface{}{
			"role": "owner",
		}}, &cmdParams{})
		assert.ErrorIs(t, err, errcodes.ErrUnknownRole)
	})
}

func Test_execute(t *testing.T) {
	git := &pullrequest.MockGit{Repo: &gitutils.RepoRef{Project: "PROJ", Repository: "repo"}}

	t.Run("renders the listing", func(t *testing.T) {
		api := pullrequest.NewMockAPI()
		api.Pages[bitbucket.Inbox(pullrequest.MockHost, "AUTHOR")] = []string{
			`{"id":3,"title":"Mine","state":"OPEN","fromRef":{"displayId":"a","repository":{"slug":"other"}},"toRef":{"displayId":"b"}}`,
		}
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, git, &cmdParams{Role: pullrequest.RoleAuthor})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "#3 Mine")
	})

	t.Run("empty result says so", func(t *testing.T) {
		api := pullrequest.NewMockAPI()
		api.Pages[bitbucket.RepoPullRequests(pullrequest.MockHost, "PROJ", "repo")] = []string{}
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, git, &cmdParams{Role: pullrequest.RoleCurrent})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "There are no open pull requests")
	})
}
