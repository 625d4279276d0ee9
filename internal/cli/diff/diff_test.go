package diff

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

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_fillFlagParams(t *testing.T) {
	params := &cmdParams{}
	fillFlagParams(&paramutils.MockPreqFlagSet{StringMap: map[string]interface{}{
		"id":   4,
		"stat": true,
	}}, params)
	assert.Equal(t, &cmdParams{ID: 4, Stat: true}, params)
}

func Test_execute(t *testing.T) {
	git := &pullrequest.MockGit{Repo: &gitutils.RepoRef{Project: "PROJ", Repository: "repo"}}

	t.Run("missing id fails before any request", func(t *testing.T) {
		api := pullrequest.NewMockAPI()
		err := execute(context.Background(), &bytes.Buffer{}, api, git, &cmdParams{})
		assert.ErrorIs(t, err, errcodes.ErrInvalidPRNumber)
		assert.Empty(t, api.Calls)
	})

	t.Run("lists the changes", func(t *testing.T) {
		api := pullrequest.NewMockAPI().
			On("GET", bitbucket.Changes(pullrequest.MockHost, "PROJ", "repo", 4), http.StatusOK,
				`{"values":[{"path":{"toString":"cmd/bb/main.go"},"type":"MODIFY"}]}`)
		var out bytes.Buffer

		err := execute(context.Background(), &out, api, git, &cmdParams{ID: 4})
		require.NoError(t, err)
		assert.Contains(t, out.String(), "cmd/bb/main.go")
	})
}
