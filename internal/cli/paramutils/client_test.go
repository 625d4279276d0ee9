package paramutils

import (
	"testing"

	"bbcli/internal/cli/utils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/errcodes"
	"bbcli/internal/gitutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetClientAndRepo(t *testing.T) {
	oldOpen, oldClient := openRepo, newClient
	defer func() { openRepo, newClient = oldOpen, oldClient }()

	t.Run("outside a working copy the config is never read", func(t *testing.T) {
		clientCalled := false
		openRepo = func() (*gitutils.GoGit, error) { return nil, errcodes.ErrNotAGitRepo }
		newClient = func(*utils.Settings) (pullrequest.API, error) {
			clientCalled = true
			return pullrequest.NewMockAPI(), nil
		}

		_, _, err := GetClientAndRepo(&utils.Settings{})
		assert.ErrorIs(t, err, errcodes.ErrNotAGitRepo)
		assert.False(t, clientCalled)
	})

	t.Run("returns both", func(t *testing.T) {
		g := &gitutils.GoGit{Dir: "/repo"}
		openRepo = func() (*gitutils.GoGit, error) { return g, nil }
		newClient = func(*utils.Settings) (pullrequest.API, error) { return pullrequest.NewMockAPI(), nil }

		api, git, err := GetClientAndRepo(&utils.Settings{})
		require.NoError(t, err)
		assert.Equal(t, pullrequest.MockHost, api.Host())
		assert.Same(t, g, git)
	})

	t.Run("configuration errors are returned", func(t *testing.T) {
		openRepo = func() (*gitutils.GoGit, error) { return &gitutils.GoGit{}, nil }
		newClient = func(*utils.Settings) (pullrequest.API, error) { return nil, errcodes.ErrConfigMissing }

		_, _, err := GetClientAndRepo(&utils.Settings{})
		assert.ErrorIs(t, err, errcodes.ErrConfigMissing)
	})
}
