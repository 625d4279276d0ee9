package pullrequest

import (
	"context"
	"net/http"
	"testing"

	"bbcli/internal/errcodes"
	"bbcli/internal/pkg/bitbucket"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionService_Verify(t *testing.T) {
	t.Run("reports user and inbox size", func(t *testing.T) {
		api := NewMockAPI().
			On("GET", bitbucket.InboxCount(MockHost), http.StatusOK, `{"count":4}`).
			On("GET", bitbucket.WhoAmI(MockHost), http.StatusOK, "jdoe")
		p := &MockProgress{}

		c, err := NewConnectionService(api, p).Verify(context.Background())
		require.NoError(t, err)

		assert.Equal(t, &Connection{Host: MockHost, User: "jdoe", Inbox: 4}, c)
		assert.Equal(t, []string{"Validating connection with " + MockHost}, p.Started)
	})

	t.Run("rejected credentials are an http error", func(t *testing.T) {
		api := NewMockAPI().
			On("GET", bitbucket.InboxCount(MockHost), http.StatusUnauthorized,
				`{"errors":[{"message":"Authentication failed"}]}`)

		_, err := NewConnectionService(api, nil).Verify(context.Background())

		var httpErr *errcodes.HTTPError
		require.True(t, errors.As(err, &httpErr))
		assert.Equal(t, http.StatusUnauthorized, httpErr.Status)
		assert.Len(t, api.Calls, 1)
	})
}
