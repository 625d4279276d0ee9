package pullrequest

import (
	"context"

	"bbcli/internal/pkg/bitbucket"
)

// Connection is what a successful credential check learned about the
// server.
type Connection struct {
	Host string
	User string
	// Inbox is the number of pull requests waiting on the user.
	Inbox int
}

type ConnectionService struct {
	api      API
	progress Progress
}

func NewConnectionService(api API, p Progress) *ConnectionService {
	return &ConnectionService{api: api, progress: progressOrNoop(p)}
}

// Verify makes an authenticated call to the inbox and resolves the user
// the credentials belong to.
func (cs *ConnectionService) Verify(ctx context.Context) (*Connection, error) {
	cs.progress.Start("Validating connection with " + cs.api.Host())
	c, err := cs.verify(ctx)
	cs.progress.Done(err)

	return c, err
}

func (cs *ConnectionService) verify(ctx context.Context) (*Connection, error) {
	r, err := cs.api.Get(ctx, bitbucket.InboxCount(cs.api.Host()))
	if err != nil {
		return nil, err
	}
	if !r.IsSuccess() {
		return nil, bitbucket.HTTPError(r)
	}

	user, err := WhoAmI(ctx, cs.api)
	if err != nil {
		return nil, err
	}

	return &Connection{
		Host:  cs.api.Host(),
		User:  user,
		Inbox: int(r.Body.Get("count").Int()),
	}, nil
}
