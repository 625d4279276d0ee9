package gitutils

import (
	"testing"

	"bbcli/internal/errcodes"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_repository_GetCheckedOutBranchShortName(t *testing.T) {
	t.Run("fails when head fails", func(t *testing.T) {
		vErr := errors.New("branch err")
		r := &repository{
			r: &MockGoGitRepository{
				Err: vErr,
			},
		}

		_, err := r.GetCheckedOutBranchShortName()
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("fails on a detached head", func(t *testing.T) {
		r := &repository{
			r: &MockGoGitRepository{
				HeadValue: plumbing.NewHashReference(plumbing.HEAD, plumbing.ZeroHash),
			},
		}

		_, err := r.GetCheckedOutBranchShortName()
		assert.ErrorIs(t, err, errcodes.ErrDetachedHead)
	})

	t.Run("returns the short branch name", func(t *testing.T) {
		r := &repository{
			r: &MockGoGitRepository{
				HeadValue: plumbing.NewHashReference(
					plumbing.NewBranchReferenceName("feature/x"),
					plumbing.ZeroHash,
				),
			},
		}

		b, err := r.GetCheckedOutBranchShortName()
		assert.NoError(t, err)
		assert.Equal(t, "feature/x", b)
	})
}

func Test_repository_GetRemotes(t *testing.T) {
	t.Run("fails when cannot get remotes", func(t *testing.T) {
		vErr := errors.New("remotes err")
		r := &repository{
			r: &MockGoGitRepository{
				Err: vErr,
			},
		}

		_, err := r.GetRemotes()
		assert.EqualError(t, err, vErr.Error())
	})

	t.Run("succeeds otherwise", func(t *testing.T) {
		r := &repository{
			r: &MockGoGitRepository{
				RemotesValue: []*git.Remote{
					git.NewRemote(nil, &config.RemoteConfig{
						Name: "origin",
						URLs: []string{"url"},
					}),
				},
			},
		}

		remotes, err := r.GetRemotes()
		assert.NoError(t, err)
		assert.Equal(t, 1, len(remotes))
		assert.Equal(t, "origin", remotes[0].Name)
		assert.Contains(t, remotes[0].URLs, "url")
	})
}

func Test_repository_CurrentCommit(t *testing.T) {
	t.Run("fails when head fails", func(t *testing.T) {
		vErr := errors.New("commit err")
		r := &repository{
			r: &MockGoGitRepository{
				Err: vErr,
			},
		}

		_, err := r.CurrentCommit()
		assert.EqualError(t, err, vErr.Error())
	})
}

func Test_repository_BranchCommit(t *testing.T) {
	t.Run("fails when reference fails", func(t *testing.T) {
		vErr := errors.New("branch err")
		r := &repository{
			r: &MockGoGitRepository{
				Err: vErr,
			},
		}

		_, err := r.BranchCommit("")
		assert.EqualError(t, err, vErr.Error())
	})
}

func TestOpenRepoRecursively(t *testing.T) {
	t.Run("fails outside a working copy", func(t *testing.T) {
		_, _, err := OpenRepoRecursively(t.TempDir())
		assert.ErrorIs(t, err, errcodes.ErrNotAGitRepo)
	})
}
