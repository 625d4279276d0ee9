package gitutils

import (
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type MockGoGitRepository struct {
	HeadValue    *plumbing.Reference
	Err          error
	RemotesValue []*git.Remote
	CommitValue  *object.Commit
}

func (r MockGoGitRepository) Head() (*plumbing.Reference, error) {
	return r.HeadValue, r.Err
}

func (r MockGoGitRepository) Remotes() ([]*git.Remote, error) {
	return r.RemotesValue, r.Err
}

func (r MockGoGitRepository) Reference(
	plumbing.ReferenceName,
	bool,
) (*plumbing.Reference, error) {
	return &plumbing.Reference{}, r.Err
}

func (r MockGoGitRepository) CommitObject(
	plumbing.Hash,
) (*object.Commit, error) {
	return r.CommitValue, r.Err
}

type MockGitRepository struct {
	ErrorValue         error
	CurrentBranchValue string
	RemotesValue       []*remote
	BranchCommitValue  *object.Commit
	BranchCommits      map[string]*object.Commit
	Commit             *object.Commit
}

func (r *MockGitRepository) GetCheckedOutBranchShortName() (string, error) {
	return r.CurrentBranchValue, r.ErrorValue
}

func (r *MockGitRepository) BranchCommit(b string) (*object.Commit, error) {
	if r.BranchCommits != nil {
		c, ok := r.BranchCommits[b]
		if !ok {
			return nil, plumbing.ErrReferenceNotFound
		}
		return c, nil
	}

	return r.BranchCommitValue, r.ErrorValue
}

func (r *MockGitRepository) CurrentCommit() (*object.Commit, error) {
	return r.Commit, r.ErrorValue
}

func (r *MockGitRepository) GetRemotes() ([]*remote, error) {
	return r.RemotesValue, r.ErrorValue
}
