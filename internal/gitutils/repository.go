package gitutils

import (
	"path/filepath"

	"bbcli/internal/errcodes"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

type goGitRepository interface {
	Head() (*plumbing.Reference, error)
	Remotes() ([]*git.Remote, error)
	Reference(plumbing.ReferenceName, bool) (*plumbing.Reference, error)
	CommitObject(plumbing.Hash) (*object.Commit, error)
}

type remote struct {
	Name string
	URLs []string
}

type gitRepository interface {
	GetRemotes() ([]*remote, error)
	GetCheckedOutBranchShortName() (string, error)
	CurrentCommit() (*object.Commit, error)
	BranchCommit(string) (*object.Commit, error)
}

type repository struct {
	r goGitRepository
}

var openRepo = func(path string) (goGitRepository, string, error) {
	repo, root, err := OpenRepoRecursively(path)
	if err != nil {
		return nil, "", err
	}

	return repo, root, nil
}

// OpenRepoRecursively opens the repository containing input, walking up
// the directory tree. It also returns the worktree root.
func OpenRepoRecursively(input string) (*git.Repository, string, error) {
	dir := input
	for {
		repo, err := git.PlainOpen(dir)
		if err == nil {
			return repo, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || parent == "." {
			break
		}
		dir = parent
	}

	return nil, "", errcodes.ErrNotAGitRepo
}

func (r *repository) GetRemotes() ([]*remote, error) {
	remotes, err := r.r.Remotes()
	if err != nil {
		return nil, err
	}

	list := make([]*remote, 0, len(remotes))
	for _, re := range remotes {
		c := re.Config()
		list = append(list, &remote{Name: c.Name, URLs: c.URLs})
	}

	return list, nil
}

func (r *repository) GetCheckedOutBranchShortName() (string, error) {
	headRef, err := r.r.Head()
	if err != nil {
		return "", err
	}
	if !headRef.Name().IsBranch() {
		return "", errcodes.ErrDetachedHead
	}

	return headRef.Name().Short(), nil
}

func (r *repository) CurrentCommit() (*object.Commit, error) {
	head, err := r.r.Head()
	if err != nil {
		return nil, err
	}

	return r.r.CommitObject(head.Hash())
}

func (r *repository) BranchCommit(b string) (*object.Commit, error) {
	bRef, err := r.r.Reference(plumbing.NewBranchReferenceName(b), false)
	if err != nil {
		return nil, err
	}

	return r.r.CommitObject(bRef.Hash())
}
