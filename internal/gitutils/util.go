package gitutils

import (
	"regexp"
	"strings"

	"bbcli/internal/errcodes"
	"bbcli/internal/pkg/fs"

	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

var (
	ErrUnableToParseRemoteRepositoryURI = errors.New("unable to parse remote repository URI")
	ErrAncestorCommitNotFound           = errors.New("ancestor commit not found")
	ErrCannotFindAnyBranchReference     = errors.New("cannot find any branch reference")
)

// historyDepth bounds how far back ClosestBranch looks.
const historyDepth = 10

// RepoRef identifies a repository on the server.
type RepoRef struct {
	Project    string
	Repository string
}

// GoGit reads the git context of a working copy.
type GoGit struct {
	Git gitRepository
	Dir string
}

var getWorkingDir = func(fs fs.Filesystem) (string, error) {
	return fs.Getwd()
}

// Open returns the git context of the working directory.
func Open(filesystem fs.Filesystem) (*GoGit, error) {
	wd, err := getWorkingDir(filesystem)
	if err != nil {
		return nil, errors.Wrap(err, "cannot get working directory")
	}

	r, root, err := openRepo(wd)
	if err != nil {
		return nil, err
	}

	return &GoGit{Git: &repository{r: r}, Dir: root}, nil
}

func (g *GoGit) CurrentBranch() (string, error) {
	return g.Git.GetCheckedOutBranchShortName()
}

var extractRepositoryTokens = func(uri string) ([]string, error) {
	r := regexp.MustCompile(`([^/:]+)/([^/]+?)(?:\.git)?/?$`)
	m := r.FindStringSubmatch(strings.TrimSpace(uri))
	if len(m) != 3 {
		return nil, ErrUnableToParseRemoteRepositoryURI
	}

	return m[1:], nil
}

// pickRemote prefers origin and falls back to the first remote.
func pickRemote(remotes []*remote) (*remote, error) {
	var first *remote
	for _, re := range remotes {
		if len(re.URLs) == 0 {
			continue
		}
		if re.Name == "origin" {
			return re, nil
		}
		if first == nil {
			first = re
		}
	}

	if first == nil {
		return nil, errcodes.ErrNoRemote
	}

	return first, nil
}

// BaseRepo resolves the project and repository slug from the remote URL.
func (g *GoGit) BaseRepo() (*RepoRef, error) {
	remotes, err := g.Git.GetRemotes()
	if err != nil {
		return nil, err
	}

	re, err := pickRemote(remotes)
	if err != nil {
		return nil, err
	}

	m, err := extractRepositoryTokens(re.URLs[0])
	if err != nil {
		return nil, errors.Wrapf(err, "remote %s", re.Name)
	}

	return &RepoRef{Project: m[0], Repository: m[1]}, nil
}

// TitleAndDescription splits the HEAD commit message into its subject and
// body.
func (g *GoGit) TitleAndDescription() (string, string, error) {
	c, err := g.Git.CurrentCommit()
	if err != nil {
		return "", "", err
	}

	title, description, _ := strings.Cut(strings.TrimSpace(c.Message), "\n")

	return strings.TrimSpace(title), strings.TrimSpace(description), nil
}

type branchCommitMap map[string]*object.Commit

var getBranchCommits = func(r gitRepository, branches []string) (branchCommitMap, error) {
	cSlice := make(branchCommitMap)
	for _, v := range branches {
		bCommit, err := r.BranchCommit(v)
		if err != nil {
			continue
		}

		cSlice[v] = bCommit
	}

	if len(cSlice) == 0 {
		return nil, ErrCannotFindAnyBranchReference
	}

	return cSlice, nil
}

func walkHistory(c *object.Commit, goalMap branchCommitMap, depth int) (string, error) {
	p := c
	for i := 0; i < depth; i++ {
		for b, v := range goalMap {
			if v.Hash == p.Hash {
				return b, nil
			}
		}

		parent, err := p.Parent(0)
		if err != nil {
			return "", ErrAncestorCommitNotFound
		}
		p = parent
	}

	return "", ErrAncestorCommitNotFound
}

// ClosestBranch returns the first of branches whose tip is found walking
// back from HEAD along first parents.
func (g *GoGit) ClosestBranch(branches []string) (string, error) {
	c, err := g.Git.CurrentCommit()
	if err != nil {
		return "", err
	}

	cSlice, err := getBranchCommits(g.Git, branches)
	if err != nil {
		return "", err
	}

	return walkHistory(c, cSlice, historyDepth)
}
