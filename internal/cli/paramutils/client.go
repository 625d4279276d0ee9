package paramutils

import (
	"bbcli/internal/cli/utils"
	"bbcli/internal/clientutils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/gitutils"
	"bbcli/internal/pkg/fs"
)

var openRepo = func() (*gitutils.GoGit, error) {
	return gitutils.Open(fs.OS{})
}

var newClient = func(s *utils.Settings) (pullrequest.API, error) {
	c, err := clientutils.ClientFactory{}.DefaultClient(s)
	if err != nil {
		return nil, err
	}

	return c, nil
}

// GetRepo opens the working copy the command runs in.
func GetRepo() (*gitutils.GoGit, error) {
	return openRepo()
}

// GetClientAndRepo checks for a working copy first, so running outside of
// one fails before the configuration is read.
func GetClientAndRepo(s *utils.Settings) (pullrequest.API, *gitutils.GoGit, error) {
	git, err := openRepo()
	if err != nil {
		return nil, nil, err
	}

	api, err := newClient(s)
	if err != nil {
		return nil, nil, err
	}

	return api, git, nil
}

// GetClient builds an authenticated client without needing a working copy.
func GetClient(s *utils.Settings) (pullrequest.API, error) {
	return newClient(s)
}
