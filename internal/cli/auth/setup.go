package auth

import (
	"fmt"
	"io"
	"strings"

	"bbcli/internal/cli/utils"
	"bbcli/internal/configutils"
	"bbcli/internal/pkg/fs"
	"bbcli/internal/presenter"
)

var (
	findConfigFile   = configutils.FindConfigFile
	globalConfigPath = configutils.GlobalConfigPath
	saveConfig       = configutils.Save
	promptInput      = utils.PromptInput
	promptPassword   = utils.PromptPassword
)

// Setup asks for the credentials and writes them to the path given by
// --config, or the global config file.
func Setup(out io.Writer, filesystem fs.Filesystem, s *utils.Settings) error {
	if found, ok := findConfigFile(filesystem); ok {
		fmt.Fprintf(out, "Configuration file found at %s, run 'bb auth status' for more information\n", found)
	}

	path := s.ConfigPath
	if path == "" {
		p, err := globalConfigPath()
		if err != nil {
			return err
		}
		path = p
	}

	host, err := promptInput("Bitbucket host", "")
	if err != nil {
		return err
	}
	username, err := promptInput("Username", "")
	if err != nil {
		return err
	}
	token, err := promptPassword("Token")
	if err != nil {
		return err
	}

	err = saveConfig(filesystem, path, &configutils.Credentials{
		Host:     strings.TrimRight(strings.TrimSpace(host), "/"),
		Username: strings.TrimSpace(username),
		Token:    token,
	})
	if err != nil {
		return err
	}

	presenter.ConfigWritten(out, path)

	return nil
}
