package clientutils

import (
	"bbcli/internal/cli/utils"
	"bbcli/internal/configutils"
	"bbcli/internal/pkg/bitbucket"
)

var loadConfig = configutils.Load

type ClientFactory struct{}

// Options merges the configuration with the command line settings; a
// positive --timeout wins over the configured one.
func (cf ClientFactory) Options(c *configutils.Config, s *utils.Settings) *bitbucket.ClientOptions {
	timeout := c.HTTP.Timeout
	if s != nil && s.Timeout > 0 {
		timeout = s.Timeout
	}

	return &bitbucket.ClientOptions{
		Host:     c.Bitbucket.Host,
		Username: c.Bitbucket.Username,
		Token:    c.Bitbucket.Token,
		Timeout:  timeout,
		Retries:  c.HTTP.Retries,
	}
}

// DefaultClient loads the configuration named by the settings and builds an
// authenticated client from it.
func (cf ClientFactory) DefaultClient(s *utils.Settings) (*bitbucket.Client, error) {
	c, err := loadConfig(s.ConfigPath)
	if err != nil {
		return nil, err
	}

	return bitbucket.New(cf.Options(c, s))
}
