package auth

import (
	"context"
	"io"

	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
	"bbcli/internal/configutils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/pkg/fs"
	"bbcli/internal/presenter"

	"github.com/spf13/cobra"
)

var loadConfig = configutils.Load

// Test verifies the configured credentials against the server.
func Test(ctx context.Context, out io.Writer, api pullrequest.API) error {
	c, err := pullrequest.NewConnectionService(api, presenter.NewProgress(out)).Verify(ctx)
	if err != nil {
		return err
	}

	presenter.Connection(out, c)

	return nil
}

func status(out io.Writer, s *utils.Settings, showToken bool) error {
	c, err := loadConfig(s.ConfigPath)
	if err != nil {
		return err
	}

	presenter.AuthStatus(out, c, showToken)

	return nil
}

func newSetupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "setup",
		Short: "Configure bb to work with Bitbucket Server",
		Args:  cobra.NoArgs,
		Run: utils.RunCommandWrapper(func(cmd *cobra.Command, args []string) error {
			return Setup(cmd.OutOrStdout(), fs.OS{}, utils.SettingsFromFlags(cmd))
		}),
	}
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test configuration and connection",
		Args:  cobra.NoArgs,
		Run: utils.RunCommandWrapper(func(cmd *cobra.Command, args []string) error {
			api, err := paramutils.GetClient(utils.SettingsFromFlags(cmd))
			if err != nil {
				return err
			}

			return Test(utils.Context(cmd), cmd.OutOrStdout(), api)
		}),
	}
}

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "View authentication config status",
		Args:  cobra.NoArgs,
		Run: utils.RunCommandWrapper(func(cmd *cobra.Command, args []string) error {
			flags := &paramutils.PFlagSetWrapper{Flags: cmd.Flags()}
			return status(cmd.OutOrStdout(), utils.SettingsFromFlags(cmd), flags.GetBoolOrDefault("token", false))
		}),
	}

	cmd.Flags().Bool("token", false, "display the auth token")

	return cmd
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Validate and configure authentication",
	}

	cmd.AddCommand(newSetupCmd(), newTestCmd(), newStatusCmd())

	return cmd
}
