package configtest

import (
	"context"
	"io"

	"bbcli/internal/cli/auth"
	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
	"bbcli/internal/errcodes"
	"bbcli/internal/pkg/fs"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var (
	getClient = paramutils.GetClient
	setup     = auth.Setup
	testAuth  = auth.Test
)

// execute tests the configuration, running the setup flow first when
// there is none.
func execute(ctx context.Context, out io.Writer, filesystem fs.Filesystem, s *utils.Settings) error {
	api, err := getClient(s)
	if errors.Is(err, errcodes.ErrConfigMissing) {
		if err := setup(out, filesystem, s); err != nil {
			return err
		}
		api, err = getClient(s)
	}
	if err != nil {
		return err
	}

	return testAuth(ctx, out, api)
}

func runCmd(cmd *cobra.Command, args []string) error {
	return execute(utils.Context(cmd), cmd.OutOrStdout(), fs.OS{}, utils.SettingsFromFlags(cmd))
}

func New() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the configuration, or set it up when missing",
		Args:  cobra.NoArgs,
		Run:   utils.RunCommandWrapper(runCmd),
	}
}
