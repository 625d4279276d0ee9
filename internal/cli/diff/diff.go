package diff

import (
	"context"
	"io"

	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/presenter"

	"github.com/spf13/cobra"
)

type cmdParams struct {
	ID   pullrequest.EntityID
	Stat bool
}

func fillFlagParams(flags paramutils.FlagRepo, params *cmdParams) {
	params.ID = pullrequest.EntityID(flags.GetIntOrDefault("id", int(params.ID)))
	params.Stat = flags.GetBoolOrDefault("stat", params.Stat)
}

func runCmd(cmd *cobra.Command, args []string) error {
	settings := utils.SettingsFromFlags(cmd)
	flags := &paramutils.PFlagSetWrapper{Flags: cmd.Flags()}

	params := &cmdParams{}
	fillFlagParams(flags, params)

	api, git, err := paramutils.GetClientAndRepo(settings)
	if err != nil {
		return err
	}

	return execute(utils.Context(cmd), cmd.OutOrStdout(), api, git, params)
}

func execute(
	ctx context.Context,
	out io.Writer,
	api pullrequest.API,
	git pullrequest.GitContext,
	params *cmdParams,
) error {
	d, err := pullrequest.NewDiffService(api, git, presenter.NewProgress(out)).
		Diff(ctx, &pullrequest.DiffOptions{ID: params.ID, Stat: params.Stat})
	if err != nil {
		return err
	}

	presenter.Diff(out, d)

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "View files changed in a pull request",
		Long:  `Lists the unreviewed files of a pull request, optionally with per file line counts`,
		Args:  cobra.NoArgs,
		Run:   utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().Int("id", 0, "pull request number to show diff")
	cmd.Flags().Bool("stat", false, "show added and removed lines per file")

	return cmd
}
