package review

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
	ID     pullrequest.EntityID
	Action pullrequest.Action
}

func fillFlagParams(flags paramutils.FlagRepo, params *cmdParams) {
	params.ID = pullrequest.EntityID(flags.GetIntOrDefault("id", int(params.ID)))
	params.Action = pullrequest.Action(flags.GetStringOrDefault("action", string(pullrequest.ActionNone)))
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
	r, err := pullrequest.NewReviewService(api, git, presenter.NewProgress(out)).
		Review(ctx, &pullrequest.ReviewOptions{ID: params.ID, Action: params.Action})
	if err != nil {
		return err
	}

	presenter.Reviewed(out, r)

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review pull request by id",
		Long:  `Approves, unapproves or marks a pull request as needing work`,
		Args:  cobra.NoArgs,
		Run:   utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().Int("id", 0, "pull request number to review")
	cmd.Flags().String("action", string(pullrequest.ActionNone), "one of approve, unapprove, needs_work")

	return cmd
}
