package merge

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
	ID                 pullrequest.EntityID
	DeleteSourceBranch bool
	Rebase             bool
	Yes                bool
}

func fillFlagParams(flags paramutils.FlagRepo, params *cmdParams) {
	params.ID = pullrequest.EntityID(flags.GetIntOrDefault("id", int(params.ID)))
	params.DeleteSourceBranch = flags.GetBoolOrDefault("delete-source-branch", params.DeleteSourceBranch)
	params.Rebase = flags.GetBoolOrDefault("rebase", params.Rebase)
	params.Yes = flags.GetBoolOrDefault("yes", params.Yes)
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

	return execute(utils.Context(cmd), cmd.OutOrStdout(), api, git, utils.SurveyConfirmer{}, params)
}

func execute(
	ctx context.Context,
	out io.Writer,
	api pullrequest.API,
	git pullrequest.GitContext,
	c pullrequest.Confirmer,
	params *cmdParams,
) error {
	m, err := pullrequest.NewMergeService(api, git, c, presenter.NewProgress(out)).
		Merge(ctx, &pullrequest.MergeOptions{
			ID:                 params.ID,
			DeleteSourceBranch: params.DeleteSourceBranch,
			Rebase:             params.Rebase,
			Yes:                params.Yes,
		})
	if m != nil {
		presenter.Merged(out, m)
	}

	return err
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Merge pull request by id",
		Long:  `Merges a pull request once the server allows it, optionally rebasing it first and deleting its source branch after`,
		Args:  cobra.NoArgs,
		Run:   utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().Int("id", 0, "pull request number to merge")
	cmd.Flags().Bool("delete-source-branch", false, "deletes source branch after merge")
	cmd.Flags().Bool("rebase", false, "rebase source branch with target before merge")
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")

	return cmd
}
