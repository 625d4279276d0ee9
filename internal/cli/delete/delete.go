package cmddelete

import (
	"context"
	"io"

	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/presenter"

	"github.com/spf13/cobra"
)

func runCmd(cmd *cobra.Command, args []string) error {
	settings := utils.SettingsFromFlags(cmd)
	flags := &paramutils.PFlagSetWrapper{Flags: cmd.Flags()}

	params := &cmdParams{}
	err := fillFlagParams(flags, params)
	if err != nil {
		return err
	}

	api, git, err := paramutils.GetClientAndRepo(settings)
	if err != nil {
		return err
	}

	err = fillIDsParam(params)
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
	progress := presenter.NewProgress(out)
	service := pullrequest.NewDeleteService(api, git, c, progress)

	if params.Diff {
		diffs := pullrequest.NewDiffService(api, git, progress)
		service.Preview = func(ctx context.Context, id pullrequest.EntityID) error {
			d, err := diffs.Diff(ctx, &pullrequest.DiffOptions{ID: id})
			if err != nil {
				return err
			}
			presenter.Diff(out, d)
			return nil
		}
	}

	res, err := service.Delete(ctx, &pullrequest.DeleteOptions{IDs: params.IDs, Yes: params.Yes})
	if res != nil {
		presenter.DeleteSummary(out, res)
	}
	if err != nil {
		return err
	}

	return res.Err()
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "delete",
		Aliases: []string{"del", "rm"},
		Short:   "Delete pull requests by id",
		Long:    `Deletes one or more pull requests, asking for each unless --yes is given`,
		Args:    cobra.NoArgs,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().IntSlice("id", nil, "pull request number(s) to delete, repeatable or comma separated")
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	cmd.Flags().Bool("diff", false, "show diff before deleting pull request")

	return cmd
}
