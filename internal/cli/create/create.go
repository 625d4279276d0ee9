package cmdcreate

import (
	"context"
	"fmt"
	"io"

	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/errcodes"
	"bbcli/internal/presenter"

	"github.com/spf13/cobra"
)

var copyToClipboard = presenter.CopyToClipboard

func setUpFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("target", "t", "", "target branch name")
	cmd.Flags().BoolP("yes", "y", false, "skip confirmation prompt")
	cmd.Flags().Bool("diff", false, "show diff after raising pull request")
	cmd.Flags().Bool("rebase", false, "rebase source branch with target before creation")
}

func runCmd(cmd *cobra.Command, args []string) error {
	settings := utils.SettingsFromFlags(cmd)
	flags := &paramutils.PFlagSetWrapper{Flags: cmd.Flags()}

	api, git, err := paramutils.GetClientAndRepo(settings)
	if err != nil {
		return err
	}

	params := &cmdParams{}
	fillFlagParams(flags, params)
	err = fillTargetParam(git, params)
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
	service := pullrequest.NewCreateService(api, git, progress)

	draft, err := service.Prepare(ctx, &pullrequest.CreateOptions{
		Target: params.Target,
		Rebase: params.Rebase,
	})
	if err != nil {
		return err
	}

	presenter.Draft(out, draft)
	if !params.Yes {
		ok, err := c.Confirm("Create pull request")
		if err != nil {
			return err
		}
		if !ok {
			return errcodes.ErrAborted
		}
	}

	created, err := service.Submit(ctx, draft)
	if err != nil {
		return err
	}

	presenter.Created(out, created)
	if copyToClipboard(created.URL) {
		fmt.Fprintln(out, "URL copied to clipboard")
	}

	if !params.Diff {
		return nil
	}

	d, err := pullrequest.NewDiffService(api, git, progress).
		Diff(ctx, &pullrequest.DiffOptions{ID: created.ID})
	if err != nil {
		return err
	}
	presenter.Diff(out, d)

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "create",
		Aliases: []string{"cr"},
		Short:   "Create pull request",
		Long:    `Creates a pull request from the checked out branch, with the default reviewers of the repository`,
		Args:    cobra.NoArgs,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	setUpFlags(cmd)

	return cmd
}
