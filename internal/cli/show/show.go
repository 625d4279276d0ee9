package show

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

	return execute(utils.Context(cmd), cmd.OutOrStdout(), api, git, params)
}

func execute(
	ctx context.Context,
	out io.Writer,
	api pullrequest.API,
	git pullrequest.GitContext,
	params *cmdParams,
) error {
	l, err := pullrequest.NewListService(api, git, presenter.NewProgress(out)).
		List(ctx, &pullrequest.ListOptions{Role: params.Role})
	if err != nil {
		return err
	}

	presenter.Listing(out, l, params.All)

	return nil
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "show",
		Aliases: []string{"ls", "list"},
		Short:   "Show pull requests authored and reviewing",
		Long:    `Shows pull requests of the current repository, or the ones you author or review across the server`,
		Args:    cobra.NoArgs,
		Run:     utils.RunCommandWrapper(runCmd),
	}

	cmd.Flags().StringP("role", "r", string(pullrequest.RoleCurrent), "one of author, reviewer, current")
	cmd.Flags().BoolP("all", "a", false, "show pull requests of every repository for the role")

	return cmd
}
