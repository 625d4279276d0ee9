package cli

import (
	"fmt"
	"os"
	"time"

	"bbcli/internal/cli/auth"
	"bbcli/internal/cli/configtest"
	createcmd "bbcli/internal/cli/create"
	deletecmd "bbcli/internal/cli/delete"
	diffcmd "bbcli/internal/cli/diff"
	mergecmd "bbcli/internal/cli/merge"
	reviewcmd "bbcli/internal/cli/review"
	showcmd "bbcli/internal/cli/show"
	"bbcli/internal/cli/utils"
	"bbcli/internal/systemcodes"

	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     "bb",
		Short:   "bb command-line utility for Bitbucket Server pull requests",
		Long:    `Create, list, review, merge, diff and delete pull requests of the repository you are in.`,
		Version: fmt.Sprintf("%v, commit %v, built at %v", version, commit, date),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			utils.SetUpLogging(utils.SettingsFromFlags(cmd).Verbose)
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		createcmd.New(),
		deletecmd.New(),
		showcmd.New(),
		configtest.New(),
		reviewcmd.New(),
		mergecmd.New(),
		diffcmd.New(),
		auth.New(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "print debug logs and full error details")
	rootCmd.PersistentFlags().String("config", "", "config path (default ~/.config/bb/config.toml)")
	rootCmd.PersistentFlags().Duration("timeout", time.Duration(0), "HTTP timeout, overrides the configured one")

	return rootCmd
}

func Execute() {
	err := newRootCmd().Execute()
	if err != nil {
		os.Exit(systemcodes.ErrorCodeGeneric)
	}
}
