package cmdcreate

import (
	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
)

var closestBranches = []string{"develop", "master", "main"}

type branchFinder interface {
	ClosestBranch(branches []string) (string, error)
}

type cmdParams struct {
	Target string
	Yes    bool
	Diff   bool
	Rebase bool
}

func fillFlagParams(flags paramutils.FlagRepo, params *cmdParams) {
	params.Target = flags.GetStringOrDefault("target", params.Target)
	params.Yes = flags.GetBoolOrDefault("yes", params.Yes)
	params.Diff = flags.GetBoolOrDefault("diff", params.Diff)
	params.Rebase = flags.GetBoolOrDefault("rebase", params.Rebase)
}

var promptInput = utils.PromptInput

// fillTargetParam prompts for the target when no flag was given,
// suggesting the closest well known branch in recent history.
func fillTargetParam(git branchFinder, params *cmdParams) error {
	if params.Target != "" {
		return nil
	}

	suggested, err := git.ClosestBranch(closestBranches)
	if err != nil {
		suggested = ""
	}

	target, err := promptInput("Target branch", suggested)
	if err != nil {
		return err
	}
	params.Target = target

	return nil
}
