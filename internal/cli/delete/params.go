package cmddelete

import (
	"bbcli/internal/cli/paramutils"
	"bbcli/internal/cli/utils"
	"bbcli/internal/domain/pullrequest"
)

var promptInput = utils.PromptInput

type cmdParams struct {
	IDs  []pullrequest.EntityID
	Yes  bool
	Diff bool
}

func fillFlagParams(flags paramutils.FlagRepo, params *cmdParams) error {
	params.Yes = flags.GetBoolOrDefault("yes", params.Yes)
	params.Diff = flags.GetBoolOrDefault("diff", params.Diff)

	values := flags.GetIntSliceOrDefault("id", nil)
	if len(values) == 0 {
		return nil
	}

	ids, err := paramutils.ToIDs(values)
	if err != nil {
		return err
	}
	params.IDs = ids

	return nil
}

// fillIDsParam prompts for comma separated ids when no flag was given.
func fillIDsParam(params *cmdParams) error {
	if len(params.IDs) > 0 {
		return nil
	}

	answer, err := promptInput("Pull request number(s)", "")
	if err != nil {
		return err
	}

	ids, err := paramutils.ParseIDs(answer)
	if err != nil {
		return err
	}
	params.IDs = ids

	return nil
}
