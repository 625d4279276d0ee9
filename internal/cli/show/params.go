package show

import (
	"bbcli/internal/cli/paramutils"
	"bbcli/internal/domain/pullrequest"
)

type cmdParams struct {
	Role pullrequest.Role
	All  bool
}

func fillFlagParams(flags paramutils.FlagRepo, params *cmdParams) error {
	role, err := pullrequest.ParseRole(flags.GetStringOrDefault("role", string(pullrequest.RoleCurrent)))
	if err != nil {
		return err
	}

	params.Role = role
	params.All = flags.GetBoolOrDefault("all", params.All)

	return nil
}
