package paramutils

import (
	"strconv"
	"strings"

	"bbcli/internal/domain/pullrequest"
	"bbcli/internal/errcodes"

	"github.com/spf13/pflag"
	"golang.org/x/exp/slices"
)

type FlagRepo interface {
	GetStringOrDefault(flag, d string) string
	GetBoolOrDefault(flag string, d bool) bool
	GetIntOrDefault(flag string, d int) int
	GetIntSliceOrDefault(flag string, d []int) []int
}

func NewFlagRepo(flags *pflag.FlagSet) FlagRepo {
	return &PFlagSetWrapper{Flags: flags}
}

type PFlagSetWrapper struct {
	Flags *pflag.FlagSet
}

func (fs *PFlagSetWrapper) GetStringOrDefault(flag, d string) string {
	s, err := fs.Flags.GetString(flag)
	if err != nil || s == "" {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetBoolOrDefault(flag string, d bool) bool {
	s, err := fs.Flags.GetBool(flag)
	if err != nil {
		return d
	}

	return s
}

func (fs *PFlagSetWrapper) GetIntOrDefault(flag string, d int) int {
	i, err := fs.Flags.GetInt(flag)
	if err != nil || i == 0 {
		return d
	}

	return i
}

func (fs *PFlagSetWrapper) GetIntSliceOrDefault(flag string, d []int) []int {
	s, err := fs.Flags.GetIntSlice(flag)
	if err != nil || len(s) == 0 {
		return d
	}

	return s
}

// ParseIDs reads comma separated pull request ids, dropping duplicates and
// keeping the order given.
func ParseIDs(input string) ([]pullrequest.EntityID, error) {
	ids := []pullrequest.EntityID{}
	for _, v := range strings.Split(input, ",") {
		v = strings.TrimPrefix(strings.TrimSpace(v), "#")
		if v == "" {
			continue
		}

		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			return nil, errcodes.ErrInvalidPRNumber
		}
		if !slices.Contains(ids, pullrequest.EntityID(id)) {
			ids = append(ids, pullrequest.EntityID(id))
		}
	}

	if len(ids) == 0 {
		return nil, errcodes.ErrMissingID
	}

	return ids, nil
}

// ToIDs converts flag values, rejecting anything that is not a positive
// number.
func ToIDs(values []int) ([]pullrequest.EntityID, error) {
	if len(values) == 0 {
		return nil, errcodes.ErrMissingID
	}

	ids := make([]pullrequest.EntityID, 0, len(values))
	for _, v := range values {
		if v <= 0 {
			return nil, errcodes.ErrInvalidPRNumber
		}
		if !slices.Contains(ids, pullrequest.EntityID(v)) {
			ids = append(ids, pullrequest.EntityID(v))
		}
	}

	return ids, nil
}
