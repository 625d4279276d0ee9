package pullrequest

import (
	"strings"
	"time"

	"bbcli/internal/errcodes"
)

type State string

const (
	StateOpen     State = "OPEN"
	StateMerged   State = "MERGED"
	StateDeclined State = "DECLINED"
)

func (s State) Label() string {
	if s == "" {
		return "UNKNOWN"
	}

	return string(s)
}

func ParseState(s string) State {
	return State(strings.ToUpper(strings.TrimSpace(s)))
}

type ReviewStatus string

const (
	ReviewApproved   ReviewStatus = "APPROVED"
	ReviewUnapproved ReviewStatus = "UNAPPROVED"
	ReviewNeedsWork  ReviewStatus = "NEEDS_WORK"
	ReviewNone       ReviewStatus = "NONE"
)

// Label is defined for every status, including ones the server adds later.
func (s ReviewStatus) Label() string {
	switch s {
	case ReviewNone, "":
		return "NOT REVIEWED"
	default:
		return string(s)
	}
}

func ParseReviewStatus(s string) ReviewStatus {
	v := strings.ToUpper(strings.TrimSpace(s))
	if v == "" {
		return ReviewNone
	}

	return ReviewStatus(v)
}

type MergeOutcome string

const (
	OutcomeClean      MergeOutcome = "CLEAN"
	OutcomeConflicted MergeOutcome = "CONFLICTED"
	OutcomeUnknown    MergeOutcome = "UNKNOWN"
)

func (o MergeOutcome) Label() string {
	if o == "" {
		return string(OutcomeUnknown)
	}

	return string(o)
}

func ParseMergeOutcome(s string) MergeOutcome {
	switch v := MergeOutcome(strings.ToUpper(strings.TrimSpace(s))); v {
	case OutcomeClean, OutcomeConflicted:
		return v
	default:
		return OutcomeUnknown
	}
}

type Role string

const (
	RoleAuthor   Role = "author"
	RoleReviewer Role = "reviewer"
	RoleCurrent  Role = "current"
)

var Roles = []Role{RoleAuthor, RoleReviewer, RoleCurrent}

func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Roles {
		if v == r {
			return r, nil
		}
	}

	return "", errcodes.ErrUnknownRole
}

// InboxRole is the role name the inbox endpoint expects.
func (r Role) InboxRole() string {
	return strings.ToUpper(string(r))
}

type Action string

const (
	ActionApprove   Action = "approve"
	ActionUnapprove Action = "unapprove"
	ActionNeedsWork Action = "needs_work"
	ActionNone      Action = "none"
)

var Actions = []Action{ActionApprove, ActionUnapprove, ActionNeedsWork}

// ParseAction rejects none and anything unknown.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToLower(strings.TrimSpace(s)))
	for _, v := range Actions {
		if v == a {
			return a, nil
		}
	}

	return "", errcodes.ErrMissingAction
}

func (a Action) Status() ReviewStatus {
	switch a {
	case ActionApprove:
		return ReviewApproved
	case ActionUnapprove:
		return ReviewUnapproved
	case ActionNeedsWork:
		return ReviewNeedsWork
	default:
		return ReviewNone
	}
}

type User struct {
	DisplayName string
	Username    string
	Email       string
	Active      bool
}

type Reviewer struct {
	User
	Status ReviewStatus
}

type EntityID int

type Entity struct {
	ID          EntityID
	Version     int
	Title       string
	Description string
	State       State
	Source      string
	Destination string
	// Repository is the slug of the source repository.
	Repository string
	Project    string
	Author     User
	Reviewers  []Reviewer
	Outcome    MergeOutcome
	URL        string
	Updated    time.Time
}
