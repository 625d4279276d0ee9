package pullrequest

import (
	"context"
	"fmt"
	"strings"
	"time"

	"bbcli/internal/pkg/bitbucket"

	"golang.org/x/exp/slices"
)

type ListOptions struct {
	Role Role
}

type Entry struct {
	ID          EntityID
	Source      string
	Destination string
	Outcome     MergeOutcome
	Reviews     string
	Title       string
	Description string
	Author      string
	URL         string
	Updated     time.Time
}

// Status is the one line summary of the branches, mergeability and
// reviews.
func (e *Entry) Status() string {
	return fmt.Sprintf("%s -> %s | %s | %s", e.Source, e.Destination, e.Outcome.Label(), e.Reviews)
}

type StateGroup struct {
	State   State
	Entries []*Entry
}

type RepoGroup struct {
	Repository string
	States     []*StateGroup
}

// Listing holds pull requests grouped by repository, then state. Local is
// the repository of the working copy.
type Listing struct {
	Groups []*RepoGroup
	Local  string
}

func (l *Listing) IsEmpty() bool {
	return len(l.Groups) == 0
}

// Visible returns the local repository's group only, unless all is set or
// the local repository has no pull requests.
func (l *Listing) Visible(all bool) []*RepoGroup {
	if all {
		return l.Groups
	}

	for _, g := range l.Groups {
		if strings.EqualFold(g.Repository, l.Local) {
			return []*RepoGroup{g}
		}
	}

	return l.Groups
}

var stateOrder = []State{StateOpen, StateMerged, StateDeclined}

func stateRank(s State) int {
	if i := slices.Index(stateOrder, s); i >= 0 {
		return i
	}

	return len(stateOrder)
}

// ReviewLabel aggregates the statuses of active reviewers, each once, in
// the order first seen.
func ReviewLabel(reviewers []Reviewer) string {
	labels := []string{}
	for _, r := range reviewers {
		if !r.Active {
			continue
		}

		l := r.Status.Label()
		if !slices.Contains(labels, l) {
			labels = append(labels, l)
		}
	}

	if len(labels) == 0 {
		return ReviewNone.Label()
	}

	return strings.Join(labels, " & ")
}

func AuthorLabel(u User) string {
	return fmt.Sprintf("%s [%s](%s)", u.DisplayName, u.Username, u.Email)
}

func newEntry(e *Entity) *Entry {
	description := e.Description
	if description == "" {
		description = "-"
	}

	return &Entry{
		ID:          e.ID,
		Source:      e.Source,
		Destination: e.Destination,
		Outcome:     e.Outcome,
		Reviews:     ReviewLabel(e.Reviewers),
		Title:       e.Title,
		Description: description,
		Author:      AuthorLabel(e.Author),
		URL:         e.URL,
		Updated:     e.Updated,
	}
}

// Group builds the listing. Repositories keep the order they are first
// seen in; states and entries are sorted so the result does not depend on
// how pull requests of one repository are interleaved.
func Group(prs []*Entity) *Listing {
	l := &Listing{Groups: []*RepoGroup{}}
	repos := map[string]*RepoGroup{}

	for _, pr := range prs {
		rg, ok := repos[pr.Repository]
		if !ok {
			rg = &RepoGroup{Repository: pr.Repository}
			repos[pr.Repository] = rg
			l.Groups = append(l.Groups, rg)
		}

		idx := slices.IndexFunc(rg.States, func(sg *StateGroup) bool {
			return sg.State == pr.State
		})
		if idx < 0 {
			rg.States = append(rg.States, &StateGroup{State: pr.State})
			idx = len(rg.States) - 1
		}
		rg.States[idx].Entries = append(rg.States[idx].Entries, newEntry(pr))
	}

	for _, rg := range l.Groups {
		slices.SortStableFunc(rg.States, func(a, b *StateGroup) bool {
			ra, rb := stateRank(a.State), stateRank(b.State)
			if ra != rb {
				return ra < rb
			}
			return a.State < b.State
		})
		for _, sg := range rg.States {
			slices.SortStableFunc(sg.Entries, func(a, b *Entry) bool {
				return a.ID < b.ID
			})
		}
	}

	return l
}

type ListService struct {
	api      API
	git      GitContext
	progress Progress
}

func NewListService(api API, git GitContext, p Progress) *ListService {
	return &ListService{api: api, git: git, progress: progressOrNoop(p)}
}

func (ls *ListService) List(ctx context.Context, o *ListOptions) (*Listing, error) {
	repo, err := ls.git.BaseRepo()
	if err != nil {
		return nil, err
	}

	url := bitbucket.RepoPullRequests(ls.api.Host(), repo.Project, repo.Repository)
	if o.Role != RoleCurrent {
		url = bitbucket.Inbox(ls.api.Host(), o.Role.InboxRole())
	}

	ls.progress.Start(fmt.Sprintf("Fetching Pull Requests (%s)", o.Role))
	values, err := ls.api.Paginate(ctx, url)
	ls.progress.Done(err)
	if err != nil {
		return nil, err
	}

	prs := make([]*Entity, 0, len(values))
	for _, v := range values {
		prs = append(prs, parseEntity(v))
	}

	l := Group(prs)
	l.Local = repo.Repository

	return l, nil
}
