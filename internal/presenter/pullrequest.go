package presenter

import (
	"fmt"
	"io"
	"strings"

	"bbcli/internal/domain/pullrequest"

	"github.com/charmbracelet/lipgloss/tree"
	"github.com/dustin/go-humanize"
	"github.com/gosuri/uitable"
)

const maxColWidth = 80

func newTable() *uitable.Table {
	table := uitable.New()
	table.MaxColWidth = maxColWidth
	table.Wrap = true

	return table
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}

	return s
}

// Draft prints what is about to be submitted.
func Draft(w io.Writer, d *pullrequest.Draft) {
	table := newTable()
	table.AddRow("Project:", d.Repo.Project)
	table.AddRow("Repository:", d.Repo.Repository)
	table.AddRow("From:", branchStyle.Render(d.Source))
	table.AddRow("To:", branchStyle.Render(d.Destination))
	table.AddRow("Title:", titleStyle.Render(d.Title))
	table.AddRow("Description:", orDash(d.Description))
	table.AddRow("Reviewers:", orDash(strings.Join(d.Reviewers, ", ")))

	fmt.Fprintln(w, table)
}

func Created(w io.Writer, c *pullrequest.Created) {
	if c.Existing {
		fmt.Fprintf(w, "%s pull request #%d already exists\n", warnStyle.Render("!"), c.ID)
		if c.Message != "" {
			fmt.Fprintln(w, dimStyle.Render(c.Message))
		}
	} else {
		fmt.Fprintf(w, "%s created pull request #%d\n", okStyle.Render("✓"), c.ID)
	}

	fmt.Fprintln(w, linkStyle.Render(c.URL))
}

func entryTree(e *pullrequest.Entry) *tree.Tree {
	status := fmt.Sprintf(
		"%s -> %s | %s | %s",
		branchStyle.Render(e.Source),
		branchStyle.Render(e.Destination),
		outcomeStyle(e.Outcome).Render(e.Outcome.Label()),
		e.Reviews,
	)

	t := tree.Root(titleStyle.Render(fmt.Sprintf("#%d %s", e.ID, e.Title))).
		Child(status, e.Description, e.Author, linkStyle.Render(e.URL))
	if !e.Updated.IsZero() {
		t.Child(dimStyle.Render("updated " + humanize.Time(e.Updated)))
	}

	return t
}

// Listing renders repository, state and pull request as a tree. Only the
// local repository is shown unless all is set.
func Listing(w io.Writer, l *pullrequest.Listing, all bool) {
	if l.IsEmpty() {
		fmt.Fprintln(w, "There are no open pull requests")
		return
	}

	for _, rg := range l.Visible(all) {
		repo := tree.Root(repoStyle.Render(rg.Repository)).
			Enumerator(tree.RoundedEnumerator).
			EnumeratorStyle(dimStyle)

		for _, sg := range rg.States {
			state := tree.Root(stateStyle(sg.State).Render(sg.State.Label()))
			for _, e := range sg.Entries {
				state.Child(entryTree(e))
			}
			repo.Child(state)
		}

		fmt.Fprintln(w, repo)
	}
}

func Diff(w io.Writer, d *pullrequest.Diff) {
	if len(d.Changes) == 0 && len(d.Stats) == 0 {
		fmt.Fprintf(w, "No unreviewed changes in pull request #%d\n", d.ID)
		return
	}

	table := newTable()
	for _, c := range d.Changes {
		table.AddRow(changeStyle(c.Type).Render(c.Type), c.Path)
	}
	if len(d.Changes) > 0 {
		fmt.Fprintln(w, table)
	}

	if len(d.Stats) == 0 {
		return
	}

	added, removed := 0, 0
	stats := newTable()
	for _, s := range d.Stats {
		added += s.Added
		removed += s.Removed
		stats.AddRow(
			s.Path,
			okStyle.Render(fmt.Sprintf("+%d", s.Added)),
			failStyle.Render(fmt.Sprintf("-%d", s.Removed)),
		)
	}
	fmt.Fprintln(w, stats)
	fmt.Fprintf(w, "%d files changed, %d insertions(+), %d deletions(-)\n", len(d.Stats), added, removed)
}

func Reviewed(w io.Writer, r *pullrequest.Reviewed) {
	fmt.Fprintf(w, "%s pull request #%d marked %s by %s\n", okStyle.Render("✓"), r.ID, r.Status.Label(), r.User)
}

func Merged(w io.Writer, m *pullrequest.Merged) {
	fmt.Fprintf(
		w,
		"%s merged pull request #%d from %s into %s\n",
		okStyle.Render("✓"),
		m.ID,
		branchStyle.Render(m.Source),
		branchStyle.Render(m.Destination),
	)

	switch {
	case m.BranchDeleted:
		fmt.Fprintf(w, "%s deleted source branch '%s'\n", okStyle.Render("✓"), m.Source)
	case m.BranchKept:
		fmt.Fprintf(w, "%s source branch '%s' was kept\n", warnStyle.Render("!"), m.Source)
	}
}

func idList(ids []pullrequest.EntityID) string {
	s := make([]string, 0, len(ids))
	for _, id := range ids {
		s = append(s, fmt.Sprintf("#%d", id))
	}

	return strings.Join(s, ", ")
}

// DeleteSummary lists every id under exactly one outcome.
func DeleteSummary(w io.Writer, r *pullrequest.DeleteResult) {
	table := newTable()
	if len(r.Succeeded) > 0 {
		table.AddRow(okStyle.Render("Deleted:"), idList(r.Succeeded))
	}
	if len(r.Skipped) > 0 {
		table.AddRow(warnStyle.Render("Skipped:"), idList(r.Skipped))
	}
	for _, id := range r.FailedOrder {
		table.AddRow(failStyle.Render("Failed:"), fmt.Sprintf("#%d %s", id, r.Failed[id]))
	}

	fmt.Fprintln(w, table)
}
