package presenter

import (
	"bbcli/internal/domain/pullrequest"

	"github.com/charmbracelet/lipgloss"
)

var (
	green  = lipgloss.Color("42")
	red    = lipgloss.Color("196")
	yellow = lipgloss.Color("214")
	purple = lipgloss.Color("99")
	gray   = lipgloss.Color("245")
	cyan   = lipgloss.Color("45")

	repoStyle   = lipgloss.NewStyle().Foreground(purple).Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
	dimStyle    = lipgloss.NewStyle().Foreground(gray)
	linkStyle   = lipgloss.NewStyle().Foreground(cyan).Underline(true)
	okStyle     = lipgloss.NewStyle().Foreground(green).Bold(true)
	failStyle   = lipgloss.NewStyle().Foreground(red).Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(yellow)
	branchStyle = lipgloss.NewStyle().Foreground(cyan)
)

func stateStyle(s pullrequest.State) lipgloss.Style {
	switch s {
	case pullrequest.StateOpen:
		return okStyle
	case pullrequest.StateMerged:
		return lipgloss.NewStyle().Foreground(purple).Bold(true)
	case pullrequest.StateDeclined:
		return failStyle
	default:
		return dimStyle
	}
}

func outcomeStyle(o pullrequest.MergeOutcome) lipgloss.Style {
	switch o {
	case pullrequest.OutcomeClean:
		return okStyle
	case pullrequest.OutcomeConflicted:
		return failStyle
	default:
		return warnStyle
	}
}

func changeStyle(changeType string) lipgloss.Style {
	switch changeType {
	case "ADD", "COPY":
		return okStyle
	case "DELETE":
		return failStyle
	case "MOVE", "RENAME":
		return warnStyle
	default:
		return lipgloss.NewStyle()
	}
}
