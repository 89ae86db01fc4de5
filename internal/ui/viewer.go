package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"runtests/internal/domain"
)

// Viewer displays a run report
type Viewer interface {
	View(report *domain.RunReport) error
}

// ReportViewer browses a run report in an interactive TUI
type ReportViewer struct{}

// NewReportViewer creates a new ReportViewer
func NewReportViewer() *ReportViewer {
	return &ReportViewer{}
}

// reportEntry is one selectable row: either a step or a discovered target
type reportEntry struct {
	title   string
	details string
}

// View runs the TUI until the user quits
func (rv *ReportViewer) View(report *domain.RunReport) error {
	entries := reportEntries(report)

	app := tview.NewApplication()

	list := tview.NewList().
		ShowSecondaryText(false).
		SetHighlightFullLine(true)
	for _, e := range entries {
		list.AddItem(e.title, "", 0, nil)
	}
	list.SetMainTextColor(tview.Styles.PrimaryTextColor).
		SetSelectedTextColor(tcell.ColorWhite).
		SetSelectedBackgroundColor(tcell.ColorDarkCyan)

	detailsView := tview.NewTextView().
		SetDynamicColors(true).
		SetWrap(true).
		SetWordWrap(true)

	headerView := tview.NewTextView().
		SetTextAlign(tview.AlignCenter).
		SetDynamicColors(true).
		SetText(fmt.Sprintf(" Run %s | %d step(s), %d target(s), exit %d | ↑↓ navigate, → details, ← back, q to exit ",
			report.RunID, len(report.Steps), len(report.Targets), report.ExitCode))

	updateDetails := func() {
		index := list.GetCurrentItem()
		if index >= 0 && index < len(entries) {
			detailsView.SetText(entries[index].details)
		}
	}
	list.SetChangedFunc(func(int, string, string, rune) {
		updateDetails()
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEnter, tcell.KeyRight:
			app.SetFocus(detailsView)
			return nil
		case tcell.KeyCtrlC, tcell.KeyEsc:
			app.Stop()
			return nil
		case tcell.KeyRune:
			if event.Rune() == 'q' {
				app.Stop()
				return nil
			}
		}
		return event
	})
	detailsView.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyLeft, tcell.KeyEsc:
			app.SetFocus(list)
			return nil
		case tcell.KeyCtrlC:
			app.Stop()
			return nil
		}
		return event
	})
	updateDetails()

	body := tview.NewFlex().
		SetDirection(tview.FlexColumn).
		AddItem(list, 0, 1, true).
		AddItem(detailsView, 0, 2, false)

	layout := tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(headerView, 1, 0, false).
		AddItem(body, 0, 1, true)

	if err := app.SetRoot(layout, true).SetFocus(list).Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func reportEntries(report *domain.RunReport) []reportEntry {
	entries := make([]reportEntry, 0, len(report.Steps)+len(report.Targets))
	for i, step := range report.Steps {
		entries = append(entries, reportEntry{
			title:   stepTitle(i+1, step),
			details: stepDetails(step),
		})
	}
	for _, target := range report.Targets {
		entries = append(entries, reportEntry{
			title:   "[gray]target[white] " + tview.Escape(target),
			details: fmt.Sprintf("[cyan]Target:[white] %s\n\n[gray]Discovered from: %s[white]", tview.Escape(target), tview.Escape(strings.Join(report.Inputs, " "))),
		})
	}
	return entries
}

func stepTitle(n int, step domain.Step) string {
	r := step.Result
	switch {
	case r.Skipped:
		return fmt.Sprintf("[yellow]%d.[white] %s [gray](dry run)[white]", n, step.Name)
	case r.Failed():
		return fmt.Sprintf("[red]%d. ✗[white] %s", n, step.Name)
	}
	return fmt.Sprintf("[green]%d. ✓[white] %s", n, step.Name)
}

func stepDetails(step domain.Step) string {
	var b strings.Builder
	r := step.Result
	fmt.Fprintf(&b, "[cyan]Step:[white] %s\n\n", step.Name)
	fmt.Fprintf(&b, "[yellow]Command:[white]\n%s\n\n", tview.Escape(r.Command))
	switch {
	case r.Skipped:
		b.WriteString("[yellow]Not executed (dry run)[white]\n")
	case !r.Defined:
		b.WriteString("[yellow]Exit status:[white] none (terminated without an exit code)\n")
	default:
		fmt.Fprintf(&b, "[yellow]Exit status:[white] %d\n", r.ExitCode)
	}
	fmt.Fprintf(&b, "[yellow]Duration:[white] %s\n", r.Duration)
	return b.String()
}
