package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"
)

// ProgressBar tracks the build steps of a run
type ProgressBar struct {
	bar    *progressbar.ProgressBar
	out    io.Writer
	done   int
	failed int
}

// NewProgressBar creates a progress bar over count steps writing to out
func NewProgressBar(count int, out io.Writer) *ProgressBar {
	bar := progressbar.NewOptions(count,
		progressbar.OptionSetDescription(describe(0, 0)),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        color.CyanString("█"),
			SaucerHead:    color.CyanString("█"),
			SaucerPadding: "░",
			BarStart:      "│",
			BarEnd:        "│",
		}),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWriter(out),
	)

	return &ProgressBar{bar: bar, out: out}
}

// StepDone records a finished step and leaves the bar on its own line, so
// make output of the next step starts below it.
func (p *ProgressBar) StepDone(failed bool) {
	p.done++
	if failed {
		p.failed++
	}
	p.bar.Describe(describe(p.done-p.failed, p.failed))
	_ = p.bar.Set(p.done)
	fmt.Fprintln(p.out)
}

// Finish completes the progress bar
func (p *ProgressBar) Finish() {
	_ = p.bar.Finish()
}

func describe(ok, failed int) string {
	return color.CyanString("Build steps: ") +
		color.GreenString("[ok: %d", ok) +
		" | " +
		color.RedString("failed: %d]", failed)
}
