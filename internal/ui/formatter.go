package ui

import (
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/fatih/color"

	"runtests/internal/config"
	"runtests/internal/discovery"
	"runtests/internal/domain"
)

const rowFormat = "│ %-22s │ %-36s │\n"

// Formatter formats and displays output
type Formatter struct {
	config *config.Config
	parser *discovery.Parser
	out    io.Writer
}

// NewFormatter creates a new Formatter
func NewFormatter(cfg *config.Config, parser *discovery.Parser) *Formatter {
	return &Formatter{
		config: cfg,
		parser: parser,
		out:    color.Output,
	}
}

// SetOutput redirects everything the formatter prints
func (f *Formatter) SetOutput(w io.Writer) {
	f.out = w
}

// PrintReport prints a summary table of a run followed by its steps
func (f *Formatter) PrintReport(report *domain.RunReport) {
	fmt.Fprintln(f.out)
	fmt.Fprintln(f.out, color.CyanString("╔═════════════════════════════════════════════════════════════════╗"))
	fmt.Fprintln(f.out, color.CyanString("║                         Test Build Report                       ║"))
	fmt.Fprintln(f.out, color.CyanString("╚═════════════════════════════════════════════════════════════════╝"))

	exitCode := color.GreenString("%-36d", report.ExitCode)
	if !report.Succeeded() {
		exitCode = color.RedString("%-36d", report.ExitCode)
	}

	rows := [][2]string{
		{"Run ID", report.RunID},
		{"Platform", report.Platform.String()},
		{"Jobs", fmt.Sprintf("%d", report.Jobs)},
		{"Inputs", strings.Join(report.Inputs, " ")},
		{"Targets discovered", fmt.Sprintf("%d", len(report.Targets))},
		{"Steps run", fmt.Sprintf("%d", len(report.Steps))},
		{"Duration", fmt.Sprintf("%.2fs", report.DurationSeconds)},
		{"Started", report.StartedAt.Format("2006-01-02 15:04:05")},
	}

	fmt.Fprintln(f.out, "┌────────────────────────┬──────────────────────────────────────┐")
	for _, row := range rows {
		fmt.Fprintf(f.out, rowFormat, row[0], truncate(row[1], 36))
		fmt.Fprintln(f.out, "├────────────────────────┼──────────────────────────────────────┤")
	}
	fmt.Fprintf(f.out, "│ %-22s │ %s │\n", "Exit code", exitCode)
	fmt.Fprintln(f.out, "└────────────────────────┴──────────────────────────────────────┘")

	fmt.Fprintln(f.out)
	for _, step := range report.Steps {
		fmt.Fprintln(f.out, stepLine(step))
	}

	fmt.Fprintln(f.out)
	switch {
	case report.Succeeded():
		fmt.Fprintln(f.out, color.GreenString("✓ All build steps passed!"))
	case report.Error != "":
		fmt.Fprintln(f.out, color.RedString("✗ %s", report.Error))
	default:
		fmt.Fprintln(f.out, color.RedString("✗ %d step(s) failed", len(report.FailedSteps())))
	}
}

func stepLine(step domain.Step) string {
	r := step.Result
	switch {
	case r.Skipped:
		return color.YellowString("- %-10s %s (dry run)", step.Name, r.Command)
	case !r.Defined:
		return color.YellowString("? %-10s %s (no exit code)", step.Name, r.Command)
	case r.Failed():
		return color.RedString("✗ %-10s %s (exit %d, %s)", step.Name, r.Command, r.ExitCode, r.Duration.Round(time.Millisecond))
	}
	return color.GreenString("✓ %-10s %s (%s)", step.Name, r.Command, r.Duration.Round(time.Millisecond))
}

func truncate(s string, n int) string {
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n-1]) + "…"
}

// PrintTargetList prints the target for each test source as a tree grouped by
// directory, optionally with the gtest cases each source declares.
func (f *Formatter) PrintTargetList(files []string, showTestCases bool) error {
	fmt.Fprintln(f.out, color.GreenString("Found %d test target(s):", len(files)))
	fmt.Fprintln(f.out)

	groups := make(map[string][]string)
	for _, file := range files {
		dir := filepath.ToSlash(filepath.Dir(file))
		groups[dir] = append(groups[dir], file)
	}
	dirs := make([]string, 0, len(groups))
	for dir := range groups {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	for i, dir := range dirs {
		isLastDir := i == len(dirs)-1
		branch, indent := "├── ", "│   "
		if isLastDir {
			branch, indent = "└── ", "    "
		}
		fmt.Fprintln(f.out, color.CyanString("%s%s", branch, dir))

		sources := groups[dir]
		for j, file := range sources {
			isLast := j == len(sources)-1
			leaf, sub := "├── ", "│   "
			if isLast {
				leaf, sub = "└── ", "    "
			}
			target := discovery.MapName(file, f.config.Platform)
			fmt.Fprintf(f.out, "%s%s%s  %s\n", indent, leaf, color.YellowString(target), color.HiBlackString("(%s)", filepath.Base(file)))

			if showTestCases {
				f.printTestCases(file, indent+sub)
			}
		}
	}

	if showTestCases {
		if total, err := f.CountTestCases(files); err == nil {
			fmt.Fprintln(f.out)
			fmt.Fprintln(f.out, color.GreenString("%d test case(s) in total", total))
		}
	}
	return nil
}

func (f *Formatter) printTestCases(file, prefix string) {
	testCases, err := f.parser.FindTestCases(discovery.Resolve(f.config.ProjectPath, file))
	if err != nil {
		fmt.Fprintf(f.out, "%s└── %s\n", prefix, color.RedString("(source not readable)"))
		return
	}
	if len(testCases) == 0 {
		fmt.Fprintf(f.out, "%s└── %s\n", prefix, color.RedString("(no test cases found)"))
		return
	}
	for k, testCase := range testCases {
		leaf := "├── "
		if k == len(testCases)-1 {
			leaf = "└── "
		}
		fmt.Fprintf(f.out, "%s%s%s\n", prefix, leaf, testCase)
	}
}

// CountTestCases returns the total number of test cases across the given
// sources. It fails on the first source that cannot be read.
func (f *Formatter) CountTestCases(files []string) (int, error) {
	var total int
	for _, file := range files {
		cases, err := f.parser.FindTestCases(discovery.Resolve(f.config.ProjectPath, file))
		if err != nil {
			return 0, err
		}
		total += len(cases)
	}
	return total, nil
}
