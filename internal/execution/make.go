package execution

import (
	"fmt"
	"strings"

	"al.essio.dev/pkg/shellescape"

	"runtests/internal/config"
	"runtests/internal/domain"
)

// MakeCommands builds make command lines for the configured platform
type MakeCommands struct {
	config *config.Config
}

// NewMakeCommands creates a new MakeCommands
func NewMakeCommands(cfg *config.Config) *MakeCommands {
	return &MakeCommands{config: cfg}
}

// MathLibs returns the command that builds the native math libraries
func (m *MakeCommands) MathLibs(jobs int) string {
	return m.command(jobs, "-f", m.config.MathLibsMakefile, m.config.MathLibsTarget)
}

// Target returns the command that builds a single make target
func (m *MakeCommands) Target(target string, jobs int) string {
	return m.command(jobs, target)
}

func (m *MakeCommands) command(jobs int, args ...string) string {
	if jobs < 1 {
		jobs = 1
	}
	parts := make([]string, 0, len(args)+2)
	parts = append(parts, m.quote(m.config.GetMakeBinary()), fmt.Sprintf("-j%d", jobs))
	for _, arg := range args {
		parts = append(parts, m.quote(arg))
	}
	return strings.Join(parts, " ")
}

// quote escapes arg for sh, or wraps it in double quotes for cmd.exe
func (m *MakeCommands) quote(arg string) string {
	if m.config.Platform != domain.Windows {
		return shellescape.Quote(arg)
	}
	if arg != "" && !strings.ContainsAny(arg, " \t&|<>^()\"") {
		return arg
	}
	return `"` + strings.ReplaceAll(arg, `"`, `""`) + `"`
}
