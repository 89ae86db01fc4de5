//go:build !windows

package execution

import "os/exec"

// setCommandLine is a no-op: argv is passed to sh without reparsing
func setCommandLine(cmd *exec.Cmd, shell, flag, command string) {}
