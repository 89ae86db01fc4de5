//go:build windows

package execution

import (
	"os/exec"
	"syscall"
)

// setCommandLine hands the line to cmd.exe untouched. /S makes cmd strip
// only the outer quotes, so quoted make arguments survive.
func setCommandLine(cmd *exec.Cmd, shell, flag, command string) {
	if shell != "cmd" {
		return
	}
	cmd.SysProcAttr = &syscall.SysProcAttr{
		CmdLine: shell + " /S " + flag + ` "` + command + `"`,
	}
}
