//go:build windows

package workflows

import (
	"os"
	"os/exec"
)

var forwardedSignals = []os.Signal{os.Interrupt}

func shellCommand(command string) *exec.Cmd {
	return exec.Command("cmd", "/C", command)
}
