package html2md

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// ClipboardWriter places text on the system clipboard.
type ClipboardWriter interface {
	Write(ctx context.Context, text string) error
}

// CommandRunner abstracts command execution to enable testing without real subprocesses.
type CommandRunner interface {
	Run(ctx context.Context, stdin string, name string, args ...string) (stderr string, err error)
	LookPath(name string) (string, error)
}

// ExecRunner implements CommandRunner using os/exec.
type ExecRunner struct{}

// Run executes name with args, feeding stdin to the process.
func (r *ExecRunner) Run(ctx context.Context, stdin string, name string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, name, args...) // #nosec G204 -- name comes from a fixed tool list or user config
	cmd.Stdin = strings.NewReader(stdin)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	return stderr.String(), err
}

// LookPath searches PATH for name.
func (r *ExecRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// clipboardTools lists clipboard commands in preference order.
var clipboardTools = [][]string{
	{"pbcopy"},
	{"wl-copy"},
	{"xclip", "-selection", "clipboard"},
	{"xsel", "--clipboard", "--input"},
	{"clip.exe"},
}

// CommandClipboard writes to the clipboard by piping text into a platform tool.
type CommandClipboard struct {
	Runner CommandRunner

	// Command overrides tool detection, e.g. "xclip -selection primary".
	Command string
}

// NewCommandClipboard creates a CommandClipboard with a real command runner.
func NewCommandClipboard(command string) *CommandClipboard {
	return &CommandClipboard{Runner: &ExecRunner{}, Command: command}
}

// Write pipes text to the clipboard tool. Failures wrap ErrClipboardWrite;
// when no tool is installed the error is ErrClipboardUnavailable. No retries.
func (c *CommandClipboard) Write(ctx context.Context, text string) error {
	argv, err := c.resolve()
	if err != nil {
		return err
	}

	stderr, err := c.Runner.Run(ctx, text, argv[0], argv[1:]...)
	if err != nil {
		if msg := strings.TrimSpace(stderr); msg != "" {
			return fmt.Errorf("%w: %s: %v: %s", ErrClipboardWrite, argv[0], err, msg)
		}
		return fmt.Errorf("%w: %s: %v", ErrClipboardWrite, argv[0], err)
	}
	return nil
}

// Tool returns the command line Write would run.
func (c *CommandClipboard) Tool() (string, error) {
	argv, err := c.resolve()
	if err != nil {
		return "", err
	}
	return strings.Join(argv, " "), nil
}

func (c *CommandClipboard) resolve() ([]string, error) {
	if argv := strings.Fields(c.Command); len(argv) > 0 {
		if _, err := c.Runner.LookPath(argv[0]); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrClipboardUnavailable, argv[0], err)
		}
		return argv, nil
	}
	for _, argv := range clipboardTools {
		if _, err := c.Runner.LookPath(argv[0]); err == nil {
			return argv, nil
		}
	}
	return nil, ErrClipboardUnavailable
}
