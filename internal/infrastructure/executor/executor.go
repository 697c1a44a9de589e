// Package executor builds shell invocations for selected commands.
package executor

import (
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/doeshing/cmdmenu/internal/ports"
)

// aliasExpansion rewrites one well-known alias to its full command so the
// selection still works when the alias is not defined in the non-interactive
// child shell. Prefix rules match "alias " at the start; exact rules match
// the whole command.
type aliasExpansion struct {
	alias       string
	replacement string
	prefix      bool
}

// defaultAliases is evaluated top-to-bottom, first match wins.
var defaultAliases = []aliasExpansion{
	{alias: "k", replacement: "kubectl", prefix: true},
	{alias: "k", replacement: "kubectl"},
	{alias: "gco", replacement: "git checkout", prefix: true},
	{alias: "gco", replacement: "git checkout"},
	{alias: "gst", replacement: "git status", prefix: true},
	{alias: "gst", replacement: "git status"},
	{alias: "gaa", replacement: "git add --all", prefix: true},
	{alias: "gaa", replacement: "git add --all"},
	{alias: "gcm", replacement: "git commit -m", prefix: true},
	{alias: "gp", replacement: "git push", prefix: true},
	{alias: "gp", replacement: "git push"},
	{alias: "gl", replacement: "git pull", prefix: true},
	{alias: "gl", replacement: "git pull"},
	{alias: "ll", replacement: "ls -la"},
	{alias: "la", replacement: "ls -la"},
}

// ShellExecutor prepares commands for the user's shell with inherited
// terminal streams, so the command behaves as if typed directly.
type ShellExecutor struct {
	shell         string
	expandAliases bool
}

// NewShellExecutor builds an executor. Shell defaults to $SHELL, then /bin/sh.
func NewShellExecutor(shell string, expandAliases bool) *ShellExecutor {
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/sh"
	}
	return &ShellExecutor{shell: shell, expandAliases: expandAliases}
}

// Shell returns the shell binary invocations run under.
func (e *ShellExecutor) Shell() string {
	return e.shell
}

// Prepare implements ports.CommandExecutor.
func (e *ShellExecutor) Prepare(command string) *exec.Cmd {
	c := exec.Command(e.shell, "-c", e.Expand(command))
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	c.Env = os.Environ()
	return c
}

// Expand implements ports.CommandExecutor.
func (e *ShellExecutor) Expand(command string) string {
	command = strings.TrimSpace(command)
	if !e.expandAliases {
		return command
	}
	for _, rule := range defaultAliases {
		if rule.prefix {
			if strings.HasPrefix(command, rule.alias+" ") {
				return rule.replacement + command[len(rule.alias):]
			}
			continue
		}
		if command == rule.alias {
			return rule.replacement
		}
	}
	return command
}

// ExitCode maps the error from a finished child process to its exit status.
// A nil error is 0; a spawn failure is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return 1
}

var _ ports.CommandExecutor = (*ShellExecutor)(nil)
