package executor

import (
	"errors"
	"os/exec"
	"testing"
)

func TestExpandAliases(t *testing.T) {
	e := NewShellExecutor("/bin/sh", true)

	cases := []struct {
		in   string
		want string
	}{
		{"k get pods", "kubectl get pods"},
		{"k", "kubectl"},
		{"gco main", "git checkout main"},
		{"gst", "git status"},
		{"gaa", "git add --all"},
		{"gcm 'fix bug'", "git commit -m 'fix bug'"},
		{"gp origin main", "git push origin main"},
		{"gl", "git pull"},
		{"ll", "ls -la"},
		{"la", "ls -la"},
		{"gpg --list-keys", "gpg --list-keys"},
		{"glow README.md", "glow README.md"},
		{"kubectl get pods", "kubectl get pods"},
		{"  git status  ", "git status"},
	}
	for _, tc := range cases {
		if got := e.Expand(tc.in); got != tc.want {
			t.Fatalf("Expand(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestExpandDisabled(t *testing.T) {
	e := NewShellExecutor("/bin/sh", false)
	if got := e.Expand("gst"); got != "gst" {
		t.Fatalf("Expand with expansion disabled = %q, want %q", got, "gst")
	}
}

func TestPrepareUsesShellDashC(t *testing.T) {
	e := NewShellExecutor("/bin/zsh", true)
	cmd := e.Prepare("gst")

	if cmd.Path != "/bin/zsh" && cmd.Args[0] != "/bin/zsh" {
		t.Fatalf("unexpected shell: path=%q args=%v", cmd.Path, cmd.Args)
	}
	if len(cmd.Args) != 3 || cmd.Args[1] != "-c" || cmd.Args[2] != "git status" {
		t.Fatalf("unexpected args: %v", cmd.Args)
	}
	if cmd.Stdin == nil || cmd.Stdout == nil || cmd.Stderr == nil {
		t.Fatal("command must inherit the terminal streams")
	}
	if len(cmd.Env) == 0 {
		t.Fatal("command must inherit the environment")
	}
}

func TestNewShellExecutorFallback(t *testing.T) {
	t.Setenv("SHELL", "")
	e := NewShellExecutor("", true)
	if e.Shell() != "/bin/sh" {
		t.Fatalf("Shell() = %q, want /bin/sh", e.Shell())
	}

	t.Setenv("SHELL", "/usr/bin/fish")
	e = NewShellExecutor("", true)
	if e.Shell() != "/usr/bin/fish" {
		t.Fatalf("Shell() = %q, want /usr/bin/fish", e.Shell())
	}
}

func TestExitCode(t *testing.T) {
	if got := ExitCode(nil); got != 0 {
		t.Fatalf("ExitCode(nil) = %d, want 0", got)
	}
	if got := ExitCode(errors.New("spawn failed")); got != 1 {
		t.Fatalf("ExitCode(plain error) = %d, want 1", got)
	}

	cmd := exec.Command("/bin/sh", "-c", "exit 3")
	err := cmd.Run()
	if err == nil {
		t.Fatal("expected exit 3 to fail")
	}
	if got := ExitCode(err); got != 3 {
		t.Fatalf("ExitCode(exit 3) = %d, want 3", got)
	}
}
