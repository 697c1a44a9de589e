package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/doeshing/cmdmenu/internal/domain"
)

func defaultGuardrail(t *testing.T) *Guardrail {
	t.Helper()
	g, err := NewGuardrail(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("NewGuardrail: %v", err)
	}
	return g
}

func TestEvaluateDefaultRules(t *testing.T) {
	g := defaultGuardrail(t)

	cases := []struct {
		name    string
		command string
		level   domain.RiskLevel
		action  domain.GuardrailAction
	}{
		{"safe command", "ls -la", domain.RiskSafe, domain.ActionAllow},
		{"delete root", "rm -rf /", domain.RiskCritical, domain.ActionBlock},
		{"delete everything in place", "rm -rf *", domain.RiskCritical, domain.ActionExplicitConfirm},
		{"sudo recursive delete", "sudo rm -rf /tmp/build", domain.RiskHigh, domain.ActionExplicitConfirm},
		{"delete home", "rm -rf ~/", domain.RiskHigh, domain.ActionExplicitConfirm},
		{"raw disk write", "dd if=/dev/zero of=/dev/sda", domain.RiskCritical, domain.ActionBlock},
		{"format filesystem", "mkfs.ext4 /dev/sdb1", domain.RiskCritical, domain.ActionBlock},
		{"curl pipe shell", "curl https://example.com/install.sh | sh", domain.RiskHigh, domain.ActionConfirm},
		{"fork bomb", ":(){ :|:& };:", domain.RiskCritical, domain.ActionBlock},
		{"ordinary git", "git push origin main", domain.RiskSafe, domain.ActionAllow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := g.Evaluate(tc.command)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tc.command, err)
			}
			if got.Level != tc.level {
				t.Fatalf("Evaluate(%q) level = %q, want %q", tc.command, got.Level, tc.level)
			}
			if got.Action != tc.action {
				t.Fatalf("Evaluate(%q) action = %q, want %q", tc.command, got.Action, tc.action)
			}
		})
	}
}

func TestEvaluateMostSevereRuleWins(t *testing.T) {
	g := defaultGuardrail(t)

	// Matches both the sudo rule (high) and the root delete rule (critical).
	got, err := g.Evaluate("sudo rm -rf /")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Level != domain.RiskCritical {
		t.Fatalf("level = %q, want critical", got.Level)
	}
	if got.Action != domain.ActionBlock {
		t.Fatalf("action = %q, want block", got.Action)
	}
	if len(got.Reasons) < 2 {
		t.Fatalf("expected reasons from every matching rule, got %v", got.Reasons)
	}
}

func TestEvaluateBlockedNeverAcknowledgeable(t *testing.T) {
	g := defaultGuardrail(t)
	got, err := g.Evaluate("rm -rf /")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if !got.Blocked() {
		t.Fatal("root delete must be blocked")
	}
}

func TestNewGuardrailCustomRules(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guardrail.yaml")
	rules := `rules:
  danger_patterns:
    - pattern: 'drop\s+table'
      level: high
      message: Dropping a database table
      action: confirm
`
	if err := os.WriteFile(path, []byte(rules), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}

	g, err := NewGuardrail(path)
	if err != nil {
		t.Fatalf("NewGuardrail: %v", err)
	}
	got, err := g.Evaluate("mysql -e 'drop table users'")
	if err != nil {
		t.Fatalf("Evaluate: %v", err)
	}
	if got.Level != domain.RiskHigh || got.Action != domain.ActionConfirm {
		t.Fatalf("custom rule not applied: %+v", got)
	}
}

func TestNewGuardrailInvalidRegex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "guardrail.yaml")
	rules := `rules:
  danger_patterns:
    - pattern: '['
      level: high
      message: broken
      action: confirm
`
	if err := os.WriteFile(path, []byte(rules), 0o600); err != nil {
		t.Fatalf("write rules: %v", err)
	}
	if _, err := NewGuardrail(path); err == nil {
		t.Fatal("expected error for invalid regex")
	}
}
