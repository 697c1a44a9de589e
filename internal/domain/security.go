package domain

// RiskLevel enumerates guardrail outcomes.
type RiskLevel string

const (
	RiskSafe     RiskLevel = "safe"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// GuardrailAction describes how the executor should react to a risk level.
type GuardrailAction string

const (
	ActionAllow           GuardrailAction = "allow"
	ActionConfirm         GuardrailAction = "confirm"
	ActionExplicitConfirm GuardrailAction = "explicit_confirm"
	ActionBlock           GuardrailAction = "block"
)

// RiskAssessment aggregates security evaluation data for one command.
type RiskAssessment struct {
	Level        RiskLevel
	Action       GuardrailAction
	Reasons      []string
	MatchedRules []string
}

// RequiresAcknowledgment reports whether the assessment forces an explicit
// user confirmation even when confirm_execution is disabled.
func (a RiskAssessment) RequiresAcknowledgment() bool {
	return a.Action == ActionConfirm || a.Action == ActionExplicitConfirm
}

// Blocked reports whether execution is refused outright.
func (a RiskAssessment) Blocked() bool {
	return a.Action == ActionBlock
}
