package hook

import (
	"encoding/json"

	"github.com/dgerlanc/offlimits/internal/logger"
)

// Permission decisions on the wire
const (
	DecisionAllow = "allow"
	DecisionDeny  = "deny"
)

// FormatDecision returns the JSON output for a decision. Pass-through
// omits the permissionDecision field so the host applies its default.
func FormatDecision(d Decision) string {
	out := Output{HookEventName: EventPreToolUse}
	switch d.Verdict {
	case Allow:
		out.PermissionDecision = DecisionAllow
	case Deny:
		out.PermissionDecision = DecisionDeny
		out.PermissionDecisionReason = d.Reason
	}

	data, err := json.Marshal(out)
	if err != nil {
		logger.Debug("failed to marshal decision output", "error", err)
		return `{"hookEventName":"PreToolUse","permissionDecision":"deny","permissionDecisionReason":"internal error"}`
	}
	return string(data)
}
