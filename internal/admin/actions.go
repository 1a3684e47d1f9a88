// internal/admin/actions.go
// Admin-action detail payloads, a tagged union mirroring the
// notification payload scheme: a discriminant kind plus a typed data
// object, with unknown kinds rejected at decode time.

package admin

import (
	"encoding/json"
	"fmt"
)

// Admin action kinds.
const (
	ActionWarnUser             = "warn_user"
	ActionSuspendUser          = "suspend_user"
	ActionReinstateUser        = "reinstate_user"
	ActionCloseJob             = "close_job"
	ActionResolveReport        = "resolve_report"
	ActionVerificationDecision = "verification_decision"
)

// ActionDetails is one arm of the union.
type ActionDetails interface {
	ActionKind() string
}

type WarnUserDetails struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason"`
}

func (WarnUserDetails) ActionKind() string { return ActionWarnUser }

type SuspendUserDetails struct {
	UserID int64  `json:"user_id"`
	Reason string `json:"reason"`
}

func (SuspendUserDetails) ActionKind() string { return ActionSuspendUser }

type ReinstateUserDetails struct {
	UserID int64 `json:"user_id"`
}

func (ReinstateUserDetails) ActionKind() string { return ActionReinstateUser }

type CloseJobDetails struct {
	JobID  int64  `json:"job_id"`
	Reason string `json:"reason"`
}

func (CloseJobDetails) ActionKind() string { return ActionCloseJob }

type ResolveReportDetails struct {
	ReportID   int64  `json:"report_id"`
	Status     string `json:"status"`
	Resolution string `json:"resolution"`
}

func (ResolveReportDetails) ActionKind() string { return ActionResolveReport }

type VerificationDecisionDetails struct {
	RequestID int64   `json:"request_id"`
	Approved  bool    `json:"approved"`
	Note      *string `json:"note,omitempty"`
}

func (VerificationDecisionDetails) ActionKind() string { return ActionVerificationDecision }

type actionEnvelope struct {
	Kind string          `json:"kind"`
	Data json.RawMessage `json:"data"`
}

// EncodeActionDetails wraps details in their typed envelope.
func EncodeActionDetails(d ActionDetails) (json.RawMessage, error) {
	data, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	return json.Marshal(actionEnvelope{Kind: d.ActionKind(), Data: data})
}

// DecodeActionDetails restores a stored envelope into its concrete
// details type.
func DecodeActionDetails(raw json.RawMessage) (ActionDetails, error) {
	var env actionEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("malformed action details: %w", err)
	}

	var d ActionDetails
	switch env.Kind {
	case ActionWarnUser:
		d = &WarnUserDetails{}
	case ActionSuspendUser:
		d = &SuspendUserDetails{}
	case ActionReinstateUser:
		d = &ReinstateUserDetails{}
	case ActionCloseJob:
		d = &CloseJobDetails{}
	case ActionResolveReport:
		d = &ResolveReportDetails{}
	case ActionVerificationDecision:
		d = &VerificationDecisionDetails{}
	default:
		return nil, fmt.Errorf("unknown action kind %q", env.Kind)
	}

	if err := json.Unmarshal(env.Data, d); err != nil {
		return nil, fmt.Errorf("malformed %s details: %w", env.Kind, err)
	}
	return d, nil
}
