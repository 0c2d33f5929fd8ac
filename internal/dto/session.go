package dto

import "github.com/SscSPs/smart_wallet/internal/core/domain"

// DecoyRequest turns the decoy projection on or off for the session.
type DecoyRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// SessionResponse is the display state of the session.
type SessionResponse struct {
	Decoy bool `json:"decoy"`
}

// DismissAlertRequest closes an alert until the next unlock.
// GoalID is required for goal alerts.
type DismissAlertRequest struct {
	Kind   string `json:"kind" binding:"required,oneof=savings debt goal"`
	GoalID string `json:"goalId" binding:"required_if=Kind goal"`
}

// AlertsResponse lists the active alerts with their count.
type AlertsResponse struct {
	domain.Alerts
	Count int `json:"count"`
}

// ExportResponse tells where a statement was published.
type ExportResponse struct {
	Reference string `json:"reference"`
}
