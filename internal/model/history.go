package model

import "time"

// History action types. One row is appended for every state-changing
// operation on a campaign.
const (
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionSubmitted = "submitted"
	ActionApproved  = "approved"
	ActionRejected  = "rejected"
	ActionStarted   = "started"
	ActionPaused    = "paused"
	ActionCompleted = "completed"
	ActionDeleted   = "deleted"
)

type CampaignHistory struct {
	ID             int            `db:"id" json:"id"`
	CampaignID     int            `db:"campaign_id" json:"campaign_id"`
	CampaignName   string         `db:"campaign_name" json:"campaign_name,omitempty"`
	ActionType     string         `db:"action_type" json:"action_type"`
	ActionBy       string         `db:"action_by" json:"action_by"`
	ActionDate     time.Time      `db:"action_date" json:"action_date"`
	PreviousStatus CampaignStatus `db:"previous_status" json:"previous_status"`
	NewStatus      CampaignStatus `db:"new_status" json:"new_status"`
	Comments       string         `db:"comments" json:"comments"`
}
