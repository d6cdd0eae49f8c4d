package model

import "time"

// ApprovalStatus is the resolution state of one approval request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// PendingApproval is one approval-request cycle for a campaign submission.
// It is resolved exactly once; a resubmission creates a new row.
type PendingApproval struct {
	ID              int            `db:"id" json:"id"`
	CampaignID      int            `db:"campaign_id" json:"campaign_id"`
	RequesterID     string         `db:"requester_id" json:"requester_id"`
	ApproverID      string         `db:"approver_id" json:"approver_id"`
	Priority        string         `db:"priority" json:"priority"`
	RequestMessage  string         `db:"request_message" json:"request_message"`
	ApprovalStatus  ApprovalStatus `db:"approval_status" json:"approval_status"`
	ApprovalComment string         `db:"approval_comment" json:"approval_comment"`
	ApprovalDate    *time.Time     `db:"approval_date" json:"approval_date,omitempty"`
	CreatedAt       time.Time      `db:"created_at" json:"created_at"`
}

// PendingCampaign is the approval request joined with its campaign, as listed
// on the approval inbox screen.
type PendingCampaign struct {
	PendingApproval
	CampaignName   string         `db:"campaign_name" json:"campaign_name"`
	CampaignType   string         `db:"campaign_type" json:"campaign_type"`
	CampaignStatus CampaignStatus `db:"campaign_status" json:"campaign_status"`
}
