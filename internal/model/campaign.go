package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CampaignStatus is one of the workflow states a campaign moves through.
type CampaignStatus string

const (
	StatusDraft           CampaignStatus = "DRAFT"
	StatusPlanning        CampaignStatus = "PLANNING"
	StatusEditing         CampaignStatus = "EDITING"
	StatusDesignComplete  CampaignStatus = "DESIGN_COMPLETE"
	StatusPendingApproval CampaignStatus = "PENDING_APPROVAL"
	StatusApproved        CampaignStatus = "APPROVED"
	StatusRejected        CampaignStatus = "REJECTED"
	StatusScheduled       CampaignStatus = "SCHEDULED"
	StatusRunning         CampaignStatus = "RUNNING"
	StatusPaused          CampaignStatus = "PAUSED"
	StatusCompleted       CampaignStatus = "COMPLETED"
)

type Campaign struct {
	ID              int             `db:"id" json:"id"`
	Name            string          `db:"name" json:"name"`
	Type            string          `db:"type" json:"type"`
	Status          CampaignStatus  `db:"status" json:"status"`
	Description     string          `db:"description" json:"description"`
	StartDate       *time.Time      `db:"start_date" json:"start_date,omitempty"`
	EndDate         *time.Time      `db:"end_date" json:"end_date,omitempty"`
	Budget          decimal.Decimal `db:"budget" json:"budget"`
	Spent           decimal.Decimal `db:"spent" json:"spent"`
	CustomerGroupID *int            `db:"customer_group_id" json:"customer_group_id,omitempty"`
	Channel         string          `db:"channel" json:"channel"`
	OfferID         *int            `db:"offer_id" json:"offer_id,omitempty"`
	ScriptID        *int            `db:"script_id" json:"script_id,omitempty"`
	CreatedBy       string          `db:"created_by" json:"created_by"`
	UpdatedBy       string          `db:"updated_by" json:"updated_by"`
	CreatedAt       time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt       *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

// campaignTransitions enumerates the allowed status moves. Edit and delete
// permissions are separate guards (Editable/Deletable) because neither is a
// plain status move.
var campaignTransitions = map[CampaignStatus][]CampaignStatus{
	StatusDraft:           {StatusPlanning, StatusEditing, StatusPendingApproval},
	StatusPlanning:        {StatusEditing, StatusDesignComplete, StatusPendingApproval},
	StatusEditing:         {StatusDesignComplete, StatusPendingApproval},
	StatusDesignComplete:  {StatusPendingApproval},
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusScheduled, StatusRunning},
	StatusRejected:        {StatusEditing, StatusPendingApproval},
	StatusScheduled:       {StatusRunning},
	StatusRunning:         {StatusPaused, StatusCompleted},
	StatusPaused:          {StatusRunning, StatusEditing, StatusCompleted},
	StatusCompleted:       {},
}

// CanTransition checks if a status transition is allowed.
func CanTransition(from, to CampaignStatus) bool {
	for _, next := range campaignTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedTransitions returns the statuses reachable from the given one.
func AllowedTransitions(from CampaignStatus) []CampaignStatus {
	return campaignTransitions[from]
}

// Editable reports whether campaign fields may still be modified.
func (s CampaignStatus) Editable() bool {
	switch s {
	case StatusDraft, StatusPlanning, StatusRejected, StatusPaused, StatusEditing:
		return true
	}
	return false
}

// Submittable reports whether the campaign may be submitted for approval.
func (s CampaignStatus) Submittable() bool {
	switch s {
	case StatusDraft, StatusPlanning, StatusDesignComplete, StatusEditing:
		return true
	}
	return false
}

// Deletable reports whether the campaign may still be removed.
func (s CampaignStatus) Deletable() bool {
	switch s {
	case StatusDraft, StatusPlanning, StatusRejected:
		return true
	}
	return false
}
