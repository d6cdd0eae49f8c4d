package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    CampaignStatus
		to      CampaignStatus
		allowed bool
	}{
		{"pending to approved", StatusPendingApproval, StatusApproved, true},
		{"pending to rejected", StatusPendingApproval, StatusRejected, true},
		{"pending to running", StatusPendingApproval, StatusRunning, false},
		{"approved to running", StatusApproved, StatusRunning, true},
		{"approved to scheduled", StatusApproved, StatusScheduled, true},
		{"rejected to resubmit", StatusRejected, StatusPendingApproval, true},
		{"running pause cycle", StatusRunning, StatusPaused, true},
		{"paused resume", StatusPaused, StatusRunning, true},
		{"running to completed", StatusRunning, StatusCompleted, true},
		{"completed is terminal", StatusCompleted, StatusRunning, false},
		{"completed stays completed", StatusCompleted, StatusEditing, false},
		{"draft cannot be approved directly", StatusDraft, StatusApproved, false},
		{"unknown status has no moves", CampaignStatus("BOGUS"), StatusRunning, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusGuards(t *testing.T) {
	editable := []CampaignStatus{StatusDraft, StatusPlanning, StatusRejected, StatusPaused, StatusEditing}
	for _, s := range editable {
		assert.True(t, s.Editable(), "expected %s to be editable", s)
	}
	for _, s := range []CampaignStatus{StatusPendingApproval, StatusApproved, StatusRunning, StatusCompleted} {
		assert.False(t, s.Editable(), "expected %s to not be editable", s)
	}

	submittable := []CampaignStatus{StatusDraft, StatusPlanning, StatusDesignComplete, StatusEditing}
	for _, s := range submittable {
		assert.True(t, s.Submittable(), "expected %s to be submittable", s)
	}
	assert.False(t, StatusPendingApproval.Submittable())
	assert.False(t, StatusRejected.Submittable())

	for _, s := range []CampaignStatus{StatusDraft, StatusPlanning, StatusRejected} {
		assert.True(t, s.Deletable(), "expected %s to be deletable", s)
	}
	for _, s := range []CampaignStatus{StatusPendingApproval, StatusRunning, StatusCompleted, StatusPaused} {
		assert.False(t, s.Deletable(), "expected %s to not be deletable", s)
	}
}

func TestAllowedTransitionsTerminal(t *testing.T) {
	assert.Empty(t, AllowedTransitions(StatusCompleted))
}
