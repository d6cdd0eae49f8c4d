package model

import "time"

// GroupCriteria is the structured audience filter stored as JSONB. Every
// dimension is optional; a nil/empty field means "no constraint".
type GroupCriteria struct {
	AgeMin          *int     `json:"age_min,omitempty"`
	AgeMax          *int     `json:"age_max,omitempty"`
	Gender          string   `json:"gender,omitempty"`
	MarriageStatus  string   `json:"marriage_status,omitempty"`
	MemberGrade     string   `json:"member_grade,omitempty"`
	MarketingYn     string   `json:"marketing_yn,omitempty"`
	SMSYn           string   `json:"sms_yn,omitempty"`
	EmailYn         string   `json:"email_yn,omitempty"`
	KakaoYn         string   `json:"kakao_yn,omitempty"`
	AppPushYn       string   `json:"app_push_yn,omitempty"`
	Region          string   `json:"region,omitempty"`
	AnniversaryType string   `json:"anniversary_type,omitempty"`
	EmailDomains    []string `json:"email_domains,omitempty"`
}

type CustomerGroup struct {
	ID             int           `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	Description    string        `db:"description" json:"description"`
	Criteria       GroupCriteria `db:"criteria" json:"criteria"`
	Status         string        `db:"status" json:"status"` // ACTIVE | INACTIVE
	EstimatedCount int           `db:"estimated_count" json:"estimated_count"`
	ActualCount    int           `db:"actual_count" json:"actual_count"`
	UseYn          string        `db:"use_yn" json:"use_yn"`
	CreatedBy      string        `db:"created_by" json:"created_by"`
	CreatedDept    string        `db:"created_dept" json:"created_dept"`
	UpdatedBy      string        `db:"updated_by" json:"updated_by"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time    `db:"updated_at" json:"updated_at,omitempty"`
}

const (
	GroupStatusActive   = "ACTIVE"
	GroupStatusInactive = "INACTIVE"
)

// BlockingCampaign is a campaign that prevents deactivating a customer group
// or deleting an offer, returned to the caller for display.
type BlockingCampaign struct {
	ID     int            `db:"id" json:"id"`
	Name   string         `db:"name" json:"name"`
	Status CampaignStatus `db:"status" json:"status"`
}
