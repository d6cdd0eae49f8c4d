package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// OfferConditions is the usage-restriction sub-object stored as JSONB.
type OfferConditions struct {
	TimeFrom          string   `json:"time_from,omitempty"` // "HH:MM"
	TimeTo            string   `json:"time_to,omitempty"`
	MinQuantity       *int     `json:"min_quantity,omitempty"`
	MaxQuantity       *int     `json:"max_quantity,omitempty"`
	MinAmount         *int64   `json:"min_amount,omitempty"`
	MaxAmount         *int64   `json:"max_amount,omitempty"`
	Weekdays          []string `json:"weekdays,omitempty"` // MON..SUN; empty = every day
	PointAccumulation bool     `json:"point_accumulation"`
	DuplicateUsage    bool     `json:"duplicate_usage"`
	MultipleDiscount  bool     `json:"multiple_discount"`
}

type Offer struct {
	ID             int             `db:"id" json:"id"`
	Name           string          `db:"name" json:"name"`
	Type           string          `db:"type" json:"type"`
	Value          decimal.Decimal `db:"value" json:"value"`
	ValueType      string          `db:"value_type" json:"value_type"` // percentage | fixed
	Status         string          `db:"status" json:"status"`         // active | inactive | scheduled
	StartDate      *time.Time      `db:"start_date" json:"start_date,omitempty"`
	EndDate        *time.Time      `db:"end_date" json:"end_date,omitempty"`
	MaxUsage       int             `db:"max_usage" json:"max_usage"`
	UsageCount     int             `db:"usage_count" json:"usage_count"`
	Conditions     OfferConditions `db:"conditions" json:"conditions"`
	TargetProducts []string        `db:"target_products" json:"target_products"`
	UseYn          string          `db:"use_yn" json:"use_yn"`
	CreatedBy      string          `db:"created_by" json:"created_by"`
	UpdatedBy      string          `db:"updated_by" json:"updated_by"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt      *time.Time      `db:"updated_at" json:"updated_at,omitempty"`
}

const (
	OfferValuePercentage = "percentage"
	OfferValueFixed      = "fixed"

	OfferStatusActive    = "active"
	OfferStatusInactive  = "inactive"
	OfferStatusScheduled = "scheduled"
)
