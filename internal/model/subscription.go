package model

import (
	"fmt"
	"time"
)

type Subscription struct {
	ID                     string     `db:"id" json:"id"`
	UserID                 string     `db:"user_id" json:"-"`
	PlanID                 string     `db:"plan_id" json:"planId"`
	Status                 string     `db:"status" json:"status"`
	Provider               string     `db:"provider" json:"provider,omitempty"`
	ProviderCustomerID     *string    `db:"provider_customer_id" json:"-"`
	ProviderSubscriptionID *string    `db:"provider_subscription_id" json:"-"`
	CurrentPeriodEnd       *time.Time `db:"current_period_end" json:"currentPeriodEnd,omitempty"`
	Amount                 *int       `db:"amount" json:"amount,omitempty"`
	Currency               string     `db:"currency" json:"currency,omitempty"`
	Interval               *string    `db:"interval" json:"interval,omitempty"`
	CreatedAt              time.Time  `db:"created_at" json:"createdAt"`
	UpdatedAt              time.Time  `db:"updated_at" json:"updatedAt"`
}

const (
	SubscriptionStatusActive    = "active"
	SubscriptionStatusCancelled = "cancelled"
)

const (
	ProviderPolar  = "polar"
	ProviderStripe = "stripe"
)

const (
	SubscriptionPlanFree = "free"
	SubscriptionPlanPro  = "pro"
)

const (
	SubscriptionIntervalMonthly = "monthly"
	SubscriptionIntervalYearly  = "yearly"
)

const (
	FeatureAICoach = "ai_coach"
	FeatureExport  = "export"
)

func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive
}

func (s *Subscription) IsPaid() bool {
	return s.PlanID != SubscriptionPlanFree && s.IsActive()
}

func (s *Subscription) FormatPrice() string {
	if s.Amount == nil || *s.Amount == 0 {
		return ""
	}

	currencySymbols := map[string]string{
		"usd": "$",
		"eur": "€",
		"gbp": "£",
	}

	amount := float64(*s.Amount) / 100.0
	symbol := currencySymbols[s.Currency]
	if symbol == "" {
		symbol = "$"
	}

	interval := "month"
	if s.Interval != nil && *s.Interval == SubscriptionIntervalYearly {
		interval = "year"
	}

	return fmt.Sprintf("%s%.0f/%s", symbol, amount, interval)
}

// ActiveCycleLimit returns the maximum number of unarchived cycles allowed
// for this plan. Returns -1 for unlimited.
func (s *Subscription) ActiveCycleLimit() int {
	if s.IsPaid() {
		return -1
	}
	return 1
}

// GoalLimit returns the maximum number of active goals allowed per cycle.
// Returns -1 for unlimited.
func (s *Subscription) GoalLimit() int {
	if s.IsPaid() {
		return -1
	}
	return 5
}

// HasFeature checks if the subscription has access to a specific feature.
func (s *Subscription) HasFeature(feature string) bool {
	if !s.IsActive() {
		return false
	}

	features := map[string][]string{
		SubscriptionPlanFree: {},
		SubscriptionPlanPro: {
			FeatureAICoach,
			FeatureExport,
		},
	}

	planFeatures, exists := features[s.PlanID]
	if !exists {
		return false
	}

	for _, f := range planFeatures {
		if f == feature {
			return true
		}
	}

	return false
}
