package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"time"
)

// SubscriptionStatus is the classified result of an active-subscription lookup.
// It is recomputed on every guarded visit and never persisted.
type SubscriptionStatus struct {
	Active    bool       `json:"active"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	PlanID    string     `json:"planId,omitempty"`
}

// Inactive is the status used whenever no subscription can be confirmed.
var Inactive = SubscriptionStatus{}

// SubscriptionPayload is one of the response shapes served by
// GET /subscription/my-active-subscription: ActiveFlag or LegacyStatus.
type SubscriptionPayload interface {
	subscriptionPayload()
}

// ActiveFlag is the current shape, carrying a direct isActive boolean.
type ActiveFlag struct {
	IsActive  bool
	ExpiresAt *time.Time
	PlanID    string
}

// LegacyStatus is the older {status, expiresAt} shape.
type LegacyStatus struct {
	Status    string
	ExpiresAt *time.Time
	PlanID    string
}

func (ActiveFlag) subscriptionPayload()   {}
func (LegacyStatus) subscriptionPayload() {}

// ErrUnknownSubscriptionShape is returned when neither shape can be recognised.
var ErrUnknownSubscriptionShape = errors.New("unrecognised subscription payload")

type rawSubscription struct {
	IsActive  *bool      `json:"isActive"`
	Status    *string    `json:"status"`
	ExpiresAt *time.Time `json:"expiresAt"`
	PlanID    string     `json:"planId"`
	Plan      *struct {
		ID json.RawMessage `json:"id"`
	} `json:"plan"`
	Data json.RawMessage `json:"data"`
}

// DecodeSubscriptionPayload decodes a response body into its tagged shape.
// A {"data": ...} envelope is unwrapped once.
func DecodeSubscriptionPayload(body []byte) (SubscriptionPayload, error) {
	var raw rawSubscription
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if raw.IsActive == nil && raw.Status == nil && len(raw.Data) > 0 && !bytes.Equal(raw.Data, []byte("null")) {
		data := raw.Data
		raw = rawSubscription{}
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
	}

	planID := raw.PlanID
	if planID == "" && raw.Plan != nil {
		planID = string(bytes.Trim(raw.Plan.ID, `"`))
	}

	switch {
	case raw.IsActive != nil:
		return ActiveFlag{IsActive: *raw.IsActive, ExpiresAt: raw.ExpiresAt, PlanID: planID}, nil
	case raw.Status != nil:
		return LegacyStatus{Status: *raw.Status, ExpiresAt: raw.ExpiresAt, PlanID: planID}, nil
	default:
		return nil, ErrUnknownSubscriptionShape
	}
}

// NormalizeSubscription is the single place where both shapes are classified.
// A legacy status is active only when it reads ACTIVE and its expiry lies
// strictly after now.
func NormalizeSubscription(p SubscriptionPayload, now time.Time) SubscriptionStatus {
	switch v := p.(type) {
	case ActiveFlag:
		return SubscriptionStatus{Active: v.IsActive, ExpiresAt: v.ExpiresAt, PlanID: v.PlanID}
	case LegacyStatus:
		active := v.Status == "ACTIVE" && v.ExpiresAt != nil && v.ExpiresAt.After(now)
		return SubscriptionStatus{Active: active, ExpiresAt: v.ExpiresAt, PlanID: v.PlanID}
	default:
		return Inactive
	}
}

// SubscriptionRecord is one entry of GET /subscription/my-subscriptions.
type SubscriptionRecord struct {
	ID        int        `json:"id"`
	PlanID    string     `json:"planId,omitempty"`
	PlanName  string     `json:"planName,omitempty"`
	Status    string     `json:"status"`
	Price     float64    `json:"price,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
}
