package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeSubscriptionPayloadShapes(t *testing.T) {
	p, err := DecodeSubscriptionPayload([]byte(`{"isActive":true,"status":"ACTIVE"}`))
	require.NoError(t, err)
	assert.IsType(t, ActiveFlag{}, p)

	p, err = DecodeSubscriptionPayload([]byte(`{"data":{"status":"ACTIVE","expiresAt":"2030-01-01T00:00:00Z","planId":"basic"}}`))
	require.NoError(t, err)
	legacy, ok := p.(LegacyStatus)
	require.True(t, ok)
	assert.Equal(t, "basic", legacy.PlanID)
	require.NotNil(t, legacy.ExpiresAt)

	_, err = DecodeSubscriptionPayload([]byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownSubscriptionShape)

	_, err = DecodeSubscriptionPayload([]byte(`not json`))
	assert.Error(t, err)
}

func TestNormalizeSubscription(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	future := now.Add(time.Hour)
	past := now.Add(-time.Hour)

	tests := []struct {
		name    string
		payload SubscriptionPayload
		want    bool
	}{
		{name: "flag true ignores expiry", payload: ActiveFlag{IsActive: true, ExpiresAt: &past}, want: true},
		{name: "flag false", payload: ActiveFlag{IsActive: false, ExpiresAt: &future}, want: false},
		{name: "legacy active future", payload: LegacyStatus{Status: "ACTIVE", ExpiresAt: &future}, want: true},
		{name: "legacy active past", payload: LegacyStatus{Status: "ACTIVE", ExpiresAt: &past}, want: false},
		{name: "legacy active at now", payload: LegacyStatus{Status: "ACTIVE", ExpiresAt: &now}, want: false},
		{name: "legacy without expiry", payload: LegacyStatus{Status: "ACTIVE"}, want: false},
		{name: "legacy lowercase", payload: LegacyStatus{Status: "active", ExpiresAt: &future}, want: false},
		{name: "nil payload", payload: nil, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeSubscription(tt.payload, now).Active)
		})
	}
}
