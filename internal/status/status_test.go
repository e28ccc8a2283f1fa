package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToUIStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"available", UIAvailable},
		{"active", UIActive},
		{"in_transit", UIInTransit},
		{"arrived", UIArrived},
		{"maintenance", UIMaintenance},
		{"archived", UIOffline},
		{"offline", UIOffline},
		{"  ACTIVE  ", UIActive},
		{"In_Transit", UIInTransit},
		{"", UIOffline},
		{"garbage", UIOffline},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToUIStatus(tt.raw), "raw=%q", tt.raw)
	}
}

func TestToAPIStatus(t *testing.T) {
	tests := []struct {
		ui   string
		want string
	}{
		{"Active", APIActive},
		{"Available", APIAvailable},
		{"In Transit", APIInTransit},
		{"in_transit", APIInTransit},
		{"Arrived", APIArrived},
		{"Maintenance", APIMaintenance},
		{"Inactive", APIOffline},
		{"Archived", APIOffline},
		{"Offline", APIOffline},
		{"", APIAvailable},
		{"garbage", APIAvailable},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToAPIStatus(tt.ui), "ui=%q", tt.ui)
	}
}

// The two directions must agree for every status the backend can emit.
func TestStatusRoundTrip(t *testing.T) {
	raws := map[string]string{
		"available":   "available",
		"active":      "active",
		"in_transit":  "in_transit",
		"arrived":     "arrived",
		"maintenance": "maintenance",
		"archived":    "offline",
		"offline":     "offline",
	}

	for raw, want := range raws {
		assert.Equal(t, want, ToAPIStatus(ToUIStatus(raw)), "raw=%q", raw)
	}

	// Case-insensitive round trip.
	assert.Equal(t, "offline", ToAPIStatus(ToUIStatus("ARCHIVED")))
}

func TestToAnalyticsStatus(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"active", AnalyticsActive},
		{"available", AnalyticsActive},
		{"in_transit", AnalyticsActive},
		{"arrived", AnalyticsActive},
		{"Active", AnalyticsActive},
		{"maintenance", AnalyticsMaintenance},
		{"Maintenance", AnalyticsMaintenance},
		{"offline", AnalyticsInactive},
		{"archived", AnalyticsInactive},
		{"", AnalyticsInactive},
		{"whatever", AnalyticsInactive},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ToAnalyticsStatus(tt.raw), "raw=%q", tt.raw)
	}
}
