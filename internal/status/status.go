// Package status maps between the backend status vocabulary and the labels
// the console displays. The two directions deliberately default differently:
// unknown input coming from a backend lands in Offline (safest display
// state), while unknown input going out lands in available (so a new record
// is never silently deactivated by a typo).
package status

import "strings"

// UI status labels.
const (
	UIActive      = "Active"
	UIAvailable   = "Available"
	UIInTransit   = "In Transit"
	UIArrived     = "Arrived"
	UIMaintenance = "Maintenance"
	UIOffline     = "Offline"
)

// Backend status values.
const (
	APIActive      = "active"
	APIAvailable   = "available"
	APIInTransit   = "in_transit"
	APIArrived     = "arrived"
	APIMaintenance = "maintenance"
	APIOffline     = "offline"
)

// Analytics buckets.
const (
	AnalyticsActive      = "Active"
	AnalyticsMaintenance = "Maintenance"
	AnalyticsInactive    = "Inactive"
)

var rawToUI = map[string]string{
	"available":   UIAvailable,
	"active":      UIActive,
	"in_transit":  UIInTransit,
	"arrived":     UIArrived,
	"maintenance": UIMaintenance,
	"archived":    UIOffline,
	"offline":     UIOffline,
}

var uiToAPI = map[string]string{
	"active":      APIActive,
	"available":   APIAvailable,
	"in_transit":  APIInTransit,
	"arrived":     APIArrived,
	"maintenance": APIMaintenance,
	"inactive":    APIOffline,
	"archived":    APIOffline,
	"offline":     APIOffline,
}

// ToUIStatus maps a raw backend status onto its display label. Unknown or
// empty input maps to Offline.
func ToUIStatus(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if ui, ok := rawToUI[key]; ok {
		return ui
	}
	return UIOffline
}

// ToAPIStatus maps a display label back onto the backend vocabulary. It
// accepts any casing and both spaced and underscored variants ("In Transit",
// "in_transit"). Unknown input maps to available.
func ToAPIStatus(ui string) string {
	key := strings.ToLower(strings.TrimSpace(ui))
	key = strings.ReplaceAll(key, " ", "_")
	if api, ok := uiToAPI[key]; ok {
		return api
	}
	return APIAvailable
}

// ToAnalyticsStatus buckets a raw status into the coarse three-way split
// the dashboard charts use.
func ToAnalyticsStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "active", "available", "in_transit", "arrived":
		return AnalyticsActive
	case "maintenance":
		return AnalyticsMaintenance
	}
	return AnalyticsInactive
}
