package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapBusToAPIPayloadCreate(t *testing.T) {
	payload := MapBusToAPIPayload(Raw{
		"busNumber": "OA-1",
		"capacity":  "45",
	}, false)

	assert.Equal(t, "OA-1", payload["bus_number"])
	assert.Equal(t, 45, payload["capacity"])

	attendantID, ok := payload["attendant_id"].(string)
	require.True(t, ok)
	assert.NotEmpty(t, attendantID)

	// Create mode fills every backend field.
	assert.Equal(t, "OA-1", payload["bus_name"]) // falls back to bus_number
	assert.Equal(t, defaultPrioritySeats, payload["priority_seat"])
	assert.Equal(t, "available", payload["status"])
	assert.Contains(t, payload, "plate_number")
	assert.Contains(t, payload, "origin")
	assert.Contains(t, payload, "destination")
	assert.Contains(t, payload, "attendant_name")
	assert.Contains(t, payload, "company_email")
	assert.Contains(t, payload, "company_contact")
	assert.Contains(t, payload, "current_location")
	assert.Nil(t, payload["current_location"])
}

func TestMapBusToAPIPayloadCreateFull(t *testing.T) {
	payload := MapBusToAPIPayload(Raw{
		"busNumber":             "OA-2",
		"busCompany":            "Victory Liner",
		"plateNumber":           "XYZ-99",
		"capacity":              float64(50),
		"prioritySeat":          float64(8),
		"route":                 "Cubao - Baguio",
		"status":                "In Transit",
		"busAttendant":          "M. Cruz",
		"attendantId":           "att-2",
		"busCompanyEmail":       "ops@victory.ph",
		"busCompanyContact":     "0917-111-2222",
		"registeredDestination": "Baguio City",
	}, false)

	assert.Equal(t, "OA-2", payload["bus_number"])
	assert.Equal(t, "Victory Liner", payload["bus_name"])
	assert.Equal(t, "XYZ-99", payload["plate_number"])
	assert.Equal(t, 50, payload["capacity"])
	assert.Equal(t, 8, payload["priority_seat"])
	assert.Equal(t, "Cubao", payload["origin"])
	// Explicit registered destination beats the split remainder.
	assert.Equal(t, "Baguio City", payload["destination"])
	assert.Equal(t, "in_transit", payload["status"])
	assert.Equal(t, "M. Cruz", payload["attendant_name"])
	assert.Equal(t, "att-2", payload["attendant_id"])
	assert.Equal(t, "ops@victory.ph", payload["company_email"])
	assert.Equal(t, "0917-111-2222", payload["company_contact"])
}

func TestMapBusToAPIPayloadPartialOmitsAbsent(t *testing.T) {
	payload := MapBusToAPIPayload(Raw{"status": "Maintenance"}, true)

	assert.Equal(t, "maintenance", payload["status"])
	assert.NotContains(t, payload, "bus_number")
	assert.NotContains(t, payload, "bus_name")
	assert.NotContains(t, payload, "plate_number")
	assert.NotContains(t, payload, "capacity")
	assert.NotContains(t, payload, "priority_seat")
	assert.NotContains(t, payload, "origin")
	assert.NotContains(t, payload, "destination")
	assert.NotContains(t, payload, "company_email")
	assert.NotContains(t, payload, "current_location")

	// attendant_id is the one exception: generated even on a patch.
	attendantID, ok := payload["attendant_id"].(string)
	assert.True(t, ok)
	assert.NotEmpty(t, attendantID)
}

func TestMapBusToAPIPayloadPartialKeepsProvidedID(t *testing.T) {
	payload := MapBusToAPIPayload(Raw{"attendant_id": "att-7"}, true)
	assert.Equal(t, "att-7", payload["attendant_id"])
}

func TestMapBusToAPIPayloadRouteSplitInPartial(t *testing.T) {
	payload := MapBusToAPIPayload(Raw{"route": "Makati - BGC"}, true)
	assert.Equal(t, "Makati", payload["origin"])
	assert.Equal(t, "BGC", payload["destination"])
}

func TestMapBusToAPIPayloadNilInput(t *testing.T) {
	assert.NotPanics(t, func() {
		payload := MapBusToAPIPayload(nil, false)
		assert.NotEmpty(t, payload["attendant_id"])
	})
}
