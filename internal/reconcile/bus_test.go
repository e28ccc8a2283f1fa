package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeBusAliasPriority(t *testing.T) {
	raw := Raw{
		"id":              "bus-7",
		"bus_number":      "OA-102",
		"bus_name":        "Ohayami Trans",
		"plate_number":    "ABC-1234",
		"capacity":        float64(45),
		"attendant_name":  "J. Reyes",
		"attendant_id":    "att-1",
		"company_email":   "ops@ohayami.ph",
		"company_contact": "0917-000-0000",
		"status":          "in_transit",
		"origin":          "Makati",
		"destination":     "BGC",
		"boarded_count":   float64(12),
		"updated_at":      float64(1700000000000),
	}

	bus := NormalizeBus(raw, 0)

	assert.Equal(t, "bus-7", bus.ID)
	assert.Equal(t, "OA-102", bus.BusNumber)
	assert.Equal(t, "Ohayami Trans", bus.BusCompany)
	assert.Equal(t, "ABC-1234", bus.PlateNumber)
	assert.Equal(t, 45, bus.Capacity)
	assert.Equal(t, "J. Reyes", bus.BusAttendant)
	assert.Equal(t, "att-1", bus.AttendantID)
	assert.Equal(t, "ops@ohayami.ph", bus.BusCompanyEmail)
	assert.Equal(t, "0917-000-0000", bus.BusCompanyContact)
	assert.Equal(t, "In Transit", bus.Status)
	assert.Equal(t, "Makati - BGC", bus.Route)
	assert.Equal(t, "BGC", bus.RegisteredDestination)
	assert.Equal(t, 12, bus.QnextBoarded)
	assert.Equal(t, int64(1700000000000), bus.LastUpdated)
}

func TestNormalizeBusCamelCaseAliases(t *testing.T) {
	raw := Raw{
		"busNumber":   "OA-1",
		"busCompany":  "Victory Liner",
		"plateNumber": "XYZ-99",
		"attendantId": "att-9",
		"route":       "Cubao - Baguio",
	}

	bus := NormalizeBus(raw, 3)

	assert.Equal(t, "4", bus.ID) // fallbackIndex + 1
	assert.Equal(t, "OA-1", bus.BusNumber)
	assert.Equal(t, "Victory Liner", bus.BusCompany)
	assert.Equal(t, "XYZ-99", bus.PlateNumber)
	assert.Equal(t, "att-9", bus.AttendantID)
	assert.Equal(t, "Cubao - Baguio", bus.Route)
}

func TestNormalizeBusDefaults(t *testing.T) {
	before := time.Now().UnixMilli()
	bus := NormalizeBus(Raw{}, 0)
	after := time.Now().UnixMilli()

	assert.Equal(t, "1", bus.ID)
	assert.Equal(t, "N/A", bus.BusNumber)
	assert.Equal(t, "N/A", bus.Route)
	assert.Equal(t, "N/A", bus.BusCompany)
	assert.Equal(t, "N/A", bus.PlateNumber)
	assert.Equal(t, "N/A", bus.BusAttendant)
	assert.Equal(t, "Offline", bus.Status)
	assert.Equal(t, 0, bus.Capacity)
	assert.Empty(t, bus.AttendantID)
	assert.Nil(t, bus.BusPhoto)
	assert.GreaterOrEqual(t, bus.LastUpdated, before)
	assert.LessOrEqual(t, bus.LastUpdated, after)
}

func TestNormalizeBusNilAndMalformedInput(t *testing.T) {
	assert.NotPanics(t, func() { NormalizeBus(nil, 0) })

	// Wrong types everywhere must still produce a valid record.
	raw := Raw{
		"bus_number": []interface{}{"nope"},
		"capacity":   "not-a-number",
		"status":     float64(12),
		"updated_at": "yesterday",
		"busPhoto":   map[string]interface{}{},
	}
	bus := NormalizeBus(raw, 1)
	assert.Equal(t, "N/A", bus.BusNumber)
	assert.Equal(t, 0, bus.Capacity)
	assert.Equal(t, "Offline", bus.Status)
	assert.Nil(t, bus.BusPhoto)
	assert.NotZero(t, bus.LastUpdated)
}

func TestNormalizeBusNegativeCapacityClamped(t *testing.T) {
	bus := NormalizeBus(Raw{"capacity": float64(-3)}, 0)
	assert.Equal(t, 0, bus.Capacity)
}

func TestNormalizeBusRoutePreference(t *testing.T) {
	// Structured pair beats the flat route field.
	bus := NormalizeBus(Raw{
		"origin":      "Makati",
		"destination": "BGC",
		"route":       "Stale - Route",
	}, 0)
	assert.Equal(t, "Makati - BGC", bus.Route)

	// Single structured side still wins over nothing.
	bus = NormalizeBus(Raw{"origin": "Makati"}, 0)
	assert.Equal(t, "Makati", bus.Route)

	bus = NormalizeBus(Raw{"route_name": "Cubao - Alabang"}, 0)
	assert.Equal(t, "Cubao - Alabang", bus.Route)
}

func TestNormalizeBusStringCoercion(t *testing.T) {
	bus := NormalizeBus(Raw{"id": float64(12), "capacity": "45"}, 0)
	assert.Equal(t, "12", bus.ID)
	assert.Equal(t, 45, bus.Capacity)
}

func TestExtractBusArray(t *testing.T) {
	record := map[string]interface{}{"bus_number": "OA-1"}

	tests := []struct {
		name    string
		payload interface{}
		want    int
	}{
		{"bare array", []interface{}{record, record}, 2},
		{"buses envelope", map[string]interface{}{"buses": []interface{}{record}}, 1},
		{"data envelope", map[string]interface{}{"data": []interface{}{record}}, 1},
		{"results envelope", map[string]interface{}{"results": []interface{}{record}}, 1},
		{"nil", nil, 0},
		{"scalar", "nope", 0},
		{"unknown envelope", map[string]interface{}{"stuff": []interface{}{record}}, 0},
		{"array with junk entries", []interface{}{record, "junk", 42}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractBusArray(tt.payload)
			require.NotNil(t, got)
			assert.Len(t, got, tt.want)
		})
	}
}

func TestExtractSingleBus(t *testing.T) {
	record := map[string]interface{}{"bus_number": "OA-1"}

	assert.Equal(t, Raw(record), ExtractSingleBus(map[string]interface{}{"bus": record}))
	assert.Equal(t, Raw(record), ExtractSingleBus(map[string]interface{}{"data": record}))
	assert.Equal(t, Raw(record), ExtractSingleBus(record))
	assert.Equal(t, Raw(record), ExtractSingleBus([]interface{}{record}))
	assert.Nil(t, ExtractSingleBus(nil))
	assert.Nil(t, ExtractSingleBus("nope"))
	assert.Nil(t, ExtractSingleBus([]interface{}{}))
}
