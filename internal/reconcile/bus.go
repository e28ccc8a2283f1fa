package reconcile

import (
	"strconv"

	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/status"
)

const placeholder = "N/A"

// NormalizeBus reconciles one raw record into the canonical bus shape.
// Missing or malformed fields degrade to documented defaults; the function
// never fails. fallbackIndex numbers the record when no source id exists.
func NormalizeBus(raw Raw, fallbackIndex int) models.Bus {
	if raw == nil {
		raw = Raw{}
	}

	id := firstString(raw, aliasID)
	if id == "" {
		id = strconv.Itoa(fallbackIndex + 1)
	}

	bus := models.Bus{
		ID:                    id,
		BusNumber:             stringOr(raw, aliasBusNumber, placeholder),
		Route:                 routeFor(raw),
		BusCompany:            stringOr(raw, aliasCompany, placeholder),
		Status:                status.ToUIStatus(firstString(raw, aliasStatus)),
		PlateNumber:           stringOr(raw, aliasPlate, placeholder),
		BusAttendant:          stringOr(raw, aliasAttendant, placeholder),
		AttendantID:           firstString(raw, aliasAttendantID),
		BusCompanyEmail:       firstString(raw, aliasEmail),
		BusCompanyContact:     firstString(raw, aliasContact),
		RegisteredDestination: firstString(raw, aliasDestination),
		LastUpdated:           firstTimestamp(raw, aliasUpdated),
	}

	if capacity, ok := firstInt(raw, aliasCapacity); ok && capacity > 0 {
		bus.Capacity = capacity
	}
	if boarded, ok := firstInt(raw, aliasBoarded); ok && boarded > 0 {
		bus.QnextBoarded = boarded
	}
	if photo := firstString(raw, aliasPhoto); photo != "" {
		bus.BusPhoto = &photo
	}

	return bus
}

// routeFor derives the display route, preferring an explicit
// origin/destination pair over a flat route field, then whichever single
// side is present.
func routeFor(raw Raw) string {
	origin := firstString(raw, aliasOrigin)
	destination := firstString(raw, aliasDestination)

	if joined := JoinRoute(origin, destination); joined != "" {
		return joined
	}
	if route := firstString(raw, aliasRoute); route != "" {
		return route
	}
	return placeholder
}

// BusToRaw exposes a canonical bus as loose record input for the payload
// mapper. Placeholder display values stay as-is; the mapper treats them
// like any other string.
func BusToRaw(bus models.Bus) Raw {
	raw := Raw{
		"id":                    bus.ID,
		"busNumber":             bus.BusNumber,
		"route":                 bus.Route,
		"busCompany":            bus.BusCompany,
		"status":                bus.Status,
		"plateNumber":           bus.PlateNumber,
		"capacity":              bus.Capacity,
		"busAttendant":          bus.BusAttendant,
		"attendantId":           bus.AttendantID,
		"busCompanyEmail":       bus.BusCompanyEmail,
		"busCompanyContact":     bus.BusCompanyContact,
		"registeredDestination": bus.RegisteredDestination,
		"lastUpdated":           bus.LastUpdated,
	}
	if bus.BusPhoto != nil {
		raw["busPhoto"] = *bus.BusPhoto
	}
	return raw
}

func stringOr(raw Raw, keys []string, fallback string) string {
	if s := firstString(raw, keys); s != "" {
		return s
	}
	return fallback
}

// ExtractBusArray unwraps the envelope shapes the sources are known to use
// ([...], {"buses": [...]}, {"data": [...]}, {"results": [...]}) into a
// flat slice of raw records. Unrecognized payloads yield an empty slice.
func ExtractBusArray(payload interface{}) []Raw {
	switch p := payload.(type) {
	case nil:
		return []Raw{}
	case []Raw:
		return p
	case []interface{}:
		return rawSlice(p)
	case []map[string]interface{}:
		out := make([]Raw, 0, len(p))
		for _, m := range p {
			out = append(out, Raw(m))
		}
		return out
	case map[string]interface{}:
		for _, key := range []string{"buses", "data", "results"} {
			if nested, ok := p[key]; ok {
				if arr := ExtractBusArray(nested); len(arr) > 0 {
					return arr
				}
			}
		}
	case Raw:
		return ExtractBusArray(map[string]interface{}(p))
	}
	return []Raw{}
}

func rawSlice(items []interface{}) []Raw {
	out := make([]Raw, 0, len(items))
	for _, item := range items {
		if m, ok := item.(map[string]interface{}); ok {
			out = append(out, Raw(m))
		}
	}
	return out
}

// ExtractSingleBus unwraps a single-record envelope ({"bus": {...}},
// {"data": {...}}, or the bare object). Returns nil when nothing matches.
func ExtractSingleBus(payload interface{}) Raw {
	switch p := payload.(type) {
	case nil:
		return nil
	case Raw:
		return ExtractSingleBus(map[string]interface{}(p))
	case map[string]interface{}:
		for _, key := range []string{"bus", "data"} {
			if nested, ok := p[key].(map[string]interface{}); ok {
				return Raw(nested)
			}
		}
		return Raw(p)
	case []interface{}:
		if len(p) > 0 {
			if m, ok := p[0].(map[string]interface{}); ok {
				return Raw(m)
			}
		}
	}
	return nil
}
