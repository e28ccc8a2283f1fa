package reconcile

import (
	"github.com/qnextlabs/fleet-console/internal/status"
)

const defaultPrioritySeats = 5

// MapBusToAPIPayload builds the snake_case payload the backend expects
// from loosely-shaped bus data. In create mode every backend field is
// populated, applying domain defaults where the input is silent. In
// partial mode only fields actually present in the input are emitted, so a
// patch never overwrites unrelated remote fields — with one exception:
// attendant_id is generated even in partial mode when wholly absent, so
// every persisted record eventually carries one.
func MapBusToAPIPayload(busData Raw, partial bool) map[string]interface{} {
	if busData == nil {
		busData = Raw{}
	}

	payload := map[string]interface{}{}

	busNumber := firstString(busData, aliasBusNumber)
	if !partial || hasAny(busData, aliasBusNumber) {
		payload["bus_number"] = busNumber
	}

	if !partial || hasAny(busData, aliasCompany) {
		busName := firstString(busData, aliasCompany)
		if busName == "" {
			busName = busNumber
		}
		payload["bus_name"] = busName
	}

	if !partial || hasAny(busData, aliasPlate) {
		payload["plate_number"] = firstString(busData, aliasPlate)
	}

	if !partial || hasAny(busData, aliasCapacity) {
		capacity, _ := firstInt(busData, aliasCapacity)
		if capacity < 0 {
			capacity = 0
		}
		payload["capacity"] = capacity
	}

	if !partial || hasAny(busData, aliasPriority) {
		priority, ok := firstInt(busData, aliasPriority)
		if !ok || priority < 0 {
			priority = defaultPrioritySeats
		}
		payload["priority_seat"] = priority
	}

	origin, destination := outboundRoute(busData)
	if !partial || hasAny(busData, aliasOrigin) || hasAny(busData, aliasRoute) {
		payload["origin"] = origin
	}
	if !partial || hasAny(busData, aliasDestination) || hasAny(busData, aliasRoute) {
		payload["destination"] = destination
	}

	if !partial || hasAny(busData, aliasStatus) {
		payload["status"] = status.ToAPIStatus(firstString(busData, aliasStatus))
	}

	if !partial || hasAny(busData, aliasAttendant) {
		payload["attendant_name"] = firstString(busData, aliasAttendant)
	}

	// Generated in both modes when absent.
	payload["attendant_id"] = GenerateAttendantID(firstString(busData, aliasAttendantID))

	if !partial || hasAny(busData, aliasEmail) {
		payload["company_email"] = firstString(busData, aliasEmail)
	}
	if !partial || hasAny(busData, aliasContact) {
		payload["company_contact"] = firstString(busData, aliasContact)
	}

	if !partial {
		payload["current_location"] = nil
	}

	return payload
}

// outboundRoute resolves the structured origin/destination pair for a
// write, preferring explicit fields over the route-string heuristic. An
// explicit registered destination beats the split remainder.
func outboundRoute(busData Raw) (string, string) {
	split := SplitRoute(firstString(busData, aliasRoute))

	origin := firstString(busData, aliasOrigin)
	if origin == "" {
		origin = split.Origin
	}

	destination := firstString(busData, aliasDestination)
	if destination == "" {
		destination = split.Destination
	}

	return origin, destination
}

func hasAny(raw Raw, keys []string) bool {
	for _, key := range keys {
		if v, ok := raw[key]; ok && v != nil {
			return true
		}
	}
	return false
}
