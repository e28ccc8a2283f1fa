package fleetsync

import (
	"sort"
	"strings"

	"github.com/qnextlabs/fleet-console/internal/models"
)

const defaultPerPage = 10

// ListQuery describes one table view request from the console.
type ListQuery struct {
	View    string // "active" (default) or "archived"
	Search  string
	SortBy  string // busNumber, route, busCompany, status, capacity, lastUpdated
	Order   string // "asc" or "desc"
	Page    int
	PerPage int
}

// ListResult is one page of buses plus the paging totals the table needs.
type ListResult struct {
	Buses      []models.Bus `json:"buses"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"totalPages"`
}

// List filters, sorts and paginates one of the collections. The default
// order is lastUpdated descending, most recent first.
func (s *Store) List(q ListQuery) ListResult {
	source := s.Active()
	if q.View == "archived" {
		source = s.Archived()
	}

	filtered := filterBuses(source, q.Search)
	sortBuses(filtered, q.SortBy, q.Order)

	perPage := q.PerPage
	if perPage <= 0 {
		perPage = defaultPerPage
	}

	total := len(filtered)
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}

	page := q.Page
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * perPage
	end := start + perPage
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	return ListResult{
		Buses:      filtered[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}
}

func filterBuses(buses []models.Bus, search string) []models.Bus {
	query := strings.ToLower(strings.TrimSpace(search))
	if query == "" {
		return buses
	}

	var out []models.Bus
	for _, bus := range buses {
		haystacks := []string{
			bus.BusNumber, bus.Route, bus.BusCompany,
			bus.PlateNumber, bus.BusAttendant, bus.Status,
		}
		for _, h := range haystacks {
			if strings.Contains(strings.ToLower(h), query) {
				out = append(out, bus)
				break
			}
		}
	}
	return out
}

func sortBuses(buses []models.Bus, sortBy, order string) {
	asc := order == "asc"

	sort.SliceStable(buses, func(i, j int) bool {
		a, b := buses[i], buses[j]
		var less bool
		switch sortBy {
		case "busNumber":
			less = a.BusNumber < b.BusNumber
		case "route":
			less = a.Route < b.Route
		case "busCompany":
			less = a.BusCompany < b.BusCompany
		case "status":
			less = a.Status < b.Status
		case "capacity":
			less = a.Capacity < b.Capacity
		default: // lastUpdated
			less = a.LastUpdated < b.LastUpdated
		}
		if asc {
			return less
		}
		return !less && !equalByKey(a, b, sortBy)
	})
}

func equalByKey(a, b models.Bus, sortBy string) bool {
	switch sortBy {
	case "busNumber":
		return a.BusNumber == b.BusNumber
	case "route":
		return a.Route == b.Route
	case "busCompany":
		return a.BusCompany == b.BusCompany
	case "status":
		return a.Status == b.Status
	case "capacity":
		return a.Capacity == b.Capacity
	default:
		return a.LastUpdated == b.LastUpdated
	}
}
