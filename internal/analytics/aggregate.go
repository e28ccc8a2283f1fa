// Package analytics aggregates the dashboard figures and renders the
// exportable report.
package analytics

import (
	"sort"

	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/status"
)

// CompanyMetric is one company's utilization split: passengers boarded
// through the queueing system versus the traditional line.
type CompanyMetric struct {
	Label       string `json:"label"`
	Buses       int    `json:"buses"`
	Qnext       int    `json:"qnext"`
	Traditional int    `json:"traditional"`
}

// RouteCount is one route's bus frequency.
type RouteCount struct {
	Route string `json:"route"`
	Count int    `json:"count"`
}

// Summary is the aggregated dashboard dataset.
type Summary struct {
	TotalBuses    int             `json:"totalBuses"`
	TotalCapacity int             `json:"totalCapacity"`
	StatusCounts  map[string]int  `json:"statusCounts"`
	Companies     []CompanyMetric `json:"companies"`
	Routes        []RouteCount    `json:"routes"`
}

// Build aggregates the dataset. Statuses collapse into the coarse
// Active/Maintenance/Inactive buckets; boarded counts clamp to capacity so
// a stale counter cannot push a company over 100% utilization.
func Build(buses []models.Bus) Summary {
	counts := map[string]int{
		status.AnalyticsActive:      0,
		status.AnalyticsMaintenance: 0,
		status.AnalyticsInactive:    0,
	}

	companies := map[string]*CompanyMetric{}
	routes := map[string]int{}
	totalCapacity := 0

	for _, bus := range buses {
		counts[status.ToAnalyticsStatus(bus.Status)]++

		routes[bus.Route]++

		capacity := bus.Capacity
		if capacity < 0 {
			capacity = 0
		}
		boarded := bus.QnextBoarded
		if boarded < 0 {
			boarded = 0
		}
		if boarded > capacity {
			boarded = capacity
		}

		metric, ok := companies[bus.BusCompany]
		if !ok {
			metric = &CompanyMetric{Label: bus.BusCompany}
			companies[bus.BusCompany] = metric
		}
		metric.Buses++
		metric.Qnext += boarded
		metric.Traditional += capacity - boarded

		totalCapacity += capacity
	}

	summary := Summary{
		TotalBuses:    len(buses),
		TotalCapacity: totalCapacity,
		StatusCounts:  counts,
	}

	for _, metric := range companies {
		summary.Companies = append(summary.Companies, *metric)
	}
	sort.Slice(summary.Companies, func(i, j int) bool {
		if summary.Companies[i].Buses != summary.Companies[j].Buses {
			return summary.Companies[i].Buses > summary.Companies[j].Buses
		}
		return summary.Companies[i].Label < summary.Companies[j].Label
	})

	for route, count := range routes {
		summary.Routes = append(summary.Routes, RouteCount{Route: route, Count: count})
	}
	sort.Slice(summary.Routes, func(i, j int) bool {
		if summary.Routes[i].Count != summary.Routes[j].Count {
			return summary.Routes[i].Count > summary.Routes[j].Count
		}
		return summary.Routes[i].Route < summary.Routes[j].Route
	})

	return summary
}
