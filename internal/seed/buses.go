// Package seed bundles the fallback bus dataset the console shows when no
// live source is available.
package seed

import (
	"time"

	"github.com/qnextlabs/fleet-console/internal/models"
)

var buses = []models.Bus{
	{
		ID: "1", BusNumber: "OA-101", Route: "Makati - BGC",
		BusCompany: "Ohayami Trans", Status: "Active", PlateNumber: "NCR-1011",
		Capacity: 45, BusAttendant: "Jomar Reyes", AttendantID: "seed-att-101",
		BusCompanyEmail: "dispatch@ohayami.ph", BusCompanyContact: "0917-555-0101",
		RegisteredDestination: "BGC", QnextBoarded: 18,
	},
	{
		ID: "2", BusNumber: "VL-202", Route: "Cubao - Baguio",
		BusCompany: "Victory Liner", Status: "Active", PlateNumber: "NCR-2022",
		Capacity: 55, BusAttendant: "Marites Cruz", AttendantID: "seed-att-202",
		BusCompanyEmail: "ops@victoryliner.ph", BusCompanyContact: "0917-555-0202",
		RegisteredDestination: "Baguio City", QnextBoarded: 41,
	},
	{
		ID: "3", BusNumber: "GL-303", Route: "Pasay - Batangas",
		BusCompany: "Genesis Lines", Status: "Maintenance", PlateNumber: "NCR-3033",
		Capacity: 49, BusAttendant: "Ramon Santos", AttendantID: "seed-att-303",
		BusCompanyEmail: "N/A", BusCompanyContact: "N/A",
		RegisteredDestination: "Batangas Pier",
	},
	{
		ID: "4", BusNumber: "OA-104", Route: "Cubao - Alabang",
		BusCompany: "Ohayami Trans", Status: "Active", PlateNumber: "NCR-1044",
		Capacity: 45, BusAttendant: "Liza Dela Cruz", AttendantID: "seed-att-104",
		BusCompanyEmail: "dispatch@ohayami.ph", BusCompanyContact: "0917-555-0104",
		RegisteredDestination: "Alabang", QnextBoarded: 27,
	},
	{
		ID: "5", BusNumber: "JB-505", Route: "Monumento - Fairview",
		BusCompany: "Joybus", Status: "Inactive", PlateNumber: "NCR-5055",
		Capacity: 40, BusAttendant: "Ely Bautista", AttendantID: "seed-att-505",
		BusCompanyEmail: "support@joybus.ph", BusCompanyContact: "0917-555-0505",
		RegisteredDestination: "Fairview",
	},
	{
		ID: "6", BusNumber: "VL-206", Route: "Sampaloc - Ilagan",
		BusCompany: "Victory Liner", Status: "Active", PlateNumber: "NCR-2066",
		Capacity: 55, BusAttendant: "Noel Garcia", AttendantID: "seed-att-206",
		BusCompanyEmail: "ops@victoryliner.ph", BusCompanyContact: "0917-555-0206",
		RegisteredDestination: "Ilagan", QnextBoarded: 12,
	},
}

// Buses returns fresh copies of the bundled dataset with lastUpdated
// stamped relative to now so default sorting behaves like live data.
func Buses() []models.Bus {
	now := time.Now().UnixMilli()
	out := make([]models.Bus, len(buses))
	for i, bus := range buses {
		bus.LastUpdated = now - int64(i)*60_000
		out[i] = bus
	}
	return out
}
