package fleetsync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qnextlabs/fleet-console/internal/models"
)

func listStore() *Store {
	s := NewStore()
	s.Load([]models.Bus{
		{ID: "1", BusNumber: "OA-1", Route: "Makati - BGC", BusCompany: "Ohayami", Status: "Active", PlateNumber: "AAA-111", BusAttendant: "Reyes", Capacity: 40, LastUpdated: 100},
		{ID: "2", BusNumber: "VL-2", Route: "Cubao - Baguio", BusCompany: "Victory Liner", Status: "Maintenance", PlateNumber: "BBB-222", BusAttendant: "Cruz", Capacity: 55, LastUpdated: 300},
		{ID: "3", BusNumber: "OA-3", Route: "Cubao - Alabang", BusCompany: "Ohayami", Status: "Available", PlateNumber: "CCC-333", BusAttendant: "Santos", Capacity: 30, LastUpdated: 200},
	}, []models.Bus{
		{ID: "4", BusNumber: "VL-4", Route: "Pasay - Batangas", BusCompany: "Victory Liner", Status: "Offline", PlateNumber: "DDD-444", BusAttendant: "Lopez", Capacity: 45, LastUpdated: 400},
	})
	return s
}

func TestListDefaultSortIsLastUpdatedDesc(t *testing.T) {
	result := listStore().List(ListQuery{})

	require.Len(t, result.Buses, 3)
	assert.Equal(t, "2", result.Buses[0].ID)
	assert.Equal(t, "3", result.Buses[1].ID)
	assert.Equal(t, "1", result.Buses[2].ID)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 1, result.TotalPages)
}

func TestListArchivedView(t *testing.T) {
	result := listStore().List(ListQuery{View: "archived"})
	require.Len(t, result.Buses, 1)
	assert.Equal(t, "4", result.Buses[0].ID)
}

func TestListSearchSpansAllColumns(t *testing.T) {
	s := listStore()

	assert.Len(t, s.List(ListQuery{Search: "ohayami"}).Buses, 2)
	assert.Len(t, s.List(ListQuery{Search: "BBB-222"}).Buses, 1)
	assert.Len(t, s.List(ListQuery{Search: "cubao"}).Buses, 2)
	assert.Len(t, s.List(ListQuery{Search: "santos"}).Buses, 1)
	assert.Len(t, s.List(ListQuery{Search: "maintenance"}).Buses, 1)
	assert.Empty(t, s.List(ListQuery{Search: "zzz"}).Buses)
}

func TestListSortVariants(t *testing.T) {
	s := listStore()

	byNumber := s.List(ListQuery{SortBy: "busNumber", Order: "asc"})
	assert.Equal(t, "OA-1", byNumber.Buses[0].BusNumber)
	assert.Equal(t, "VL-2", byNumber.Buses[2].BusNumber)

	byCapacity := s.List(ListQuery{SortBy: "capacity", Order: "desc"})
	assert.Equal(t, 55, byCapacity.Buses[0].Capacity)
	assert.Equal(t, 30, byCapacity.Buses[2].Capacity)
}

func TestListPagination(t *testing.T) {
	s := listStore()

	page1 := s.List(ListQuery{PerPage: 2, Page: 1})
	assert.Len(t, page1.Buses, 2)
	assert.Equal(t, 2, page1.TotalPages)

	page2 := s.List(ListQuery{PerPage: 2, Page: 2})
	assert.Len(t, page2.Buses, 1)

	// Out-of-range pages clamp instead of erroring.
	clamped := s.List(ListQuery{PerPage: 2, Page: 99})
	assert.Equal(t, 2, clamped.Page)
	assert.Len(t, clamped.Buses, 1)
}
