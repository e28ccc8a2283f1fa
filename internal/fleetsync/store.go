// Package fleetsync owns the in-memory bus collections for an admin
// session: the active set, the archived set, the multi-select set, and the
// currently open detail record. A bus lives in exactly one of the two
// collections at any time; archiving and restoring are the only moves
// between them, and permanent deletion is only reachable from the archived
// side.
package fleetsync

import (
	"sync"
	"time"

	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/status"
)

// Store is the single owner of the session's collections. All mutation
// goes through it; handlers may hit it from concurrent requests, so every
// entry point takes the lock.
type Store struct {
	mu           sync.Mutex
	active       []models.Bus
	archived     []models.Bus
	selected     map[string]struct{}
	openDetailID string
}

func NewStore() *Store {
	return &Store{selected: make(map[string]struct{})}
}

// Load replaces both collections, dropping selection and detail state.
func (s *Store) Load(active, archived []models.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = append([]models.Bus(nil), active...)
	s.archived = append([]models.Bus(nil), archived...)
	s.selected = make(map[string]struct{})
	s.openDetailID = ""
}

// Active returns a copy of the active collection.
func (s *Store) Active() []models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bus(nil), s.active...)
}

// Archived returns a copy of the archived collection.
func (s *Store) Archived() []models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Bus(nil), s.archived...)
}

// Add prepends a bus to the active collection, most recent first.
func (s *Store) Add(bus models.Bus) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = append([]models.Bus{bus}, s.active...)
}

// FindActive returns the active buses matching the given ids, in
// collection order. Unknown ids are skipped.
func (s *Store) FindActive(ids []string) []models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterByID(s.active, idSet(ids))
}

// FindArchived returns the archived buses matching the given ids.
func (s *Store) FindArchived(ids []string) []models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return filterByID(s.archived, idSet(ids))
}

// Archive moves the matching active buses to the front of the archived
// collection, stamping previousStatus, archivedAt and lastUpdated. Ids not
// present in the active set are ignored. The given ids are always dropped
// from the selection, and an open detail view onto any of them is closed.
// Returns the buses that actually moved.
func (s *Store) Archive(ids []string) []models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := idSet(ids)
	if len(set) == 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	var moved []models.Bus
	var remaining []models.Bus
	for _, bus := range s.active {
		if _, ok := set[bus.ID]; !ok {
			remaining = append(remaining, bus)
			continue
		}
		bus.PreviousStatus = bus.Status
		bus.Status = status.UIOffline
		bus.ArchivedAt = now
		bus.LastUpdated = now
		moved = append(moved, bus)
	}

	if len(moved) > 0 {
		s.active = remaining
		s.archived = append(append([]models.Bus(nil), moved...), s.archived...)
	}
	s.pruneSelection(set)
	return moved
}

// Unarchive moves the matching archived buses back to the front of the
// active collection, restoring previousStatus (Active when none was
// recorded) and clearing the archive bookkeeping.
func (s *Store) Unarchive(ids []string) []models.Bus {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := idSet(ids)
	if len(set) == 0 {
		return nil
	}

	now := time.Now().UnixMilli()
	var restored []models.Bus
	var remaining []models.Bus
	for _, bus := range s.archived {
		if _, ok := set[bus.ID]; !ok {
			remaining = append(remaining, bus)
			continue
		}
		if bus.PreviousStatus != "" {
			bus.Status = bus.PreviousStatus
		} else {
			bus.Status = status.UIActive
		}
		bus.PreviousStatus = ""
		bus.ArchivedAt = 0
		bus.LastUpdated = now
		restored = append(restored, bus)
	}

	if len(restored) > 0 {
		s.archived = remaining
		s.active = append(append([]models.Bus(nil), restored...), s.active...)
	}
	s.pruneSelection(set)
	return restored
}

// DeletePermanently removes the matching buses from the archived
// collection. Active buses are untouchable here: a record must be archived
// before it can be destroyed. Returns the number of records removed.
func (s *Store) DeletePermanently(ids []string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := idSet(ids)
	if len(set) == 0 {
		return 0
	}

	var remaining []models.Bus
	removed := 0
	for _, bus := range s.archived {
		if _, ok := set[bus.ID]; ok {
			removed++
			continue
		}
		remaining = append(remaining, bus)
	}
	s.archived = remaining
	s.pruneSelection(set)
	return removed
}

// ToggleOne flips a single bus in or out of the selection.
func (s *Store) ToggleOne(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.selected[id]; ok {
		delete(s.selected, id)
		return
	}
	s.selected[id] = struct{}{}
}

// ToggleAllOnPage selects every id on the caller's current page, or clears
// them all when the whole page is already selected. Selection state for
// ids outside the page is untouched.
func (s *Store) ToggleAllOnPage(pageIDs []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(pageIDs) == 0 {
		return
	}

	allSelected := true
	for _, id := range pageIDs {
		if _, ok := s.selected[id]; !ok {
			allSelected = false
			break
		}
	}

	for _, id := range pageIDs {
		if allSelected {
			delete(s.selected, id)
		} else {
			s.selected[id] = struct{}{}
		}
	}
}

// Selected returns the currently selected ids.
func (s *Store) Selected() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.selected))
	for id := range s.selected {
		out = append(out, id)
	}
	return out
}

// OpenDetail opens the detail view for a bus in either collection.
func (s *Store) OpenDetail(id string) (models.Bus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, bus := range s.active {
		if bus.ID == id {
			s.openDetailID = id
			return bus, true
		}
	}
	for _, bus := range s.archived {
		if bus.ID == id {
			s.openDetailID = id
			return bus, true
		}
	}
	return models.Bus{}, false
}

// CloseDetail closes any open detail view.
func (s *Store) CloseDetail() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.openDetailID = ""
}

// DetailID returns the id of the open detail view, if any.
func (s *Store) DetailID() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.openDetailID, s.openDetailID != ""
}

// pruneSelection drops mutated ids from the selection and closes the
// detail view when it references one of them. Callers hold the lock.
func (s *Store) pruneSelection(set map[string]struct{}) {
	for id := range set {
		delete(s.selected, id)
	}
	if s.openDetailID != "" {
		if _, ok := set[s.openDetailID]; ok {
			s.openDetailID = ""
		}
	}
}

func idSet(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}

func filterByID(buses []models.Bus, set map[string]struct{}) []models.Bus {
	var out []models.Bus
	for _, bus := range buses {
		if _, ok := set[bus.ID]; ok {
			out = append(out, bus)
		}
	}
	return out
}
