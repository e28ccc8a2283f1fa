package fleetsync

import (
	"context"
	"fmt"
	"sync"

	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/reconcile"
	"github.com/qnextlabs/fleet-console/internal/status"
)

// BusWriter is the remote side of every lifecycle mutation. The REST
// client implements it; tests use fakes.
type BusWriter interface {
	CreateBus(ctx context.Context, payload map[string]interface{}) (interface{}, error)
	UpdateBus(ctx context.Context, id string, payload map[string]interface{}) (interface{}, error)
	DeleteBus(ctx context.Context, id string) error
}

// Notifier receives lifecycle events after a mutation committed. A nil
// Notifier disables events.
type Notifier interface {
	LifecycleEvent(event string, buses []models.Bus)
}

// Lifecycle event names.
const (
	EventArchived = "archived"
	EventRestored = "restored"
	EventDeleted  = "deleted"
	EventSynced   = "synced"
)

// Manager applies lifecycle operations: remote first, local commit only
// after every remote call in the batch confirmed. A failed remote call
// leaves the collections untouched; there is no optimistic write to roll
// back.
type Manager struct {
	store    *Store
	writer   BusWriter
	notifier Notifier
}

func NewManager(store *Store, writer BusWriter, notifier Notifier) *Manager {
	return &Manager{store: store, writer: writer, notifier: notifier}
}

func (m *Manager) Store() *Store {
	return m.store
}

// CreateBus creates the bus remotely, then prepends the backend's record
// (reconciled to canonical shape) to the active collection.
func (m *Manager) CreateBus(ctx context.Context, req models.AddBusRequest) (models.Bus, error) {
	raw := reconcile.Raw{
		"busNumber":             req.BusNumber,
		"route":                 req.Route,
		"busCompany":            req.BusCompany,
		"status":                req.Status,
		"plateNumber":           req.PlateNumber,
		"capacity":              req.Capacity,
		"prioritySeat":          req.PrioritySeat,
		"busAttendant":          req.BusAttendant,
		"attendantId":           req.AttendantID,
		"busCompanyEmail":       req.BusCompanyEmail,
		"busCompanyContact":     req.BusCompanyContact,
		"registeredDestination": req.RegisteredDestination,
	}
	if req.Status == "" {
		raw["status"] = status.UIActive
	}

	payload := reconcile.MapBusToAPIPayload(raw, false)

	created, err := m.writer.CreateBus(ctx, payload)
	if err != nil {
		return models.Bus{}, fmt.Errorf("create bus: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return models.Bus{}, err
	}

	record := reconcile.ExtractSingleBus(created)
	if record == nil {
		// Backend returned nothing useful; fall back to our own payload.
		record = raw
	}
	bus := reconcile.NormalizeBus(record, len(m.store.Active()))
	if photo := req.BusPhoto; photo != nil && bus.BusPhoto == nil {
		bus.BusPhoto = photo
	}

	m.store.Add(bus)
	return bus, nil
}

// ArchiveBuses confirms the status change with the backend for every
// matching active bus, then moves them to the archived collection. Unknown
// ids are silently ignored; an empty match is a no-op, not an error.
func (m *Manager) ArchiveBuses(ctx context.Context, ids []string) ([]models.Bus, error) {
	targets := m.store.FindActive(ids)
	if len(targets) == 0 {
		return nil, nil
	}

	err := m.forEachRemote(ctx, targets, func(ctx context.Context, bus models.Bus) error {
		payload := reconcile.MapBusToAPIPayload(reconcile.Raw{
			"status":       status.UIOffline,
			"attendant_id": bus.AttendantID,
		}, true)
		_, err := m.writer.UpdateBus(ctx, bus.ID, payload)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("archive buses: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	moved := m.store.Archive(ids)
	m.notify(EventArchived, moved)
	return moved, nil
}

// UnarchiveBuses confirms the restore with the backend, then moves the
// matching archived buses back to the active collection.
func (m *Manager) UnarchiveBuses(ctx context.Context, ids []string) ([]models.Bus, error) {
	targets := m.store.FindArchived(ids)
	if len(targets) == 0 {
		return nil, nil
	}

	err := m.forEachRemote(ctx, targets, func(ctx context.Context, bus models.Bus) error {
		restored := bus.PreviousStatus
		if restored == "" {
			restored = status.UIActive
		}
		payload := reconcile.MapBusToAPIPayload(reconcile.Raw{
			"status":       restored,
			"attendant_id": bus.AttendantID,
		}, true)
		_, err := m.writer.UpdateBus(ctx, bus.ID, payload)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("unarchive buses: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	restored := m.store.Unarchive(ids)
	m.notify(EventRestored, restored)
	return restored, nil
}

// DeleteArchivedBuses permanently deletes the matching archived buses,
// backend first. Only records already in the archived collection are
// eligible; ids still active are ignored here by construction.
func (m *Manager) DeleteArchivedBuses(ctx context.Context, ids []string) (int, error) {
	targets := m.store.FindArchived(ids)
	if len(targets) == 0 {
		return 0, nil
	}

	err := m.forEachRemote(ctx, targets, func(ctx context.Context, bus models.Bus) error {
		return m.writer.DeleteBus(ctx, bus.ID)
	})
	if err != nil {
		return 0, fmt.Errorf("delete archived buses: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	m.notify(EventDeleted, targets)
	return m.store.DeletePermanently(ids), nil
}

// forEachRemote fans the batch out concurrently and waits for the whole
// batch. Any failure fails the operation; no per-item partial commit.
func (m *Manager) forEachRemote(ctx context.Context, buses []models.Bus, call func(context.Context, models.Bus) error) error {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for _, bus := range buses {
		wg.Add(1)
		go func(bus models.Bus) {
			defer wg.Done()
			if err := call(ctx, bus); err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
			}
		}(bus)
	}
	wg.Wait()
	return firstErr
}

// Notify emits a lifecycle event for a mutation that happened outside the
// manager, such as a document-store sync.
func (m *Manager) Notify(event string, buses []models.Bus) {
	m.notify(event, buses)
}

func (m *Manager) notify(event string, buses []models.Bus) {
	if m.notifier == nil || len(buses) == 0 {
		return
	}
	m.notifier.LifecycleEvent(event, buses)
}
