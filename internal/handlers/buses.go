package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/busapi"
	"github.com/qnextlabs/fleet-console/internal/db"
	"github.com/qnextlabs/fleet-console/internal/fleetsync"
	"github.com/qnextlabs/fleet-console/internal/models"
)

// BusHandler serves the bus table: listing, creation, lifecycle batches,
// row selection and the detail panel. Mutations go through the lifecycle
// manager so the backend confirms before local state changes.
type BusHandler struct {
	manager  *fleetsync.Manager
	docs     db.BusCollection
	validate *validator.Validate
}

// NewBusHandler creates a new bus handler. docs may be nil when no
// document store is configured.
func NewBusHandler(manager *fleetsync.Manager, docs db.BusCollection) *BusHandler {
	return &BusHandler{
		manager:  manager,
		docs:     docs,
		validate: validator.New(),
	}
}

// idsRequest is the shared body for the batch lifecycle endpoints.
type idsRequest struct {
	IDs []string `json:"ids"`
}

// ListBuses returns one page of the active or archived collection.
func (h *BusHandler) ListBuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	query := r.URL.Query()
	page, _ := strconv.Atoi(query.Get("page"))
	perPage, _ := strconv.Atoi(query.Get("perPage"))

	result := h.manager.Store().List(fleetsync.ListQuery{
		View:    query.Get("view"),
		Search:  query.Get("search"),
		SortBy:  query.Get("sortBy"),
		Order:   query.Get("order"),
		Page:    page,
		PerPage: perPage,
	})

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// CreateBus registers a new bus with the backend and, when a document
// store is configured, mirrors the record there. A failed mirror is
// reported in the response but does not fail the creation.
func (h *BusHandler) CreateBus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req models.AddBusRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		http.Error(w, validationMessage(err), http.StatusBadRequest)
		return
	}

	bus, err := h.manager.CreateBus(r.Context(), req)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	sync := h.mirrorToDocStore(r, bus)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"bus":  bus,
		"sync": sync,
	})
}

// ArchiveBuses moves the given active buses to the archived collection.
func (h *BusHandler) ArchiveBuses(w http.ResponseWriter, r *http.Request) {
	h.lifecycleBatch(w, r, func(ids []string) (interface{}, error) {
		moved, err := h.manager.ArchiveBuses(r.Context(), ids)
		return map[string]interface{}{"archived": len(moved), "buses": moved}, err
	})
}

// UnarchiveBuses restores the given archived buses.
func (h *BusHandler) UnarchiveBuses(w http.ResponseWriter, r *http.Request) {
	h.lifecycleBatch(w, r, func(ids []string) (interface{}, error) {
		restored, err := h.manager.UnarchiveBuses(r.Context(), ids)
		return map[string]interface{}{"restored": len(restored), "buses": restored}, err
	})
}

// DeleteBuses permanently deletes the given buses. Only archived records
// are eligible; active ids in the batch are ignored.
func (h *BusHandler) DeleteBuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost && r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids, ok := h.readIDs(w, r)
	if !ok {
		return
	}

	deleted, err := h.manager.DeleteArchivedBuses(r.Context(), ids)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
}

// SyncBuses upserts the given buses (or the whole active collection when
// no ids are given) into the document store by bus number.
func (h *BusHandler) SyncBuses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.docs == nil || !h.docs.Configured() {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(models.SyncResult{
			Synced: false,
			Reason: db.NotConfiguredReason,
		})
		return
	}

	ids, ok := h.readIDs(w, r)
	if !ok {
		return
	}

	store := h.manager.Store()
	targets := store.FindActive(ids)
	if len(ids) == 0 {
		targets = store.Active()
	}

	results := make(map[string]models.SyncResult, len(targets))
	var synced []models.Bus
	for _, bus := range targets {
		result, err := h.docs.UpsertBusByNumber(r.Context(), bus)
		if err != nil {
			log.WithError(err).WithField("bus", bus.BusNumber).Warn("document store sync failed")
			result = models.SyncResult{Synced: false, Reason: err.Error()}
		} else {
			synced = append(synced, bus)
		}
		results[bus.BusNumber] = result
	}
	h.manager.Notify(fleetsync.EventSynced, synced)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(results)
}

// ToggleSelection toggles one row, or replaces the page-relative selection
// when the body carries a pageIds array.
func (h *BusHandler) ToggleSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	var req struct {
		ID      string   `json:"id"`
		PageIDs []string `json:"pageIds"`
	}
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return
	}

	store := h.manager.Store()
	switch {
	case len(req.PageIDs) > 0:
		store.ToggleAllOnPage(req.PageIDs)
	case req.ID != "":
		store.ToggleOne(req.ID)
	default:
		http.Error(w, "id or pageIds required", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"selected": store.Selected()})
}

// GetSelection returns the current selection.
func (h *BusHandler) GetSelection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string][]string{"selected": h.manager.Store().Selected()})
}

// Detail opens the detail panel for a bus on GET and closes it on DELETE.
func (h *BusHandler) Detail(w http.ResponseWriter, r *http.Request) {
	store := h.manager.Store()

	switch r.Method {
	case http.MethodGet:
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "id is required", http.StatusBadRequest)
			return
		}
		bus, ok := store.OpenDetail(id)
		if !ok {
			http.Error(w, "Bus not found", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(bus)

	case http.MethodDelete:
		store.CloseDetail()
		w.WriteHeader(http.StatusNoContent)

	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// lifecycleBatch is the shared read-validate-apply path for archive and
// unarchive.
func (h *BusHandler) lifecycleBatch(w http.ResponseWriter, r *http.Request, apply func(ids []string) (interface{}, error)) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	ids, ok := h.readIDs(w, r)
	if !ok {
		return
	}

	result, err := apply(ids)
	if err != nil {
		writeMutationError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

func (h *BusHandler) readIDs(w http.ResponseWriter, r *http.Request) ([]string, bool) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	if len(body) == 0 {
		return nil, true
	}

	var req idsRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}
	return req.IDs, true
}

// mirrorToDocStore upserts a freshly created bus into the document store.
func (h *BusHandler) mirrorToDocStore(r *http.Request, bus models.Bus) models.SyncResult {
	if h.docs == nil || !h.docs.Configured() {
		return models.SyncResult{Synced: false, Reason: db.NotConfiguredReason}
	}

	result, err := h.docs.UpsertBusByNumber(r.Context(), bus)
	if err != nil {
		log.WithError(err).WithField("bus", bus.BusNumber).Warn("document store sync failed")
		return models.SyncResult{Synced: false, Reason: err.Error()}
	}
	return result
}

// writeMutationError maps a failed lifecycle mutation to a response. A
// backend rejection keeps its status code and per-field detail; anything
// else is a bad gateway since local state was left untouched.
func writeMutationError(w http.ResponseWriter, err error) {
	var apiErr *busapi.APIError
	if errors.As(err, &apiErr) {
		http.Error(w, apiErr.Message, apiErr.StatusCode)
		return
	}
	http.Error(w, err.Error(), http.StatusBadGateway)
}

// validationMessage flattens validator output into one readable line.
func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			parts = append(parts, fe.Field()+" is required")
		case "email":
			parts = append(parts, fe.Field()+" must be a valid email")
		case "gte":
			parts = append(parts, fe.Field()+" must be at least "+fe.Param())
		default:
			parts = append(parts, fe.Field()+" is invalid")
		}
	}
	return strings.Join(parts, "; ")
}
