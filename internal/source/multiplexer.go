// Package source assembles the dashboard's analytics input set from
// whichever data source is configured and reachable. The multiplexer never
// returns an error: every failure path resolves to a fallback dataset plus
// a user-visible warning string.
package source

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/models"
)

// Mode selects the sourcing strategy for dashboard data.
type Mode string

const (
	ModeLocal    Mode = "local"
	ModeAPI      Mode = "api"
	ModeFirebase Mode = "firebase" // document-store-only mode
	ModeAuto     Mode = "auto"
)

// ParseMode normalizes a configured mode string, defaulting to auto.
func ParseMode(raw string) Mode {
	switch Mode(raw) {
	case ModeLocal, ModeAPI, ModeFirebase, ModeAuto:
		return Mode(raw)
	}
	return ModeAuto
}

// Warning strings. Each failure cause gets its own so operators can tell
// a missing configuration from an empty collection from a fetch error.
const (
	WarnAPIUnavailable      = "Unable to fetch dashboard data from the API. Showing local fallback data."
	WarnDocStoreUnset       = "Document store is not configured. Set MONGO_URI to load dashboard analytics."
	WarnDocStoreEmpty       = "No bus records found in the document store yet. Dashboard is in document-store-only mode."
	WarnDocStoreUnavailable = "Unable to fetch dashboard data from the document store. Please check your connection and permissions."
	WarnAllUnavailable      = "API and document store data are unavailable. Showing local fallback data."
)

// APISource is the REST side of the multiplexer.
type APISource interface {
	FetchBuses(ctx context.Context) ([]models.Bus, error)
}

// DocSource is the document-store side.
type DocSource interface {
	Configured() bool
	FetchBuses(ctx context.Context) ([]models.Bus, error)
}

// Result is the multiplexer output: the assembled dataset and a warning
// that is empty on full success.
type Result struct {
	Buses   []models.Bus `json:"buses"`
	Warning string       `json:"warning"`
}

// Multiplexer picks among local, API and document-store sourcing with
// ordered fallback. Construct once with the configured mode.
type Multiplexer struct {
	mode Mode
	api  APISource
	docs DocSource
	seed func() []models.Bus
}

func NewMultiplexer(mode Mode, api APISource, docs DocSource, seed func() []models.Bus) *Multiplexer {
	return &Multiplexer{mode: mode, api: api, docs: docs, seed: seed}
}

// Fetch assembles the dashboard dataset. In auto mode the API is always
// tried before the document store; the ordering is fixed regardless of
// data volume or recency.
func (m *Multiplexer) Fetch(ctx context.Context) Result {
	switch m.mode {
	case ModeLocal:
		return Result{Buses: m.seed()}

	case ModeAPI:
		buses, err := m.fetchAPI(ctx)
		if err != nil {
			return Result{Buses: m.seed(), Warning: WarnAPIUnavailable}
		}
		return Result{Buses: buses}

	case ModeFirebase:
		return m.fetchDocStoreOnly(ctx)
	}

	// auto: API first, document store second, seed last.
	if buses, err := m.fetchAPI(ctx); err == nil && len(buses) > 0 {
		return Result{Buses: buses}
	}

	if m.docs != nil && m.docs.Configured() {
		buses, err := m.docs.FetchBuses(ctx)
		if err != nil {
			log.WithError(err).Warn("document store fetch failed, falling back to seed data")
		} else if len(buses) > 0 {
			return Result{Buses: buses}
		}
	}

	return Result{Buses: m.seed(), Warning: WarnAllUnavailable}
}

func (m *Multiplexer) fetchAPI(ctx context.Context) ([]models.Bus, error) {
	if m.api == nil {
		return nil, errNoAPI
	}
	buses, err := m.api.FetchBuses(ctx)
	if err != nil {
		log.WithError(err).Warn("API fetch for dashboard failed")
		return nil, err
	}
	return buses, nil
}

func (m *Multiplexer) fetchDocStoreOnly(ctx context.Context) Result {
	if m.docs == nil || !m.docs.Configured() {
		return Result{Buses: []models.Bus{}, Warning: WarnDocStoreUnset}
	}

	buses, err := m.docs.FetchBuses(ctx)
	if err != nil {
		log.WithError(err).Warn("document store fetch for dashboard failed")
		return Result{Buses: []models.Bus{}, Warning: WarnDocStoreUnavailable}
	}
	if len(buses) == 0 {
		return Result{Buses: []models.Bus{}, Warning: WarnDocStoreEmpty}
	}
	return Result{Buses: buses}
}

type noAPIError struct{}

func (noAPIError) Error() string { return "no API source configured" }

var errNoAPI = noAPIError{}
