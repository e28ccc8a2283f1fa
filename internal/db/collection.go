package db

import (
	"context"

	"github.com/qnextlabs/fleet-console/internal/models"
)

// BusCollection defines the interface for bus document operations.
type BusCollection interface {
	// Configured reports whether a live collection is backing this store.
	Configured() bool
	// FetchBuses retrieves every bus document in canonical shape.
	FetchBuses(ctx context.Context) ([]models.Bus, error)
	// UpsertBusByNumber writes a bus keyed by its bus number, updating the
	// existing document when one exists and creating one otherwise.
	UpsertBusByNumber(ctx context.Context, bus models.Bus) (models.SyncResult, error)
}
