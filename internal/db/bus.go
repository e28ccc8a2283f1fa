package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/reconcile"
)

// NotConfiguredReason is the SyncResult reason when no Mongo collection is
// available.
const NotConfiguredReason = "document-store-not-configured"

// Older documents carry duplicate camelCase fields written before the
// backend settled on snake_case; every update clears them.
var legacyDuplicateFields = bson.M{
	"attendantId":           "",
	"busAttendant":          "",
	"busCompany":            "",
	"busCompanyContact":     "",
	"busCompanyEmail":       "",
	"busNumber":             "",
	"lastUpdated":           "",
	"plateNumber":           "",
	"registeredDestination": "",
	"route":                 "",
}

// MongoBusCollection wraps the MongoDB buses collection.
type MongoBusCollection struct {
	Collection *mongo.Collection
}

// Configured reports whether a live collection is backing this store.
func (c *MongoBusCollection) Configured() bool {
	return c != nil && c.Collection != nil
}

// FetchBuses retrieves all bus documents and reconciles them into
// canonical shape.
func (c *MongoBusCollection) FetchBuses(ctx context.Context) ([]models.Bus, error) {
	if !c.Configured() {
		return nil, fmt.Errorf("mongo collection is nil")
	}

	cursor, err := c.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find buses: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []bson.M
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode buses: %w", err)
	}

	buses := make([]models.Bus, 0, len(docs))
	for i, doc := range docs {
		buses = append(buses, reconcile.NormalizeBus(reconcile.Raw(doc), i))
	}
	return buses, nil
}

// UpsertBusByNumber writes the canonical bus keyed by its bus number. An
// existing document (matched on bus_number, then the legacy busNumber
// field) is updated in place with its legacy duplicate fields cleared;
// otherwise a fresh document is created. Timestamps are assigned
// server-side.
func (c *MongoBusCollection) UpsertBusByNumber(ctx context.Context, bus models.Bus) (models.SyncResult, error) {
	if !c.Configured() {
		return models.SyncResult{Synced: false, Reason: NotConfiguredReason}, nil
	}

	payload := reconcile.MapBusToAPIPayload(reconcile.BusToRaw(bus), false)

	existingID, found, err := c.findIDByNumber(ctx, payload["bus_number"])
	if err != nil {
		return models.SyncResult{}, err
	}

	if found {
		set := bson.M(payload)
		set["id"] = idString(existingID)
		_, err := c.Collection.UpdateOne(ctx, bson.M{"_id": existingID}, bson.M{
			"$set":         set,
			"$unset":       legacyDuplicateFields,
			"$currentDate": bson.M{"updated_at": true},
		})
		if err != nil {
			return models.SyncResult{}, fmt.Errorf("update bus document: %w", err)
		}
		return models.SyncResult{Synced: true, Mode: "updated"}, nil
	}

	newID := primitive.NewObjectID()
	set := bson.M(payload)
	set["id"] = newID.Hex()
	set["boarded_count"] = 0
	set["current_queue_id"] = nil
	set["last_proximity_notification_sent"] = nil
	set["arrived_at"] = nil

	_, err = c.Collection.UpdateOne(ctx, bson.M{"_id": newID}, bson.M{
		"$set":         set,
		"$currentDate": bson.M{"created_at": true, "updated_at": true},
	}, options.Update().SetUpsert(true))
	if err != nil {
		return models.SyncResult{}, fmt.Errorf("create bus document: %w", err)
	}
	return models.SyncResult{Synced: true, Mode: "created"}, nil
}

// findIDByNumber locates an existing document by bus number, checking the
// snake_case field first and the legacy camelCase field second.
func (c *MongoBusCollection) findIDByNumber(ctx context.Context, busNumber interface{}) (interface{}, bool, error) {
	for _, key := range []string{"bus_number", "busNumber"} {
		var doc struct {
			ID interface{} `bson:"_id"`
		}
		err := c.Collection.FindOne(ctx, bson.M{key: busNumber}).Decode(&doc)
		if err == nil {
			return doc.ID, true, nil
		}
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return nil, false, fmt.Errorf("find bus by number: %w", err)
		}
	}
	return nil, false, nil
}

func idString(id interface{}) string {
	if oid, ok := id.(primitive.ObjectID); ok {
		return oid.Hex()
	}
	return fmt.Sprintf("%v", id)
}
