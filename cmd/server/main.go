package main

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/qnextlabs/fleet-console/internal/auth"
	"github.com/qnextlabs/fleet-console/internal/busapi"
	"github.com/qnextlabs/fleet-console/internal/config"
	"github.com/qnextlabs/fleet-console/internal/db"
	"github.com/qnextlabs/fleet-console/internal/events"
	"github.com/qnextlabs/fleet-console/internal/fleetsync"
	"github.com/qnextlabs/fleet-console/internal/handlers"
	"github.com/qnextlabs/fleet-console/internal/middleware"
	"github.com/qnextlabs/fleet-console/internal/models"
	"github.com/qnextlabs/fleet-console/internal/seed"
	"github.com/qnextlabs/fleet-console/internal/source"
)

// localWriter backs lifecycle mutations when no backend is configured.
// Every call confirms immediately, so the console still follows the
// confirm-then-commit path in local mode.
type localWriter struct{}

func (localWriter) CreateBus(ctx context.Context, payload map[string]interface{}) (interface{}, error) {
	return payload, nil
}

func (localWriter) UpdateBus(ctx context.Context, id string, payload map[string]interface{}) (interface{}, error) {
	return nil, nil
}

func (localWriter) DeleteBus(ctx context.Context, id string) error {
	return nil
}

func main() {
	cfg := config.Load()

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	// Fleet backend, optional.
	var api *busapi.Client
	if cfg.APIBaseURL != "" {
		api = busapi.NewClient(cfg.APIBaseURL)
	} else {
		log.Info("no API_BASE_URL configured, running on local data")
	}

	// Document store, optional. A connection failure degrades to running
	// without it rather than refusing to start.
	var docs *db.MongoBusCollection
	if cfg.MongoURI != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		client, err := db.Connect(ctx, cfg.MongoURI)
		cancel()
		if err != nil {
			log.WithError(err).Warn("document store unavailable, continuing without it")
		} else {
			docs = &db.MongoBusCollection{
				Collection: client.Database(cfg.MongoDB).Collection("buses"),
			}
			defer client.Disconnect(context.Background())
		}
	}

	publisher := events.NewPublisher(cfg.MQTTBrokerURL, cfg.MQTTTopicPrefix)
	defer publisher.Close()

	store := fleetsync.NewStore()
	store.Load(initialBuses(api), nil)

	var writer fleetsync.BusWriter = localWriter{}
	if api != nil {
		writer = api
	}
	manager := fleetsync.NewManager(store, writer, publisher)

	// Dashboard sourcing.
	var apiSource source.APISource
	if api != nil {
		apiSource = api
	}
	var docSource source.DocSource
	if docs != nil {
		docSource = docs
	}
	mux := source.NewMultiplexer(source.ParseMode(cfg.DataSource), apiSource, docSource, seed.Buses)

	authHandler := handlers.NewAuthHandler(authService, api, cfg.AdminEmail, cfg.AdminPasswordHash)
	var docCollection db.BusCollection
	if docs != nil {
		docCollection = docs
	}
	busHandler := handlers.NewBusHandler(manager, docCollection)
	dashboardHandler := handlers.NewDashboardHandler(mux)

	authMW := middleware.NewAuthMiddleware(authService)
	rateMW := middleware.NewRateLimitMiddleware()

	router := http.NewServeMux()
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleFunc("/api/auth/login", authHandler.Login)
	router.HandleFunc("/api/auth/logout", authHandler.Logout)

	router.HandleFunc("/api/buses", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			busHandler.ListBuses(w, r)
		case http.MethodPost:
			requireRole(authMW, models.RoleManager, busHandler.CreateBus).ServeHTTP(w, r)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})
	router.Handle("/api/buses/archive", requireRole(authMW, models.RoleManager, busHandler.ArchiveBuses))
	router.Handle("/api/buses/unarchive", requireRole(authMW, models.RoleManager, busHandler.UnarchiveBuses))
	router.Handle("/api/buses/delete", requireRole(authMW, models.RoleAdmin, busHandler.DeleteBuses))
	router.Handle("/api/buses/sync", requireRole(authMW, models.RoleManager, busHandler.SyncBuses))
	router.HandleFunc("/api/buses/select", busHandler.ToggleSelection)
	router.HandleFunc("/api/buses/selection", busHandler.GetSelection)
	router.HandleFunc("/api/buses/detail", busHandler.Detail)

	router.HandleFunc("/api/dashboard", dashboardHandler.Analytics)
	router.HandleFunc("/api/dashboard/report", dashboardHandler.Report)

	handler := middleware.RequestID(
		rateMW.RateLimit(300, 60)(
			authMW.Authenticate(router),
		),
	)

	log.WithField("port", cfg.Port).Info("fleet console listening")
	if err := http.ListenAndServe(":"+cfg.Port, handler); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}

// requireRole wraps a handler with a role check. Admins pass every check.
func requireRole(mw *middleware.AuthMiddleware, role models.Role, h http.HandlerFunc) http.Handler {
	return mw.RequireRole(role)(h)
}

// initialBuses fills the synchronizer at startup: the backend's records
// when one is configured and reachable, otherwise the local seed set.
func initialBuses(api *busapi.Client) []models.Bus {
	if api == nil {
		return seed.Buses()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	buses, err := api.FetchBuses(ctx)
	if err != nil {
		log.WithError(err).Warn("initial bus fetch failed, starting from seed data")
		return seed.Buses()
	}
	return buses
}
