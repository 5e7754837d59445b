package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"pandal-planner/internal/adapters/cache"
	"pandal-planner/internal/adapters/likes"
	"pandal-planner/internal/adapters/optimize"
	"pandal-planner/internal/adapters/repositories"
	"pandal-planner/internal/adapters/roadpath"
	"pandal-planner/internal/api"
	"pandal-planner/internal/config"
	"pandal-planner/internal/platform/db"
	"pandal-planner/internal/ports"
	"pandal-planner/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, Redis, ORS, OSRM) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	dbPath := config.Get("DB_PATH", "data/app.db")
	seedPath := config.Get("SEED_PATH", "data/seeds/venues.json")
	port := config.Get("PORT", "8080")
	osrmURL := config.Get("OSRM_URL", "")

	optimizerURL := os.Getenv("OPTIMIZER_URL")
	if strings.TrimSpace(optimizerURL) == "" {
		log.Fatal("OPTIMIZER_URL is required")
	}

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		log.Fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		log.Fatal(err)
	}

	repo, err := venueRepository(sqliteDB)
	if err != nil {
		log.Fatal(err)
	}

	legCache, closeLegDB, err := legPathCache(sqliteDB)
	if err != nil {
		log.Fatal(err)
	}
	if closeLegDB != nil {
		defer closeLegDB()
	}

	optimizer, err := optimize.NewORSOptimizer(optimizerURL)
	if err != nil {
		log.Fatal(err)
	}

	roads := roadpath.NewCachedRouter(
		roadpath.NewOSRMRouter(osrmURL),
		legCache,
		roadpath.WithLogger(log.Printf),
	)

	planner := &services.Planner{
		Optimizer: optimizer,
		Quota:     optimizer,
		Roads:     roads,
		Cache:     routeCache(),
	}

	router := api.NewRouter(repo, planner, likesClient())

	// Timeouts are tuned for cold-cache route planning (external API latency).
	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

func initAndSeed(sqliteDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqliteDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}

// venueRepository prefers the upstream catalog when VENUES_URL is set,
// falling back to the locally seeded SQLite copy.
func venueRepository(sqliteDB *sql.DB) (ports.VenueRepository, error) {
	if venuesURL := config.Get("VENUES_URL", ""); venuesURL != "" {
		log.Printf("venues: using upstream catalog url=%s", venuesURL)
		source, err := repositories.NewHTTPVenueSource(venuesURL)
		if err != nil {
			return nil, err
		}
		return source, nil
	}
	return repositories.NewSqliteVenueRepository(sqliteDB), nil
}

// legPathCache keeps leg geometry in the shared Postgres when
// DATABASE_URL is set, otherwise in the local SQLite file.
func legPathCache(sqliteDB *sql.DB) (ports.LegPathCache, func(), error) {
	databaseURL := config.Get("DATABASE_URL", "")
	if databaseURL == "" {
		return cache.NewSqliteLegCache(sqliteDB), nil, nil
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("leg path cache: %w", err)
	}
	if err := cache.InitLegSchema(pg); err != nil {
		pg.Close()
		return nil, nil, fmt.Errorf("leg path cache: %w", err)
	}

	log.Printf("leg cache: using postgres")
	return cache.NewSQLLegCache(pg), func() { pg.Close() }, nil
}

// routeCache shares memoized orderings through Redis when REDIS_ADDR
// is set, otherwise keeps them in-process.
func routeCache() ports.RouteCache {
	addr := config.Get("REDIS_ADDR", "")
	if addr == "" {
		return cache.NewMemoryRouteCache()
	}

	log.Printf("route cache: using redis addr=%s", addr)
	client := redis.NewClient(&redis.Options{Addr: addr})
	return cache.NewRedisRouteCache(client, 0)
}

// likesClient proxies like toggles to the upstream catalog; without a
// catalog URL the like endpoint is simply not registered.
func likesClient() *likes.Client {
	venuesURL := config.Get("VENUES_URL", "")
	if venuesURL == "" {
		return nil
	}

	client, err := likes.NewClient(venuesURL)
	if err != nil {
		log.Fatal(err)
	}
	return client
}
