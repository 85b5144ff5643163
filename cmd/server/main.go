package main

import (
	"database/sql"
	"fmt"
	"log"
	"net/http"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	_ "modernc.org/sqlite"

	"pricing-engine/internal/adapters/cache"
	"pricing-engine/internal/adapters/repositories"
	"pricing-engine/internal/api"
	"pricing-engine/internal/engine"
	"pricing-engine/internal/platform/config"
	"pricing-engine/internal/platform/db"
	"pricing-engine/internal/ports"
)

// main is the application composition root. It wires concrete adapters
// (SQLite by default, Postgres when DATABASE_URL is set, optionally
// Redis) behind ports and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}

	seedPath := config.Get("SEED_PATH", "data/seeds/instances.json")
	port := config.Get("PORT", "8080")

	var (
		repo     ports.InstanceRepository
		auditLog ports.SolveAuditLog
	)

	if databaseURL := config.Get("DATABASE_URL", ""); databaseURL != "" {
		conn, err := db.Open(databaseURL)
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := repositories.InitPostgresSchema(conn); err != nil {
			log.Fatal(err)
		}
		if seedPath != "" {
			if err := repositories.SeedInstancesPostgres(conn, seedPath); err != nil {
				log.Printf("init and seed: no seed data loaded from %q: %v", seedPath, err)
			}
		}

		repo = repositories.NewPostgresInstanceRepository(conn)
		auditLog = repositories.NewPostgresSolveLog(conn)
		log.Println("instance store: postgres")
	} else {
		sqliteDB, err := openDB(config.Get("DB_PATH", "data/app.db"))
		if err != nil {
			log.Fatal(err)
		}
		defer sqliteDB.Close()

		if err := initAndSeed(sqliteDB, seedPath); err != nil {
			log.Fatal(err)
		}

		repo = repositories.NewSqliteInstanceRepository(sqliteDB)
		log.Println("instance store: sqlite")
	}

	var solveCache ports.SolveCache
	if redisAddr := config.Get("REDIS_ADDR", ""); redisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: redisAddr})
		ttl := time.Duration(config.GetInt("SOLVE_CACHE_TTL_SECONDS", 300)) * time.Second
		solveCache = cache.NewRedisSolveCache(client, ttl)
		log.Printf("solve cache enabled addr=%s ttl=%s", redisAddr, ttl)
	}

	cfg := engine.DefaultConfig()
	cfg.Bidirectional = config.GetBool("PRICING_BIDIRECTIONAL", cfg.Bidirectional)
	cfg.K = config.GetInt("PRICING_K", cfg.K)

	router := api.NewRouter(repo, solveCache, auditLog, cfg)

	log.Printf("Server listening addr=:%s", port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	log.Fatal(srv.ListenAndServe())
}

func openDB(dbPath string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := conn.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return conn, nil
}

func initAndSeed(conn *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(conn); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(conn, seedPath); err != nil {
		log.Printf("init and seed: no seed data loaded from %q: %v", seedPath, err)
	}

	return nil
}
