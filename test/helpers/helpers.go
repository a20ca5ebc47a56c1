// test/helpers/helpers.go
package helpers

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/codewithdeepika/hybrid-seed-inventory/internal/adapters/db"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/core/domain"
	"github.com/codewithdeepika/hybrid-seed-inventory/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestDB creates a PostgreSQL container for integration tests. Tests
// are skipped when Docker is not available.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Skipf("skipping, could not connect to Docker: %s", err)
	}
	if err := pool.Client.Ping(); err != nil {
		t.Skipf("skipping, Docker is not responding: %s", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_seed_inventory",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_seed_inventory",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")

	t.Cleanup(database.Close)

	require.NoError(t, db.EnsureSchema(context.Background(), database, TestLogger()),
		"Could not create ledger schema")

	return &TestDB{
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
	}
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "test-api",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:             "localhost",
			Port:             "5432",
			User:             "test",
			Password:         "test",
			Name:             "test_seed_inventory",
			SSLMode:          "disable",
			MaxConnections:   10,
			MinConnections:   2,
			SchemaMaxRetries: 1,
		},
		Redis: config.RedisConfig{
			Host:      "localhost",
			Port:      "6379",
			DB:        0,
			TTL:       time.Hour,
			ReportTTL: 30 * time.Second,
			PoolSize:  10,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			SecureHeaders:     false,
		},
		Server: config.ServerConfig{
			Host:           "localhost",
			Port:           "8080",
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
		Static: config.StaticConfig{
			Dir: "web",
		},
	}
}

// CreateInwardEntry creates a test inward entry
func CreateInwardEntry(overrides ...func(*domain.InwardEntry)) *domain.InwardEntry {
	entry := &domain.InwardEntry{
		SeedName: "Tomato",
		Quantity: decimal.NewFromFloat(12.5),
		Party:    "Acme Farms",
		Date:     "2024-03-01",
		Notes:    "batch A",
	}

	for _, override := range overrides {
		override(entry)
	}

	return entry
}

// CreateOutwardEntry creates a test outward entry
func CreateOutwardEntry(overrides ...func(*domain.OutwardEntry)) *domain.OutwardEntry {
	entry := &domain.OutwardEntry{
		SeedName: "Wheat",
		Quantity: decimal.NewFromFloat(40),
		Party:    "Green Valley Co-op",
		Date:     "2024-03-05",
	}

	for _, override := range overrides {
		override(entry)
	}

	return entry
}

// CreateReturnEntry creates a test return entry
func CreateReturnEntry(overrides ...func(*domain.ReturnEntry)) *domain.ReturnEntry {
	entry := &domain.ReturnEntry{
		SeedName: "Maize",
		Quantity: decimal.NewFromFloat(3),
		Reason:   "damaged packaging",
		Date:     "2024-03-08",
	}

	for _, override := range overrides {
		override(entry)
	}

	return entry
}

// CreateExpiryEntry creates a test expiry entry
func CreateExpiryEntry(overrides ...func(*domain.ExpiryEntry)) *domain.ExpiryEntry {
	entry := &domain.ExpiryEntry{
		SeedName:   "Carrot",
		Quantity:   decimal.NewFromFloat(7.25),
		ExpiryDate: "2024-02-28",
		Action:     "discarded",
	}

	for _, override := range overrides {
		override(entry)
	}

	return entry
}

// TruncateLedgerTables truncates all ledger tables in the test database
func TruncateLedgerTables(t *testing.T, database *db.Database) {
	t.Helper()

	ctx := context.Background()
	tables := []string{
		"inward_entries",
		"outward_entries",
		"return_entries",
		"expiry_entries",
	}

	for _, table := range tables {
		_, err := database.Exec(ctx, fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY", table))
		require.NoError(t, err, "Failed to truncate table: %s", table)
	}
}
