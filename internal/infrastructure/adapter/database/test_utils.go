package database

import (
	"context"
	"os"
	"testing"
	"time"

	coreport "github.com/amirhossein-jamali/countdown-timer/internal/domain/port/core"
	"github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/model"
	timeprovider "github.com/amirhossein-jamali/countdown-timer/internal/infrastructure/adapter/time"
	"gorm.io/gorm"
)

// TestDBHostEnv names the variable that enables tests against a real PostgreSQL server
const TestDBHostEnv = "CT_TEST_DB_HOST"

// TestDBManager provides utilities for testing with a database
type TestDBManager struct {
	Manager      *Manager
	Config       *Config
	Logger       coreport.Logger
	TimeProvider coreport.TimeProvider
}

// NewTestDBManager creates a test database manager, skipping the test when
// no test database is configured
func NewTestDBManager(t *testing.T, logger coreport.Logger) *TestDBManager {
	t.Helper()

	host, ok := os.LookupEnv(TestDBHostEnv)
	if !ok || host == "" {
		t.Skipf("%s not set, skipping database test", TestDBHostEnv)
	}

	timeProvider := timeprovider.NewRealTimeProvider()

	config := DefaultConfig()
	config.Host = host
	config.Port = ParsePort(getEnvOrDefault("CT_TEST_DB_PORT", "5432"))
	config.Username = getEnvOrDefault("CT_TEST_DB_USERNAME", "postgres")
	config.Password = getEnvOrDefault("CT_TEST_DB_PASSWORD", "postgres")
	config.Database = getEnvOrDefault("CT_TEST_DB_DATABASE", "countdown_timer_test")
	config.LogLevel = "silent"
	config.RetryAttempts = 1
	config.RetryDelay = 0

	return &TestDBManager{
		Manager:      NewManager(config, logger, timeProvider),
		Config:       config,
		Logger:       logger,
		TimeProvider: timeProvider,
	}
}

// Connect connects to the test database and migrates it
func (m *TestDBManager) Connect(t *testing.T) *gorm.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := m.Manager.Connect(ctx)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}
	if err := m.Manager.Migrate(ctx); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	t.Cleanup(func() { m.Close(t) })
	return db
}

// Close closes the test database connection
func (m *TestDBManager) Close(t *testing.T) {
	t.Helper()

	if err := m.Manager.Close(); err != nil {
		t.Logf("Warning: Failed to close test database connection: %v", err)
	}
}

// TruncateCountdowns removes every stored countdown run
func (m *TestDBManager) TruncateCountdowns(t *testing.T) {
	t.Helper()

	if err := m.Manager.DB().Exec("TRUNCATE TABLE " + model.CountdownRun{}.TableName()).Error; err != nil {
		t.Fatalf("Failed to truncate countdown_runs: %v", err)
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
