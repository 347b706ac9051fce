package testutil

import (
	"path/filepath"
	"testing"

	"github.com/launchdash/launchdash/internal/launch"
	"github.com/launchdash/launchdash/internal/store"
)

// ScenarioRecords is the three-launch dataset used across package tests.
func ScenarioRecords() []launch.Record {
	return []launch.Record{
		{FlightNumber: 1, Site: launch.SiteLC40, PayloadMassKg: 500, Success: true, BoosterVersionCategory: "v1.0"},
		{FlightNumber: 2, Site: launch.SiteLC40, PayloadMassKg: 1500, Success: false, BoosterVersionCategory: "v1.1"},
		{FlightNumber: 3, Site: launch.SiteSLC40, PayloadMassKg: 3000, Success: true, BoosterVersionCategory: "v1.0"},
	}
}

// ScenarioDataset wraps ScenarioRecords in a Dataset.
func ScenarioDataset(t *testing.T) *launch.Dataset {
	t.Helper()
	return NewDataset(t, ScenarioRecords())
}

// NewDataset builds a Dataset or fails the test.
func NewDataset(t *testing.T, records []launch.Record) *launch.Dataset {
	t.Helper()

	ds, err := launch.NewDataset(records)
	if err != nil {
		t.Fatalf("failed to build dataset: %v", err)
	}
	return ds
}

// SetupTestStore creates a snapshot database under t.TempDir().
func SetupTestStore(t *testing.T) *store.SQLiteStore {
	t.Helper()

	s, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}

	t.Cleanup(func() {
		s.Close()
	})

	return s
}
