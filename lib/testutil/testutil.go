package testutil

import (
	"database/sql"
	"testing"

	"moneyplatforms/lib/telemetry"
	"moneyplatforms/services/platformstore"

	_ "modernc.org/sqlite"
)

type StoreParams struct {
	Name string
	// if unspecified, it will use "platforms"
	Collection string
}

// SetupStore gives a test an in-memory collection plus a cleanup
// function.
func SetupStore(t testing.TB, params StoreParams) (*platformstore.Store, func()) {
	cleanup := telemetry.SetupForTesting(t, params.Name)

	sqlite, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	// every pooled conn would otherwise get its own empty :memory: db
	sqlite.SetMaxOpenConns(1)

	collection := params.Collection
	if collection == "" {
		collection = "platforms"
	}
	store, err := platformstore.New(sqlite, collection)
	if err != nil {
		t.Fatal(err)
	}

	return store, func() {
		sqlite.Close()
		cleanup()
	}
}
