package platformsync

import (
	"context"
	"errors"
	"testing"
	"time"

	"moneyplatforms/lib/testutil"
	"moneyplatforms/services/platformstore/db"

	"github.com/stretchr/testify/require"
)

type fakeSourcer struct {
	batches map[string][]db.Platform
	err     error
}

func (f fakeSourcer) Platforms(ctx context.Context, aim string) ([]db.Platform, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.batches[aim], nil
}

type fakeChecker struct {
	dead map[string]bool
}

func (f fakeChecker) Check(ctx context.Context, url string) bool {
	return !f.dead[url]
}

func TestSyncInsertsNewRecords(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{Name: "services/platformsync"})
	defer cleanup()

	service := NewService(store, fakeSourcer{batches: map[string][]db.Platform{
		"latest": {{Name: "New Platform", Category: "Freelancing & Services"}},
	}}, fakeChecker{})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	require.NoError(t, service.UpdatePlatforms(ctx))

	matches, err := store.FindByNameLower(ctx, "newplatform")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, "newplatform", matches[0].NameLower)
}

func TestSyncOverwritesExistingRecordKeepingId(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{Name: "services/platformsync"})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	originalId, err := store.Insert(ctx, db.Platform{
		Name: "Gumroad Shop",
		Pros: db.StringList{"hand-curated pro"},
	})
	require.NoError(t, err)

	service := NewService(store, fakeSourcer{batches: map[string][]db.Platform{
		"popular": {{
			// same derived key, different display name casing
			Name:        "Gumroad shop",
			Description: "sell digital products",
		}},
	}}, fakeChecker{})

	require.NoError(t, service.UpdatePlatforms(ctx))

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.Equal(t, originalId, all[0].ID)
	require.Equal(t, "sell digital products", all[0].Description)
	// full replace: curated fields absent from the source are gone
	require.Empty(t, all[0].Pros)
}

func TestSyncContinuesPastSourcerError(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{Name: "services/platformsync"})
	defer cleanup()

	service := NewService(store, fakeSourcer{err: errors.New("api down")}, fakeChecker{})

	require.NoError(t, service.UpdatePlatforms(context.Background()))

	all, err := store.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestRemoveInvalidPlatforms(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{Name: "services/platformsync"})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := store.Insert(ctx, db.Platform{Name: "Alive", Url: "https://alive.example"})
	require.NoError(t, err)
	deadId, err := store.Insert(ctx, db.Platform{Name: "Dead", Url: "https://dead.example"})
	require.NoError(t, err)
	// no url: must be skipped, not deleted
	_, err = store.Insert(ctx, db.Platform{Name: "Unlinked"})
	require.NoError(t, err)

	service := NewService(store, fakeSourcer{}, fakeChecker{dead: map[string]bool{
		"https://dead.example": true,
	}})

	removed, err := service.RemoveInvalidPlatforms(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, removed)

	_, err = store.Get(ctx, deadId)
	require.Error(t, err)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
}
