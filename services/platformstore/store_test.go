package platformstore_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"moneyplatforms/lib/testutil"
	"moneyplatforms/services/platformstore"
	"moneyplatforms/services/platformstore/db"

	"github.com/stretchr/testify/require"
)

func TestInsertAndLookup(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name: "services/platformstore",
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	id, err := store.Insert(ctx, db.Platform{
		Name:     "Example Platform",
		Category: "Freelancing & Services",
		Url:      "https://example.com",
	})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	stored, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "Example Platform", stored.Name)
	require.Equal(t, "exampleplatform", stored.NameLower)
	require.NotZero(t, stored.CreatedAt)

	matches, err := store.FindByNameLower(ctx, "exampleplatform")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	require.Equal(t, id, matches[0].ID)

	_, err = store.Get(ctx, "no-such-id")
	require.ErrorIs(t, err, platformstore.ErrNotFound)
}

func TestReplaceIsFullOverwrite(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name: "services/platformstore",
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	id, err := store.Insert(ctx, db.Platform{
		Name: "Fiverr",
		Pros: db.StringList{"curated by hand"},
	})
	require.NoError(t, err)

	// no Pros on the incoming record: they must be gone afterwards
	err = store.Replace(ctx, id, db.Platform{
		Name:        "Fiverr",
		Description: "freelance marketplace",
	})
	require.NoError(t, err)

	stored, err := store.Get(ctx, id)
	require.NoError(t, err)
	require.Equal(t, "freelance marketplace", stored.Description)
	require.Empty(t, stored.Pros)
	require.Equal(t, "fiverr", stored.NameLower)

	err = store.Replace(ctx, "no-such-id", db.Platform{Name: "x"})
	require.ErrorIs(t, err, platformstore.ErrNotFound)
}

func TestListByCategoryBucketsUncategorized(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name: "services/platformstore",
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := store.Insert(ctx, db.Platform{Name: "A", Category: "Design"})
	require.NoError(t, err)
	_, err = store.Insert(ctx, db.Platform{Name: "B"})
	require.NoError(t, err)

	grouped, err := store.ListByCategory(ctx)
	require.NoError(t, err)
	require.Len(t, grouped["Design"], 1)
	require.Len(t, grouped["Uncategorized"], 1)
}

func TestClearBatchesDeletions(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name: "services/platformstore",
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	for i := 0; i < 1200; i++ {
		err := store.InsertWithID(ctx, fmt.Sprintf("doc-%04d", i), db.Platform{
			Name: fmt.Sprintf("Platform %d", i),
		})
		require.NoError(t, err)
	}

	deleted, batches, err := store.Clear(ctx)
	require.NoError(t, err)
	require.Equal(t, 1200, deleted)
	require.Equal(t, 3, batches)

	all, err := store.List(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestFirstOnEmptyCollection(t *testing.T) {
	store, cleanup := testutil.SetupStore(t, testutil.StoreParams{
		Name:       "services/platformstore",
		Collection: "empty_platforms",
	})
	defer cleanup()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()

	_, err := store.First(ctx)
	require.ErrorIs(t, err, platformstore.ErrNotFound)
}
