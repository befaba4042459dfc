package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"moneyplatforms/lib/configutil"
	"moneyplatforms/lib/serviceutil"
	"moneyplatforms/lib/telemetry"
	"moneyplatforms/lib/urlhealth"
	"moneyplatforms/services/platformstore"
	"moneyplatforms/services/platformsync"
	"moneyplatforms/services/readmegen"
)

const readmePath = "README.md"

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	env, err := configutil.FromEnv(false)
	if err != nil {
		serviceutil.Fatal("failed to read environment", err)
	}
	slog.Info("initializing", "project_id", env.ProjectID, "collection", env.Collection)

	t, err := telemetry.SetupFromEnv(ctx, "readme-gen")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if err == nil {
		defer t.Shutdown(context.Background())
	}

	database, err := env.Credentials.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	store, err := platformstore.New(database, env.Collection)
	if err != nil {
		serviceutil.Fatal("failed to open collection", err)
	}

	// url cleanup is opt-in: it is slow and deletes records.
	if os.Getenv("PLATFORMS_CHECK_URLS") == "1" {
		tunables := configutil.LoadTunables()
		checker := urlhealth.NewChecker(urlhealth.Options{
			Timeout:      time.Duration(tunables.HealthTimeoutSeconds) * time.Second,
			MaxRedirects: tunables.MaxRedirects,
		})
		service := platformsync.NewService(store, nil, checker)
		if _, err := service.RemoveInvalidPlatforms(ctx); err != nil {
			serviceutil.Fatal("failed to remove invalid platforms", err)
		}
	}

	if err := readmegen.NewService(store).Generate(ctx, readmePath); err != nil {
		serviceutil.Fatal("failed to generate readme", err)
	}
}
