package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"moneyplatforms/lib/claude"
	"moneyplatforms/lib/configutil"
	"moneyplatforms/lib/serviceutil"
	"moneyplatforms/lib/telemetry"
	"moneyplatforms/lib/urlhealth"
	"moneyplatforms/services/platformstore"
	"moneyplatforms/services/platformsync"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.InitSlog(false)

	env, err := configutil.FromEnv(true)
	if err != nil {
		serviceutil.Fatal("failed to read environment", err)
	}
	slog.Info("initializing", "project_id", env.ProjectID, "collection", env.Collection)

	t, err := telemetry.SetupFromEnv(ctx, "platform-sync")
	if err != nil && !os.IsNotExist(err) {
		serviceutil.Fatal("failed to setup telemetry", err)
	}
	if err == nil {
		defer t.Shutdown(context.Background())
		telemetry.InstrumentPerfStats(ctx)
	}

	database, err := env.Credentials.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	store, err := platformstore.New(database, env.Collection)
	if err != nil {
		serviceutil.Fatal("failed to open collection", err)
	}

	tunables := configutil.LoadTunables()
	sourcer := platformsync.ClaudeSourcer{
		Client: claude.NewClient(claude.Config{
			APIKey:      env.AnthropicKey,
			Model:       tunables.Model,
			MaxTokens:   tunables.MaxTokens,
			Temperature: tunables.Temperature,
		}),
	}
	checker := urlhealth.NewChecker(urlhealth.Options{
		Timeout:      time.Duration(tunables.HealthTimeoutSeconds) * time.Second,
		MaxRedirects: tunables.MaxRedirects,
	})

	service := platformsync.NewService(store, sourcer, checker)
	if err := service.UpdatePlatforms(ctx); err != nil {
		serviceutil.Fatal("failed to update platforms", err)
	}
}
