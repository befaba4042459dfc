package main

import (
	"log/slog"

	"moneyplatforms/cmd/platforms-cli/cmd"
	"moneyplatforms/lib/configutil"
	"moneyplatforms/lib/serviceutil"
	"moneyplatforms/lib/telemetry"
	"moneyplatforms/services/platformstore"
)

func main() {
	telemetry.InitSlog(false)

	env, err := configutil.FromEnv(false)
	if err != nil {
		serviceutil.Fatal("failed to read environment", err)
	}
	slog.Info("initializing", "project_id", env.ProjectID, "collection", env.Collection)

	database, err := env.Credentials.OpenDB()
	if err != nil {
		serviceutil.Fatal("failed to open database", err)
	}

	store, err := platformstore.New(database, env.Collection)
	if err != nil {
		serviceutil.Fatal("failed to open collection", err)
	}

	cmd.Store = store
	cmd.Execute()
}
