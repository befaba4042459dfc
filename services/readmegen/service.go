package readmegen

import (
	"context"
	"log/slog"
	"os"
	"time"

	"moneyplatforms/services/platformstore"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/readmegen")

type Service struct {
	store *platformstore.Store
}

func NewService(store *platformstore.Store) Service {
	return Service{store: store}
}

// Generate renders the whole collection and overwrites the file at
// path. No diffing against previous content; the file is the artifact.
func (s Service) Generate(ctx context.Context, path string) error {
	ctx, span := tracer.Start(ctx, "Generate")
	defer span.End()

	byCategory, err := s.store.ListByCategory(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	content := Render(byCategory, time.Now())
	slog.Info("generated readme content", "bytes", len(content))

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	slog.Info("readme updated", "path", path)
	return nil
}
