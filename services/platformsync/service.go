package platformsync

import (
	"context"
	"log/slog"

	"moneyplatforms/services/platformstore"
	"moneyplatforms/services/platformstore/db"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/platformsync")

// Aims drive the sourcing prompts: two discovery modes followed by
// every curated category.
var Aims = []string{
	"latest",
	"popular",
	"No-Code & Low-Code Platforms",
	"AI Application Platforms",
	"Web Hosting & Deployment",
	"Content Creation & Publishing",
	"Online Education & Courses",
	"Digital Product Sales",
	"Freelancing & Services",
	"Community Building & Memberships",
	"E-Commerce & Marketplace",
	"Social Media Monetization",
	"Specialized AI Services",
	"Automation & Productivity",
	"Stock Media & Creative Assets",
	"Mobile App Monetization",
	"Affiliate Marketing",
}

type URLChecker interface {
	Check(ctx context.Context, url string) bool
}

type Service struct {
	store   *platformstore.Store
	sourcer Sourcer
	checker URLChecker
}

func NewService(store *platformstore.Store, sourcer Sourcer, checker URLChecker) Service {
	return Service{store: store, sourcer: sourcer, checker: checker}
}

// UpdatePlatforms reconciles freshly sourced records into the
// collection, aim by aim. Failures are contained to the record (or the
// aim) they occurred in.
func (s Service) UpdatePlatforms(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "UpdatePlatforms")
	defer span.End()

	for _, aim := range Aims {
		platforms, err := s.sourcer.Platforms(ctx, aim)
		if err != nil {
			span.RecordError(err)
			slog.Error("failed to source platforms", "aim", aim, "err", err)
			continue
		}
		if len(platforms) == 0 {
			slog.Error("no platform data to update", "aim", aim)
			continue
		}

		for _, platform := range platforms {
			if err := s.syncOne(ctx, aim, platform); err != nil {
				slog.Error(
					"failed to sync platform",
					"aim", aim, "name", platform.Name, "err", err,
				)
			}
		}
	}
	return nil
}

// syncOne merges one record by its derived name_lower key: insert when
// absent, full overwrite of the first match when present. The match's
// document id never changes.
func (s Service) syncOne(ctx context.Context, aim string, platform db.Platform) error {
	ctx, span := tracer.Start(ctx, "syncOne")
	defer span.End()
	span.SetAttributes(attribute.String("name", platform.Name))

	key := platform.Key()
	matches, err := s.store.FindByNameLower(ctx, key)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if len(matches) == 0 {
		platform.NameLower = key
		if _, err := s.store.Insert(ctx, platform); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return err
		}
		slog.Info("added platform", "aim", aim, "name", platform.Name)
		return nil
	}

	slog.Info("platform already exists, updating", "aim", aim, "name", platform.Name)
	if err := s.store.Replace(ctx, matches[0].ID, platform); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// RemoveInvalidPlatforms deletes every stored record whose url fails
// the health check. Records without a url are skipped with a warning.
// Returns the number of removed records.
func (s Service) RemoveInvalidPlatforms(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "RemoveInvalidPlatforms")
	defer span.End()

	all, err := s.store.List(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}

	removed := 0
	for _, stored := range all {
		if stored.Url == "" {
			slog.Warn("platform has no url, skipping", "name", stored.Name)
			continue
		}
		if s.checker.Check(ctx, stored.Url) {
			continue
		}
		if err := s.store.Delete(ctx, stored.ID); err != nil {
			slog.Error("failed to remove platform", "name", stored.Name, "err", err)
			continue
		}
		removed++
		slog.Info("removed invalid platform", "name", stored.Name, "url", stored.Url)
	}

	if removed > 0 {
		slog.Info("removed platforms with invalid urls", "count", removed)
	}
	return removed, nil
}
