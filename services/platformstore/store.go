package platformstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"moneyplatforms/services/platformstore/db"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/platformstore")

// DeleteBatchSize is the provider cap on operations per committed
// batch.
const DeleteBatchSize = 500

var ErrNotFound = errors.New("document not found")

var identRegexp = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Store is a document-style view over one collection: opaque string
// ids, JSON documents, equality lookup on the extracted name_lower
// column.
type Store struct {
	db         *sql.DB
	collection string
}

func New(database *sql.DB, collection string) (*Store, error) {
	if !identRegexp.MatchString(collection) {
		return nil, fmt.Errorf("invalid collection name: %q", collection)
	}
	if _, err := database.Exec(db.Schema(collection)); err != nil {
		return nil, fmt.Errorf("apply schema for %s: %w", collection, err)
	}
	return &Store{db: database, collection: collection}, nil
}

func (s *Store) Collection() string {
	return s.collection
}

func (s *Store) q(format string) string {
	return fmt.Sprintf(format, s.collection)
}

// Insert adds a new document and returns the id the store assigned.
func (s *Store) Insert(ctx context.Context, p db.Platform) (string, error) {
	id := xid.New().String()
	if err := s.InsertWithID(ctx, id, p); err != nil {
		return "", err
	}
	return id, nil
}

// InsertWithID adds a new document under a caller-chosen id.
func (s *Store) InsertWithID(ctx context.Context, id string, p db.Platform) error {
	ctx, span := tracer.Start(ctx, "InsertWithID")
	defer span.End()
	span.SetAttributes(attribute.String("id", id))

	now := time.Now().Unix()
	if p.Name != "" {
		p.NameLower = p.Key()
	}
	p.CreatedAt = now
	p.UpdatedAt = now

	document, err := json.Marshal(p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	_, err = s.db.ExecContext(
		ctx,
		s.q(`INSERT INTO %s (id, name_lower, document, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`),
		id, p.NameLower, string(document), now, now,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// Replace overwrites the document under id wholesale. This is a full
// replace, not a merge: fields absent from p are gone afterwards.
func (s *Store) Replace(ctx context.Context, id string, p db.Platform) error {
	ctx, span := tracer.Start(ctx, "Replace")
	defer span.End()
	span.SetAttributes(attribute.String("id", id))

	if p.Name != "" {
		p.NameLower = p.Key()
	}
	p.UpdatedAt = time.Now().Unix()

	document, err := json.Marshal(p)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	res, err := s.db.ExecContext(
		ctx,
		s.q(`UPDATE %s SET name_lower = ?, document = ?, updated_at = ? WHERE id = ?`),
		p.NameLower, string(document), p.UpdatedAt, id,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (db.StoredPlatform, error) {
	ctx, span := tracer.Start(ctx, "Get")
	defer span.End()
	span.SetAttributes(attribute.String("id", id))

	row := s.db.QueryRowContext(ctx, s.q(`SELECT id, document FROM %s WHERE id = ?`), id)
	stored, err := scanStored(row)
	if errors.Is(err, sql.ErrNoRows) {
		return db.StoredPlatform{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.StoredPlatform{}, err
	}
	return stored, nil
}

// First returns an arbitrarily-chosen single document, ErrNotFound on
// an empty collection.
func (s *Store) First(ctx context.Context) (db.StoredPlatform, error) {
	ctx, span := tracer.Start(ctx, "First")
	defer span.End()

	row := s.db.QueryRowContext(ctx, s.q(`SELECT id, document FROM %s LIMIT 1`))
	stored, err := scanStored(row)
	if errors.Is(err, sql.ErrNoRows) {
		return db.StoredPlatform{}, ErrNotFound
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return db.StoredPlatform{}, err
	}
	return stored, nil
}

// FindByNameLower is the equality query the synchronizer dedups with.
func (s *Store) FindByNameLower(ctx context.Context, key string) ([]db.StoredPlatform, error) {
	ctx, span := tracer.Start(ctx, "FindByNameLower")
	defer span.End()
	span.SetAttributes(attribute.String("name_lower", key))

	rows, err := s.db.QueryContext(
		ctx,
		s.q(`SELECT id, document FROM %s WHERE name_lower = ? ORDER BY id`),
		key,
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()
	return collectStored(rows)
}

func (s *Store) List(ctx context.Context) ([]db.StoredPlatform, error) {
	ctx, span := tracer.Start(ctx, "List")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, s.q(`SELECT id, document FROM %s ORDER BY id`))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()
	return collectStored(rows)
}

// ListByCategory groups the whole collection for rendering. Records
// without a category land in the Uncategorized bucket.
func (s *Store) ListByCategory(ctx context.Context) (map[string][]db.StoredPlatform, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	grouped := map[string][]db.StoredPlatform{}
	for _, stored := range all {
		category := stored.CategoryOrDefault()
		grouped[category] = append(grouped[category], stored)
	}
	return grouped, nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	ctx, span := tracer.Start(ctx, "Delete")
	defer span.End()
	span.SetAttributes(attribute.String("id", id))

	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM %s WHERE id = ?`), id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear deletes every document, committing deletions in batches of at
// most DeleteBatchSize operations. Returns the number of deleted
// documents and the number of committed batches.
func (s *Store) Clear(ctx context.Context) (int, int, error) {
	ctx, span := tracer.Start(ctx, "Clear")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, s.q(`SELECT id FROM %s ORDER BY id`))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, 0, err
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return 0, 0, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, 0, err
	}

	deleted := 0
	batches := 0
	for start := 0; start < len(ids); start += DeleteBatchSize {
		end := min(start+DeleteBatchSize, len(ids))
		if err := s.deleteBatch(ctx, ids[start:end]); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return deleted, batches, err
		}
		deleted += end - start
		batches++
		slog.Info("committed deletion batch", "collection", s.collection, "size", end-start)
	}
	return deleted, batches, nil
}

func (s *Store) deleteBatch(ctx context.Context, ids []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt := s.q(`DELETE FROM %s WHERE id = ?`)
	for _, id := range ids {
		if _, err := tx.ExecContext(ctx, stmt, id); err != nil {
			return err
		}
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanStored(row rowScanner) (db.StoredPlatform, error) {
	var id, document string
	if err := row.Scan(&id, &document); err != nil {
		return db.StoredPlatform{}, err
	}
	var p db.Platform
	if err := json.Unmarshal([]byte(document), &p); err != nil {
		return db.StoredPlatform{}, fmt.Errorf("malformed document %s: %w", id, err)
	}
	return db.StoredPlatform{ID: id, Platform: p}, nil
}

func collectStored(rows *sql.Rows) ([]db.StoredPlatform, error) {
	var out []db.StoredPlatform
	for rows.Next() {
		stored, err := scanStored(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, stored)
	}
	return out, rows.Err()
}
