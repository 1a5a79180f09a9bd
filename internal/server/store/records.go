package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"inkwell/internal/model"
)

// ErrNoRecord is returned when an identifier matches nothing.
var ErrNoRecord = errors.New("record does not exist")

// listLimit bounds the listing; the store predates pagination.
const listLimit = 100

// Records provides access to the records table.
type Records struct {
	db *sql.DB
}

// NewRecords returns a Records store backed by db.
func NewRecords(db *sql.DB) *Records {
	return &Records{db: db}
}

const recordColumns = "id, title, body, author_name, summary, sentiment, reading_time, views, created_at, updated_at"

func scanRecord(row interface{ Scan(...any) error }) (model.Record, error) {
	var rec model.Record
	err := row.Scan(
		&rec.ID, &rec.Title, &rec.Body, &rec.AuthorName,
		&rec.Summary, &rec.Sentiment, &rec.ReadingTime,
		&rec.Views, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}

// Insert stores a new record. The caller supplies the already-hashed
// edit key; the plaintext key never reaches this layer.
func (r *Records) Insert(ctx context.Context, rec model.Record, editKeyHash string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO records (id, title, body, author_name, edit_key_hash,
			summary, sentiment, reading_time, views, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Title, rec.Body, rec.AuthorName, editKeyHash,
		rec.Summary, rec.Sentiment, rec.ReadingTime, rec.Views,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting record: %w", err)
	}
	return nil
}

// List returns records newest first.
func (r *Records) List(ctx context.Context) ([]model.Record, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+recordColumns+" FROM records ORDER BY created_at DESC, id LIMIT ?", listLimit)
	if err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	defer rows.Close()

	records := []model.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing records: %w", err)
	}
	return records, nil
}

// Get returns one record by id.
func (r *Records) Get(ctx context.Context, id string) (model.Record, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+recordColumns+" FROM records WHERE id = ?", id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Record{}, ErrNoRecord
	}
	if err != nil {
		return model.Record{}, fmt.Errorf("fetching record: %w", err)
	}
	return rec, nil
}

// EditKeyHash returns the stored key hash for id.
func (r *Records) EditKeyHash(ctx context.Context, id string) (string, error) {
	var hash string
	err := r.db.QueryRowContext(ctx,
		"SELECT edit_key_hash FROM records WHERE id = ?", id).Scan(&hash)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoRecord
	}
	if err != nil {
		return "", fmt.Errorf("fetching edit key hash: %w", err)
	}
	return hash, nil
}

// IncrementViews bumps the view counter. Fetch-and-increment is owned
// by the server so clients never double-count across re-renders.
func (r *Records) IncrementViews(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		"UPDATE records SET views = views + 1 WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("incrementing views: %w", err)
	}
	return nil
}

// Update replaces the writable and derived fields of a record. Identity
// (id, author_name, created_at) and the key hash are left alone.
func (r *Records) Update(ctx context.Context, rec model.Record, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE records
		SET title = ?, body = ?, summary = ?, sentiment = ?, reading_time = ?, updated_at = ?
		WHERE id = ?`,
		rec.Title, rec.Body, rec.Summary, rec.Sentiment, rec.ReadingTime, updatedAt, rec.ID,
	)
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating record: %w", err)
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}

// Delete removes a record.
func (r *Records) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM records WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting record: %w", err)
	}
	if n == 0 {
		return ErrNoRecord
	}
	return nil
}
