package facestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3" // SQLite3 driver

	"event-media/internal/facecrop"
	"event-media/internal/logging"
	"event-media/internal/metrics"
)

// Default timeout for store operations
const defaultTimeout = 5 * time.Second

// ErrNotFound is returned when a face record does not exist.
var ErrNotFound = errors.New("face record not found")

// FaceRecord associates a detected face with the photo it was found in.
// A nil Box means the detection service reported the face without usable
// coordinates; the crop projector falls back to a centered, unscaled crop.
type FaceRecord struct {
	FaceID   string                `json:"faceId"`
	ImageKey string                `json:"imageKey"`
	Box      *facecrop.BoundingBox `json:"boundingBox,omitempty"`
}

// Store persists face records in a local SQLite database.
type Store struct {
	db *sql.DB
}

// New opens (creating if needed) the face store at dbPath. The parent
// directory must already exist and be writable.
func New(ctx context.Context, dbPath string) (*Store, error) {
	logging.Info("Face store path: %s", dbPath)

	// WAL mode and a busy timeout keep concurrent readers from tripping
	// over "database is locked" errors.
	connStr := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_busy_timeout=5000", dbPath)

	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open face store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close face store after ping failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to connect to face store: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)

	s := &Store{db: db}
	if err := s.initialize(ctx); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			logging.Error("failed to close face store after schema failure: %v", closeErr)
		}
		return nil, fmt.Errorf("failed to initialize face store schema: %w", err)
	}

	logging.Info("Face store initialized at %s", dbPath)
	return s, nil
}

func (s *Store) initialize(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS faces (
		face_id TEXT PRIMARY KEY,
		image_key TEXT NOT NULL,
		box_left REAL,
		box_top REAL,
		box_width REAL,
		box_height REAL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_faces_image_key ON faces(image_key);
	`
	_, err := s.db.ExecContext(ctx, schema)
	return err
}

// Upsert inserts or replaces a face record.
func (s *Store) Upsert(ctx context.Context, rec FaceRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var left, top, width, height sql.NullFloat64
	if rec.Box != nil {
		left = sql.NullFloat64{Float64: rec.Box.Left, Valid: true}
		top = sql.NullFloat64{Float64: rec.Box.Top, Valid: true}
		width = sql.NullFloat64{Float64: rec.Box.Width, Valid: true}
		height = sql.NullFloat64{Float64: rec.Box.Height, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO faces (face_id, image_key, box_left, box_top, box_width, box_height)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(face_id) DO UPDATE SET
			image_key = excluded.image_key,
			box_left = excluded.box_left,
			box_top = excluded.box_top,
			box_width = excluded.box_width,
			box_height = excluded.box_height`,
		rec.FaceID, rec.ImageKey, left, top, width, height)

	observe("upsert", err)
	if err != nil {
		return fmt.Errorf("failed to upsert face %q: %w", rec.FaceID, err)
	}
	return nil
}

// Get returns a single face record by id.
func (s *Store) Get(ctx context.Context, faceID string) (FaceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx, `
		SELECT face_id, image_key, box_left, box_top, box_width, box_height
		FROM faces WHERE face_id = ?`, faceID)

	rec, err := scanFace(row)
	if errors.Is(err, sql.ErrNoRows) {
		observe("get", nil)
		return FaceRecord{}, ErrNotFound
	}
	observe("get", err)
	if err != nil {
		return FaceRecord{}, fmt.Errorf("failed to read face %q: %w", faceID, err)
	}
	return rec, nil
}

// ListByPrefix returns all face records whose image key starts with the
// given prefix, ordered by face id for stable output.
func (s *Store) ListByPrefix(ctx context.Context, prefix string) ([]FaceRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := s.db.QueryContext(ctx, `
		SELECT face_id, image_key, box_left, box_top, box_width, box_height
		FROM faces WHERE image_key LIKE ? || '%'
		ORDER BY face_id`, prefix)
	observe("list", err)
	if err != nil {
		return nil, fmt.Errorf("failed to list faces under %q: %w", prefix, err)
	}
	defer rows.Close()

	var records []FaceRecord
	for rows.Next() {
		rec, err := scanFace(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan face record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate face records: %w", err)
	}
	return records, nil
}

// DeleteByImageKey removes every face record tied to a deleted photo.
// Returns the number of records removed.
func (s *Store) DeleteByImageKey(ctx context.Context, imageKey string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := s.db.ExecContext(ctx, `DELETE FROM faces WHERE image_key = ?`, imageKey)
	observe("delete", err)
	if err != nil {
		return 0, fmt.Errorf("failed to delete faces for %q: %w", imageKey, err)
	}

	n, _ := res.RowsAffected()
	if n > 0 {
		logging.Debug("Removed %d face records for deleted photo %s", n, imageKey)
	}
	return n, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanFace(row rowScanner) (FaceRecord, error) {
	var rec FaceRecord
	var left, top, width, height sql.NullFloat64

	if err := row.Scan(&rec.FaceID, &rec.ImageKey, &left, &top, &width, &height); err != nil {
		return FaceRecord{}, err
	}

	// A record written without coordinates stays box-less.
	if left.Valid && top.Valid && width.Valid && height.Valid {
		rec.Box = &facecrop.BoundingBox{
			Left:   left.Float64,
			Top:    top.Float64,
			Width:  width.Float64,
			Height: height.Float64,
		}
	}
	return rec, nil
}

func observe(operation string, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	metrics.FaceStoreQueriesTotal.WithLabelValues(operation, status).Inc()
}
