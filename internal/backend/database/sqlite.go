package database

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

const mediaColumns = "id, kind, mime_type, width, height, page_count, frame_count, size, must_render, created_at"

type SQLiteDatabase struct {
	db               *sql.DB
	connectionString string
}

func NewSQLiteDatabase(connectionString string) (DatabaseService, error) {
	db, err := sql.Open("sqlite", connectionString)
	if err != nil {
		return nil, err
	}
	// every connection to ":memory:" opens its own database
	db.SetMaxOpenConns(1)

	return &SQLiteDatabase{
		db:               db,
		connectionString: connectionString,
	}, nil
}

func (s *SQLiteDatabase) CreateDatabase() (*sql.DB, error) {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS media (
		id TEXT PRIMARY KEY,
		kind TEXT NOT NULL,
		mime_type TEXT NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		page_count INTEGER NOT NULL DEFAULT 1,
		frame_count INTEGER NOT NULL DEFAULT 1,
		size INTEGER NOT NULL,
		must_render INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		data BLOB
	)`)
	if err != nil {
		return nil, err
	}

	return s.db, nil
}

func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *SQLiteDatabase) DoesDatabaseExist() bool {
	// In SQLite, the database file is created when you connect to it.
	// So we can assume it exists if we can successfully ping the database.
	err := s.db.Ping()
	return err == nil
}

func (s *SQLiteDatabase) CreateMedia(record *MediaRecord) (string, error) {
	id, err := generateID()
	if err != nil {
		return "", err
	}

	createdAt := time.Now().UTC()
	_, err = s.db.Exec(
		"INSERT INTO media ("+mediaColumns+", data) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id,
		record.Kind,
		record.MimeType,
		record.Width,
		record.Height,
		record.PageCount,
		record.FrameCount,
		record.Size,
		record.MustRender,
		createdAt.UnixNano(),
		record.Data,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert media: %w", err)
	}

	record.ID = id
	record.CreatedAt = createdAt
	return id, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMedia(row rowScanner) (*MediaRecord, error) {
	var (
		record    MediaRecord
		createdAt int64
	)
	err := row.Scan(
		&record.ID,
		&record.Kind,
		&record.MimeType,
		&record.Width,
		&record.Height,
		&record.PageCount,
		&record.FrameCount,
		&record.Size,
		&record.MustRender,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	record.CreatedAt = time.Unix(0, createdAt).UTC()
	return &record, nil
}

func (s *SQLiteDatabase) GetMediaByID(id string) (*MediaRecord, error) {
	row := s.db.QueryRow("SELECT "+mediaColumns+" FROM media WHERE id = ?", id)
	record, err := scanMedia(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrMediaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read media %s: %w", id, err)
	}
	return record, nil
}

func (s *SQLiteDatabase) GetMediaData(id string) ([]byte, error) {
	row := s.db.QueryRow("SELECT data FROM media WHERE id = ?", id)
	var data []byte
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMediaNotFound
		}
		return nil, fmt.Errorf("failed to read media data %s: %w", id, err)
	}
	return data, nil
}

func (s *SQLiteDatabase) GetAllMedia() ([]*MediaRecord, error) {
	rows, err := s.db.Query("SELECT " + mediaColumns + " FROM media ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close() // Explicitly ignore error as we're already returning an error from the function
	}()

	var records []*MediaRecord
	for rows.Next() {
		record, err := scanMedia(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (s *SQLiteDatabase) DeleteMedia(id string) error {
	res, err := s.db.Exec("DELETE FROM media WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrMediaNotFound
	}
	return nil
}
