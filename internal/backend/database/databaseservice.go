package database

import (
	"database/sql"
	"errors"
)

// ErrMediaNotFound is returned when no media record matches the given ID.
var ErrMediaNotFound = errors.New("media not found")

type DatabaseService interface {
	CreateDatabase() (*sql.DB, error)
	DoesDatabaseExist() bool
	Close() error

	// CreateMedia stores record together with its original bytes and returns the new ID.
	CreateMedia(record *MediaRecord) (string, error)
	// GetMediaByID returns the metadata of a record; Data is left empty.
	GetMediaByID(id string) (*MediaRecord, error)
	GetMediaData(id string) ([]byte, error)
	// GetAllMedia returns metadata of all records ordered by creation.
	GetAllMedia() ([]*MediaRecord, error)
	DeleteMedia(id string) error
}
