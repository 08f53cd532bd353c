package database

import "time"

type MediaRecord struct {
	ID         string    `db:"id" json:"id"`
	Kind       string    `db:"kind" json:"kind"`
	MimeType   string    `db:"mime_type" json:"mimeType"`
	Width      int       `db:"width" json:"width"`
	Height     int       `db:"height" json:"height"`
	PageCount  int       `db:"page_count" json:"pageCount"`
	FrameCount int       `db:"frame_count" json:"frameCount"`
	Size       int64     `db:"size" json:"size"`
	MustRender bool      `db:"must_render" json:"mustRender"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
	Data       []byte    `db:"data" json:"-"` // original bytes, only set on insert
}
