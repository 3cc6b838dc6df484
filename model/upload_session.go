package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

const (
	UploadStatusPending   = "pending"
	UploadStatusUploading = "uploading"
	UploadStatusCompleted = "completed"
	UploadStatusFailed    = "failed"
)

// ChunkSet tracks which chunk indices have arrived. It is owned by the
// upload session and mutated only through the upload service, so duplicate
// chunk submissions never inflate the uploaded count.
type ChunkSet map[int]bool

// Add marks a chunk index as received.
func (s ChunkSet) Add(index int) {
	s[index] = true
}

// Has reports whether a chunk index has been received.
func (s ChunkSet) Has(index int) bool {
	return s[index]
}

// Count returns the number of distinct received indices.
func (s ChunkSet) Count() int {
	return len(s)
}

// Value serializes the set as JSON for storage.
func (s ChunkSet) Value() (driver.Value, error) {
	if s == nil {
		return "{}", nil
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan deserializes the set from its JSON column.
func (s *ChunkSet) Scan(value interface{}) error {
	if value == nil {
		*s = ChunkSet{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("chunk set: unsupported column type %T", value)
	}
	if len(data) == 0 {
		*s = ChunkSet{}
		return nil
	}
	return json.Unmarshal(data, s)
}

type UploadSession struct {
	ID uint64 `gorm:"primaryKey"`

	Token string `gorm:"column:token;size:36;uniqueIndex;not null"`

	Filename string `gorm:"column:filename;size:255;not null"`
	MimeType string `gorm:"column:mime_type;size:128;not null"`

	TotalSize int64 `gorm:"column:total_size;not null"`
	ChunkSize int64 `gorm:"column:chunk_size;not null"`

	TotalChunks    int `gorm:"column:total_chunks;not null"`
	UploadedChunks int `gorm:"column:uploaded_chunks;not null;default:0"`

	Checksum string `gorm:"column:checksum;size:64"`

	Status string `gorm:"column:status;size:16;index;not null;default:uploading"`

	Chunks ChunkSet `gorm:"column:chunks;type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the database table name.
func (UploadSession) TableName() string {
	return "upload_session"
}

// IsComplete reports whether the session finished reassembly with every
// declared chunk accounted for.
func (u *UploadSession) IsComplete() bool {
	return u.Status == UploadStatusCompleted && u.UploadedChunks >= u.TotalChunks
}
