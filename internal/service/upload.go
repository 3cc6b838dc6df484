package service

import (
	"Go_Mall/internal/repo"
	"Go_Mall/internal/storage"
	"Go_Mall/model"
	"Go_Mall/utils"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log"

	"gorm.io/gorm"
)

// TempChunkDir returns the temporary chunk prefix for a session.
func TempChunkDir(token string) string {
	return fmt.Sprintf("uploads/tmp/%s", token)
}

// TempChunkPath returns the temporary path for one chunk.
func TempChunkPath(token string, index int) string {
	return fmt.Sprintf("uploads/tmp/%s/chunk_%d", token, index)
}

// PermanentPath returns the final object path for a completed upload.
func PermanentPath(token, filename string) string {
	return fmt.Sprintf("uploads/%s/%s", token, filename)
}

// InitiateUpload creates a new upload session in uploading status.
func InitiateUpload(filename, mimeType string, totalSize, chunkSize int64) (*model.UploadSession, error) {
	if filename == "" || mimeType == "" {
		return nil, fmt.Errorf("%w: filename and mime type required", ErrInvalidArgument)
	}
	if totalSize < 1 || chunkSize < 1 {
		return nil, fmt.Errorf("%w: total size and chunk size must be at least 1", ErrInvalidArgument)
	}
	totalChunks := int((totalSize + chunkSize - 1) / chunkSize)
	session := &model.UploadSession{
		Token:       utils.GetToken(),
		Filename:    filename,
		MimeType:    mimeType,
		TotalSize:   totalSize,
		ChunkSize:   chunkSize,
		TotalChunks: totalChunks,
		Status:      model.UploadStatusUploading,
		Chunks:      model.ChunkSet{},
	}
	if err := repo.Db.Create(session).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// GetUploadByToken loads an upload session by token.
func GetUploadByToken(token string) (*model.UploadSession, error) {
	var session model.UploadSession
	if err := repo.Db.Where("token = ?", token).First(&session).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUploadNotFound
		}
		return nil, err
	}
	return &session, nil
}

// SnapshotUpload returns the current session state without mutating it.
func SnapshotUpload(token string) (*model.UploadSession, error) {
	return GetUploadByToken(token)
}

// RecordChunk stores one chunk and marks its index received. Chunks arrive in
// any order and may be resubmitted; the uploaded count is always the
// cardinality of the received-index set. Completed sessions absorb late
// chunks as no-ops.
func RecordChunk(ctx context.Context, token string, index int, data []byte) (*model.UploadSession, error) {
	mu := lockFor("upload:" + token)
	mu.Lock()
	defer mu.Unlock()

	session, err := GetUploadByToken(token)
	if err != nil {
		return nil, err
	}
	if session.Status == model.UploadStatusCompleted {
		return session, nil
	}
	if index < 0 || index >= session.TotalChunks {
		return nil, fmt.Errorf("%w: chunk index %d out of range [0,%d)", ErrInvalidArgument, index, session.TotalChunks)
	}
	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized")
	}
	if err := storage.Default.Put(
		ctx,
		TempChunkPath(token, index),
		bytes.NewReader(data),
		int64(len(data)),
		storage.PutOptions{},
	); err != nil {
		return nil, err
	}
	if session.Chunks == nil {
		session.Chunks = model.ChunkSet{}
	}
	session.Chunks.Add(index)
	session.UploadedChunks = session.Chunks.Count()
	if err := repo.Db.Model(&model.UploadSession{}).
		Where("id = ?", session.ID).
		Updates(map[string]interface{}{
			"chunks":          session.Chunks,
			"uploaded_chunks": session.UploadedChunks,
		}).Error; err != nil {
		return nil, err
	}
	return session, nil
}

// CompleteUpload reassembles the stored chunks in ascending index order,
// verifies the SHA-256 checksum and persists the final object. Missing
// indices are skipped; a truncated upload surfaces as a checksum mismatch.
// Calling it on an already completed session is a no-op.
func CompleteUpload(ctx context.Context, token, expectedChecksum string) (*model.UploadSession, error) {
	mu := lockFor("upload:" + token)
	mu.Lock()
	defer mu.Unlock()

	session, err := GetUploadByToken(token)
	if err != nil {
		return nil, err
	}
	if session.Status == model.UploadStatusCompleted {
		return session, nil
	}
	if storage.Default == nil {
		return nil, fmt.Errorf("storage not initialized")
	}

	var buf bytes.Buffer
	for i := 0; i < session.TotalChunks; i++ {
		chunkPath := TempChunkPath(token, i)
		exists, err := storage.Default.Exists(ctx, chunkPath)
		if err != nil {
			return nil, err
		}
		if !exists {
			continue
		}
		reader, _, err := storage.Default.Get(ctx, chunkPath)
		if err != nil {
			return nil, err
		}
		_, err = io.Copy(&buf, reader)
		_ = reader.Close()
		if err != nil {
			return nil, err
		}
	}

	sum := sha256.Sum256(buf.Bytes())
	actual := hex.EncodeToString(sum[:])
	if actual != expectedChecksum {
		if err := repo.Db.Model(&model.UploadSession{}).
			Where("id = ?", session.ID).
			Update("status", model.UploadStatusFailed).Error; err != nil {
			return nil, err
		}
		session.Status = model.UploadStatusFailed
		return nil, ErrChecksumMismatch
	}

	finalPath := PermanentPath(token, session.Filename)
	if err := storage.Default.Put(
		ctx,
		finalPath,
		bytes.NewReader(buf.Bytes()),
		int64(buf.Len()),
		storage.PutOptions{ContentType: session.MimeType},
	); err != nil {
		return nil, err
	}
	// The final object is written before the status commit; on commit
	// failure the object is removed so readers never see a completed file
	// behind a non-completed status.
	if err := repo.Db.Transaction(func(tx *gorm.DB) error {
		return tx.Model(&model.UploadSession{}).
			Where("id = ? AND status <> ?", session.ID, model.UploadStatusCompleted).
			Updates(map[string]interface{}{
				"status":   model.UploadStatusCompleted,
				"checksum": actual,
			}).Error
	}); err != nil {
		_ = storage.Default.Remove(ctx, finalPath)
		return nil, err
	}
	if err := storage.Default.RemoveDirectory(ctx, TempChunkDir(token)); err != nil {
		log.Printf("upload %s: temp chunk cleanup failed: %v", token, err)
	}
	session.Status = model.UploadStatusCompleted
	session.Checksum = actual
	return session, nil
}
