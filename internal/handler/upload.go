package handler

import (
	"Go_Mall/config"
	"Go_Mall/internal/dto"
	"Go_Mall/internal/repo"
	"Go_Mall/internal/service"
	"Go_Mall/utils"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors to HTTP status codes.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUploadNotFound), errors.Is(err, service.ErrProductNotFound):
		utils.FailStatus(c, http.StatusNotFound, err)
	case errors.Is(err, service.ErrInvalidArgument):
		utils.FailStatus(c, http.StatusBadRequest, err)
	case errors.Is(err, service.ErrUploadIncomplete):
		utils.FailStatus(c, http.StatusConflict, err)
	case errors.Is(err, service.ErrChecksumMismatch):
		utils.FailStatus(c, http.StatusUnprocessableEntity, err)
	default:
		utils.FailStatus(c, http.StatusInternalServerError, err)
	}
}

// InitiateUpload creates a new chunked upload session.
func InitiateUpload(c *gin.Context) {
	var req dto.InitiateUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailStatus(c, http.StatusBadRequest, err)
		return
	}
	session, err := service.InitiateUpload(req.Filename, req.MimeType, req.TotalSize, req.ChunkSize)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, dto.InitiateUploadResponse{
		Token:       session.Token,
		TotalChunks: session.TotalChunks,
	})
}

// UploadChunk records one base64-encoded chunk. Any arrival order is fine
// and resubmissions are no-ops.
func UploadChunk(c *gin.Context) {
	var req dto.UploadChunkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailStatus(c, http.StatusBadRequest, err)
		return
	}
	data, err := base64.StdEncoding.DecodeString(req.ChunkData)
	if err != nil {
		utils.FailStatus(c, http.StatusBadRequest, fmt.Errorf("invalid chunk_data: %w", err))
		return
	}
	if max := config.AppConfig.MaxChunkBytes; max > 0 && int64(len(data)) > max {
		utils.FailStatus(c, http.StatusBadRequest, fmt.Errorf("chunk exceeds %d bytes", max))
		return
	}
	ctx := c.Request.Context()
	lock := repo.NewRedisLock(
		repo.Redis,
		"lock:chunks:"+req.Token,
		10*time.Second,
	)
	if err := lock.Lock(ctx); err != nil {
		utils.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("lock failed: %w", err))
		return
	}
	defer lock.Unlock(ctx)
	session, err := service.RecordChunk(ctx, req.Token, *req.ChunkIndex, data)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, dto.UploadChunkResponse{
		UploadedChunks: session.UploadedChunks,
		TotalChunks:    session.TotalChunks,
		Status:         session.Status,
	})
}

// GetUploadStatus reports session progress without mutating it.
func GetUploadStatus(c *gin.Context) {
	session, err := service.SnapshotUpload(c.Param("token"))
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, dto.UploadChunkResponse{
		UploadedChunks: session.UploadedChunks,
		TotalChunks:    session.TotalChunks,
		Status:         session.Status,
	})
}

// CompleteUpload reassembles the chunks and verifies the declared checksum.
func CompleteUpload(c *gin.Context) {
	var req dto.CompleteUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailStatus(c, http.StatusBadRequest, err)
		return
	}
	ctx := c.Request.Context()
	lock := repo.NewRedisLock(
		repo.Redis,
		"lock:assemble:"+req.Token,
		30*time.Second,
	)
	if err := lock.Lock(ctx); err != nil {
		utils.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("lock failed: %w", err))
		return
	}
	defer lock.Unlock(ctx)
	session, err := service.CompleteUpload(ctx, req.Token, req.Checksum)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, dto.CompleteUploadResponse{
		Token:    session.Token,
		Status:   session.Status,
		Checksum: session.Checksum,
	})
}

// AttachImage binds a completed upload to a product and schedules variant
// generation.
func AttachImage(c *gin.Context) {
	var req dto.AttachImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.FailStatus(c, http.StatusBadRequest, err)
		return
	}
	setAsPrimary := true
	if req.SetAsPrimary != nil {
		setAsPrimary = *req.SetAsPrimary
	}
	ctx := c.Request.Context()
	lock := repo.NewRedisLock(
		repo.Redis,
		"lock:primary:"+strconv.FormatUint(req.ProductID, 10),
		30*time.Second,
	)
	if err := lock.Lock(ctx); err != nil {
		utils.FailStatus(c, http.StatusInternalServerError, fmt.Errorf("lock failed: %w", err))
		return
	}
	defer lock.Unlock(ctx)
	asset, err := service.AttachToProduct(ctx, req.UploadToken, req.ProductID, setAsPrimary)
	if err != nil {
		respondError(c, err)
		return
	}
	utils.Success(c, dto.AttachImageResponse{
		AssetID:   asset.ID,
		ProductID: asset.ProductID,
		IsPrimary: asset.IsPrimary,
	})
}
