package dto

type InitiateUploadRequest struct {
	Filename  string `json:"filename" binding:"required,max=255"`
	MimeType  string `json:"mime_type" binding:"required"`
	TotalSize int64  `json:"total_size" binding:"required,min=1"`
	ChunkSize int64  `json:"chunk_size" binding:"required,min=1"`
}

// ChunkIndex is a pointer so index 0 survives the required check.
type UploadChunkRequest struct {
	Token      string `json:"token" binding:"required,uuid"`
	ChunkIndex *int   `json:"chunk_index" binding:"required,gte=0"`
	ChunkData  string `json:"chunk_data" binding:"required"`
}

type CompleteUploadRequest struct {
	Token    string `json:"token" binding:"required,uuid"`
	Checksum string `json:"checksum" binding:"required,len=64,hexadecimal,lowercase"`
}

// SetAsPrimary defaults to true when omitted.
type AttachImageRequest struct {
	UploadToken  string `json:"upload_token" binding:"required,uuid"`
	ProductID    uint64 `json:"product_id" binding:"required"`
	SetAsPrimary *bool  `json:"set_as_primary"`
}
