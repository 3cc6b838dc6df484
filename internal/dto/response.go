package dto

// InitiateUploadResponse is the response for upload initiation.
type InitiateUploadResponse struct {
	Token       string `json:"token"`
	TotalChunks int    `json:"total_chunks"`
}

// UploadChunkResponse is the per-chunk progress snapshot.
type UploadChunkResponse struct {
	UploadedChunks int    `json:"uploaded_chunks"`
	TotalChunks    int    `json:"total_chunks"`
	Status         string `json:"status"`
}

// CompleteUploadResponse is the response for upload completion.
type CompleteUploadResponse struct {
	Token    string `json:"token"`
	Status   string `json:"status"`
	Checksum string `json:"checksum"`
}

// AttachImageResponse is the response for attaching an upload to a product.
type AttachImageResponse struct {
	AssetID   uint64 `json:"asset_id"`
	ProductID uint64 `json:"product_id"`
	IsPrimary bool   `json:"is_primary"`
}

// ImportResult summarizes a CSV product import.
type ImportResult struct {
	Total      int `json:"total"`
	Created    int `json:"created"`
	Updated    int `json:"updated"`
	Invalid    int `json:"invalid"`
	Duplicates int `json:"duplicates"`
}
