package model

import (
	"testing"
)

func TestChunkSetAddCount(t *testing.T) {
	s := ChunkSet{}
	s.Add(0)
	s.Add(2)
	s.Add(0)
	if s.Count() != 2 {
		t.Errorf("count = %d, want 2", s.Count())
	}
	if !s.Has(0) || !s.Has(2) || s.Has(1) {
		t.Errorf("set = %v", s)
	}
}

func TestChunkSetValueScanRoundTrip(t *testing.T) {
	s := ChunkSet{}
	s.Add(0)
	s.Add(5)

	value, err := s.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var restored ChunkSet
	if err := restored.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if restored.Count() != 2 || !restored.Has(0) || !restored.Has(5) {
		t.Errorf("restored = %v", restored)
	}
}

func TestChunkSetScanVariants(t *testing.T) {
	var fromBytes ChunkSet
	if err := fromBytes.Scan([]byte(`{"1":true}`)); err != nil {
		t.Fatalf("scan bytes: %v", err)
	}
	if !fromBytes.Has(1) {
		t.Error("byte scan lost index 1")
	}

	var fromNil ChunkSet
	if err := fromNil.Scan(nil); err != nil {
		t.Fatalf("scan nil: %v", err)
	}
	if fromNil.Count() != 0 {
		t.Errorf("nil scan count = %d", fromNil.Count())
	}

	var fromEmpty ChunkSet
	if err := fromEmpty.Scan(""); err != nil {
		t.Fatalf("scan empty: %v", err)
	}

	var fromBad ChunkSet
	if err := fromBad.Scan(42); err == nil {
		t.Error("scan of int should fail")
	}
}

func TestUploadSessionIsComplete(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		uploaded int
		total    int
		want     bool
	}{
		{"completed and full", UploadStatusCompleted, 5, 5, true},
		{"completed but short", UploadStatusCompleted, 4, 5, false},
		{"uploading", UploadStatusUploading, 5, 5, false},
		{"failed", UploadStatusFailed, 5, 5, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &UploadSession{Status: tt.status, UploadedChunks: tt.uploaded, TotalChunks: tt.total}
			if got := u.IsComplete(); got != tt.want {
				t.Errorf("IsComplete() = %v, want %v", got, tt.want)
			}
		})
	}
}
