package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

func TestMemoryStorePutGet(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	data := []byte("chunk body")
	if err := s.Put(ctx, "uploads/tmp/t/chunk_0", bytes.NewReader(data), int64(len(data)), PutOptions{}); err != nil {
		t.Fatalf("put: %v", err)
	}

	reader, info, err := s.Get(ctx, "uploads/tmp/t/chunk_0")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	got, _ := io.ReadAll(reader)
	reader.Close()
	if !bytes.Equal(got, data) {
		t.Errorf("got %q, want %q", got, data)
	}
	if info.Size != int64(len(data)) {
		t.Errorf("size = %d, want %d", info.Size, len(data))
	}
}

func TestMemoryStoreGetMissing(t *testing.T) {
	s := NewMemoryStore()
	_, _, err := s.Get(context.Background(), "nope")
	if !errors.Is(err, ErrObjectNotFound) {
		t.Errorf("err = %v, want ErrObjectNotFound", err)
	}
}

func TestMemoryStoreExistsAndRemove(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Put(ctx, "a/b", bytes.NewReader([]byte("x")), 1, PutOptions{})

	if ok, _ := s.Exists(ctx, "a/b"); !ok {
		t.Error("object missing after put")
	}
	if err := s.Remove(ctx, "a/b"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if ok, _ := s.Exists(ctx, "a/b"); ok {
		t.Error("object present after remove")
	}
	// Removing a missing object is not an error.
	if err := s.Remove(ctx, "a/b"); err != nil {
		t.Errorf("second remove: %v", err)
	}
}

func TestMemoryStoreRemoveDirectory(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	_ = s.Put(ctx, "uploads/tmp/t1/chunk_0", bytes.NewReader([]byte("a")), 1, PutOptions{})
	_ = s.Put(ctx, "uploads/tmp/t1/chunk_1", bytes.NewReader([]byte("b")), 1, PutOptions{})
	_ = s.Put(ctx, "uploads/tmp/t10/chunk_0", bytes.NewReader([]byte("c")), 1, PutOptions{})
	_ = s.Put(ctx, "uploads/t1/final.png", bytes.NewReader([]byte("d")), 1, PutOptions{})

	if err := s.RemoveDirectory(ctx, "uploads/tmp/t1"); err != nil {
		t.Fatalf("remove directory: %v", err)
	}

	// Only the exact prefix goes; the sibling t10 session survives.
	if ok, _ := s.Exists(ctx, "uploads/tmp/t1/chunk_0"); ok {
		t.Error("chunk_0 survived prefix removal")
	}
	if ok, _ := s.Exists(ctx, "uploads/tmp/t10/chunk_0"); !ok {
		t.Error("sibling session object removed")
	}
	if ok, _ := s.Exists(ctx, "uploads/t1/final.png"); !ok {
		t.Error("permanent object removed")
	}
	if s.Len() != 2 {
		t.Errorf("len = %d, want 2", s.Len())
	}
}
