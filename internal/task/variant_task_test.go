package task

import (
	"Go_Mall/internal/repo"
	"Go_Mall/internal/service"
	"Go_Mall/internal/storage"
	"Go_Mall/model"
	"Go_Mall/utils"
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"time"

	"gorm.io/gorm"
)

func setupTaskTest(t *testing.T) *storage.MemoryStore {
	t.Helper()
	repo.InitSqliteTest()
	mem := storage.NewMemoryStore()
	storage.Default = mem
	return mem
}

func seedAssetWithImage(t *testing.T, mem *storage.MemoryStore) *model.ImageAsset {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.Set(x, y, color.RGBA{R: 120, G: 60, B: 30, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	data := buf.Bytes()

	session := &model.UploadSession{
		Token:          utils.GetToken(),
		Filename:       "item.png",
		MimeType:       "image/png",
		TotalSize:      int64(len(data)),
		ChunkSize:      int64(len(data)),
		TotalChunks:    1,
		UploadedChunks: 1,
		Status:         model.UploadStatusCompleted,
		Chunks:         model.ChunkSet{0: true},
	}
	if err := repo.Db.Create(session).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	product := &model.Product{SKU: "SKU-" + session.Token[:8], Name: "Item"}
	if err := repo.Db.Create(product).Error; err != nil {
		t.Fatalf("create product: %v", err)
	}

	path := service.PermanentPath(session.Token, session.Filename)
	if err := mem.Put(context.Background(), path, bytes.NewReader(data), int64(len(data)), storage.PutOptions{}); err != nil {
		t.Fatalf("store original: %v", err)
	}
	asset := &model.ImageAsset{
		UploadID:  session.ID,
		ProductID: product.ID,
		Path:      path,
		Variant:   model.VariantOriginal,
		Size:      int64(len(data)),
		IsPrimary: true,
	}
	if err := repo.Db.Create(asset).Error; err != nil {
		t.Fatalf("create asset: %v", err)
	}
	return asset
}

func TestProcessVariantTaskCompletes(t *testing.T) {
	mem := setupTaskTest(t)
	asset := seedAssetWithImage(t, mem)

	row := &model.VariantTask{AssetID: asset.ID, Status: "pending"}
	if err := repo.Db.Create(row).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := ProcessVariantTask(context.Background(), row.ID); err != nil {
		t.Fatalf("process: %v", err)
	}

	var reloaded model.VariantTask
	if err := repo.Db.First(&reloaded, row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "completed" {
		t.Errorf("status = %q, want completed", reloaded.Status)
	}
	if reloaded.StartedAt == nil || reloaded.FinishedAt == nil {
		t.Error("timestamps not set")
	}

	var variants int64
	repo.Db.Model(&model.ImageAsset{}).
		Where("upload_id = ? AND variant <> ?", asset.UploadID, model.VariantOriginal).
		Count(&variants)
	if variants != 3 {
		t.Errorf("variant rows = %d, want 3", variants)
	}
}

func TestProcessVariantTaskCompletedIsNoOp(t *testing.T) {
	setupTaskTest(t)
	row := &model.VariantTask{AssetID: 1, Status: "completed"}
	if err := repo.Db.Create(row).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := ProcessVariantTask(context.Background(), row.ID); err != nil {
		t.Errorf("process completed task: %v", err)
	}
}

func TestProcessVariantTaskClaimedElsewhereIsNoOp(t *testing.T) {
	setupTaskTest(t)
	recent := time.Now()
	row := &model.VariantTask{AssetID: 1, Status: "running", StartedAt: &recent}
	if err := repo.Db.Create(row).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := ProcessVariantTask(context.Background(), row.ID); err != nil {
		t.Errorf("process running task: %v", err)
	}
	var reloaded model.VariantTask
	if err := repo.Db.First(&reloaded, row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "running" {
		t.Errorf("status = %q, want running", reloaded.Status)
	}
}

func TestProcessVariantTaskReclaimsStaleRunning(t *testing.T) {
	mem := setupTaskTest(t)
	asset := seedAssetWithImage(t, mem)

	stale := time.Now().Add(-time.Hour)
	row := &model.VariantTask{AssetID: asset.ID, Status: "running", StartedAt: &stale}
	if err := repo.Db.Create(row).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := ProcessVariantTask(context.Background(), row.ID); err != nil {
		t.Fatalf("process: %v", err)
	}

	var reloaded model.VariantTask
	if err := repo.Db.First(&reloaded, row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "completed" {
		t.Errorf("status = %q, want completed", reloaded.Status)
	}
	if reloaded.StartedAt == nil || !reloaded.StartedAt.After(stale) {
		t.Error("claim timestamp not refreshed")
	}
}

func TestProcessVariantTaskUnknownID(t *testing.T) {
	setupTaskTest(t)
	err := ProcessVariantTask(context.Background(), 12345)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("err = %v, want gorm.ErrRecordNotFound", err)
	}
}

func TestProcessVariantTaskRetryingIsClaimable(t *testing.T) {
	mem := setupTaskTest(t)
	asset := seedAssetWithImage(t, mem)

	row := &model.VariantTask{AssetID: asset.ID, Status: "retrying", RetryCount: 2}
	if err := repo.Db.Create(row).Error; err != nil {
		t.Fatalf("create task: %v", err)
	}
	if err := ProcessVariantTask(context.Background(), row.ID); err != nil {
		t.Fatalf("process: %v", err)
	}
	var reloaded model.VariantTask
	if err := repo.Db.First(&reloaded, row.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if reloaded.Status != "completed" {
		t.Errorf("status = %q, want completed", reloaded.Status)
	}
}
