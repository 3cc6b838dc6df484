package task

import (
	"Go_Mall/internal/mq"
	"Go_Mall/internal/repo"
	"Go_Mall/internal/service"
	"Go_Mall/model"
	"context"
	"encoding/json"
	"time"
)

// VariantMessage is the payload sent to the worker.
type VariantMessage struct {
	TaskID  uint64 `json:"task_id"`
	Attempt int    `json:"attempt"`
}

// Scheduler publishes variant generation tasks to RabbitMQ. It implements
// service.VariantScheduler.
type Scheduler struct{}

// Enqueue creates and publishes a variant task for an asset.
func (Scheduler) Enqueue(ctx context.Context, assetID uint64) error {
	_, err := CreateVariantTask(ctx, assetID)
	return err
}

// CreateVariantTask creates and enqueues a variant generation task.
func CreateVariantTask(ctx context.Context, assetID uint64) (*model.VariantTask, error) {
	task := &model.VariantTask{
		AssetID: assetID,
		Status:  "pending",
	}
	if err := repo.Db.Create(task).Error; err != nil {
		return nil, err
	}
	msg := VariantMessage{
		TaskID:  task.ID,
		Attempt: 0,
	}
	body, err := json.Marshal(msg)
	if err != nil {
		markVariantTaskFailed(task.ID, err)
		return nil, err
	}
	publisher, err := mq.GetPublisher()
	if err != nil {
		markVariantTaskFailed(task.ID, err)
		return nil, err
	}
	if err := publisher.PublishTask(ctx, body); err != nil {
		markVariantTaskFailed(task.ID, err)
		return nil, err
	}
	return task, nil
}

// A running claim older than this is treated as abandoned by a crashed
// worker and may be re-claimed.
const staleClaimAfter = 15 * time.Minute

// ProcessVariantTask executes a variant generation task. Completed tasks and
// tasks claimed by another live worker are skipped, so redelivery is safe;
// stale running claims are taken over.
func ProcessVariantTask(ctx context.Context, taskID uint64) error {
	var task model.VariantTask
	if err := repo.Db.Where("id = ?", taskID).First(&task).Error; err != nil {
		return err
	}
	if task.Status == "completed" {
		return nil
	}
	startedAt := time.Now()
	staleCutoff := startedAt.Add(-staleClaimAfter)
	res := repo.Db.Model(&model.VariantTask{}).
		Where("id = ? AND (status IN ? OR (status = ? AND started_at < ?))",
			taskID, []string{"pending", "retrying"}, "running", staleCutoff).
		Updates(map[string]interface{}{
			"status":     "running",
			"started_at": &startedAt,
			"error_msg":  "",
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return nil
	}

	var asset model.ImageAsset
	if err := repo.Db.Where("id = ?", task.AssetID).First(&asset).Error; err != nil {
		return err
	}
	if err := service.GenerateVariants(ctx, &asset); err != nil {
		return err
	}

	finishedAt := time.Now()
	return repo.Db.Model(&task).Updates(map[string]interface{}{
		"status":      "completed",
		"finished_at": &finishedAt,
	}).Error
}

func markVariantTaskFailed(taskID uint64, err error) {
	finishedAt := time.Now()
	_ = repo.Db.Model(&model.VariantTask{}).
		Where("id = ?", taskID).
		Updates(map[string]interface{}{
			"status":      "failed",
			"error_msg":   err.Error(),
			"finished_at": &finishedAt,
		}).Error
}
