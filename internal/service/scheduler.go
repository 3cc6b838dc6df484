package service

import "context"

// VariantScheduler enqueues background variant generation for an asset.
// Delivery is at least once; the handler side is idempotent.
type VariantScheduler interface {
	Enqueue(ctx context.Context, assetID uint64) error
}

// Variants is the main scheduler instance, wired at startup to the RabbitMQ
// backed task queue.
var Variants VariantScheduler
