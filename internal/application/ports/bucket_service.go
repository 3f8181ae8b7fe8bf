package ports

import (
	"context"

	"asset-manager-api/internal/domain/bucket"
)

type CreateBucketOptions struct {
	Partition     string
	PartitionSize *int64
}

type BucketService interface {
	CreateBucket(ctx context.Context, clientID uint64, opts CreateBucketOptions) (*bucket.Bucket, error)
	// PartitionSize reports the bytes currently used under a partition.
	PartitionSize(ctx context.Context, name string) (int64, error)
}
