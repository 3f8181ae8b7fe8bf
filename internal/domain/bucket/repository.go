package bucket

import "context"

type Repository interface {
	CreateBucket(ctx context.Context, req Bucket) (*Bucket, error)
	FetchBucketByName(ctx context.Context, name string) (*Bucket, error)
}
