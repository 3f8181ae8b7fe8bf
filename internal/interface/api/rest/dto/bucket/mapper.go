package bucket

import (
	"asset-manager-api/internal/domain/bucket"
)

func ToResponseBucket(bDomain bucket.Bucket) Bucket {
	return Bucket{
		Name:      bDomain.Name,
		MaxSize:   bDomain.MaxSize,
		CreatedAt: bDomain.CreatedAt,
	}
}
