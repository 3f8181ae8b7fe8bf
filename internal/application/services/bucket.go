package services

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/domain/asset"
	domain "asset-manager-api/internal/domain/bucket"
	"asset-manager-api/internal/infrastructure/mq"
	"asset-manager-api/internal/infrastructure/storage"
)

type BucketService struct {
	bucketRepository domain.Repository
	storage          *storage.Manager
	mq               ports.RabbitMQ
	mCounter         *prometheus.CounterVec
}

func NewBucketService(
	bucketRepository domain.Repository,
	storage *storage.Manager,
	mq ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
) ports.BucketService {
	return &BucketService{
		bucketRepository: bucketRepository,
		storage:          storage,
		mq:               mq,
		mCounter:         mCounter,
	}
}

// CreateBucket provisions a named partition for a client: the backing
// folder plus the record carrying the optional size cap.
func (bs *BucketService) CreateBucket(ctx context.Context, clientID uint64, opts ports.CreateBucketOptions) (*domain.Bucket, error) {
	name, err := normalizePath(opts.Partition)
	if err != nil {
		return nil, err
	}

	if _, err = bs.storage.Create(storage.CreateOptions{
		Path:          name,
		Type:          asset.TypeFolder,
		CreateParents: true,
	}); err != nil {
		return nil, err
	}

	b, err := bs.bucketRepository.CreateBucket(ctx, domain.Bucket{
		Name:     name,
		ClientID: clientID,
		MaxSize:  opts.PartitionSize,
	})
	if err != nil {
		return nil, err
	}

	bs.mq.GetInputChan() <- mq.Event{
		Id:       uuid.New(),
		TS:       time.Now(),
		Method:   http.MethodPost,
		Resource: mq.Resource{Kind: "bucket", Ref: b.Name},
	}

	bs.mCounter.WithLabelValues("bucket_created_total").Inc()

	return b, nil
}

// PartitionSize reports the bytes used under a known partition.
func (bs *BucketService) PartitionSize(ctx context.Context, name string) (int64, error) {
	b, err := bs.bucketRepository.FetchBucketByName(ctx, name)
	if err != nil {
		return 0, err
	}

	return bs.storage.FolderSize(bs.storage.PhysicalPath(b.Name))
}
