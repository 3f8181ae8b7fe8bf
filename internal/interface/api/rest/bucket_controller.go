package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/interface/api/rest/dto/bucket"
	"asset-manager-api/internal/interface/api/rest/middleware"
	"asset-manager-api/internal/interface/api/rest/validator"
)

type BucketController struct {
	bucketService ports.BucketService
	logger        *zap.Logger
}

func NewBucketController(
	r *gin.Engine,
	bucketService ports.BucketService,
	clientService ports.ClientService,
	logger *zap.Logger,
) *BucketController {
	bc := &BucketController{
		bucketService: bucketService,
		logger:        logger,
	}

	r.POST(RouteBuckets, middleware.RequireClient(clientService), bc.CreateBucketHandler)
	r.GET(RouteBucketSize, middleware.RequireClient(clientService), bc.GetBucketSizeHandler)

	return bc
}

func (bc *BucketController) CreateBucketHandler(c *gin.Context) {
	cl := middleware.ClientFromContext(c)

	var req bucket.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateBucket(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	b, err := bc.bucketService.CreateBucket(c.Request.Context(), cl.ID, ports.CreateBucketOptions{
		Partition:     req.Partition,
		PartitionSize: req.PartitionSize,
	})
	if err != nil {
		respondError(c, bc.logger, "CreateBucket()", err)
		return
	}

	c.JSON(http.StatusCreated, bucket.ToResponseBucket(*b))
}

func (bc *BucketController) GetBucketSizeHandler(c *gin.Context) {
	name := c.Param("bucket_name")

	size, err := bc.bucketService.PartitionSize(c.Request.Context(), name)
	if err != nil {
		respondError(c, bc.logger, "PartitionSize()", err)
		return
	}

	c.JSON(http.StatusOK, bucket.SizeResponse{Name: name, Size: size})
}
