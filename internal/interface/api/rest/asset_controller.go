package rest

import (
	"html"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/asset"
	"asset-manager-api/internal/domain/user"
	assetDTO "asset-manager-api/internal/interface/api/rest/dto/asset"
	"asset-manager-api/internal/interface/api/rest/middleware"
)

type AssetController struct {
	assetService ports.AssetService
	resolver     ports.AccessResolver
	logger       *zap.Logger
	tmpDir       string
}

func NewAssetController(
	r *gin.Engine,
	assetService ports.AssetService,
	resolver ports.AccessResolver,
	authService ports.Auth,
	logger *zap.Logger,
	tmpDir string,
) *AssetController {
	ac := &AssetController{
		assetService: assetService,
		resolver:     resolver,
		logger:       logger,
		tmpDir:       tmpDir,
	}

	r.GET(RouteAsset, middleware.OptionalUser(authService), ac.GetAssetHandler)
	r.POST(RouteAsset, middleware.RequireUser(authService), ac.CreateAssetHandler)
	r.DELETE(RouteAsset, middleware.RequireUser(authService), ac.DeleteAssetHandler)

	return ac
}

func assetParams(c *gin.Context) (domain.Type, string, bool) {
	t, err := domain.ParseType(c.Param("asset_type"))
	if err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "asset_type must be file or folder"},
		)
		return "", "", false
	}

	p := strings.TrimPrefix(c.Param("asset_path"), "/")
	if p == "" {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "asset path is required"},
		)
		return "", "", false
	}

	return t, p, true
}

func (ac *AssetController) GetAssetHandler(c *gin.Context) {
	t, p, ok := assetParams(c)
	if !ok {
		return
	}

	res, err := ac.resolver.Resolve(c.Request.Context(), t, p, middleware.UserFromContext(c))
	if err != nil {
		respondError(c, ac.logger, "Resolve()", err)
		return
	}

	if t == domain.TypeFile {
		c.File(res.PhysicalPath)
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(renderListing(res.Entries)))
}

// renderListing renders a folder as a minimal HTML page of links, one
// per visible child.
func renderListing(entries []domain.Entry) string {
	if len(entries) == 0 {
		return "<p>No content found.</p>"
	}

	var b strings.Builder
	b.WriteString("<ul>")
	for _, e := range entries {
		b.WriteString("<li><a href='")
		b.WriteString(RouteAssets + "/" + string(e.Type) + "/" + e.Path)
		b.WriteString("'>")
		b.WriteString(html.EscapeString(e.Label))
		b.WriteString("</a></li>")
	}
	b.WriteString("</ul>")

	return b.String()
}

func (ac *AssetController) CreateAssetHandler(c *gin.Context) {
	t, p, ok := assetParams(c)
	if !ok {
		return
	}

	var req assetDTO.CreateRequest
	var tmpFile, uploadName string

	if t == domain.TypeFile && strings.HasPrefix(c.GetHeader("Content-Type"), "multipart/form-data") {
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}

		fh, err := c.FormFile("file")
		if err == nil {
			uploadName = fh.Filename
			tmpFile = filepath.Join(ac.tmpDir, uuid.NewString())
			if err = c.SaveUploadedFile(fh, tmpFile); err != nil {
				ac.logger.Error("SaveUploadedFile() error", zap.Error(err))
				c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to receive upload"})
				return
			}
		}
	} else if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "invalid request body",
				"details": err.Error(),
			})
			return
		}
	}

	sharedWith := make([]user.UUID, 0, len(req.SharedWith))
	for _, s := range req.SharedWith {
		pid, err := uuid.Parse(s)
		if err != nil {
			c.JSON(
				http.StatusBadRequest,
				gin.H{"error": "shared_with entries must be valid UUIDs"},
			)
			return
		}
		sharedWith = append(sharedWith, pid)
	}

	got, err := ac.assetService.CreateAsset(c.Request.Context(), middleware.UserFromContext(c), domain.CreateOptions{
		Path:          p,
		Type:          t,
		Public:        req.Public,
		CustomPath:    req.CustomPath,
		CreateParents: req.CreateParents,
		TmpFile:       tmpFile,
		UploadName:    uploadName,
		SharedWith:    sharedWith,
	})
	if err != nil {
		respondError(c, ac.logger, "CreateAsset()", err)
		return
	}

	c.JSON(http.StatusCreated, assetDTO.CreateResponse{Path: got})
}

func (ac *AssetController) DeleteAssetHandler(c *gin.Context) {
	t, p, ok := assetParams(c)
	if !ok {
		return
	}

	if err := ac.assetService.DeleteAsset(c.Request.Context(), middleware.UserFromContext(c), t, p); err != nil {
		respondError(c, ac.logger, "DeleteAsset()", err)
		return
	}

	c.Status(http.StatusNoContent)
}
