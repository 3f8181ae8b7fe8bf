package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asset-manager-api/internal/application/ports"
	"asset-manager-api/internal/interface/api/rest/dto/auth"
	"asset-manager-api/internal/interface/api/rest/validator"
)

type AuthController struct {
	logger      *zap.Logger
	authService ports.Auth
	bearer      string
}

func NewAuthController(
	r *gin.Engine,
	logger *zap.Logger,
	authService ports.Auth,
	bearer string,
) *AuthController {
	ac := &AuthController{
		logger:      logger,
		authService: authService,
		bearer:      bearer,
	}

	r.POST(RouteLogin, ac.LoginHandler)

	return ac
}

func (ac *AuthController) LoginHandler(c *gin.Context) {
	var req auth.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "invalid json"},
		)
		return
	}

	if errs := validator.ValidateLogin(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	_, pid := validator.IsUUID(req.UserID)

	toks, err := ac.authService.Login(c.Request.Context(), pid, ports.LoginOptions{
		Password:   req.Password,
		AccessTTL:  req.AccessTTL,
		RefreshTTL: req.RefreshTTL,
	})
	if err != nil {
		respondError(c, ac.logger, "Login()", err)
		return
	}

	c.JSON(http.StatusOK, auth.LoginResponse{
		AccessToken:  toks.Access,
		AccessExp:    toks.AccessExp,
		RefreshToken: toks.Refresh,
		RefreshExp:   toks.RefreshExp,
		TokenType:    ac.bearer,
	})
}
