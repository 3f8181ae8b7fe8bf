package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"asset-manager-api/internal/application/ports"
	domain "asset-manager-api/internal/domain/user"
	"asset-manager-api/internal/interface/api/rest/dto/user"
	"asset-manager-api/internal/interface/api/rest/middleware"
	"asset-manager-api/internal/interface/api/rest/validator"
)

type UserController struct {
	userService ports.UserService
	logger      *zap.Logger
}

func NewUserController(
	r *gin.Engine,
	userService ports.UserService,
	clientService ports.ClientService,
	authService ports.Auth,
	logger *zap.Logger,
) *UserController {
	uc := &UserController{
		userService: userService,
		logger:      logger,
	}

	r.GET(RouteMe, middleware.RequireUser(authService), uc.GetMeHandler)
	r.POST(RouteUsers, middleware.RequireClient(clientService), uc.RegisterUserHandler)
	r.GET(RouteUser, middleware.RequireClient(clientService), uc.GetUserHandler)
	r.DELETE(RouteUser, middleware.RequireClient(clientService), uc.DeleteUserHandler)

	return uc
}

func (uc *UserController) GetMeHandler(c *gin.Context) {
	u := middleware.UserFromContext(c)

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) RegisterUserHandler(c *gin.Context) {
	cl := middleware.ClientFromContext(c)

	var req user.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": err.Error(),
		})
		return
	}
	if errs := validator.ValidateRegisterUser(req); errs != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid request body",
			"details": errs,
		})
		return
	}

	role, _ := domain.ParseRole(req.Role)

	u, err := uc.userService.RegisterUser(c.Request.Context(), cl.ID, ports.CreateUserOptions{
		Role:       role,
		RootFolder: req.RootFolder,
		Password:   req.Password,
	})
	if err != nil {
		respondError(c, uc.logger, "RegisterUser()", err)
		return
	}

	c.JSON(http.StatusCreated, user.ToResponseUser(*u))
}

func (uc *UserController) GetUserHandler(c *gin.Context) {
	cl := middleware.ClientFromContext(c)

	ok, pid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	u, err := uc.userService.FindClientUser(c.Request.Context(), cl.ID, pid)
	if err != nil {
		respondError(c, uc.logger, "FindClientUser()", err)
		return
	}

	c.JSON(http.StatusOK, user.ToResponseUser(*u))
}

func (uc *UserController) DeleteUserHandler(c *gin.Context) {
	cl := middleware.ClientFromContext(c)

	ok, pid := validator.IsUUID(c.Param("user_id"))
	if !ok {
		c.JSON(
			http.StatusBadRequest,
			gin.H{"error": "user_id must be a valid UUID"},
		)
		return
	}

	if err := uc.userService.DeleteUser(c.Request.Context(), cl.ID, pid); err != nil {
		respondError(c, uc.logger, "DeleteUser()", err)
		return
	}

	c.Status(http.StatusNoContent)
}
