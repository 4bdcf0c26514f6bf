package handler

import (
	"net/http"

	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminAuthHandler struct {
	uc *usecase.AdminAuthUsecase
}

func NewAdminAuthHandler(uc *usecase.AdminAuthUsecase) *AdminAuthHandler {
	return &AdminAuthHandler{uc: uc}
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// rateLimitでログイン試行を制限
func (h *AdminAuthHandler) RegisterRoutes(e *echo.Echo, rateLimit echo.MiddlewareFunc) {
	e.POST("/admin/login", h.login, rateLimit)
}

func (h *AdminAuthHandler) login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid input"})
	}

	out, err := h.uc.Login(c.Request().Context(), usecase.AdminLoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
