package handler

import (
	"net/http"
	"strings"

	"github.com/LCtech96/EmilyBoutique/internal/domain/model"
	repo "github.com/LCtech96/EmilyBoutique/internal/repository"
	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

type AdminAuditHandler struct {
	uc *usecase.AuditLogUsecase
}

func NewAdminAuditHandler(uc *usecase.AuditLogUsecase) *AdminAuditHandler {
	return &AdminAuditHandler{uc: uc}
}

func (h *AdminAuditHandler) RegisterRoutes(admin *echo.Group) {
	admin.GET("/audit-logs", h.list)
}

func optionalQuery(c echo.Context, name string) *string {
	v := strings.TrimSpace(c.QueryParam(name))
	if v == "" {
		return nil
	}
	return &v
}

func (h *AdminAuditHandler) list(c echo.Context) error {
	limit, err := queryInt(c, "limit", 50)
	if err != nil {
		return writeError(c, err)
	}
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		return writeError(c, err)
	}

	from, ok := usecase.ParseDateTimeRFC3339(c.QueryParam("from"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid from"})
	}
	to, ok := usecase.ParseDateTimeRFC3339(c.QueryParam("to"))
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid to"})
	}

	f := repo.AuditLogFilter{
		ActorEmail:  optionalQuery(c, "actor_email"),
		ResourceID:  optionalQuery(c, "resource_id"),
		CreatedFrom: from,
		CreatedTo:   to,
		Limit:       limit,
		Offset:      offset,
	}
	if v := optionalQuery(c, "action"); v != nil {
		a := model.AuditAction(*v)
		f.Action = &a
	}
	if v := optionalQuery(c, "resource_type"); v != nil {
		rt := model.AuditResourceType(*v)
		f.ResourceType = &rt
	}

	logs, err := h.uc.List(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, logs)
}
