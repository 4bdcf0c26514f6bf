package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

const uploadField = "file"

// ヒーロー画像とスポンサー画像
type MediaHandler struct {
	uc *usecase.MediaUsecase
}

func NewMediaHandler(uc *usecase.MediaUsecase) *MediaHandler {
	return &MediaHandler{uc: uc}
}

func (h *MediaHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/media/hero", h.hero)
	e.GET("/media/sponsors", h.sponsors)
}

func (h *MediaHandler) hero(c echo.Context) error {
	out, err := h.uc.GetHero(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *MediaHandler) sponsors(c echo.Context) error {
	out, err := h.uc.ListSponsors(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// 画像アップロード（multipartの"file"）
type AdminMediaHandler struct {
	uc       *usecase.MediaUsecase
	maxBytes int64
}

func NewAdminMediaHandler(uc *usecase.MediaUsecase, maxBytes int64) *AdminMediaHandler {
	return &AdminMediaHandler{uc: uc, maxBytes: maxBytes}
}

func (h *AdminMediaHandler) RegisterRoutes(admin *echo.Group) {
	admin.POST("/media/hero", h.setHero)
	admin.PUT("/media/sponsors/:position", h.setSponsor)
	admin.POST("/uploads/products", h.uploadProductImage)
}

func (h *AdminMediaHandler) setHero(c echo.Context) error {
	actor, ok := getAdminEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	data, err := h.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SetHero(c.Request().Context(), actor, data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminMediaHandler) setSponsor(c echo.Context) error {
	actor, ok := getAdminEmail(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}
	position, err := strconv.Atoi(c.Param("position"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid position"})
	}
	data, err := h.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.SetSponsor(c.Request().Context(), actor, position, data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *AdminMediaHandler) uploadProductImage(c echo.Context) error {
	data, err := h.readUpload(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.UploadProductImage(c.Request().Context(), data)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *AdminMediaHandler) readUpload(c echo.Context) ([]byte, error) {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "file required")
	}
	if fh.Size > h.maxBytes {
		return nil, usecase.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}

	f, err := fh.Open()
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "file required")
	}
	defer f.Close()

	// ヘッダーのサイズはクライアント申告なので実際に読んで確認
	data, err := io.ReadAll(io.LimitReader(f, h.maxBytes+1))
	if err != nil {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "file required")
	}
	if int64(len(data)) > h.maxBytes {
		return nil, usecase.NewHTTPError(http.StatusRequestEntityTooLarge, "file too large")
	}
	return data, nil
}
