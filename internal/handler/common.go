package handler

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/LCtech96/EmilyBoutique/internal/middleware"
	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Message string `json:"message"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	c.Logger().Error(err)
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// リクエストボディを読み取り、Validatorで検証
func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return usecase.NewHTTPError(http.StatusBadRequest, "invalid body")
	}
	return c.Validate(req)
}

// middleware.CartSessionがセット
func getSessionID(c echo.Context) string {
	id, _ := c.Get(middleware.CtxSessionIDKey).(string)
	return id
}

// middleware.AuthJWTがセット
func getAdminEmail(c echo.Context) (string, bool) {
	email, ok := c.Get(middleware.CtxAdminEmailKey).(string)
	return email, ok && email != ""
}

// 任意の整数クエリを読む
func queryInt(c echo.Context, name string, def int) (int, error) {
	v := c.QueryParam(name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, usecase.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return n, nil
}

// RawPathがあるときだけparamはエスケープされたまま（それ以外はデコード済み）
func lineIDParam(c echo.Context) string {
	raw := c.Param("id")
	if c.Request().URL.RawPath == "" {
		return raw
	}
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}
