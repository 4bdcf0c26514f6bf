package handler

import (
	"net/http"

	"github.com/LCtech96/EmilyBoutique/internal/usecase"

	"github.com/labstack/echo/v4"
)

const IdempotencyKeyHeader = "X-Idempotency-Key"

type OrderHandler struct {
	uc *usecase.OrderUsecase
}

func NewOrderHandler(uc *usecase.OrderUsecase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

type CheckoutRequest struct {
	ShippingMethod string `json:"shipping_method" validate:"required"`
	PaymentMethod  string `json:"payment_method" validate:"required"`
}

// どちらのgroupにもセッションmiddlewareが付いている
func (h *OrderHandler) RegisterRoutes(cart, orders *echo.Group) {
	cart.POST("/checkout", h.checkout)
	orders.GET("/:id", h.detail)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	var req CheckoutRequest
	if err := bindAndValidate(c, &req); err != nil {
		return writeError(c, err)
	}

	//二重送信防止キーはヘッダーから受け取る（bodyには入れない）
	out, err := h.uc.Checkout(c.Request().Context(), getSessionID(c), usecase.CheckoutInput{
		ShippingMethod: req.ShippingMethod,
		PaymentMethod:  req.PaymentMethod,
		IdempotencyKey: c.Request().Header.Get(IdempotencyKeyHeader),
	})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	out, err := h.uc.GetSessionOrder(c.Request().Context(), getSessionID(c), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}
