package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"frituurgros/internal/domain"
	"frituurgros/internal/pricing"
	checkoutsvc "frituurgros/internal/service/checkout"
)

type addLineRequest struct {
	ProductID string `json:"productId" binding:"required"`
	VariantID string `json:"variantId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required"`
}

type updateLineRequest struct {
	Delta int `json:"delta" binding:"required"`
}

type submitRequest struct {
	RequestedDeliveryDate string `json:"requestedDeliveryDate"`
	DeliveryInstructions  string `json:"deliveryInstructions"`
}

// zoneFor loads the account's delivery zone, or nil when none is assigned.
func (h *handlers) zoneFor(c *gin.Context, account *domain.ClientAccount) (*domain.DeliveryZone, bool) {
	if account.ZoneID == nil {
		return nil, true
	}
	zone, err := h.deps.Zones.Get(c.Request.Context(), *account.ZoneID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, true
		}
		h.serverError(c, err)
		return nil, false
	}
	return zone, true
}

func (h *handlers) cartResponse(c *gin.Context, account *domain.ClientAccount, lines []domain.CartLine) {
	zone, ok := h.zoneFor(c, account)
	if !ok {
		return
	}
	if lines == nil {
		lines = []domain.CartLine{}
	}
	c.JSON(http.StatusOK, gin.H{
		"lines":  lines,
		"totals": pricing.Evaluate(lines, zone),
	})
}

func (h *handlers) getCart(c *gin.Context) {
	account := currentAccount(c)
	lines := h.deps.Carts.For(account.ID).Load(c.Request.Context())
	h.cartResponse(c, account, lines)
}

func (h *handlers) addCartLine(c *gin.Context) {
	var in addLineRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	account := currentAccount(c)

	product, err := h.deps.Catalog.GetProduct(c.Request.Context(), in.ProductID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.serverError(c, err)
		return
	}
	if !product.Active {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "product unavailable"})
		return
	}
	var variant *domain.Variant
	for i := range product.Variants {
		if product.Variants[i].ID == in.VariantID {
			variant = &product.Variants[i]
			break
		}
	}
	if variant == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "variant not found"})
		return
	}

	line := domain.CartLine{
		ProductID:     product.ID,
		ProductName:   product.Name,
		VariantID:     variant.ID,
		VariantName:   variant.Name,
		VariantWeight: variant.Weight,
		UnitPriceBase: variant.BasePrice,
		UnitPrice:     pricing.UnitPrice(variant.BasePrice, account.DiscountPercentage),
		Quantity:      in.Quantity,
	}
	lines, err := h.deps.Carts.For(account.ID).Add(c.Request.Context(), line)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidQuantity) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
			return
		}
		h.serverError(c, err)
		return
	}
	h.cartResponse(c, account, lines)
}

func (h *handlers) updateCartLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	var in updateLineRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	account := currentAccount(c)
	lines, err := h.deps.Carts.For(account.ID).UpdateQuantity(c.Request.Context(), index, in.Delta)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.cartResponse(c, account, lines)
}

func (h *handlers) removeCartLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid index"})
		return
	}
	account := currentAccount(c)
	lines, err := h.deps.Carts.For(account.ID).Remove(c.Request.Context(), index)
	if err != nil {
		h.serverError(c, err)
		return
	}
	h.cartResponse(c, account, lines)
}

func (h *handlers) clearCart(c *gin.Context) {
	account := currentAccount(c)
	if err := h.deps.Carts.For(account.ID).Clear(c.Request.Context()); err != nil {
		h.serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) checkoutDates(c *gin.Context) {
	account := currentAccount(c)
	zone, ok := h.zoneFor(c, account)
	if !ok {
		return
	}
	dates := h.deps.Checkout.AvailableDates(zone, time.Now())
	out := make([]string, 0, len(dates))
	for _, d := range dates {
		out = append(out, d.Format("2006-01-02"))
	}
	// An empty list is a soft dead-end: the storefront shows "contact us".
	c.JSON(http.StatusOK, gin.H{"dates": out})
}

func (h *handlers) submitOrder(c *gin.Context) {
	var in submitRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	account := currentAccount(c)
	zone, ok := h.zoneFor(c, account)
	if !ok {
		return
	}

	var requestedDate time.Time
	if in.RequestedDeliveryDate != "" {
		var err error
		requestedDate, err = time.Parse("2006-01-02", in.RequestedDeliveryDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid delivery date"})
			return
		}
	}

	ledger := h.deps.Carts.For(account.ID)
	lines := ledger.Load(c.Request.Context())

	draft, err := h.deps.Checkout.BuildDraft(lines, *account, zone, requestedDate, in.DeliveryInstructions, time.Now())
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyCart),
			errors.Is(err, domain.ErrNoDeliveryDate),
			errors.Is(err, domain.ErrDateUnavailable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.serverError(c, err)
		}
		return
	}

	order, err := h.deps.Checkout.Submit(c.Request.Context(), draft, ledger)
	if err != nil {
		if errors.Is(err, checkoutsvc.ErrSubmitFailed) {
			// The cart is intact; the buyer can retry.
			c.JSON(http.StatusBadGateway, gin.H{"error": "order submission failed, please retry", "retryable": true})
			return
		}
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *handlers) listOwnOrders(c *gin.Context) {
	account := currentAccount(c)
	orders, err := h.deps.Orders.ListByClient(c.Request.Context(), account.ID)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) getOwnOrder(c *gin.Context) {
	account := currentAccount(c)
	order, err := h.deps.Orders.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		h.serverError(c, err)
		return
	}
	if order.ClientID != account.ID {
		c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		return
	}
	c.JSON(http.StatusOK, order)
}
