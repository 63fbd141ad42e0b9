package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"frituurgros/internal/domain"
	catalogsvc "frituurgros/internal/service/catalog"
	zonesvc "frituurgros/internal/service/zone"
)

type approveRequest struct {
	ZoneID             *string         `json:"zoneId"`
	DiscountPercentage decimal.Decimal `json:"discountPercentage"`
}

type setActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type setStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type createCategoryRequest struct {
	Name string `json:"name" binding:"required"`
}

func (h *handlers) adminListClients(c *gin.Context) {
	clients, err := h.deps.Accounts.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

func (h *handlers) adminApproveClient(c *gin.Context) {
	var in approveRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	account, err := h.deps.Accounts.Approve(c.Request.Context(), c.Param("id"), in.ZoneID, in.DiscountPercentage)
	if err != nil {
		h.adminAccountError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *handlers) adminSuspendClient(c *gin.Context) {
	if err := h.deps.Accounts.Suspend(c.Request.Context(), c.Param("id")); err != nil {
		h.adminAccountError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminRefuseClient(c *gin.Context) {
	if err := h.deps.Accounts.Refuse(c.Request.Context(), c.Param("id")); err != nil {
		h.adminAccountError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminUpdateTerms(c *gin.Context) {
	var in approveRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	account, err := h.deps.Accounts.UpdateTerms(c.Request.Context(), c.Param("id"), in.ZoneID, in.DiscountPercentage)
	if err != nil {
		h.adminAccountError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *handlers) adminAccountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "client not found"})
	case errors.Is(err, domain.ErrInvalidStatus):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}

func (h *handlers) adminListProducts(c *gin.Context) {
	products, err := h.deps.Catalog.ListProducts(c.Request.Context(), c.Query("categoryId"), true)
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"products": products})
}

func (h *handlers) adminCreateProduct(c *gin.Context) {
	var in catalogsvc.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	p, err := h.deps.Catalog.CreateProduct(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *handlers) adminUpdateProduct(c *gin.Context) {
	var in catalogsvc.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	p, err := h.deps.Catalog.UpdateProduct(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *handlers) adminSetProductActive(c *gin.Context) {
	var in setActiveRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.Active == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	if err := h.deps.Catalog.SetProductActive(c.Request.Context(), c.Param("id"), *in.Active); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		h.serverError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) adminCreateCategory(c *gin.Context) {
	var in createCategoryRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	category, err := h.deps.Catalog.CreateCategory(c.Request.Context(), in.Name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (h *handlers) adminCreateZone(c *gin.Context) {
	var in zonesvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	z, err := h.deps.Zones.Create(c.Request.Context(), in)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, z)
}

func (h *handlers) adminUpdateZone(c *gin.Context) {
	var in zonesvc.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	z, err := h.deps.Zones.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "zone not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, z)
}

func (h *handlers) adminListOrders(c *gin.Context) {
	orders, err := h.deps.Orders.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.serverError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

func (h *handlers) adminSetOrderStatus(c *gin.Context) {
	var in setStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
		return
	}
	order, err := h.deps.Checkout.Advance(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
		case errors.Is(err, domain.ErrInvalidStatus):
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		default:
			h.serverError(c, err)
		}
		return
	}
	c.JSON(http.StatusOK, order)
}
