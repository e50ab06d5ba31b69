package main

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/parapharma/storefront/internal/cart"
	"github.com/parapharma/storefront/internal/catalog"
	"github.com/parapharma/storefront/internal/checkout"
	"github.com/parapharma/storefront/internal/httpx"
)

const cartCookie = "cart_token"

// cartToken identifies the caller's cart, issuing a cookie on first contact.
func cartToken(c *gin.Context) string {
	if token, err := c.Cookie(cartCookie); err == nil && token != "" {
		return token
	}
	token := uuid.NewString()
	c.SetCookie(cartCookie, token, 3600*24*365, "/", "", false, true)
	return token
}

// cartView renders the lines with derived totals and a shipping preview.
func cartView(s *cart.Store) gin.H {
	items := s.Items()
	totals := checkout.ComputeTotals(items)
	return gin.H{
		"items":       items,
		"total_items": s.TotalItems(),
		"subtotal":    totals.Subtotal,
		"shipping":    totals.Shipping,
		"total":       totals.Total,
	}
}

// GET /api/cart
func getCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartView(carts.Store(cartToken(c))))
	}
}

// POST /api/cart/items — resolves the product by slug and adds a snapshot
// of it to the cart. Adding the same product again increments its quantity.
func addCartItemHandler(carts *cart.Manager, repo catalog.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Slug string `json:"slug" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "slug is required"})
			return
		}
		p, err := repo.GetBySlug(c.Request.Context(), req.Slug)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
			return
		}
		if !p.InStock {
			c.JSON(http.StatusConflict, gin.H{"error": "product out of stock"})
			return
		}

		store := carts.Store(cartToken(c))
		store.AddItem(cart.Item{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			ImageURL:  p.ImageURL,
			Brand:     p.Brand,
		})
		c.JSON(http.StatusOK, cartView(store))
	}
}

// PUT /api/cart/items/:productId — quantity <= 0 removes the line.
func updateCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Quantity *int `json:"quantity" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
			return
		}
		store := carts.Store(cartToken(c))
		store.UpdateQuantity(c.Param("productId"), *req.Quantity)
		c.JSON(http.StatusOK, cartView(store))
	}
}

// DELETE /api/cart/items/:productId
func removeCartItemHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.Store(cartToken(c))
		store.RemoveItem(c.Param("productId"))
		c.JSON(http.StatusOK, cartView(store))
	}
}

// DELETE /api/cart
func clearCartHandler(carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		store := carts.Store(cartToken(c))
		store.Clear()
		c.JSON(http.StatusOK, cartView(store))
	}
}

// POST /api/checkout — submits the order. The cart is cleared only after
// the order and its items are committed; any failure leaves it intact so
// the user can retry.
func checkoutHandler(svc *checkout.Service, carts *cart.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var form checkout.Form
		if err := c.ShouldBindJSON(&form); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
			return
		}

		store := carts.Store(cartToken(c))
		lines := store.Items()

		order, err := svc.Submit(c.Request.Context(), form, lines)
		if err != nil {
			var verr *checkout.ValidationError
			switch {
			case errors.Is(err, checkout.ErrEmptyCart):
				c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
			case errors.As(err, &verr):
				c.JSON(http.StatusBadRequest, gin.H{"error": "validation failed", "fields": verr.Fields})
			default:
				httpx.RecordCheckoutOperation("submit", false)
				c.JSON(http.StatusBadGateway, gin.H{
					"error":     "order could not be created, please try again",
					"retryable": true,
				})
			}
			return
		}

		store.Clear()
		httpx.RecordCheckoutOperation("submit", true)
		c.JSON(http.StatusCreated, gin.H{
			"order_number": order.OrderNumber,
			"order":        order,
		})
	}
}
