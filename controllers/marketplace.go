package controllers

import (
	"net/http"
	"strconv"

	"Roomio/middleware"
	"Roomio/services"

	"github.com/gin-gonic/gin"
)

type itemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	PriceCents  int64  `json:"priceCents"`
	Category    string `json:"category"`
	ImageURL    string `json:"imageUrl"`
}

type itemUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	PriceCents  *int64  `json:"priceCents"`
	Category    *string `json:"category"`
	ImageURL    *string `json:"imageUrl"`
	Status      *string `json:"status"`
}

// @Summary Browse the marketplace
// @Tags marketplace
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param category query string false "Category"
// @Param status query string false "available or sold"
// @Param sellerId query string false "Seller id"
// @Param q query string false "Text in title or description"
// @Param limit query int false "Page size"
// @Param offset query int false "Offset"
// @Success 200 {object} object{items=[]services.ItemView}
// @Failure 400 {object} object{error=string}
// @Router /api/marketplace [get]
// @Security ApiKeyAuth
func ListItems(market *services.MarketplaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))

		items, err := market.ListItems(c.Request.Context(), services.ItemQuery{
			Category: c.Query("category"),
			Status:   c.Query("status"),
			SellerID: c.Query("sellerId"),
			Query:    c.Query("q"),
			Limit:    limit,
			Offset:   offset,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"items": items})
	}
}

// @Summary List an item for sale
// @Tags marketplace
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param body body itemRequest true "Item"
// @Success 201 {object} services.ItemView
// @Failure 400 {object} object{error=string}
// @Router /api/marketplace [post]
// @Security ApiKeyAuth
func CreateItem(market *services.MarketplaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c)
			return
		}

		item, err := market.CreateItem(c.Request.Context(), middleware.CurrentUserID(c), services.ItemInput{
			Title:       req.Title,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// @Summary Get an item
// @Tags marketplace
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param itemId path string true "Item id"
// @Success 200 {object} services.ItemView
// @Failure 404 {object} object{error=string}
// @Router /api/marketplace/{itemId} [get]
// @Security ApiKeyAuth
func GetItem(market *services.MarketplaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		item, err := market.GetItem(c.Request.Context(), c.Param("itemId"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// @Summary Update an item
// @Description Seller only. Absent fields keep their value
// @Tags marketplace
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param itemId path string true "Item id"
// @Param body body itemUpdateRequest true "Fields to change"
// @Success 200 {object} services.ItemView
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/marketplace/{itemId} [patch]
// @Security ApiKeyAuth
func UpdateItem(market *services.MarketplaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req itemUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			invalidBody(c)
			return
		}

		item, err := market.UpdateItem(c.Request.Context(), middleware.CurrentUserID(c), c.Param("itemId"), services.ItemUpdate{
			Title:       req.Title,
			Description: req.Description,
			PriceCents:  req.PriceCents,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
			Status:      req.Status,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// @Summary Delete an item
// @Tags marketplace
// @Produce json
// @Param Authorization header string false "Bearer JWT token"
// @Param itemId path string true "Item id"
// @Success 200 {object} object{message=string}
// @Failure 403 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Router /api/marketplace/{itemId} [delete]
// @Security ApiKeyAuth
func DeleteItem(market *services.MarketplaceService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := market.DeleteItem(c.Request.Context(), middleware.CurrentUserID(c), c.Param("itemId")); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
	}
}
