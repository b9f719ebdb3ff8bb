package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rekins/garage/internal/workorder"
)

type itemRequest struct {
	Type        *string  `json:"type"`
	Description *string  `json:"description"`
	Quantity    *float64 `json:"quantity"`
	UnitPrice   *float64 `json:"unitPrice"`
	Total       *float64 `json:"total"`
}

func handleAddItem(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		add := workorder.AddItemOpts{
			Quantity:  req.Quantity,
			UnitPrice: req.UnitPrice,
			Total:     req.Total,
		}
		if req.Type != nil {
			add.Type = *req.Type
		}
		if req.Description != nil {
			add.Description = *req.Description
		}
		item, err := workorder.AddItem(opts.DB, id, add)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

func handleUpdateItem(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseID(c, "id"); !ok {
			return
		}
		itemID, ok := parseID(c, "itemId")
		if !ok {
			return
		}
		var req itemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		item, err := workorder.UpdateItem(opts.DB, itemID, workorder.UpdateItemOpts{
			Type:        req.Type,
			Description: req.Description,
			Quantity:    req.Quantity,
			UnitPrice:   req.UnitPrice,
			Total:       req.Total,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

func handleDeleteItem(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := parseID(c, "id"); !ok {
			return
		}
		itemID, ok := parseID(c, "itemId")
		if !ok {
			return
		}
		if err := workorder.DeleteItem(opts.DB, itemID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
