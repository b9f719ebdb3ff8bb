package server

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rekins/garage/internal/apperr"
)

func registerRoutes(router *gin.Engine, opts StartOpts) {
	router.GET("/healthz", handleHealth(opts))

	api := router.Group("/api")
	{
		api.GET("/cars", handleListCars(opts))
		api.POST("/cars", handleCreateCar(opts))
		api.GET("/cars/:id", handleGetCar(opts))
		api.PUT("/cars/:id", handleUpdateCar(opts))
		api.PATCH("/cars/:id", handleUpdateCar(opts))

		api.GET("/customers", handleListCustomers(opts))

		api.GET("/appointments", handleListAppointments(opts))
		api.POST("/appointments", handleCreateAppointment(opts))

		api.GET("/work-orders", handleListWorkOrders(opts))
		api.POST("/work-orders", handleCreateWorkOrder(opts))
		api.GET("/work-orders/:id", handleGetWorkOrder(opts))
		api.PATCH("/work-orders/:id", handleUpdateWorkOrder(opts))
		api.GET("/work-orders/:id/pdf", handleWorkOrderPDF(opts))

		api.POST("/work-orders/:id/items", handleAddItem(opts))
		api.PUT("/work-orders/:id/items/:itemId", handleUpdateItem(opts))
		api.DELETE("/work-orders/:id/items/:itemId", handleDeleteItem(opts))
	}
}

func handleHealth(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		sqlDB, err := opts.DB.DB()
		if err == nil {
			err = sqlDB.Ping()
		}
		if err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

// parseID reads a positive numeric path parameter. A malformed value is a
// client error, not a lookup miss.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return 0, false
	}
	return uint(n), true
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, apperr.ErrInvalid):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, apperr.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		log.Printf("server: internal error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
