package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rekins/garage/internal/car"
)

type carRequest struct {
	LicensePlate string `json:"licensePlate"`
	VIN          string `json:"vin"`
	Year         *int   `json:"year"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Mileage      *int   `json:"mileage"`
	Color        string `json:"color"`
	OwnerName    string `json:"ownerName"`
	OwnerPhone   string `json:"ownerPhone"`
	Notes        string `json:"notes"`
}

func (r carRequest) opts() car.Opts {
	return car.Opts{
		LicensePlate: r.LicensePlate,
		VIN:          r.VIN,
		Year:         r.Year,
		Make:         r.Make,
		Model:        r.Model,
		Mileage:      r.Mileage,
		Color:        r.Color,
		OwnerName:    r.OwnerName,
		OwnerPhone:   r.OwnerPhone,
		Notes:        r.Notes,
	}
}

func handleListCars(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := car.ListFilters{
			HasOpenWork: c.Query("hasOpenWork") == "true",
		}
		cars, err := car.List(opts.DB, filters)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, cars)
	}
}

func handleCreateCar(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req carRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		created, err := car.Create(opts.DB, req.opts())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, created)
	}
}

func handleGetCar(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		found, err := car.Get(opts.DB, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, found)
	}
}

func handleUpdateCar(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req carRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		updated, err := car.Update(opts.DB, id, req.opts())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, updated)
	}
}
