package server

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rekins/garage/internal/apperr"
	"github.com/rekins/garage/internal/car"
	"github.com/rekins/garage/internal/models"
)

type appointmentRequest struct {
	CarID           uint       `json:"carId"`
	CarLicensePlate string     `json:"carLicensePlate"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	StartTime       *time.Time `json:"startTime"`
	EndTime         *time.Time `json:"endTime"`
}

func handleListAppointments(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var appts []models.Appointment
		err := opts.DB.Preload("Car").Order("start_time ASC").Find(&appts).Error
		if err != nil {
			respondError(c, fmt.Errorf("appointments: list: %w", err))
			return
		}
		c.JSON(http.StatusOK, appts)
	}
}

func handleCreateAppointment(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req appointmentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		req.Title = strings.TrimSpace(req.Title)
		if req.Title == "" || req.StartTime == nil || req.EndTime == nil {
			respondError(c, fmt.Errorf("%w: title, startTime, and endTime are required", apperr.ErrInvalid))
			return
		}

		owner, err := car.Resolve(opts.DB, req.CarID, req.CarLicensePlate)
		if err != nil {
			respondError(c, err)
			return
		}

		appt := models.Appointment{
			CarID:     owner.ID,
			Title:     req.Title,
			StartTime: *req.StartTime,
			EndTime:   *req.EndTime,
		}
		if d := strings.TrimSpace(req.Description); d != "" {
			appt.Description = &d
		}

		if err := opts.DB.Create(&appt).Error; err != nil {
			respondError(c, fmt.Errorf("appointments: create: %w", err))
			return
		}
		appt.Car = owner
		c.JSON(http.StatusCreated, appt)
	}
}
