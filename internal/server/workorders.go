package server

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rekins/garage/internal/invoice"
	"github.com/rekins/garage/internal/models"
	"github.com/rekins/garage/internal/notify"
	"github.com/rekins/garage/internal/workorder"
)

type workOrderCreateRequest struct {
	CarID               uint       `json:"carId"`
	CarLicensePlate     string     `json:"carLicensePlate"`
	Status              string     `json:"status"`
	Title               string     `json:"title"`
	CustomerComplaint   string     `json:"customerComplaint"`
	InternalNotes       string     `json:"internalNotes"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
	PaymentStatus       string     `json:"paymentStatus"`
	PaymentMethod       string     `json:"paymentMethod"`
	TotalLabor          *float64   `json:"totalLabor"`
	TotalParts          *float64   `json:"totalParts"`
	TotalPrice          *float64   `json:"totalPrice"`
}

type workOrderPatchRequest struct {
	Status            *string `json:"status"`
	PaymentStatus     *string `json:"paymentStatus"`
	Title             *string `json:"title"`
	CustomerComplaint *string `json:"customerComplaint"`
	InternalNotes     *string `json:"internalNotes"`
}

// workOrderDetail is the single-order response shape: the record plus
// totals computed from its line items.
type workOrderDetail struct {
	*models.WorkOrder
	Totals workorder.Totals `json:"totals"`
}

func detailOf(wo *models.WorkOrder) workOrderDetail {
	return workOrderDetail{WorkOrder: wo, Totals: workorder.ComputeTotals(wo.Items)}
}

func handleListWorkOrders(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := workorder.List(opts.DB)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

func handleCreateWorkOrder(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req workOrderCreateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		created, err := workorder.Create(opts.DB, workorder.CreateOpts{
			CarID:               req.CarID,
			CarLicensePlate:     req.CarLicensePlate,
			Status:              req.Status,
			Title:               req.Title,
			CustomerComplaint:   req.CustomerComplaint,
			InternalNotes:       req.InternalNotes,
			EstimatedCompletion: req.EstimatedCompletion,
			PaymentStatus:       req.PaymentStatus,
			PaymentMethod:       req.PaymentMethod,
			TotalLabor:          req.TotalLabor,
			TotalParts:          req.TotalParts,
			TotalPrice:          req.TotalPrice,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, detailOf(created))
	}
}

func handleGetWorkOrder(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		wo, err := workorder.Get(opts.DB, id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, detailOf(wo))
	}
}

func handleUpdateWorkOrder(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		var req workOrderPatchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}

		prevStatus := ""
		var prev models.WorkOrder
		if err := opts.DB.First(&prev, id).Error; err == nil {
			prevStatus = prev.Status
		}

		updated, err := workorder.Update(opts.DB, id, workorder.UpdateOpts{
			Status:            req.Status,
			PaymentStatus:     req.PaymentStatus,
			Title:             req.Title,
			CustomerComplaint: req.CustomerComplaint,
			InternalNotes:     req.InternalNotes,
		})
		if err != nil {
			respondError(c, err)
			return
		}

		// Announce work completion. Best effort; a failed notification
		// never fails the request.
		if updated.Status == models.StatusDone && prevStatus != models.StatusDone {
			ev := notify.Event{
				Title:    fmt.Sprintf("Work order #%d is done", updated.ID),
				Body:     doneBody(updated),
				Severity: "success",
			}
			if err := opts.Notifier.Send(c.Request.Context(), ev); err != nil {
				log.Printf("server: notify work order %d: %v", updated.ID, err)
			}
		}

		c.JSON(http.StatusOK, detailOf(updated))
	}
}

func doneBody(wo *models.WorkOrder) string {
	if wo.Car == nil {
		return wo.Title
	}
	return fmt.Sprintf("%s — %s %s (%s)", wo.Title, wo.Car.Make, wo.Car.Model, wo.Car.LicensePlate)
}

func handleWorkOrderPDF(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := parseID(c, "id")
		if !ok {
			return
		}
		wo, err := workorder.Get(opts.DB, id)
		if err != nil {
			respondError(c, err)
			return
		}
		data, filename, err := invoice.Render(wo, opts.ShopName)
		if err != nil {
			respondError(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		c.Data(http.StatusOK, "application/pdf", data)
	}
}
