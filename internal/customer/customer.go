// Package customer derives the virtual customer view from car records.
package customer

import (
	"fmt"

	"github.com/rekins/garage/internal/models"
	"gorm.io/gorm"
)

// CarWithCount is a car annotated with its work order count.
type CarWithCount struct {
	models.Car
	WorkOrderCount int `json:"workOrderCount"`
}

// Customer is a virtual grouping of cars sharing an owner phone number.
// Nothing is persisted; the view is recomputed from scratch on every read.
type Customer struct {
	OwnerName       string         `json:"ownerName"`
	OwnerPhone      string         `json:"ownerPhone"`
	Cars            []CarWithCount `json:"cars"`
	TotalWorkOrders int            `json:"totalWorkOrders"`
}

// Build groups all cars by owner phone. Cars are read ordered by owner name,
// and groups keep that encounter order; when names differ within a phone
// group, the first car seen supplies the displayed name.
func Build(db *gorm.DB) ([]Customer, error) {
	var cars []CarWithCount
	err := db.Model(&models.Car{}).
		Select("cars.*, COUNT(work_orders.id) AS work_order_count").
		Joins("LEFT JOIN work_orders ON work_orders.car_id = cars.id").
		Group("cars.id").
		Order("cars.owner_name ASC, cars.id ASC").
		Find(&cars).Error
	if err != nil {
		return nil, fmt.Errorf("customer: load cars: %w", err)
	}

	index := make(map[string]int)
	customers := []Customer{}
	for _, c := range cars {
		i, ok := index[c.OwnerPhone]
		if !ok {
			i = len(customers)
			index[c.OwnerPhone] = i
			customers = append(customers, Customer{
				OwnerName:  c.OwnerName,
				OwnerPhone: c.OwnerPhone,
			})
		}
		customers[i].Cars = append(customers[i].Cars, c)
		customers[i].TotalWorkOrders += c.WorkOrderCount
	}

	return customers, nil
}
