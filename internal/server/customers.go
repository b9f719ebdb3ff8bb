package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rekins/garage/internal/customer"
)

func handleListCustomers(opts StartOpts) gin.HandlerFunc {
	return func(c *gin.Context) {
		customers, err := customer.Build(opts.DB)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, customers)
	}
}
