package api

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/capacity/internal/app"
	"github.com/gin-gonic/gin"
)

// writeError maps request errors to 400/404 and everything else to 500.
func writeError(c *gin.Context, err error) {
	var ce *app.CapacityError
	if errors.As(err, &ce) {
		status := http.StatusBadRequest
		if ce.IsNotFound() {
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": ce.Message, "code": string(ce.Code)})
		return
	}
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": msg})
}
