// README: Driver registry handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yongcha/internal/modules/driver"
)

type DriverHandler struct {
	drivers *driver.Service
}

func NewDriverHandler(driverSvc *driver.Service) *DriverHandler {
	return &DriverHandler{drivers: driverSvc}
}

func (h *DriverHandler) List(c *gin.Context) {
	list, err := h.drivers.List(c.Request.Context())
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"data": list})
}

func (h *DriverHandler) Save(c *gin.Context) {
	var d driver.Driver
	if err := c.ShouldBindJSON(&d); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	saved, err := h.drivers.Save(c.Request.Context(), d)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

func (h *DriverHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.drivers.Delete(c.Request.Context(), id)
	if err != nil {
		writeDriverError(c, err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "driver not found")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"deleted": true})
}
