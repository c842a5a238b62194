// README: Settlement ledger handlers: list, save, delete.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yongcha/internal/modules/settlement"
)

type SettlementHandler struct {
	settlement *settlement.Service
}

func NewSettlementHandler(settlementSvc *settlement.Service) *SettlementHandler {
	return &SettlementHandler{settlement: settlementSvc}
}

func (h *SettlementHandler) List(c *gin.Context) {
	f := settlement.ListFilter{
		StartDate: c.Query("start_date"),
		EndDate:   c.Query("end_date"),
		Name:      c.Query("name"),
	}
	list, err := h.settlement.List(c.Request.Context(), f)
	if err != nil {
		writeSettlementError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"data": list})
}

func (h *SettlementHandler) Save(c *gin.Context) {
	var rec settlement.Record
	if err := c.ShouldBindJSON(&rec); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	saved, err := h.settlement.Save(c.Request.Context(), rec)
	if err != nil {
		writeSettlementError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

func (h *SettlementHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.settlement.Delete(c.Request.Context(), id)
	if err != nil {
		writeSettlementError(c, err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "settlement record not found")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"deleted": true})
}
