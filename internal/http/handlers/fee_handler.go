// README: Fee table handlers: list, save, bulk upload, archive, delete.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yongcha/internal/modules/fees"
)

type FeeHandler struct {
	fees *fees.Service
}

func NewFeeHandler(feeSvc *fees.Service) *FeeHandler {
	return &FeeHandler{fees: feeSvc}
}

func (h *FeeHandler) List(c *gin.Context) {
	var f fees.ListFilter
	if v := c.Query("year"); v != "" {
		year, err := strconv.Atoi(v)
		if err != nil {
			writeError(c, http.StatusBadRequest, "invalid year")
			return
		}
		f.Year = year
	}
	f.Affiliation = c.Query("affiliation")
	f.ActiveOnly = c.Query("active") == "true"

	list, err := h.fees.List(c.Request.Context(), f)
	if err != nil {
		writeFeeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"data": list})
}

type feeSaveRequest struct {
	fees.FeeRecord
	PriceChanged *bool `json:"price_changed"`
}

func (h *FeeHandler) Save(c *gin.Context) {
	var req feeSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	rec, err := h.fees.Upsert(c.Request.Context(), fees.UpsertCommand{
		Record:       req.FeeRecord,
		PriceChanged: req.PriceChanged,
	})
	if err != nil {
		writeFeeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, rec)
}

type feeBulkRequest struct {
	Records []fees.FeeRecord `json:"records"`
}

// BulkSave takes a spreadsheet upload: malformed rows are skipped, the
// response reports how many rows were applied.
func (h *FeeHandler) BulkSave(c *gin.Context) {
	var req feeBulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	applied, err := h.fees.BulkUpsert(c.Request.Context(), req.Records)
	if err != nil {
		writeFeeError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"applied": applied, "received": len(req.Records)})
}

func (h *FeeHandler) Archive(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.fees.Archive(c.Request.Context(), id)
	if err != nil {
		writeFeeError(c, err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "fee record not found")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"archived": true})
}

func (h *FeeHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.fees.Delete(c.Request.Context(), id)
	if err != nil {
		writeFeeError(c, err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "fee record not found")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"deleted": true})
}
