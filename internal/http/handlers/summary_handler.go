// README: Dispatch summary and fee quote handlers. Summary pulls raw rows
// from the legacy source, consolidates them against the driver registry and
// drops already-settled candidates; quote runs the fee resolver for one row.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yongcha/internal/modules/dispatch"
	"yongcha/internal/modules/driver"
	"yongcha/internal/modules/fees"
	"yongcha/internal/modules/settlement"
)

type SummaryHandler struct {
	source     dispatch.Source
	drivers    *driver.Service
	settlement *settlement.Service
	resolver   *fees.Resolver
}

func NewSummaryHandler(source dispatch.Source, driverSvc *driver.Service, settlementSvc *settlement.Service, resolver *fees.Resolver) *SummaryHandler {
	return &SummaryHandler{
		source:     source,
		drivers:    driverSvc,
		settlement: settlementSvc,
		resolver:   resolver,
	}
}

func (h *SummaryHandler) Summary(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if startDate == "" || endDate == "" {
		writeError(c, http.StatusBadRequest, "start_date and end_date are required")
		return
	}

	ctx := c.Request.Context()
	rows, err := h.source.Rows(ctx, startDate, endDate, c.Query("cust_name"))
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	registered, err := h.drivers.List(ctx)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	settled, err := h.settlement.SettledKeys(ctx)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}

	consolidated := dispatch.Consolidate(rows, registered, settled, c.Query("drivers"))
	writeJSON(c, http.StatusOK, map[string]any{
		"data":    consolidated,
		"summary": dispatch.Summarize(consolidated),
	})
}

type quoteRequest struct {
	Date             string `json:"date"`
	Affiliation      string `json:"affiliation"`
	AddressList      string `json:"address_list"`
	DestinationCount int    `json:"destination_count"`
	SpecialBox       bool   `json:"special_box"`
	ReturnTrip       bool   `json:"return_trip"`
	ZoneCount        int    `json:"zone_count"`
	TonnageClass     string `json:"tonnage_class"`
}

func (h *SummaryHandler) Quote(c *gin.Context) {
	var req quoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	result, err := h.resolver.Resolve(c.Request.Context(), fees.ResolveInput{
		Date:             req.Date,
		Affiliation:      req.Affiliation,
		AddressList:      req.AddressList,
		DestinationCount: req.DestinationCount,
	}, fees.ResolveOptions{
		SpecialBox:   req.SpecialBox,
		ReturnTrip:   req.ReturnTrip,
		ZoneCount:    req.ZoneCount,
		TonnageClass: req.TonnageClass,
	})
	if err != nil {
		writeError(c, http.StatusInternalServerError, "internal error")
		return
	}
	writeJSON(c, http.StatusOK, result)
}
