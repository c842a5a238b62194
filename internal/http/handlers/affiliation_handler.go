// README: Affiliation master handlers.
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yongcha/internal/modules/affiliation"
)

type AffiliationHandler struct {
	affiliations *affiliation.Service
}

func NewAffiliationHandler(affiliationSvc *affiliation.Service) *AffiliationHandler {
	return &AffiliationHandler{affiliations: affiliationSvc}
}

func (h *AffiliationHandler) List(c *gin.Context) {
	list, err := h.affiliations.List(c.Request.Context())
	if err != nil {
		writeAffiliationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"data": list})
}

func (h *AffiliationHandler) Save(c *gin.Context) {
	var a affiliation.Affiliation
	if err := c.ShouldBindJSON(&a); err != nil {
		writeError(c, http.StatusBadRequest, "invalid body")
		return
	}
	saved, err := h.affiliations.Save(c.Request.Context(), a)
	if err != nil {
		writeAffiliationError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, saved)
}

func (h *AffiliationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	found, err := h.affiliations.Delete(c.Request.Context(), id)
	if err != nil {
		writeAffiliationError(c, err)
		return
	}
	if !found {
		writeError(c, http.StatusNotFound, "affiliation not found")
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"deleted": true})
}
