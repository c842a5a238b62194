// README: Base handler utilities (JSON helpers, error mapping).
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"yongcha/internal/modules/affiliation"
	"yongcha/internal/modules/driver"
	"yongcha/internal/modules/fees"
	"yongcha/internal/modules/settlement"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(c *gin.Context, status int, v any) {
	c.JSON(status, v)
}

func writeError(c *gin.Context, status int, msg string) {
	writeJSON(c, status, errorResponse{Error: msg})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		writeError(c, http.StatusBadRequest, "invalid id")
		return 0, false
	}
	return id, true
}

func writeFeeError(c *gin.Context, err error) {
	switch err {
	case fees.ErrBadRecord:
		writeError(c, http.StatusBadRequest, err.Error())
	case fees.ErrReadonly:
		writeError(c, http.StatusConflict, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeSettlementError(c *gin.Context, err error) {
	switch err {
	case settlement.ErrBadRecord:
		writeError(c, http.StatusBadRequest, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeDriverError(c *gin.Context, err error) {
	switch err {
	case driver.ErrBadName:
		writeError(c, http.StatusBadRequest, err.Error())
	case driver.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}

func writeAffiliationError(c *gin.Context, err error) {
	switch err {
	case affiliation.ErrBadName:
		writeError(c, http.StatusBadRequest, err.Error())
	case affiliation.ErrNotFound:
		writeError(c, http.StatusNotFound, err.Error())
	default:
		writeError(c, http.StatusInternalServerError, "internal error")
	}
}
