package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/shipdocs/invoicegen/internal/domain"
	"github.com/shipdocs/invoicegen/internal/service"
	"github.com/shipdocs/invoicegen/internal/service/serviceutils"
	"github.com/shipdocs/invoicegen/internal/session"
)

const (
	outputFileName  = "Generated_Invoice.xlsx"
	spreadsheetMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// InvoiceHandler runs the fill pipeline and serves the produced
// artifact.
type InvoiceHandler struct {
	store *session.Store
	svc   *service.FillService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(store *session.Store, svc *service.FillService) *InvoiceHandler {
	return &InvoiceHandler{store: store, svc: svc}
}

// FillHandler runs the whole merge-and-write pipeline for the caller's
// session. The previous output artifact is only replaced when the run
// fully succeeds.
func (h *InvoiceHandler) FillHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	result, err := h.svc.Fill(c.Request().Context(), sess)
	if err != nil {
		var missing *domain.MissingInputError
		if errors.As(err, &missing) {
			return serviceutils.ResponseError(c, http.StatusConflict, "Cannot fill the template yet", err)
		}
		var malformed *domain.MalformedValueError
		if errors.As(err, &malformed) {
			return serviceutils.ResponseError(c, http.StatusUnprocessableEntity, "Invalid quantity in product data", err)
		}
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to fill invoice template", err)
	}

	sess.Output = result.Output

	return serviceutils.ResponseSuccessWithWarnings(c, http.StatusOK, "Invoice and packing list filled successfully", FillSummary{
		RowCount:      len(result.Rows),
		TotalQuantity: result.Totals.Quantity,
		TotalValue:    result.Totals.Value.StringFixed(2),
	}, result.Warnings)
}

// DownloadHandler serves the last successfully produced workbook.
func (h *InvoiceHandler) DownloadHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	if len(sess.Output) == 0 {
		return serviceutils.ResponseError(c, http.StatusNotFound, "Invoice file not ready, run the fill step first", nil)
	}

	c.Response().Header().Set("Content-Disposition", `attachment; filename="`+outputFileName+`"`)
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(sess.Output)))
	return c.Blob(http.StatusOK, spreadsheetMIME, sess.Output)
}
