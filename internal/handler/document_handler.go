package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/shipdocs/invoicegen/internal/extract"
	"github.com/shipdocs/invoicegen/internal/logger"
	"github.com/shipdocs/invoicegen/internal/service/serviceutils"
	"github.com/shipdocs/invoicegen/internal/session"
)

// DocumentHandler accepts the source document uploads. Each upload is
// parsed immediately; a failed upload leaves every other already-loaded
// document in the session untouched.
type DocumentHandler struct {
	store    *session.Store
	maxBytes int64
}

// NewDocumentHandler creates a DocumentHandler with the given upload
// size limit in megabytes.
func NewDocumentHandler(store *session.Store, maxUploadMB int) *DocumentHandler {
	return &DocumentHandler{
		store:    store,
		maxBytes: int64(maxUploadMB) * 1024 * 1024,
	}
}

// UploadTemplateHandler stores the invoice template bytes after
// validating that they are a readable workbook.
func (h *DocumentHandler) UploadTemplateHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid template upload", err)
	}

	sheetNames, err := extract.Template(data)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to process the uploaded file", err)
	}

	sess.TemplateBytes = data
	logger.InfoLog(c.Request().Context(), "Template uploaded: %d bytes, %d sheet(s)", len(data), len(sheetNames))

	return serviceutils.ResponseSuccess(c, http.StatusOK, "Template uploaded successfully", TemplatePreview{
		SheetNames: sheetNames,
		SizeBytes:  len(data),
	})
}

// UploadPIHandler parses a Proforma Invoice. Its line items become the
// session's working product list until a standalone product list
// replaces them.
func (h *DocumentHandler) UploadPIHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid PI upload", err)
	}

	pi, warnings, err := extract.PI(data)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to process PI file", err)
	}

	sess.PI = pi
	sess.Products = pi.Items

	return serviceutils.ResponseSuccessWithWarnings(c, http.StatusOK, "PI file parsed successfully", PIPreview{
		BillingLines: pi.BillingLines,
		PINumber:     pi.PINumber,
		Items:        pi.Items,
		PriceCount:   len(pi.PriceIndex),
	}, warnings)
}

// UploadProductListHandler parses the standalone product list and
// replaces the session's working product list.
func (h *DocumentHandler) UploadProductListHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid product list upload", err)
	}

	items, warnings, err := extract.ProductList(data)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to process product list file", err)
	}

	sess.Products = items

	return serviceutils.ResponseSuccessWithWarnings(c, http.StatusOK, "Product list uploaded successfully", ProductListPreview{
		Items: items,
	}, warnings)
}

// UploadPackingHandler parses the packing sheet, including the Sheet2
// shipping record and the package descriptor used by the fill step.
func (h *DocumentHandler) UploadPackingHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid packing sheet upload", err)
	}

	packing, warnings, err := extract.PackingSheet(data)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to read packing sheet", err)
	}

	sess.Packing = packing

	return serviceutils.ResponseSuccessWithWarnings(c, http.StatusOK, "Packing sheet uploaded successfully", packing, warnings)
}

// UploadHSCodesHandler parses the EAN to HS code mapping document.
func (h *DocumentHandler) UploadHSCodesHandler(c echo.Context) error {
	sess := resolveSession(c, h.store)

	data, err := readUpload(c, h.maxBytes)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid HS code upload", err)
	}

	mapping, warnings, err := extract.HSCodes(data)
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Failed to process HS code file", err)
	}

	sess.HSCodes = mapping

	return serviceutils.ResponseSuccessWithWarnings(c, http.StatusOK, "HS code file parsed successfully", HSCodePreview{
		Count:   len(mapping),
		Mapping: mapping,
	}, warnings)
}
