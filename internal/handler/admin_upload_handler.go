package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/octobees/lead-intel/internal/service"
)

// AdminUploadHandler handles CSV ingestion for administrators.
type AdminUploadHandler struct {
	leadsService *service.LeadsService
}

// NewAdminUploadHandler wires a handler backed by the leads service.
func NewAdminUploadHandler(leadsService *service.LeadsService) *AdminUploadHandler {
	return &AdminUploadHandler{leadsService: leadsService}
}

// UploadCSV handles POST /admin/upload-csv requests.
func (h *AdminUploadHandler) UploadCSV(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return Error(c, http.StatusBadRequest, "missing csv file")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return Error(c, http.StatusBadRequest, "unable to open file")
	}
	defer file.Close()

	summary, err := h.leadsService.ImportLeadsCSV(c.Request().Context(), file)
	if err != nil {
		var validationErr service.CSVValidationError
		if errors.As(err, &validationErr) {
			return Error(c, http.StatusBadRequest, validationErr.Error())
		}
		return Error(c, http.StatusInternalServerError, "failed to process csv")
	}

	return Success(c, http.StatusOK, "leads CSV processed", summary)
}
