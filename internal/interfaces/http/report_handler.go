package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/application/report"
	"github.com/jhoicas/ims-backend/internal/domain"
)

// ReportHandler maneja las consultas de reportes sobre el ledger (protegido).
// El endpoint JSON devuelve el payload etiquetado; /download rinde el archivo
// con el formateador correspondiente.
type ReportHandler struct {
	uc         *report.UseCase
	formatters map[string]report.Formatter
}

// NewReportHandler construye el handler con los formateadores de export.
func NewReportHandler(uc *report.UseCase, formatters ...report.Formatter) *ReportHandler {
	m := make(map[string]report.Formatter, len(formatters))
	for _, f := range formatters {
		m[f.FileExt()] = f
	}
	return &ReportHandler{uc: uc, formatters: m}
}

// Query godoc
// @Summary      Consultar reportes de movimientos
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        report_type   query  string  false  "all | sales | purchases"
// @Param        start_date    query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        end_date      query  string  false  "YYYY-MM-DD (inclusivo)"
// @Param        product_id    query  string  false  "ID de producto"
// @Param        supplier_id   query  string  false  "ID o nombre de proveedor"
// @Param        client_id     query  string  false  "ID o nombre de cliente"
// @Param        product_type  query  string  false  "Categoría ('all' = sin filtro)"
// @Param        export        query  string  false  "csv | pdf"
// @Success      200  {object}  dto.ReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *ReportHandler) Query(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	res, err := h.uc.Query(c.Context(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	if res.ExportFormat != "" {
		return c.JSON(dto.ReportExportResponse{
			ExportFormat: res.ExportFormat,
			Summary:      res.Summary,
			Data:         res.Transactions,
		})
	}
	return c.JSON(dto.ReportResponse{Summary: res.Summary, Transactions: res.Transactions})
}

// Download godoc
// @Summary      Descargar reporte renderizado
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Produce      text/csv
// @Param        export  query  string  true  "csv | pdf"
// @Success      200  {file}  file
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/download [get]
func (h *ReportHandler) Download(c *fiber.Ctx) error {
	var q dto.ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if q.Export == "" {
		q.Export = report.ExportCSV
	}
	res, err := h.uc.Query(c.Context(), GetPrincipal(c), q)
	if err != nil {
		return writeError(c, err)
	}
	f, ok := h.formatters[res.ExportFormat]
	if !ok {
		return writeError(c, domain.NewValidationError("export", "formato no soportado: %q", res.ExportFormat))
	}
	body, err := f.Format(c.Context(), res)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, f.ContentType())
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="report.%s"`, f.FileExt()))
	return c.Send(body)
}

// WastageStats godoc
// @Summary      Agregados de merma
// @Description  Suma el valor de los asientos con is_wastage y el acumulador de
// @Description  merma por producto; son fuentes independientes.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WastageStatsResponse
// @Router       /api/products/wastage_stats [get]
func (h *ReportHandler) WastageStats(c *fiber.Ctx) error {
	out, err := h.uc.WastageStats(c.Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
