package controllers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/C00lPIXER/aperture/api/responses"
	"github.com/C00lPIXER/aperture/api/validators"
	"github.com/C00lPIXER/aperture/internal/reports"
	pkgerrors "github.com/C00lPIXER/aperture/pkg/errors"
	"github.com/C00lPIXER/aperture/pkg/logger"
)

// AdminReport returns the sales report for the requested period.
func AdminReport(svc reports.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("report service"))
			return
		}
		var body reports.Request
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		report, err := svc.Generate(r.Context(), body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, report)
	}
}

// AdminReportPDF downloads the report named by the query string as a PDF.
func AdminReportPDF(svc reports.Service, exporter *reports.Exporter, logg *logger.Logger) http.HandlerFunc {
	return exportReport(svc, logg, "pdf", reports.ContentTypePDF, func(report *reports.Report, buf *bytes.Buffer) error {
		return exporter.PDF(report, buf)
	})
}

// AdminReportExcel downloads the report named by the query string as xlsx.
func AdminReportExcel(svc reports.Service, exporter *reports.Exporter, logg *logger.Logger) http.HandlerFunc {
	return exportReport(svc, logg, "xlsx", reports.ContentTypeExcel, func(report *reports.Report, buf *bytes.Buffer) error {
		return exporter.Excel(report, buf)
	})
}

func exportReport(svc reports.Service, logg *logger.Logger, ext, contentType string, render func(*reports.Report, *bytes.Buffer) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, unavailable("report service"))
			return
		}
		q := r.URL.Query()
		report, err := svc.Generate(r.Context(), reports.Request{
			ReportType: q.Get("reportType"),
			StartDate:  q.Get("startDate"),
			EndDate:    q.Get("endDate"),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// Render fully before writing headers so a failure still yields a JSON error.
		var buf bytes.Buffer
		if err := render(report, &buf); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render "+ext+" report"))
			return
		}
		responses.WriteAttachment(w, contentType, reports.Filename(ext, time.Now()), buf.Bytes())
	}
}
