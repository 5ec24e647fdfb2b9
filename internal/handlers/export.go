package handlers

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/welcomedesk/visitors/internal/export"
)

// GET /api/visitors/export.csv
func ExportCSV(vs VisitorLister, loc *time.Location, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := vs.List(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteCSV(&buf, list, loc); err != nil {
			writeError(w, log, err)
			return
		}
		filename := fmt.Sprintf("visitors-%s.csv", fmtISODate(time.Now(), loc))
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		_, _ = w.Write(buf.Bytes())
	}
}

// GET /api/visitors/export.xlsx
func ExportXLSX(vs VisitorLister, loc *time.Location, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := vs.List(r.Context())
		if err != nil {
			writeError(w, log, err)
			return
		}
		var buf bytes.Buffer
		if err := export.WriteXLSX(&buf, list, loc); err != nil {
			writeError(w, log, err)
			return
		}
		filename := fmt.Sprintf("visitors-%s.xlsx", fmtISODate(time.Now(), loc))
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+filename)
		_, _ = w.Write(buf.Bytes())
	}
}
