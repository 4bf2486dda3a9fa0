// Package export serves building reports as CSV or XLSX downloads.
package export

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/mmynk/saakhtemaan/internal/persian"
	"github.com/mmynk/saakhtemaan/internal/service"
	"github.com/mmynk/saakhtemaan/internal/storage"
)

// Formats accepted in the format query parameter.
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// utf8BOM makes Excel open Persian CSV text as UTF-8.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var errBadFormat = errors.New("format must be csv or xlsx")

// table is a report ready to be written in any format.
type table struct {
	name   string
	header []string
	rows   [][]any
}

// Handler serves the export endpoints. It expects the authenticated manager
// in the request context.
type Handler struct {
	store storage.Store
	now   func() time.Time
}

// NewHandler creates an export handler over store.
func NewHandler(store storage.Store) *Handler {
	return &Handler{store: store, now: time.Now}
}

// Register mounts the export routes on mux, wrapped by wrap (typically auth).
func (h *Handler) Register(mux *http.ServeMux, wrap func(http.Handler) http.Handler) {
	mux.Handle("GET /export/payments", wrap(h.serve(h.paymentsTable)))
	mux.Handle("GET /export/balances", wrap(h.serve(h.balancesTable)))
}

func (h *Handler) serve(build func(ctx context.Context, buildingID string) (*table, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buildingID := r.URL.Query().Get("building_id")
		if buildingID == "" {
			http.Error(w, "building_id is required", http.StatusBadRequest)
			return
		}
		format := r.URL.Query().Get("format")
		if format == "" {
			format = FormatCSV
		}
		if format != FormatCSV && format != FormatXLSX {
			http.Error(w, errBadFormat.Error(), http.StatusBadRequest)
			return
		}

		if _, err := service.OwnedBuilding(r.Context(), h.store, buildingID); err != nil {
			switch {
			case errors.Is(err, storage.ErrNotFound):
				http.Error(w, "building not found", http.StatusNotFound)
			case errors.Is(err, service.ErrForbidden):
				http.Error(w, err.Error(), http.StatusForbidden)
			default:
				slog.Error("Export: failed to load building", "building_id", buildingID, "error", err)
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		t, err := build(r.Context(), buildingID)
		if err != nil {
			slog.Error("Export: failed to build report", "building_id", buildingID, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		filename := fmt.Sprintf("%s-%s.%s", t.name, buildingID, format)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
		if format == FormatXLSX {
			w.Header().Set("Content-Type", xlsxContentType)
			err = writeXLSX(w, t)
		} else {
			w.Header().Set("Content-Type", "text/csv; charset=utf-8")
			err = writeCSV(w, t)
		}
		if err != nil {
			// headers are gone; all we can do is log
			slog.Error("Export: failed to write report", "building_id", buildingID, "format", format, "error", err)
			return
		}
		slog.Info("Report exported", "report", t.name, "building_id", buildingID, "format", format, "rows", len(t.rows))
	})
}

// jalali renders a timestamp as a Jalali date with ASCII digits, which sorts
// and parses well in spreadsheets.
func jalali(ts int64) string {
	if ts == 0 {
		return ""
	}
	return persian.ToEnglishNumber(persian.FormatJalaliDate(time.Unix(ts, 0)))
}

func (h *Handler) paymentsTable(ctx context.Context, buildingID string) (*table, error) {
	payments, err := h.store.ListPaymentsByBuilding(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	units, err := h.store.ListUnits(ctx, buildingID)
	if err != nil {
		return nil, err
	}
	numbers := make(map[string]string, len(units))
	for _, u := range units {
		numbers[u.ID] = u.Number
	}

	t := &table{
		name:   "payments",
		header: []string{"تاریخ", "واحد", "مبلغ (تومان)", "روش پرداخت", "کد پیگیری"},
	}
	for _, p := range payments {
		t.rows = append(t.rows, []any{jalali(p.PaidAt), numbers[p.UnitID], p.Amount, string(p.Method), p.Reference})
	}
	return t, nil
}

func (h *Handler) balancesTable(ctx context.Context, buildingID string) (*table, error) {
	balances, totals, numbers, err := service.UnitBalances(ctx, h.store, buildingID, h.now())
	if err != nil {
		return nil, err
	}

	t := &table{
		name:   "balances",
		header: []string{"واحد", "کل شارژ", "پرداختی", "مانده", "تعداد معوق"},
	}
	for _, b := range balances {
		t.rows = append(t.rows, []any{numbers[b.UnitID], b.TotalCharged, b.TotalPaid, b.Outstanding, b.OverdueCount})
	}
	t.rows = append(t.rows, []any{"جمع", totals.TotalCharged, totals.TotalPaid, totals.Outstanding, ""})
	return t, nil
}

func writeCSV(w io.Writer, t *table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.header); err != nil {
		return err
	}
	record := make([]string, len(t.header))
	for _, row := range t.rows {
		for i, v := range row {
			record[i] = fmt.Sprint(v)
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, t *table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.name
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	rtl := true
	if err := f.SetSheetView(sheet, -1, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		return err
	}

	header := make([]any, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}
	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
