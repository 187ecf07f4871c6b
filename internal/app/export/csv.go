package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/ukemeuu/mani24-kds/internal/domain"
)

var historyHeader = []string{"Order Number", "Customer Name", "Type", "Date", "Total Items", "Items Detail"}

// WriteHistory writes one CSV row per dispatched order. The export is
// non-destructive; history retention in the store is permanent.
func WriteHistory(w io.Writer, orders []domain.Order) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(historyHeader); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, o := range orders {
		if o.Status != domain.StatusDispatched {
			continue
		}
		record := []string{
			o.OrderNumber,
			o.CustomerName,
			string(o.Type),
			time.UnixMilli(o.CreatedAt).UTC().Format("2006-01-02 15:04:05"),
			strconv.Itoa(o.TotalItems()),
			itemsDetail(o.Items),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// FileName returns the export file name for the given day.
func FileName(day time.Time) string {
	return fmt.Sprintf("mani24_history_%s.csv", day.Format("2006-01-02"))
}

func itemsDetail(items []domain.OrderItem) string {
	parts := make([]string, 0, len(items))
	for _, it := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", it.Quantity, it.Name))
	}
	return strings.Join(parts, "; ")
}
