package order

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	CSVHeader      = "Order ID,Customer Name,Phone,Email,Product Title,Category,Quantity,Price,Total\n"
	CSVContentType = "text/csv;charset=utf-8"
)

// RenderCSV renders one order as CSV, one row per item.
//
// The format is fixed for compatibility with existing exports: only title and
// category are wrapped in double quotes and nothing is escaped.
func RenderCSV(o Order) string {
	var b strings.Builder
	b.WriteString(CSVHeader)
	for _, it := range o.Items {
		category := it.Category
		if category == "" {
			category = "N/A"
		}
		fmt.Fprintf(&b, "%s,%s,%s,%s,\"%s\",\"%s\",%d,%s,%s\n",
			o.OrderID,
			o.Customer.Name,
			o.Customer.Phone,
			o.Customer.Email,
			it.Title,
			category,
			it.Quantity,
			formatNumber(it.Price),
			formatNumber(it.TotalPrice),
		)
	}
	return b.String()
}

// CSVFilename returns order_{orderId}_{epochMillis}.csv.
func CSVFilename(orderID string, now time.Time) string {
	return fmt.Sprintf("order_%s_%d.csv", orderID, now.UnixMilli())
}

// formatNumber prints the shortest decimal form (100, 12.5).
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
