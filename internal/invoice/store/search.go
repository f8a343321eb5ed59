package store

import (
	"fmt"
	"strings"

	"github.com/MrJamesThe3rd/tally/internal/invoice"
)

// searchConditions renders the filter as a WHERE clause with positional
// arguments. An invoice without a vendor never matches a vendor condition.
func searchConditions(filter invoice.SearchFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	for _, status := range filter.Statuses {
		args = append(args, status)
		conds = append(conds, fmt.Sprintf("i.status = $%d", len(args)))
	}

	if filter.InvoiceNoContains != "" {
		args = append(args, likePattern(filter.InvoiceNoContains))
		conds = append(conds, fmt.Sprintf("i.invoice_no ILIKE $%d", len(args)))
	}

	for _, part := range filter.VendorNameContains {
		args = append(args, likePattern(part))
		conds = append(conds, fmt.Sprintf("v.name ILIKE $%d", len(args)))
	}

	if len(conds) == 0 {
		return "", nil
	}

	return " WHERE " + strings.Join(conds, " AND "), args
}

var sortColumns = map[invoice.SortField]string{
	invoice.SortInvoiceNo:  `i.invoice_no COLLATE "C"`,
	invoice.SortDate:       "i.date",
	invoice.SortAmount:     "i.amount",
	invoice.SortStatus:     `i.status COLLATE "C"`,
	invoice.SortVendorName: `COALESCE(v.name, '') COLLATE "C"`,
}

func orderBy(filter invoice.SearchFilter) string {
	col, ok := sortColumns[filter.SortBy]
	if !ok {
		col = sortColumns[invoice.SortDate]
	}

	dir := "ASC"
	if filter.Desc {
		dir = "DESC"
	}

	return fmt.Sprintf(" ORDER BY %s %s, i.id ASC", col, dir)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern wraps s for substring matching with its wildcards escaped.
func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
