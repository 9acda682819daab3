package importer

import (
	"log"
	"strings"
)

// Record is one raw (date, service, group) tuple lifted out of a report
// sheet, before merging and persistence. Date stays a string key until the
// merge phase is done.
type Record struct {
	Group       string
	ServiceName string
	ServiceCode string
	Price       float64
	Date        string
	Quantity    float64
	Amount      float64
}

// The first sheets of every operator workbook are summary pages with no
// transaction rows.
const summarySheets = 3

var groupKeywords = []string{"prepaid", "postpaid", "total"}

// extractRecords walks the transaction sheets of a workbook and lifts out
// one Record per service, date column and billing group. Service rows come
// in pairs: a quantity row followed by an amount row. Only prepaid rows
// with a nonzero quantity are kept; postpaid figures arrive separately in
// the monthly statements.
func extractRecords(sheets []Sheet) []Record {
	var out []Record

	for idx, sheet := range sheets {
		if idx < summarySheets {
			continue
		}
		recs := extractSheet(sheet)
		log.Printf("[IMP][EXTRACT] sheet=%q records=%d", sheet.Name, len(recs))
		out = append(out, recs...)
	}
	return out
}

func extractSheet(sheet Sheet) []Record {
	rows := sheet.Rows
	if len(rows) == 0 {
		return nil
	}

	header := trimRow(rows[0])
	hasTotal := len(header) > 0 && strings.ToUpper(header[len(header)-1]) == "TOTAL"
	dateCols := sliceDataCols(header, hasTotal)

	currentGroup := "prepaid"
	var out []Record

	i := 1
	for i < len(rows) {
		row := trimRow(rows[i])

		if !anyCell(row) {
			i++
			continue
		}
		if len(row) > 1 && strings.Contains(strings.ToLower(row[1]), "total") {
			i++
			continue
		}
		first := cellAt(row, 0)
		if i == 1 {
			lower := strings.ToLower(first)
			if strings.Contains(lower, "servis") || strings.Contains(lower, "izveštaj") {
				i++
				continue
			}
		}

		if g, ok := matchGroup(first); ok {
			currentGroup = g
			i++
			continue
		}
		if first == "" {
			i++
			continue
		}

		serviceName := first
		price := toFloat(cellAt(row, 1))
		quantities := sliceDataCols(row, hasTotal)

		var amounts []string
		if i+1 < len(rows) {
			amounts = sliceDataCols(trimRow(rows[i+1]), hasTotal)
		}

		for j, dateCol := range dateCols {
			quantity := toFloat(cellAt(quantities, j))
			amount := toFloat(cellAt(amounts, j))

			if quantity != 0 && currentGroup == "prepaid" {
				out = append(out, Record{
					Group:       currentGroup,
					ServiceName: serviceName,
					ServiceCode: extractServiceCode(serviceName),
					Price:       price,
					Date:        cleanColumnDate(dateCol),
					Quantity:    quantity,
					Amount:      amount,
				})
			}
		}
		i += 2
	}
	return out
}

// sliceDataCols returns the per-date columns of a row: everything from the
// fourth column on, minus a trailing TOTAL column when the sheet has one.
func sliceDataCols(row []string, hasTotal bool) []string {
	if len(row) <= 3 {
		return nil
	}
	cols := row[3:]
	if hasTotal && len(cols) > 0 {
		cols = cols[:len(cols)-1]
	}
	return cols
}

func trimRow(row []string) []string {
	out := make([]string, len(row))
	for i, c := range row {
		out[i] = strings.TrimSpace(c)
	}
	return out
}

func anyCell(row []string) bool {
	for _, c := range row {
		if c != "" {
			return true
		}
	}
	return false
}

func cellAt(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

func matchGroup(cell string) (string, bool) {
	lower := strings.ToLower(cell)
	for _, kw := range groupKeywords {
		if strings.Contains(lower, kw) {
			return kw, true
		}
	}
	return "", false
}
