package importer

import (
	"io"
	"log"

	"github.com/xuri/excelize/v2"
)

// Sheet is one worksheet's cell grid, already stringified.
type Sheet struct {
	Name string
	Rows [][]string
}

// readWorkbook loads every sheet of an XLSX stream into memory. Report
// files are small (a few hundred rows per sheet) so streaming row access
// buys nothing here.
func readWorkbook(r io.Reader) ([]Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			log.Printf("[IMP][XLSX][WARN] read sheet %q: %v", name, err)
			continue
		}
		sheets = append(sheets, Sheet{Name: name, Rows: rows})
	}
	return sheets, nil
}
