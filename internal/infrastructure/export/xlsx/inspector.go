// Package xlsx verifies downloaded excel exports: a blob that the export
// endpoint labeled as a workbook but that excelize cannot open is an error
// page in disguise, not data.
package xlsx

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

type Inspector struct{}

// Inspect opens the workbook and maps sheet names to their row counts.
func (Inspector) Inspect(data []byte) (map[string]int, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheets := make(map[string]int)
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}
		sheets[name] = len(rows)
	}
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	return sheets, nil
}
