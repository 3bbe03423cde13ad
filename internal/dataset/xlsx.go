package dataset

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

type xlsxSource struct{}

func (xlsxSource) CanLoad(location string) bool {
	return strings.HasSuffix(strings.ToLower(location), ".xlsx")
}

// Records reads the selected worksheet (the first one when opt.Sheet is empty).
func (xlsxSource) Records(_ context.Context, location string, opt Options) ([][]string, error) {
	f, err := excelize.OpenFile(location)
	if err != nil {
		return nil, fmt.Errorf("open xlsx: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("xlsx %s: workbook has no sheets", location)
	}
	sheet := sheets[0]
	if opt.Sheet != "" {
		sheet = ""
		for _, s := range sheets {
			if strings.EqualFold(s, opt.Sheet) {
				sheet = s
				break
			}
		}
		if sheet == "" {
			return nil, fmt.Errorf("sheet '%s' not found in workbook.\nAvailable sheets: %s",
				opt.Sheet, strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", sheet, err)
	}
	return rows, nil
}
