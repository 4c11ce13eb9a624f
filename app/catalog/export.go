package catalog

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

var exportHeader = []interface{}{"STT", "Mã SP", "Tên SP", "Thể loại", "Số lượng", "Giá", "Ngày nhập"}

// WriteWorkbook writes rows as a single-sheet Excel workbook.
func WriteWorkbook(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		excelRow := []interface{}{
			r.Index,
			r.Code,
			r.Name,
			r.Category,
			r.Quantity,
			r.PriceValue,
			r.ImportDate,
		}
		if err := f.SetSheetRow(sheet, cell, &excelRow); err != nil {
			return fmt.Errorf("write row %d: %w", r.Index, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
