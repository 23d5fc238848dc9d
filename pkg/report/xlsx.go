package report

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/argus/pkg/utils/safe"
	"github.com/xuri/excelize/v2"
)

const (
	sheetRaw          = "Raw"
	sheetConsolidated = "Consolidated"
)

// WriteWorkbook serializes both tables into one workbook with a "Raw" and a
// "Consolidated" sheet, mirroring the two CSV files.
func WriteWorkbook(ctx context.Context, path string, raw, consolidated Table) error {
	f := excelize.NewFile()
	defer safe.Close(ctx, f)

	if err := f.SetSheetName("Sheet1", sheetRaw); err != nil {
		return goerr.Wrap(err, "failed to rename raw sheet")
	}
	if _, err := f.NewSheet(sheetConsolidated); err != nil {
		return goerr.Wrap(err, "failed to create consolidated sheet")
	}

	if err := writeSheet(f, sheetRaw, raw); err != nil {
		return err
	}
	if err := writeSheet(f, sheetConsolidated, consolidated); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return goerr.Wrap(err, "failed to save workbook", goerr.V("path", path))
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, table Table) error {
	if err := setRow(f, sheet, 1, table.Fields); err != nil {
		return err
	}
	for i, row := range table.Rows {
		if err := setRow(f, sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return goerr.Wrap(err, "failed to locate row", goerr.V("sheet", sheet), goerr.V("row", rowNum))
	}
	if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
		return goerr.Wrap(err, "failed to write row", goerr.V("sheet", sheet), goerr.V("row", rowNum))
	}
	return nil
}
