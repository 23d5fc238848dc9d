package report_test

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/argus/pkg/report"
	"github.com/xuri/excelize/v2"
)

func sampleTables() (report.Table, report.Table) {
	raw := report.Table{
		Fields: []string{"workspace", "emailAddress", "status"},
		Rows: [][]string{
			{"ws-a", "alice@x.com", "COMPLETE"},
			{"ws-b", "bob@x.com", ""},
		},
	}
	consolidated := report.Table{
		Fields: []string{"emailAddress", "ws-a__status"},
		Rows: [][]string{
			{"alice@x.com", "COMPLETE"},
		},
	}
	return raw, consolidated
}

func TestWriteCSV(t *testing.T) {
	raw, _ := sampleTables()
	path := filepath.Join(t.TempDir(), "out.csv")

	gt.NoError(t, report.WriteCSV(context.Background(), path, raw)).Required()

	f, err := os.Open(path)
	gt.NoError(t, err).Required()
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	gt.NoError(t, err).Required()
	gt.Array(t, records).Length(3)
	gt.Value(t, records[0]).Equal(raw.Fields)
	gt.Value(t, records[1]).Equal(raw.Rows[0])
	gt.Value(t, records[2]).Equal(raw.Rows[1])
}

func TestWriteCSVBadPath(t *testing.T) {
	raw, _ := sampleTables()
	err := report.WriteCSV(context.Background(), filepath.Join(t.TempDir(), "missing", "out.csv"), raw)
	gt.Error(t, err)
}

func TestWriteWorkbook(t *testing.T) {
	raw, consolidated := sampleTables()
	path := filepath.Join(t.TempDir(), "out.xlsx")

	gt.NoError(t, report.WriteWorkbook(context.Background(), path, raw, consolidated)).Required()

	f, err := excelize.OpenFile(path)
	gt.NoError(t, err).Required()
	defer f.Close()

	gt.Value(t, f.GetSheetList()).Equal([]string{"Raw", "Consolidated"})

	header, err := f.GetCellValue("Raw", "A1")
	gt.NoError(t, err)
	gt.Value(t, header).Equal("workspace")

	email, err := f.GetCellValue("Raw", "B2")
	gt.NoError(t, err)
	gt.Value(t, email).Equal("alice@x.com")

	conEmail, err := f.GetCellValue("Consolidated", "A2")
	gt.NoError(t, err)
	gt.Value(t, conEmail).Equal("alice@x.com")
}
