package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/fleet-cli/internal/fleet"
	"github.com/sells-group/fleet-cli/internal/table"
)

var sellRecord = fleet.Record{
	UnitID: "77", Make: "Volvo", Model: "VNL", Year: "2018",
	PayoffBalance: 6000, TotalRepairs: 9000, Odometer: 520000, RecentMiles: 2500,
	EstResale: 39000, NetEquity: 33000, CPM: 3.6,
	Action: fleet.ActionSell, Reasoning: "High Miles, High CPM ($3.60), Pos Equity",
}

func TestWriteDecisionsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "truck_decisions.csv")
	require.NoError(t, WriteDecisionsCSV([]fleet.Record{sellRecord}, path))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, decisionColumns, rows[0])
	assert.Equal(t, "77", rows[1][0])
	assert.Equal(t, "39000", rows[1][8])
	assert.Equal(t, "3.6000", rows[1][10])
	assert.Equal(t, "SELL", rows[1][11])
	assert.Contains(t, rows[1][12], "High Miles")
}

func TestEncodeDecisionsCSV_EmptyReportStillHasHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeDecisionsCSV(nil, &buf))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "clean_id")
	assert.Contains(t, lines[0], "Reasoning")
}

func TestWriteDecisionsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "decisions.xlsx")
	require.NoError(t, WriteDecisionsXLSX([]fleet.Record{sellRecord}, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet["Data"]
	require.True(t, ok, "expected a sheet named Data")
	require.Len(t, sheet.Rows, 2)
	assert.Equal(t, "clean_id", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "77", sheet.Rows[1].Cells[0].String())
}

func TestWriteFinanceXLSX_RoundTrip(t *testing.T) {
	fin := table.New("Unit ID", "Make", "Monthly Payment")
	fin.AppendRow(table.Row{"Unit ID": "SPOT-77", "Make": "Volvo", "Monthly Payment": "500"})
	fin.AppendRow(table.Row{"Unit ID": "SPOT-88", "Make": "Mack", "Monthly Payment": 650.0})

	path := filepath.Join(t.TempDir(), "truck-finance_updated.xlsx")
	require.NoError(t, WriteFinanceXLSX(fin, path))

	f, err := xlsx.OpenFile(path)
	require.NoError(t, err)
	sheet, ok := f.Sheet["Data"]
	require.True(t, ok)
	require.Len(t, sheet.Rows, 3)
	assert.Equal(t, "Unit ID", sheet.Rows[0].Cells[0].String())
	assert.Equal(t, "SPOT-88", sheet.Rows[2].Cells[0].String())
	assert.Equal(t, "650", sheet.Rows[2].Cells[2].String())
}

func TestWriteDecisionsCSV_BadPath(t *testing.T) {
	err := WriteDecisionsCSV(nil, filepath.Join(t.TempDir(), "missing", "out.csv"))
	require.Error(t, err)
}
