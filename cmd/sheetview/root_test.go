package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/JonMunkholm/ledgerview/internal/viewmodel"
)

func writeLedger(t *testing.T) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"Фонд", "Дата", "Тип операції", "Дебет", "Кредит"},
		{"A", "15.01.2023", "in", 100, ""},
		{"B", "03.02.2022", "out", "", 50},
		{"A", "01.12.2021", "in", 7, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}

	path := filepath.Join(t.TempDir(), "ledger.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func execute(t *testing.T, stdin []byte, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(bytes.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestRun_JSONFilteredDescending(t *testing.T) {
	path := writeLedger(t)

	out, err := execute(t, nil, path, "--fund", "A", "--sort", "desc", "--format", "json")
	require.NoError(t, err)

	var v viewmodel.View
	require.NoError(t, json.Unmarshal([]byte(out), &v))
	assert.True(t, v.Loaded)
	assert.Equal(t, viewmodel.Descending, v.Sort)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, "15.01.2023", v.Rows[0][1])
	assert.Equal(t, "01.12.2021", v.Rows[1][1])
	assert.Equal(t, 3, v.TotalRows)
}

func TestRun_Table(t *testing.T) {
	out, err := execute(t, nil, writeLedger(t))
	require.NoError(t, err)

	assert.Contains(t, out, "Тип операції")
	assert.Contains(t, out, "03.02.2022")
	assert.Contains(t, out, "3 / 3 rows")
	assert.Less(t, strings.Index(out, "01.12.2021"), strings.Index(out, "15.01.2023"), "ascending by default")
}

func TestRun_Options(t *testing.T) {
	out, err := execute(t, nil, writeLedger(t), "--options")
	require.NoError(t, err)
	assert.Equal(t, "A\nB\n", out)
}

func TestRun_Stdin(t *testing.T) {
	data, err := os.ReadFile(writeLedger(t))
	require.NoError(t, err)

	out, err := execute(t, data, "--options", "--format", "json")
	require.NoError(t, err)

	var funds []string
	require.NoError(t, json.Unmarshal([]byte(out), &funds))
	assert.Equal(t, []string{"A", "B"}, funds)
}

func TestRun_Errors(t *testing.T) {
	path := writeLedger(t)

	_, err := execute(t, nil, path, "--sort", "up")
	assert.ErrorContains(t, err, "--sort")

	_, err = execute(t, nil, path, "--format", "csv")
	assert.ErrorContains(t, err, "--format")

	_, err = execute(t, nil, filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorContains(t, err, "open workbook")

	_, err = execute(t, []byte("not a workbook"))
	assert.ErrorContains(t, err, "FILE002")
}
