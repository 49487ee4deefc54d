package viewmodel

import (
	"encoding/json"
	"testing"

	"github.com/JonMunkholm/ledgerview/internal/sheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Unloaded(t *testing.T) {
	v := Build(nil, "", "")

	assert.False(t, v.Loaded)
	assert.Equal(t, FilterAll, v.Filter)
	assert.Equal(t, Ascending, v.Sort)
	assert.Equal(t, []string{}, v.Headers)
	assert.Equal(t, []sheet.Row{}, v.Rows)
	assert.Equal(t, []string{}, v.FundOptions)
	assert.Equal(t, SkippedNoTable, v.FilterOutcome)
}

func TestBuild_FilterThenSort(t *testing.T) {
	v := Build(wideTable(), "B", Descending)

	assert.True(t, v.Loaded)
	assert.Equal(t, 6, v.TotalRows)
	assert.Equal(t, Applied, v.FilterOutcome)
	assert.Equal(t, Applied, v.SortOutcome)
	assert.Equal(t, []string{"31.12.2023", "01.01.2022"}, dates(v.Rows))
}

func TestBuild_EmptyWorkbook(t *testing.T) {
	v := Build(&sheet.Table{Rows: []sheet.Row{}}, FilterAll, Ascending)

	assert.True(t, v.Loaded)
	assert.Empty(t, v.Headers)
	assert.Empty(t, v.Rows)
	assert.Equal(t, []string{}, v.FundOptions)
	assert.Equal(t, SkippedNoRows, v.SortOutcome)
}

func TestBuild_HeaderOnlyTable(t *testing.T) {
	v := Build(&sheet.Table{Headers: []string{"Фонд", "Дата"}, Rows: []sheet.Row{}}, "A", Ascending)

	assert.Equal(t, []string{"Фонд", "Дата"}, v.Headers)
	assert.Empty(t, v.Rows)
	assert.Equal(t, Applied, v.FilterOutcome)
}

func TestView_JSON(t *testing.T) {
	v := Build(ledgerTable(), "A", Ascending)

	data, err := json.Marshal(v)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "applied", decoded["filterOutcome"])
	assert.Equal(t, "asc", decoded["sort"])
	assert.Equal(t, "A", decoded["filter"])
}

func TestOutcome_TextRoundTrip(t *testing.T) {
	var o Outcome
	require.NoError(t, o.UnmarshalText([]byte("skipped_column_absent")))
	assert.Equal(t, SkippedColumnAbsent, o)
	assert.Error(t, o.UnmarshalText([]byte("bogus")))
}
