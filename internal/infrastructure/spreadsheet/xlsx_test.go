package spreadsheet

import (
	"bytes"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestRender(t *testing.T) {
	id := uuid.MustParse("6f1c2f7e-8f51-4c1a-9d1f-3e0f3c7d2a10")
	reviewed := time.Date(2026, 3, 2, 8, 30, 0, 0, time.FixedZone("CET", 3600))
	name := "WOLF"

	data, err := Render(Table{
		Sheet:   "Applications",
		Headers: []string{"ID", "Player", "Power", "Alliance", "Reviewed At", "Note"},
		Rows: [][]any{
			{id, "Frost", int64(45000000), &name, reviewed, nil},
			{id, "Ember", int64(12), (*string)(nil), (*time.Time)(nil)},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Applications"}, f.GetSheetList())

	rows, err := f.GetRows("Applications")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"ID", "Player", "Power", "Alliance", "Reviewed At", "Note"}, rows[0])
	assert.Equal(t, id.String(), rows[1][0])
	assert.Equal(t, "45000000", rows[1][2])
	assert.Equal(t, "WOLF", rows[1][3])
	assert.Equal(t, "2026-03-02 07:30:00", rows[1][4])
	assert.Equal(t, "Ember", rows[2][1])
	assert.Len(t, rows[2], 3)
}

func TestRender_DefaultSheetAndEmptyRows(t *testing.T) {
	data, err := Render(Table{Headers: []string{"Email"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Email"}}, rows)
}

func TestRender_RequiresHeaders(t *testing.T) {
	_, err := Render(Table{Sheet: "x"})
	assert.Error(t, err)
}
