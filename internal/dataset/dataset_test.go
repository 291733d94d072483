package dataset

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/alexanderramin/rpdform/internal/domain"
)

// buildWorkbook creates an in-memory workbook with one sheet per entry,
// in the given order. Each entry's first row is the header.
func buildWorkbook(t *testing.T, sheets []string, rows map[string][][]interface{}) *excelize.File {
	t.Helper()

	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	for _, name := range sheets {
		_, err := wb.NewSheet(name)
		require.NoError(t, err)
		for i, row := range rows[name] {
			cellRef, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			r := row
			require.NoError(t, wb.SetSheetRow(name, cellRef, &r))
		}
	}
	if defaultSheet != "" {
		require.NoError(t, wb.DeleteSheet(defaultSheet))
	}
	return wb
}

func TestFromWorkbook_HeaderDetection(t *testing.T) {
	wb := buildWorkbook(t, []string{"Sinif_Sube", "Calisma_Yeri"}, map[string][][]interface{}{
		"Sinif_Sube": {
			{"Sıra", "Metin", "Değer"},
			{"1", " Ana Sınıfı / A Şubesi ", "22602658#0"},
			{"2", "1. Sınıf / A Şubesi", "22602659#0"},
		},
		"Calisma_Yeri": {
			{"Text", "Value"},
			{"Rehberlik Servisi", "1"},
		},
	})

	table, err := FromWorkbook(wb)
	require.NoError(t, err)

	assert.Equal(t, []string{"Sinif_Sube", "Calisma_Yeri"}, table.Names())
	assert.Equal(t, []domain.Option{
		{Code: "22602658#0", Label: "Ana Sınıfı / A Şubesi"},
		{Code: "22602659#0", Label: "1. Sınıf / A Şubesi"},
	}, table.Options("Sinif_Sube"))
	assert.Equal(t, []domain.Option{{Code: "1", Label: "Rehberlik Servisi"}}, table.Options("Calisma_Yeri"))
}

func TestFromWorkbook_PositionalFallbackAndRowFiltering(t *testing.T) {
	wb := buildWorkbook(t, []string{"RPD_Hizmet_Turu", "Empty", "HeaderOnly"}, map[string][][]interface{}{
		"RPD_Hizmet_Turu": {
			{"Kod", "Ad"},
			{"5", "Bireysel"},
			{"", "Kodsuz satır"},
			{"6", "   "},
			{"7", "Öğretmen"},
		},
		"HeaderOnly": {
			{"Değer", "Metin"},
		},
	})

	table, err := FromWorkbook(wb)
	require.NoError(t, err)

	assert.Equal(t, []string{"RPD_Hizmet_Turu"}, table.Names())
	assert.Equal(t, []domain.Option{
		{Code: "5", Label: "Bireysel"},
		{Code: "7", Label: "Öğretmen"},
	}, table.Options("RPD_Hizmet_Turu"))
}

func TestFromWorkbook_OnlyOneHeaderFoundUsesPositions(t *testing.T) {
	wb := buildWorkbook(t, []string{"S"}, map[string][][]interface{}{
		"S": {
			{"Kod", "Metin"},
			{"A1", "Birinci"},
		},
	})

	table, err := FromWorkbook(wb)
	require.NoError(t, err)
	assert.Equal(t, []domain.Option{{Code: "A1", Label: "Birinci"}}, table.Options("S"))
}

func TestFromWorkbook_NoDataIsError(t *testing.T) {
	wb := buildWorkbook(t, []string{"Bos"}, map[string][][]interface{}{
		"Bos": {{"Değer", "Metin"}},
	})
	_, err := FromWorkbook(wb)
	assert.ErrorIs(t, err, ErrNoCategories)
}

func TestParseWorkbook_RejectsGarbage(t *testing.T) {
	_, err := ParseWorkbook(bytes.NewReader([]byte("not a zip file")))
	assert.Error(t, err)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()

	wb := buildWorkbook(t, []string{"Sinif_Sube"}, map[string][][]interface{}{
		"Sinif_Sube": {{"Değer", "Metin"}, {"1", "Ana Sınıfı / A Şubesi"}},
	})
	xlsxPath := filepath.Join(dir, "veri.xlsx")
	require.NoError(t, wb.SaveAs(xlsxPath))

	table, err := Load(xlsxPath)
	require.NoError(t, err)
	assert.True(t, table.Has("Sinif_Sube"))

	jsonPath := filepath.Join(dir, "veri.json")
	require.NoError(t, os.WriteFile(jsonPath, []byte(`{"B":[{"value":"1","text":"x"}],"A":[]}`), 0o644))
	table, err = Load(jsonPath)
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "A"}, table.Names())

	_, err = Load(filepath.Join(dir, "veri.xls"))
	assert.ErrorIs(t, err, ErrUnsupportedExtension)
}

func TestTable_JSONPreservesOrderAndSkipsNonArrays(t *testing.T) {
	raw := `{"Zeta":[{"value":" 1 ","text":" bir "}],"metadata":{"x":1},"Alpha":[{"value":"","text":"skip"},{"value":"2","text":"iki"}]}`

	table := NewTable()
	require.NoError(t, json.Unmarshal([]byte(raw), table))

	assert.Equal(t, []string{"Zeta", "Alpha"}, table.Names())
	assert.Equal(t, []domain.Option{{Code: "1", Label: "bir"}}, table.Options("Zeta"))
	assert.Equal(t, []domain.Option{{Code: "2", Label: "iki"}}, table.Options("Alpha"))

	out, err := json.Marshal(table)
	require.NoError(t, err)
	assert.JSONEq(t, `{"Zeta":[{"value":"1","text":"bir"}],"Alpha":[{"value":"2","text":"iki"}]}`, string(out))
}

func TestTable_OptionsReturnsCopy(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	opts := table.Options(domain.CategoryService)
	require.NotEmpty(t, opts)
	opts[0].Label = "mutated"

	assert.NotEqual(t, "mutated", table.Options(domain.CategoryService)[0].Label)
}

func TestDefault_ContainsWellKnownCategories(t *testing.T) {
	table, err := Default()
	require.NoError(t, err)

	for _, name := range []string{domain.CategoryClassSection, domain.CategoryService, domain.CategoryLocation} {
		assert.True(t, table.Has(name), "missing %s", name)
	}
	assert.Equal(t, domain.CategoryClassSection, table.Names()[0])

	opt, ok := table.Lookup(domain.CategoryClassSection, "22602658#0")
	require.True(t, ok)
	assert.Equal(t, "Ana Sınıfı / A Şubesi", opt.Label)
}

func TestNilTableIsEmpty(t *testing.T) {
	var table *Table
	assert.Equal(t, 0, table.Len())
	assert.False(t, table.Has("x"))
	assert.Nil(t, table.Options("x"))
	assert.Nil(t, table.Names())
}
