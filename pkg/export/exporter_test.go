package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func sampleDocument() Document {
	return Document{
		Banner: []string{
			"Universidad Tecnológica de El Salvador",
			"UTEC Virtual",
		},
		Meta: []KV{
			{Key: "Generado por", Value: "María Pérez"},
		},
		Filters: []KV{
			{Key: "Plataforma", Value: "Genially"},
		},
		Blocks: []Block{
			{
				Title:   "Resumen",
				Headers: []string{"Indicador", "Valor"},
				Rows: [][]string{
					{"Total de recursos", "2"},
					{"Publicados", "1"},
				},
			},
			{
				Title:   "Recursos por plataforma",
				Headers: []string{"Plataforma", "Cantidad", "Porcentaje"},
				Rows: [][]string{
					{"Genially", "2", "100%"},
				},
			},
		},
		GeneratedAt: time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
	}
}

func TestCSVExporterRender(t *testing.T) {
	content, err := NewCSVExporter().Render(sampleDocument())
	require.NoError(t, err)

	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	require.NoError(t, err)

	assert.Equal(t, []string{"Universidad Tecnológica de El Salvador"}, records[0])
	assert.Equal(t, []string{"Generado por", "María Pérez"}, records[2])
	assert.Equal(t, []string{"Plataforma", "Genially"}, records[3])
	assert.Equal(t, []string{"Resumen"}, records[4])
	assert.Equal(t, []string{"Indicador", "Valor"}, records[5])
	assert.Equal(t, []string{"Total de recursos", "2"}, records[6])
	assert.Equal(t, []string{"Recursos por plataforma"}, records[8])
}

func TestXLSXExporterRender(t *testing.T) {
	content, err := NewXLSXExporter().Render(sampleDocument())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, "Reporte", f.GetSheetName(0))

	banner, err := f.GetCellValue("Reporte", "A1")
	require.NoError(t, err)
	assert.Equal(t, "Universidad Tecnológica de El Salvador", banner)

	metaKey, err := f.GetCellValue("Reporte", "A4")
	require.NoError(t, err)
	assert.Equal(t, "Generado por", metaKey)

	filtersTitle, err := f.GetCellValue("Reporte", "A6")
	require.NoError(t, err)
	assert.Equal(t, "Filtros aplicados", filtersTitle)

	blockTitle, err := f.GetCellValue("Reporte", "A9")
	require.NoError(t, err)
	assert.Equal(t, "Resumen", blockTitle)

	header, err := f.GetCellValue("Reporte", "A10")
	require.NoError(t, err)
	assert.Equal(t, "Indicador", header)

	cell, err := f.GetCellValue("Reporte", "B11")
	require.NoError(t, err)
	assert.Equal(t, "2", cell)
}

func TestPDFExporterRender(t *testing.T) {
	content, err := NewPDFExporter().Render(sampleDocument())
	require.NoError(t, err)
	require.NotEmpty(t, content)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))
}
