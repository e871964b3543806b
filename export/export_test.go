package export_test

import (
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almacen/consulta-engine/consulta"
	"github.com/almacen/consulta-engine/export"
)

func sampleResult() *consulta.QueryResult {
	return &consulta.QueryResult{
		Type:  consulta.TypeCaja,
		Title: "Reporte de Movimientos de Caja",
		Summary: consulta.Summary{
			{Key: "totalMovements", Value: 2},
			{Key: "totalIncome", Value: "5800.00"},
		},
		Columns: []string{"id", "type", "amount"},
		Data: []consulta.Row{
			{"id": 1, "type": "Entrada", "amount": "5000.00"},
			{"id": 2, "type": "Salida", "amount": "1200.00"},
		},
	}
}

func TestFor_FormatSelection(t *testing.T) {
	enc, err := export.For("CSV")
	require.NoError(t, err)
	assert.Equal(t, "csv", enc.Ext())

	enc, err = export.For("")
	require.NoError(t, err)
	assert.Equal(t, "json", enc.Ext(), "json is the default format")

	_, err = export.For("xls")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no soportado")
}

func TestJSONEncoder_FullEnvelope(t *testing.T) {
	enc, _ := export.For("json")
	data, err := enc.Encode(sampleResult())
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	assert.Equal(t, "Reporte de Movimientos de Caja", out["title"])

	summary := out["summary"].(map[string]any)
	assert.Equal(t, "5800.00", summary["totalIncome"])
}

func TestCSVEncoder_DeclaredColumnOrder(t *testing.T) {
	enc, _ := export.For("csv")
	data, err := enc.Encode(sampleResult())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "id,type,amount", lines[0])
	assert.Equal(t, "1,Entrada,5000.00", lines[1])
	assert.Equal(t, "2,Salida,1200.00", lines[2])
}

func TestWriter_PersistsArtifact(t *testing.T) {
	dir := t.TempDir()
	enc, _ := export.For("json")

	path, err := export.Writer{Dir: dir}.Write(sampleResult(), enc)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, ".json"))
	assert.Contains(t, path, "movimientos_caja_")

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "totalMovements")
}

func TestEncode_NilResult(t *testing.T) {
	for _, format := range []string{"json", "csv"} {
		enc, _ := export.For(format)
		_, err := enc.Encode(nil)
		require.Error(t, err, format)
	}
}
