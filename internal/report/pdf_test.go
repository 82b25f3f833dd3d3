package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerarPDF(t *testing.T) {
	productos := productosDemo(t)

	doc, err := GenerarPDF(productos, time.Date(2025, 12, 14, 9, 30, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.True(t, len(doc) > 1000, "PDF should not be trivially small, got %d bytes", len(doc))
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestGenerarPDFSinProductos(t *testing.T) {
	doc, err := GenerarPDF(nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(doc[:4]))
}

func TestTruncar(t *testing.T) {
	assert.Equal(t, "corto", truncar("corto", 10))
	assert.Equal(t, "largísim…", truncar("largísimos", 9))
	assert.Len(t, []rune(truncar("una observacion bastante larga", 12)), 12)
}
