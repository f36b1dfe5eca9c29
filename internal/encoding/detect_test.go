package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akhaled-io/ftaledger/internal/encoding"
)

func TestNewStatementReader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with an Arabic payee name passes through unchanged.
	input := "Date,Description,Debit,Credit\n05/01/2025,شركة الإمارات,120.00,\n"
	r, err := encoding.NewStatementReader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewStatementReader_Windows1252(t *testing.T) {
	// Windows-1252 encoded "Café Déposit". é = 0xE9.
	raw := []byte{
		'C', 'a', 'f', 0xE9, ' ', 'D', 0xE9, 'p', 'o', 's', 'i', 't', '\n',
	}

	r, err := encoding.NewStatementReader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Café Déposit\n", string(got))
}

func TestNewStatementReader_UTF8BOMStripped(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Date,Description\n")

	r, err := encoding.NewStatementReader(bytes.NewReader(append(bom, content...)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Date,Description\n", string(got))
}

func TestNewStatementReader_UTF16LE(t *testing.T) {
	// "Hi\n" as UTF-16 LE with BOM.
	raw := []byte{0xFF, 0xFE, 'H', 0x00, 'i', 0x00, '\n', 0x00}

	r, err := encoding.NewStatementReader(bytes.NewReader(raw))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Hi\n", string(got))
}
