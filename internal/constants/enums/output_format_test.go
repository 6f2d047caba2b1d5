package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("json")
	require.NoError(t, err)
	assert.Equal(t, OutputFormatJSON, f)
	assert.Equal(t, "json", f.String())

	_, err = ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestOutputFormat_TextRoundTrip(t *testing.T) {
	text, err := OutputFormatTable.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "table", string(text))

	var f OutputFormat
	require.NoError(t, f.UnmarshalText([]byte("json")))
	assert.Equal(t, OutputFormatJSON, f)
}
