package commonutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadPayload_Inline(t *testing.T) {
	rec, err := ReadPayload(`{"name":"Puck","dross":12}`, "", nil)
	require.NoError(t, err)
	assert.Equal(t, "Puck", rec["name"])
	assert.Equal(t, json.Number("12"), rec["dross"])
	assert.False(t, rec.HasID())
}

func TestReadPayload_FileAndStdin(t *testing.T) {
	p := filepath.Join(t.TempDir(), "faery.json")
	require.NoError(t, os.WriteFile(p, []byte(`{"name":"Titania"}`), 0o644))

	rec, err := ReadPayload("", p, nil)
	require.NoError(t, err)
	assert.Equal(t, "Titania", rec["name"])

	rec, err = ReadPayload("", "-", strings.NewReader(`{"name":"Oberon"}`))
	require.NoError(t, err)
	assert.Equal(t, "Oberon", rec["name"])
}

func TestReadPayload_Errors(t *testing.T) {
	_, err := ReadPayload("", "", nil)
	assert.Error(t, err)

	_, err = ReadPayload(`{}`, "x.json", nil)
	assert.Error(t, err)

	_, err = ReadPayload(`[1]`, "", nil)
	assert.Error(t, err)

	_, err = ReadPayload(`null`, "", nil)
	assert.Error(t, err)

	_, err = ReadPayload("", filepath.Join(t.TempDir(), "missing.json"), nil)
	assert.Error(t, err)
}

func TestReadCollectionFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "seed.json")
	require.NoError(t, os.WriteFile(p, []byte(`[{"name":"Puck","dross":1},{"name":"Titania"}]`), 0o644))

	got, err := ReadCollectionFile(p)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, json.Number("1"), got[0]["dross"])

	require.NoError(t, os.WriteFile(p, []byte(`{"name":"Puck"}`), 0o644))
	_, err = ReadCollectionFile(p)
	assert.Error(t, err)
}
