package mockserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

func TestStore_CreateDoesNotAliasInput(t *testing.T) {
	s := NewStore()
	in := drossmanagersdk.Record{"name": "Puck"}

	created := s.Create(in)
	assert.Equal(t, "1", created.ID())
	assert.False(t, in.HasID(), "调用方传入的记录不应被写入 id")

	created["name"] = "changed"
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Puck", got["name"])
}

func TestStore_DeleteAllKeepsCounter(t *testing.T) {
	s := NewStore()
	s.Create(drossmanagersdk.Record{"name": "a"})
	s.Create(drossmanagersdk.Record{"name": "b"})

	assert.Equal(t, 2, s.DeleteAll())
	assert.Empty(t, s.List())

	next := s.Create(drossmanagersdk.Record{"name": "c"})
	assert.Equal(t, "3", next.ID())
	assert.Equal(t, []string{"3"}, s.List().IDs())
}
