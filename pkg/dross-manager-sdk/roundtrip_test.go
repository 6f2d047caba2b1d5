package drossmanagersdk_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wangdayong228/dross-manager-client/internal/mockserver"
	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

func newMockAPI(t *testing.T) *drossmanagersdk.Client {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := mockserver.New(mockserver.WithLogger(logger))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return drossmanagersdk.New(s.BaseURL(ts.URL), drossmanagersdk.WithLogger(logger))
}

func TestRoundTrip_CreateThenGet(t *testing.T) {
	c := newMockAPI(t)
	ctx := context.Background()

	payload := drossmanagersdk.Record{
		drossmanagersdk.FieldName:    "Puck",
		drossmanagersdk.FieldEmail:   "puck@example.com",
		drossmanagersdk.FieldIsAdmin: false,
	}
	created, err := c.Faeries.Create(ctx, payload)
	require.NoError(t, err)
	require.True(t, created.HasID())

	got, err := c.Faeries.Get(ctx, created.ID())
	require.NoError(t, err)
	assert.Equal(t, created.ID(), got.ID())
	for k, v := range payload {
		assert.Equal(t, v, got[k], "field=%s", k)
	}
}

func TestRoundTrip_FullLifecycle(t *testing.T) {
	c := newMockAPI(t)
	ctx := context.Background()

	puck, err := c.Faeries.Create(ctx, drossmanagersdk.Record{"name": "Puck"})
	require.NoError(t, err)
	titania, err := c.Faeries.Create(ctx, drossmanagersdk.Record{"name": "Titania"})
	require.NoError(t, err)

	list, err := c.Faeries.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{puck.ID(), titania.ID()}, list.IDs())

	puck["name"] = "Robin"
	updated, err := c.Faeries.Update(ctx, puck.ID(), puck)
	require.NoError(t, err)
	assert.Equal(t, "Robin", updated["name"])

	require.NoError(t, c.Faeries.Delete(ctx, titania.ID()))
	_, err = c.Faeries.Get(ctx, titania.ID())
	assert.ErrorIs(t, err, drossmanagersdk.ErrNotFound)
	assert.ErrorIs(t, c.Faeries.Delete(ctx, titania.ID()), drossmanagersdk.ErrNotFound)

	require.NoError(t, c.Faeries.DeleteAll(ctx))
	list, err = c.Faeries.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}
