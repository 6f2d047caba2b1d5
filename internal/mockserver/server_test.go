package mockserver

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	drossmanagersdk "github.com/wangdayong228/dross-manager-client/pkg/dross-manager-sdk"
)

func newTestServer(t *testing.T, opts ...Option) (*Server, *httptest.Server) {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	s := New(append([]Option{WithLogger(logger)}, opts...)...)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func doRequest(t *testing.T, method, url, body string) (int, string) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, url, r)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, strings.TrimSpace(string(data))
}

func TestServer_Hello(t *testing.T) {
	_, ts := newTestServer(t)
	status, body := doRequest(t, http.MethodGet, ts.URL+"/api/hello", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello, world!", body)
}

func TestServer_CreateAssignsID(t *testing.T) {
	s, ts := newTestServer(t)

	status, body := doRequest(t, http.MethodPost, ts.URL+"/api/faeries", `{"id":99,"name":"Puck","dross":3}`)
	require.Equal(t, http.StatusCreated, status)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(body), &rec))
	assert.EqualValues(t, 1, rec["id"])
	assert.Equal(t, "Puck", rec["name"])
	assert.Equal(t, 1, s.Store().Count())
}

func TestServer_CreateRejectsNonObject(t *testing.T) {
	_, ts := newTestServer(t)

	for _, body := range []string{`[1,2]`, `null`, `{"name":`} {
		status, resp := doRequest(t, http.MethodPost, ts.URL+"/api/faeries", body)
		assert.Equal(t, http.StatusBadRequest, status, "body=%s", body)
		assert.Equal(t, `"InvalidModel"`, resp)
	}
}

func TestServer_GetUnknownAndInvalidID(t *testing.T) {
	_, ts := newTestServer(t)

	status, body := doRequest(t, http.MethodGet, ts.URL+"/api/faeries/42", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, `"Not Found"`, body)

	status, _ = doRequest(t, http.MethodGet, ts.URL+"/api/faeries/abc", "")
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestServer_UpdateRules(t *testing.T) {
	s, ts := newTestServer(t, WithSeed(drossmanagersdk.Collection{{"name": "Puck"}}))
	require.Equal(t, 1, s.Store().Count())

	status, body := doRequest(t, http.MethodPut, ts.URL+"/api/faeries/1", `{"id":2,"name":"Oberon"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `"ID mismatch"`, body)

	status, _ = doRequest(t, http.MethodPut, ts.URL+"/api/faeries/7", `{"name":"Oberon"}`)
	assert.Equal(t, http.StatusNotFound, status)

	status, body = doRequest(t, http.MethodPut, ts.URL+"/api/faeries/1", `{"name":"Oberon"}`)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"id":1,"name":"Oberon"}`, body)

	rec, ok := s.Store().Get(1)
	require.True(t, ok)
	assert.Equal(t, "Oberon", rec["name"])
}

func TestServer_DeleteOneAndAll(t *testing.T) {
	s, ts := newTestServer(t, WithSeed(drossmanagersdk.Collection{
		{"name": "Puck"}, {"name": "Titania"}, {"name": "Oberon"},
	}))

	status, _ := doRequest(t, http.MethodDelete, ts.URL+"/api/faeries/2", "")
	assert.Equal(t, http.StatusNoContent, status)
	status, _ = doRequest(t, http.MethodDelete, ts.URL+"/api/faeries/2", "")
	assert.Equal(t, http.StatusNotFound, status)

	status, body := doRequest(t, http.MethodGet, ts.URL+"/api/faeries", "")
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[{"id":1,"name":"Puck"},{"id":3,"name":"Oberon"}]`, body)

	status, _ = doRequest(t, http.MethodDelete, ts.URL+"/api/faeries", "")
	assert.Equal(t, http.StatusNoContent, status)
	assert.Equal(t, 0, s.Store().Count())
}

func TestServer_EmptyPrefix(t *testing.T) {
	s, ts := newTestServer(t, WithPrefix(""))
	assert.Equal(t, ts.URL, s.BaseURL(ts.URL))

	status, body := doRequest(t, http.MethodGet, ts.URL+"/faeries", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "[]", body)
}
