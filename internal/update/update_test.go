package update

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func releaseServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckNewerRelease(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.3.0","html_url":"https://example.com/r/1.3.0"}`)

	res := Check(context.Background(), srv.URL, "v1.2.0")
	require.NotNil(t, res)
	assert.Equal(t, "1.3.0", res.LatestVersion)
	assert.Equal(t, "https://example.com/r/1.3.0", res.URL)
}

func TestCheckSameVersion(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v1.2.0"}`)
	assert.Nil(t, Check(context.Background(), srv.URL, "1.2.0"))
}

func TestCheckDevBuild(t *testing.T) {
	srv := releaseServer(t, http.StatusOK, `{"tag_name":"v9.9.9"}`)
	assert.Nil(t, Check(context.Background(), srv.URL, "dev"))
}

func TestCheckErrorsAreSilent(t *testing.T) {
	notFound := releaseServer(t, http.StatusNotFound, `{}`)
	assert.Nil(t, Check(context.Background(), notFound.URL, "1.0.0"))

	garbage := releaseServer(t, http.StatusOK, `not json`)
	assert.Nil(t, Check(context.Background(), garbage.URL, "1.0.0"))

	assert.Nil(t, Check(context.Background(), "http://127.0.0.1:0/nope", "1.0.0"))
}
