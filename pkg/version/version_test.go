package version

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func releaseServer(t *testing.T, tag string) *int32 {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		assert.Equal(t, "/repos/acme/finance-tracker/releases/latest", r.URL.Path)
		_, _ = w.Write([]byte(`{"tag_name":"` + tag + `"}`))
	}))
	t.Cleanup(server.Close)

	oldAPI, oldRepo := releaseAPI, ReleaseRepo
	t.Cleanup(func() { releaseAPI, ReleaseRepo = oldAPI, oldRepo })
	releaseAPI = server.URL
	return &hits
}

func TestLatestReleaseSkippedWithoutRepo(t *testing.T) {
	hits := releaseServer(t, "v9.0.0")
	ReleaseRepo = ""

	_, ok := LatestRelease(context.Background(), "1.0.0")
	assert.False(t, ok)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestLatestReleaseSkippedForDevBuilds(t *testing.T) {
	hits := releaseServer(t, "v9.0.0")
	ReleaseRepo = "acme/finance-tracker"

	_, ok := LatestRelease(context.Background(), "0.0.0-dev")
	assert.False(t, ok)
	assert.Zero(t, atomic.LoadInt32(hits))
}

func TestLatestRelease(t *testing.T) {
	tests := []struct {
		tag     string
		current string
		newer   bool
	}{
		{"v1.10.0", "1.9.0", true},
		{"v1.2.0", "1.2.0", false},
		{"v1.2.0", "1.3.0", false},
		{"v2.0.0", "1.9.9-dirty", true},
	}
	for _, tt := range tests {
		t.Run(tt.tag+"_vs_"+tt.current, func(t *testing.T) {
			hits := releaseServer(t, tt.tag)
			ReleaseRepo = "acme/finance-tracker"

			latest, ok := LatestRelease(context.Background(), tt.current)
			assert.Equal(t, tt.newer, ok)
			if tt.newer {
				assert.Equal(t, tt.tag[1:], latest)
			}
			assert.Equal(t, int32(1), atomic.LoadInt32(hits))
		})
	}
}
