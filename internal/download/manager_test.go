package download

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/config"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/httpx"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
)

func testSettings(t *testing.T) *config.Settings {
	t.Helper()
	settings := config.DefaultSettings()
	settings.DownloadsPath = t.TempDir()
	settings.MaxConcurrentDownloads = 2
	settings.StaggerDelay = 0
	settings.DownloadMaxRetries = 1
	settings.ModifyTags = false
	settings.EmbedArtwork = false
	return settings
}

func TestFetchWithStrategies_FirstSuccessWins(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write([]byte("audio-bytes"))
	}))
	defer server.Close()

	m := NewManager(testSettings(t), nil, nil)
	dest := filepath.Join(t.TempDir(), "out.mp3")

	if err := m.fetchWithStrategies(context.Background(), server.URL, dest, nil); err != nil {
		t.Fatalf("fetchWithStrategies() error = %v", err)
	}
	if hits != 1 {
		t.Errorf("server hit %d times, want 1 (later strategies must not run)", hits)
	}

	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != "audio-bytes" {
		t.Errorf("downloaded content = %q", data)
	}
}

func TestFetchWithStrategies_FallsThroughOnRejection(t *testing.T) {
	// Reject requests carrying a Referer; only the minimal-headers
	// strategy should get through.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer server.Close()

	m := NewManager(testSettings(t), nil, nil)
	dest := filepath.Join(t.TempDir(), "out.mp3")

	if err := m.fetchWithStrategies(context.Background(), server.URL, dest, nil); err != nil {
		t.Fatalf("fetchWithStrategies() error = %v", err)
	}
}

func TestFetchWithStrategies_AllFail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	m := NewManager(testSettings(t), nil, nil)
	dest := filepath.Join(t.TempDir(), "out.mp3")

	if err := m.fetchWithStrategies(context.Background(), server.URL, dest, nil); err == nil {
		t.Fatal("expected error when every strategy fails")
	}
}

func TestManager_Run(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mp3-data"))
	}))
	defer server.Close()

	settings := testSettings(t)
	settings.CreatePlaylist = true

	var mu sync.Mutex
	var events []ProgressEvent
	m := NewManager(settings, nil, func(e ProgressEvent) {
		mu.Lock()
		events = append(events, e)
		mu.Unlock()
	})

	result := &model.ExtractionResult{
		Tracks: []*model.Track{
			model.NewTrack("Cold Nights", server.URL+"/a.mp3", "prodbywest", ""),
			model.NewTrack("Night Drive", server.URL+"/b.mp3", "prodbywest", ""),
		},
		Artist:             "prodbywest",
		CreateArtistFolder: true,
	}

	summary, err := m.Run(context.Background(), result)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Succeeded != 2 || summary.Failed != 0 {
		t.Errorf("summary = %+v, want 2 succeeded, 0 failed", summary)
	}

	folder := filepath.Join(settings.DownloadsPath, "prodbywest")
	for _, name := range []string{
		"prodbywest - Cold Nights.mp3",
		"prodbywest - Night Drive.mp3",
		"prodbywest.m3u",
	} {
		if _, err := os.Stat(filepath.Join(folder, name)); err != nil {
			t.Errorf("expected file %s: %v", name, err)
		}
	}

	if len(events) == 0 {
		t.Error("expected progress events")
	}
}

func TestManager_RunCountsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	settings := testSettings(t)
	settings.DownloadRetryCooldown = 0

	m := NewManager(settings, nil, nil)
	result := &model.ExtractionResult{
		Tracks: []*model.Track{
			model.NewTrack("Broken", server.URL+"/x.mp3", "someone", ""),
		},
		Artist: "someone",
	}

	summary, err := m.Run(context.Background(), result)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if summary.Failed != 1 || summary.Succeeded != 0 {
		t.Errorf("summary = %+v, want 1 failed", summary)
	}
}

func TestBuildStrategies_Order(t *testing.T) {
	strategies := buildStrategies(httpx.NewClient("test"), 1<<20)

	want := []string{"browser-headers", "minimal-headers", "chunked-ranged"}
	if len(strategies) != len(want) {
		t.Fatalf("got %d strategies, want %d", len(strategies), len(want))
	}
	for i, name := range want {
		if strategies[i].name != name {
			t.Errorf("strategy[%d] = %q, want %q", i, strategies[i].name, name)
		}
	}
}
