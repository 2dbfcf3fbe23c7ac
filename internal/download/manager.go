package download

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/xaxaxzaazax/traktrain-downloader/internal/audio"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/config"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/fsutil"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/httpx"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/model"
)

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// ProgressEvent represents a download progress update.
//
// Percent is only meaningful when Track is non-empty; it carries the
// per-track transfer percentage for UI progress bars.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
	Track   string
	Percent int
}

// Summary reports the outcome of a download run.
type Summary struct {
	Succeeded int
	Failed    int
	Skipped   int
}

// Manager coordinates downloading an extraction result to disk.
type Manager struct {
	settings     *config.Settings
	client       *httpx.Client
	tagger       *audio.Tagger
	playlist     *audio.PlaylistCreator
	imageService *fsutil.ImageService
	strategies   []strategy
	limiter      *rate.Limiter
	logger       *log.Logger

	receivedBytes int64
	totalTracks   int32
	succeeded     int32
	failed        int32
	skipped       int32

	onProgress func(ProgressEvent)
}

// NewManager creates a download Manager from settings. onProgress may be
// nil; logger may be nil to discard logs.
func NewManager(settings *config.Settings, logger *log.Logger, onProgress func(ProgressEvent)) *Manager {
	if logger == nil {
		logger = log.New(io.Discard)
	}

	client := httpx.NewClient(settings.UserAgent)

	limiter := rate.NewLimiter(rate.Inf, 1)
	if settings.StaggerDelay > 0 {
		interval := time.Duration(settings.StaggerDelay * float64(time.Second))
		limiter = rate.NewLimiter(rate.Every(interval), 1)
	}

	return &Manager{
		settings: settings,
		client:   client,
		tagger: audio.NewTagger(&audio.TagConfig{
			ModifyTags:   settings.ModifyTags,
			EmbedArtwork: settings.EmbedArtwork,
		}),
		playlist:     audio.NewPlaylistCreator(audio.ParsePlaylistFormat(settings.PlaylistFormat), settings.M3UExtended),
		imageService: fsutil.NewImageService(),
		strategies:   buildStrategies(client, settings.ChunkSize),
		limiter:      limiter,
		logger:       logger,
		onProgress:   onProgress,
	}
}

// Run downloads every track in the extraction result.
//
// Track starts are staggered by the configured delay and run with bounded
// concurrency. A single failed track is counted and reported but never
// aborts the rest; Run returns an error only for setup failures or context
// cancellation.
func (m *Manager) Run(ctx context.Context, result *model.ExtractionResult) (*Summary, error) {
	folder := m.settings.DownloadsPath
	if result.CreateArtistFolder && result.Artist != "" {
		folder = filepath.Join(folder, fsutil.SanitizeName(result.Artist))
	}
	if err := fsutil.EnsureDir(folder); err != nil {
		return nil, fmt.Errorf("create download folder: %w", err)
	}

	trackCfg := m.settings.ToTrackConfig()
	atomic.StoreInt32(&m.totalTracks, int32(len(result.Tracks)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.settings.MaxConcurrentDownloads)

	for _, track := range result.Tracks {
		// Stagger track starts so the delivery host never sees a burst.
		if err := m.limiter.Wait(ctx); err != nil {
			break
		}

		track := track // capture
		g.Go(func() error {
			if err := m.downloadTrack(gctx, track, folder, trackCfg); err != nil {
				atomic.AddInt32(&m.failed, 1)
				m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading %s: %v", track.Name, err), Level: LevelError})
				return nil // Continue with other tracks
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return m.summary(), err
	}
	if err := ctx.Err(); err != nil {
		return m.summary(), err
	}

	if m.settings.CreatePlaylist && len(result.Tracks) > 0 {
		m.writePlaylist(result, folder, trackCfg)
	}

	summary := m.summary()
	if summary.Failed == 0 {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished: %d track(s) downloaded", summary.Succeeded), Level: LevelSuccess})
	} else {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Finished with errors: %d downloaded, %d failed", summary.Succeeded, summary.Failed), Level: LevelWarning})
	}

	return summary, nil
}

// GetProgress returns current aggregate progress.
func (m *Manager) GetProgress() (receivedBytes int64, done, total int32) {
	completed := atomic.LoadInt32(&m.succeeded) + atomic.LoadInt32(&m.failed) + atomic.LoadInt32(&m.skipped)
	return atomic.LoadInt64(&m.receivedBytes), completed, atomic.LoadInt32(&m.totalTracks)
}

func (m *Manager) summary() *Summary {
	return &Summary{
		Succeeded: int(atomic.LoadInt32(&m.succeeded)),
		Failed:    int(atomic.LoadInt32(&m.failed)),
		Skipped:   int(atomic.LoadInt32(&m.skipped)),
	}
}

func (m *Manager) downloadTrack(ctx context.Context, track *model.Track, folder string, trackCfg *model.TrackConfig) error {
	destPath := track.FilePath(folder, trackCfg)

	// Skip files already on disk with a matching size.
	if info, err := os.Stat(destPath); err == nil {
		expectedSize, err := m.client.GetFileSize(ctx, track.URL)
		if err == nil && expectedSize > 0 && info.Size() == expectedSize {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Skipping existing: %s", filepath.Base(destPath)), Level: LevelVerbose})
			atomic.AddInt32(&m.skipped, 1)
			return nil
		}
	}

	var artwork []byte
	if m.settings.EmbedArtwork && track.ArtworkURL != "" {
		artwork = m.fetchArtwork(ctx, track)
	}

	lastPercent := -1
	onProgress := func(written, total int64) {
		if total <= 0 {
			return
		}
		percent := int(written * 100 / total)
		if percent == lastPercent {
			return
		}
		lastPercent = percent
		m.progress(ProgressEvent{Track: track.Name, Percent: percent})
	}

	var err error
	for tries := 0; tries < m.settings.DownloadMaxRetries; tries++ {
		err = m.fetchWithStrategies(ctx, track.URL, destPath, onProgress)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.progress(ProgressEvent{Message: fmt.Sprintf("Retry %d/%d for %s", tries+1, m.settings.DownloadMaxRetries, track.Name), Level: LevelWarning})
		m.waitForRetry(ctx, tries)
	}

	if err != nil {
		return err
	}

	if info, statErr := os.Stat(destPath); statErr == nil {
		atomic.AddInt64(&m.receivedBytes, info.Size())
	}

	if m.settings.ModifyTags || (m.settings.EmbedArtwork && artwork != nil) {
		if err := m.tagger.SaveTags(destPath, track, artwork); err != nil {
			m.progress(ProgressEvent{Message: fmt.Sprintf("Error tagging %s: %v", track.Name, err), Level: LevelWarning})
		}
	}

	atomic.AddInt32(&m.succeeded, 1)
	m.progress(ProgressEvent{Message: fmt.Sprintf("Downloaded: %s", filepath.Base(destPath)), Level: LevelVerbose})
	return nil
}

// fetchWithStrategies tries each download strategy in priority order and
// stops at the first success. The last strategy's error is returned when
// all of them fail.
func (m *Manager) fetchWithStrategies(ctx context.Context, url, destPath string, onProgress func(written, total int64)) error {
	var lastErr error
	for _, s := range m.strategies {
		if err := s.fetch(ctx, url, destPath, onProgress); err != nil {
			m.logger.Debug("download strategy failed", "strategy", s.name, "url", url, "err", err)
			lastErr = err
			if ctx.Err() != nil {
				return ctx.Err()
			}
			continue
		}
		return nil
	}
	return lastErr
}

// fetchArtwork downloads and resizes cover art for tag embedding. Artwork
// is best effort; any failure just means the track ships without a cover.
func (m *Manager) fetchArtwork(ctx context.Context, track *model.Track) []byte {
	data, err := m.client.Get(ctx, track.ArtworkURL)
	if err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error downloading artwork for %s: %v", track.Name, err), Level: LevelWarning})
		return nil
	}

	resized, err := m.imageService.ResizeJPEG(data, m.settings.ArtworkMaxSize)
	if err != nil {
		m.logger.Debug("artwork resize failed", "track", track.Name, "err", err)
		return data
	}
	return resized
}

func (m *Manager) writePlaylist(result *model.ExtractionResult, folder string, trackCfg *model.TrackConfig) {
	entries := make([]audio.Entry, 0, len(result.Tracks))
	for _, track := range result.Tracks {
		entries = append(entries, audio.Entry{
			FileName: track.FileName(trackCfg),
			Title:    track.Name,
		})
	}

	name := "playlist"
	if result.Artist != "" {
		name = fsutil.SanitizeName(result.Artist)
	}
	path := filepath.Join(folder, name+m.playlist.Extension())

	content := m.playlist.Create(entries)
	if err := fsutil.WriteFile(path, []byte(content)); err != nil {
		m.progress(ProgressEvent{Message: fmt.Sprintf("Error creating playlist: %v", err), Level: LevelWarning})
		return
	}
	m.progress(ProgressEvent{Message: fmt.Sprintf("Created playlist: %s", filepath.Base(path)), Level: LevelSuccess})
}

func (m *Manager) waitForRetry(ctx context.Context, tries int) {
	cooldown := m.settings.DownloadRetryCooldown * math.Pow(m.settings.DownloadRetryExponent, float64(tries))
	select {
	case <-ctx.Done():
	case <-time.After(time.Duration(cooldown * float64(time.Second))):
	}
}

func (m *Manager) progress(event ProgressEvent) {
	if m.onProgress != nil {
		m.onProgress(event)
	}
}
