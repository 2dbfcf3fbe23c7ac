package traktrain

import (
	"context"
	"errors"
	"strings"
	"testing"
)

const basePrelude = `<script>var AWS_BASE_URL = "https://cdn.example.com/";</script>`

func TestExtractor_SingleTrackScenario(t *testing.T) {
	html := `<html><head>` + basePrelude + `</head><body>
		<div data-player-info='{"name":"My Track","src":"/abc.mp3"}'></div>
	</body></html>`

	e := NewExtractor(nil, nil)
	result, err := e.Extract(context.Background(), PageSingle, "https://traktrain.com/someartist/my-track-1", html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(result.Tracks) != 1 {
		t.Fatalf("got %d tracks, want 1", len(result.Tracks))
	}
	track := result.Tracks[0]
	if track.Name != "My Track" {
		t.Errorf("Name = %q, want %q", track.Name, "My Track")
	}
	if track.URL != "https://cdn.example.com/abc.mp3" {
		t.Errorf("URL = %q, want %q", track.URL, "https://cdn.example.com/abc.mp3")
	}
	if track.Artist != "someartist" {
		t.Errorf("Artist = %q, want URL-derived handle", track.Artist)
	}
	if result.CreateArtistFolder {
		t.Error("single-track extraction should not request an artist folder")
	}
}

func TestExtractor_SingleTrackNameSanitized(t *testing.T) {
	html := `<html><head>` + basePrelude + `</head><body>
		<div data-player-info='{"name":"My/Track: *Deluxe*  Mix","src":"/abc.mp3"}'></div>
	</body></html>`

	e := NewExtractor(nil, nil)
	result, err := e.Extract(context.Background(), PageSingle, "https://traktrain.com/a/b-1", html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if got := result.Tracks[0].Name; got != "MyTrack Deluxe Mix" {
		t.Errorf("Name = %q, want sanitized %q", got, "MyTrack Deluxe Mix")
	}
}

func TestExtractor_MissingBaseURLFailsBeforeLocators(t *testing.T) {
	// Otherwise-valid track attributes must not rescue the page.
	html := `<html><body>
		<div data-player-info='{"name":"My Track","src":"/abc.mp3"}'></div>
	</body></html>`

	e := NewExtractor(nil, nil)

	for _, pt := range []PageType{PageSingle, PageProfile} {
		t.Run(pt.String(), func(t *testing.T) {
			_, err := e.Extract(context.Background(), pt, "https://traktrain.com/someartist/track-1", html)
			if !errors.Is(err, ErrBaseURLNotFound) {
				t.Errorf("err = %v, want ErrBaseURLNotFound", err)
			}
		})
	}
}

func TestExtractor_ProfileWithoutHandleFails(t *testing.T) {
	// The page content is irrelevant: the handle check precedes track
	// location entirely.
	html := `<html><head>` + basePrelude + `</head><body>
		<div data-player-info='{"name":"My Track","src":"/abc.mp3"}'></div>
	</body></html>`

	e := NewExtractor(nil, nil)
	_, err := e.Extract(context.Background(), PageProfile, "https://traktrain.com/", html)
	if !errors.Is(err, ErrArtistNotFound) {
		t.Errorf("err = %v, want ErrArtistNotFound", err)
	}
}

func TestExtractor_ProfileScenario(t *testing.T) {
	html := `<html><head>` + basePrelude + `</head><body>
		<div data-player-info='{"name":"One","src":"/1.mp3"}'></div>
		<div data-player-info='{"name":"Two","src":"/2.mp3","image":"/art/2.jpg"}'></div>
		<div data-player-info='{not json at all'></div>
		<div data-player-info='{"name":"Three","src":"/3.mp3"}'></div>
	</body></html>`

	e := NewExtractor(nil, nil)
	result, err := e.Extract(context.Background(), PageProfile, "https://traktrain.com/someartist", html)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	if len(result.Tracks) != 3 {
		t.Fatalf("got %d tracks, want 3", len(result.Tracks))
	}
	wantNames := []string{"One", "Two", "Three"}
	for i, track := range result.Tracks {
		if track.Name != wantNames[i] {
			t.Errorf("track %d name = %q, want %q", i, track.Name, wantNames[i])
		}
		if track.Artist != "someartist" {
			t.Errorf("track %d artist = %q, want %q", i, track.Artist, "someartist")
		}
		if !strings.HasPrefix(track.URL, "https://cdn.example.com/") {
			t.Errorf("track %d URL = %q, want base-prefixed", i, track.URL)
		}
	}
	if result.Tracks[1].ArtworkURL != "https://cdn.example.com/art/2.jpg" {
		t.Errorf("ArtworkURL = %q", result.Tracks[1].ArtworkURL)
	}
	if !result.CreateArtistFolder {
		t.Error("profile extraction should request an artist folder")
	}
}

func TestExtractor_ProfileExhaustionDiagnostics(t *testing.T) {
	html := `<html><head>` + basePrelude + `</head><body>
		<div data-player-info='{broken'></div>
		<div data-player-info='{"name":"no src"}'></div>
	</body></html>`

	e := NewExtractor(nil, nil)
	_, err := e.Extract(context.Background(), PageProfile, "https://traktrain.com/someartist", html)

	var noTracks *NoTracksError
	if !errors.As(err, &noTracks) {
		t.Fatalf("err = %v, want *NoTracksError", err)
	}
	if noTracks.PageGuess != "profile" {
		t.Errorf("PageGuess = %q, want %q", noTracks.PageGuess, "profile")
	}
	if !noTracks.BaseURLFound {
		t.Error("BaseURLFound = false, want true")
	}
	if noTracks.ElementsSeen != 2 {
		t.Errorf("ElementsSeen = %d, want 2", noTracks.ElementsSeen)
	}
	for _, want := range []string{"profile", "true", "2"} {
		if !strings.Contains(noTracks.Error(), want) {
			t.Errorf("error message %q missing %q", noTracks.Error(), want)
		}
	}
}

func TestExtractor_SingleExhaustion(t *testing.T) {
	html := `<html><head>` + basePrelude + `</head><body><p>empty</p></body></html>`

	e := NewExtractor(nil, nil)
	_, err := e.Extract(context.Background(), PageSingle, "https://traktrain.com/a/b-1", html)
	if !errors.Is(err, ErrTrackNotFound) {
		t.Errorf("err = %v, want ErrTrackNotFound", err)
	}
}

func TestExtractor_ShortLinkRedirectFailure(t *testing.T) {
	follower := &fakeFollower{err: errors.New("dial timeout")}
	e := NewExtractor(follower, nil)

	_, err := e.Extract(context.Background(), PageSingle, "https://traktrain.com/t/abc", "<html></html>")

	var redirectErr *RedirectError
	if !errors.As(err, &redirectErr) {
		t.Fatalf("err = %v, want *RedirectError", err)
	}
	if follower.calls != 1 {
		t.Errorf("follower called %d times, want 1", follower.calls)
	}
}

func TestAbsolutize(t *testing.T) {
	tests := []struct {
		base string
		src  string
		want string
	}{
		{"https://cdn.example.com/", "/abc.mp3", "https://cdn.example.com/abc.mp3"},
		{"https://cdn.example.com", "abc.mp3", "https://cdn.example.com/abc.mp3"},
		{"https://cdn.example.com/", "https://elsewhere.com/x.mp3", "https://elsewhere.com/x.mp3"},
		{"https://cdn.example.com/", "//static.example.com/x.mp3", "https://static.example.com/x.mp3"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			if got := absolutize(tt.base, tt.src); got != tt.want {
				t.Errorf("absolutize(%q, %q) = %q, want %q", tt.base, tt.src, got, tt.want)
			}
		})
	}
}
