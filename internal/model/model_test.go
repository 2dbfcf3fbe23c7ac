package model

import "testing"

func TestNewTrack_SanitizesName(t *testing.T) {
	track := NewTrack("Cold: Nights?", "https://cdn.example.com/a.mp3", "someartist", "")
	if track.Name != "Cold Nights" {
		t.Errorf("Name = %q, want %q", track.Name, "Cold Nights")
	}
	if track.URL != "https://cdn.example.com/a.mp3" {
		t.Errorf("URL = %q", track.URL)
	}
}

func TestTrack_FileName(t *testing.T) {
	cfg := &TrackConfig{FileNameFormat: "{artist} - {title}.mp3"}
	track := NewTrack("Cold Nights", "https://cdn.example.com/a.mp3", "prodbywest", "")

	if got := track.FileName(cfg); got != "prodbywest - Cold Nights.mp3" {
		t.Errorf("FileName = %q, want %q", got, "prodbywest - Cold Nights.mp3")
	}
}

func TestTrack_FilePath(t *testing.T) {
	cfg := &TrackConfig{FileNameFormat: "{title}.mp3"}
	track := NewTrack("Cold Nights", "https://cdn.example.com/a.mp3", "prodbywest", "")

	want := "/music/prodbywest/Cold Nights.mp3"
	if got := track.FilePath("/music/prodbywest", cfg); got != want {
		t.Errorf("FilePath = %q, want %q", got, want)
	}
}

func TestExtractionResult_TrackCount(t *testing.T) {
	result := &ExtractionResult{
		Tracks: []*Track{
			NewTrack("A", "https://cdn.example.com/a.mp3", "x", ""),
			NewTrack("B", "https://cdn.example.com/b.mp3", "x", ""),
		},
		Artist: "x",
	}
	if result.TrackCount() != 2 {
		t.Errorf("TrackCount = %d, want 2", result.TrackCount())
	}
}
