// Package dto holds the intermediate wire shapes pulled out of traktrain
// pages before they are converted into model types.
package dto

import "encoding/json"

// PlayerInfo is the raw track descriptor embedded in a page, either as the
// data-player-info attribute JSON or inside an inline hydration payload.
//
// Src is usually a path relative to the page's base content URL, but some
// locator strategies produce a fully absolute URL; the orchestrator handles
// both. PlayerInfo is discarded once converted to a model.Track.
type PlayerInfo struct {
	// Name is the raw, pre-sanitization track title.
	Name string `json:"name"`

	// Src is the audio location, relative or absolute.
	Src string `json:"src"`

	// Image is the optional cover art location.
	Image string `json:"image"`
}

// Valid reports whether the descriptor is structurally usable: both a
// name and a source must be present.
func (p PlayerInfo) Valid() bool {
	return p.Name != "" && p.Src != ""
}

// ParsePlayerInfo decodes one inline JSON descriptor.
func ParsePlayerInfo(data string) (PlayerInfo, error) {
	var info PlayerInfo
	err := json.Unmarshal([]byte(data), &info)
	return info, err
}
