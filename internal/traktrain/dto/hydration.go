package dto

import "encoding/json"

// hydrationState mirrors the places traktrain's inline state payloads keep
// a track list.
type hydrationState struct {
	Tracks []json.RawMessage `json:"tracks"`
	Beats  []json.RawMessage `json:"beats"`
	User   struct {
		Tracks []json.RawMessage `json:"tracks"`
	} `json:"user"`
}

// ProbeTrackList digs a track list out of a parsed hydration payload.
//
// Candidates are probed in a fixed order and the first non-empty one wins:
//
//  1. the payload itself, if it is an array
//  2. the top-level "tracks" field
//  3. the top-level "beats" field
//  4. the "user.tracks" field
//
// Individual elements that fail to decode are skipped; they never abort
// the probe.
func ProbeTrackList(payload []byte) []PlayerInfo {
	var asArray []json.RawMessage
	if err := json.Unmarshal(payload, &asArray); err == nil {
		if infos := decodeElements(asArray); len(infos) > 0 {
			return infos
		}
	}

	var state hydrationState
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil
	}

	for _, candidate := range [][]json.RawMessage{state.Tracks, state.Beats, state.User.Tracks} {
		if infos := decodeElements(candidate); len(infos) > 0 {
			return infos
		}
	}

	return nil
}

func decodeElements(raw []json.RawMessage) []PlayerInfo {
	var infos []PlayerInfo
	for _, elem := range raw {
		var info PlayerInfo
		if err := json.Unmarshal(elem, &info); err != nil {
			continue
		}
		infos = append(infos, info)
	}
	return infos
}
