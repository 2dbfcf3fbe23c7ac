package traktrain

import (
	"html"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/xaxaxzaazax/traktrain-downloader/internal/traktrain/dto"
)

// profilePage carries the inputs shared by the profile-page strategies.
type profilePage struct {
	doc     *goquery.Document // nil when DOM parsing failed
	html    string
	baseURL string
}

// profileScan is the outcome of the profile cascade: the accepted
// descriptors plus the diagnostics NoTracksError needs.
type profileScan struct {
	infos        []dto.PlayerInfo
	elementsSeen int
	strategy     string
}

// locateProfileTracks runs the profile cascade. Strategies run strictly
// in priority order and the first one yielding any accepted descriptor
// preempts the rest. Per-element failures inside a strategy are logged
// and skipped, never fatal.
func locateProfileTracks(p *profilePage, logger *log.Logger) profileScan {
	scan := profileScan{}

	scan.infos, scan.elementsSeen = scanPlayerElements(p, logger)
	if len(scan.infos) > 0 {
		scan.strategy = "player-elements"
		return scan
	}

	if infos := scanHydrationState(p); len(infos) > 0 {
		scan.infos = infos
		scan.strategy = "hydration-state"
		return scan
	}

	if infos := scanPlayerAttributesRaw(p, logger); len(infos) > 0 {
		scan.infos = infos
		scan.strategy = "raw-attribute"
		return scan
	}

	return scan
}

// scanPlayerElements inspects every DOM element carrying the player data
// attribute, parsing each payload independently. Elements with malformed
// or incomplete payloads are soft failures: logged and skipped.
func scanPlayerElements(p *profilePage, logger *log.Logger) ([]dto.PlayerInfo, int) {
	if p.doc == nil {
		return nil, 0
	}

	var infos []dto.PlayerInfo
	seen := 0
	p.doc.Find("[" + playerInfoAttr + "]").Each(func(i int, sel *goquery.Selection) {
		seen++
		payload, _ := sel.Attr(playerInfoAttr)
		info, err := dto.ParsePlayerInfo(payload)
		if err != nil {
			logger.Debug("skipping player element with malformed payload", "index", i, "err", err)
			return
		}
		if !info.Valid() {
			logger.Debug("skipping player element missing name or src", "index", i)
			return
		}
		infos = append(infos, info)
	})
	return infos, seen
}

// hydrationPatterns match the inline state payloads profile pages have
// shipped their track lists in, in decreasing order of confidence. The
// first matching pattern is the only one probed.
var hydrationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?s)window\.__INITIAL_STATE__\s*=\s*(\{.*?\})\s*;`),
	regexp.MustCompile(`(?s)window\.playerTracks\s*=\s*(\[.*?\])\s*;`),
	regexp.MustCompile(`(?s)(?:var|let|const)\s+(?:tracks|beats)\s*=\s*(\[.*?\])\s*;`),
}

// scanHydrationState looks for a hydration/global-state assignment and
// probes the parsed payload for a track list.
func scanHydrationState(p *profilePage) []dto.PlayerInfo {
	for _, re := range hydrationPatterns {
		m := re.FindStringSubmatch(p.html)
		if m == nil {
			continue
		}
		return filterValid(dto.ProbeTrackList([]byte(m[1])))
	}
	return nil
}

// playerAttrRawPatterns pull the attribute payload straight out of the
// raw HTML for documents where DOM parsing failed to expose it.
var playerAttrRawPatterns = []*regexp.Regexp{
	regexp.MustCompile(playerInfoAttr + `\s*=\s*'([^']+)'`),
	regexp.MustCompile(playerInfoAttr + `\s*=\s*"([^"]+)"`),
}

// scanPlayerAttributesRaw is the regex-only sweep over the raw document.
func scanPlayerAttributesRaw(p *profilePage, logger *log.Logger) []dto.PlayerInfo {
	var infos []dto.PlayerInfo
	for _, re := range playerAttrRawPatterns {
		for _, m := range re.FindAllStringSubmatch(p.html, -1) {
			info, err := dto.ParsePlayerInfo(html.UnescapeString(m[1]))
			if err != nil {
				logger.Debug("skipping raw player attribute with malformed payload", "err", err)
				continue
			}
			if !info.Valid() {
				continue
			}
			infos = append(infos, info)
		}
		if len(infos) > 0 {
			break
		}
	}
	return infos
}

// filterValid drops descriptors missing a name or src. Rejects are
// silent; they are expected in hydration payloads that mix entity types.
func filterValid(infos []dto.PlayerInfo) []dto.PlayerInfo {
	var valid []dto.PlayerInfo
	for _, info := range infos {
		if info.Valid() {
			valid = append(valid, info)
		}
	}
	return valid
}
