package filename

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var displayTitleRules = []*regexp.Regexp{
	// bracketed and bare years
	regexp.MustCompile(`[(\[]\d{4}[)\]]`),
	regexp.MustCompile(`\s(?:19|20)\d{2}(?:\s|$)`),
	// resolution and source
	regexp.MustCompile(`(?i)\b(?:2160p|1080p|720p|480p|4K|UHD|HD|SD|BluRay|Blu-Ray|BRRip|BDRip|DVDRip|HDRip|WEBRip|WEB-DL|HDTV|CAM|TS|TC|SCR|R5|DVDScr)\b`),
	// codec
	regexp.MustCompile(`(?i)\b(?:x264|x265|H\.?264|H\.?265|HEVC|AVC|XviD|DivX|VP9|AV1|10bit|HDR|HDR10|DV|Dolby Vision)\b`),
	// audio
	regexp.MustCompile(`(?i)\b(?:AAC|AC3|DTS|DTS-HD|TrueHD|Atmos|FLAC|MP3|5\.1|7\.1|2\.0)\b`),
	// trailing bracketed release group
	regexp.MustCompile(`[\[(][A-Za-z0-9]+[\])]$`),
	// release groups and streaming sources
	regexp.MustCompile(`(?i)\b(?:YIFY|YTS|RARBG|EVO|SPARKS|GECKOS|FGT|NTb|AMZN|NF|DSNP|HMAX|ATVP)\b`),
	// editions
	regexp.MustCompile(`(?i)\b(?:EXTENDED|REMASTERED|UNRATED|DIRECTORS CUT|THEATRICAL|IMAX|PROPER|REPACK)\b`),
}

// DisplayTitle returns a loose, search-friendly title for fileName with
// years, quality, codec, audio, release-group, and edition tokens removed.
// It falls back to fileName when nothing is left.
func DisplayTitle(fileName string) string {
	title := stripExtension(norm.NFC.String(fileName))
	title = separatorPattern.ReplaceAllString(title, " ")
	// Years are removed with a single space so neighbouring words stay apart.
	title = displayTitleRules[0].ReplaceAllString(title, "")
	title = displayTitleRules[1].ReplaceAllString(title, " ")
	for _, rule := range displayTitleRules[2:] {
		title = rule.ReplaceAllString(title, "")
	}
	title = whitespacePattern.ReplaceAllString(title, " ")
	title = strings.TrimSpace(title)
	title = strings.TrimSpace(trailingDashes.ReplaceAllString(title, ""))
	if title == "" {
		return fileName
	}
	return title
}
