package metadata

import (
	"strings"

	"jukebox/internal/tmdb"
)

var trailerTypePriority = []string{"Trailer", "Teaser", "Clip"}

// SelectTrailer picks a YouTube video key from videos, preferring a Trailer,
// then a Teaser, then a Clip, then any YouTube entry. It returns nil when no
// YouTube video with a key is listed.
func SelectTrailer(videos []tmdb.Video) *string {
	var youtube []tmdb.Video
	for _, v := range videos {
		if strings.EqualFold(v.Site, "YouTube") && strings.TrimSpace(v.Key) != "" {
			youtube = append(youtube, v)
		}
	}
	if len(youtube) == 0 {
		return nil
	}
	for _, kind := range trailerTypePriority {
		for _, v := range youtube {
			if strings.EqualFold(v.Type, kind) {
				key := v.Key
				return &key
			}
		}
	}
	key := youtube[0].Key
	return &key
}
