package metadata

import "strings"

const (
	// DefaultImageBaseURL is the TMDB image CDN root.
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultPosterSize   = "w500"
	DefaultBackdropSize = "w1280"

	youtubeWatchURL = "https://www.youtube.com/watch?v="
)

// Images builds artwork URLs from stored TMDB image paths.
type Images struct {
	baseURL string
}

// NewImages returns an Images rooted at baseURL, or the TMDB CDN when empty.
func NewImages(baseURL string) Images {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultImageBaseURL
	}
	return Images{baseURL: baseURL}
}

// PosterURL returns the absolute poster URL for ref at size (w92 to original).
func (i Images) PosterURL(ref, size string) string {
	return i.build(ref, size, DefaultPosterSize)
}

// BackdropURL returns the absolute backdrop URL for ref at size.
func (i Images) BackdropURL(ref, size string) string {
	return i.build(ref, size, DefaultBackdropSize)
}

func (i Images) build(ref, size, fallback string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if size == "" {
		size = fallback
	}
	if !strings.HasPrefix(ref, "/") {
		ref = "/" + ref
	}
	base := i.baseURL
	if base == "" {
		base = DefaultImageBaseURL
	}
	return base + "/" + size + ref
}

// PosterURL builds a poster URL on the default TMDB CDN.
func PosterURL(ref, size string) string {
	return NewImages("").PosterURL(ref, size)
}

// BackdropURL builds a backdrop URL on the default TMDB CDN.
func BackdropURL(ref, size string) string {
	return NewImages("").BackdropURL(ref, size)
}

// TrailerURL returns the YouTube watch URL for a stored trailer key.
func TrailerURL(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	return youtubeWatchURL + key
}
