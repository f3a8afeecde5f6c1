package api

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"jukebox/internal/logging"
)

var videoContentTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mkv":  "video/x-matroska",
	".webm": "video/webm",
	".avi":  "video/x-msvideo",
	".mov":  "video/quicktime",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".mpeg": "video/mpeg",
	".mpg":  "video/mpeg",
}

// handleStream serves the video file for an entry. http.ServeContent answers
// Range requests with 206 Partial Content.
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	id, ok := s.movieID(w, r)
	if !ok {
		return
	}
	path, err := s.library.FilePath(r.Context(), id)
	if err != nil {
		s.logger.Error("stream lookup failed", logging.Int64("id", id), logging.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load movie")
		return
	}
	if path == "" {
		s.writeError(w, http.StatusNotFound, "Movie not found")
		return
	}

	file, err := os.Open(path)
	if err != nil {
		s.logger.Warn("video file missing from disk",
			logging.Int64("id", id),
			logging.String(logging.FieldPath, path),
			logging.Error(err),
		)
		s.writeError(w, http.StatusNotFound, "Video file not found")
		return
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil || info.IsDir() {
		s.writeError(w, http.StatusNotFound, "Video file not found")
		return
	}

	w.Header().Set("Content-Type", contentType(path))
	w.Header().Set("Accept-Ranges", "bytes")
	http.ServeContent(w, r, info.Name(), info.ModTime(), file)
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := videoContentTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "video/mp4"
}
