package filename

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Result holds the title and optional year recovered from a file name.
type Result struct {
	Title string
	Year  *int
}

var (
	bracketYearPattern = regexp.MustCompile(`[(\[]((?:19|20)\d{2})[)\]]`)
	bareYearPattern    = regexp.MustCompile(`[.\s]((?:19|20)\d{2})[.\s]`)
	techInfoPattern    = regexp.MustCompile(`(?i)^(?:720p|1080p|2160p|4K|BluRay|BrRip|BDRip|WEB|HDTV|DVDRip|x264|x265|H\.?264)`)
	separatorPattern   = regexp.MustCompile(`[._]`)
	whitespacePattern  = regexp.MustCompile(`\s+`)
	trailingDashes     = regexp.MustCompile(`[-–—]+$`)
)

// Parse extracts the title and year from a file name such as
// "Jurassic.Park.1993.720p.BrRip.264.YIFY.mp4".
func Parse(fileName string) Result {
	name := stripExtension(norm.NFC.String(fileName))

	if loc := bracketYearPattern.FindStringSubmatchIndex(name); loc != nil {
		return newResult(name, name[:loc[0]], name[loc[2]:loc[3]])
	}

	// Candidates may share a separator ("2049.2017."), so each search resumes
	// right after the previous year's digits.
	bestStart, bestYear := -1, ""
	for offset := 0; offset < len(name); {
		loc := bareYearPattern.FindStringSubmatchIndex(name[offset:])
		if loc == nil {
			break
		}
		start, yearStart, yearEnd, end := offset+loc[0], offset+loc[2], offset+loc[3], offset+loc[1]
		techInfo := techInfoPattern.MatchString(name[end:])
		if bestStart < 0 || techInfo {
			bestStart, bestYear = start, name[yearStart:yearEnd]
		}
		if techInfo {
			break
		}
		offset = yearEnd
	}
	if bestStart >= 0 {
		return newResult(name, name[:bestStart], bestYear)
	}

	return Result{Title: titleOrFallback(cleanTitle(name), fileName)}
}

// ExtractYear returns the release year found in fileName, if any.
func ExtractYear(fileName string) *int {
	return Parse(fileName).Year
}

// CleanTitle returns the title portion of fileName.
func CleanTitle(fileName string) string {
	return Parse(fileName).Title
}

func newResult(name, titlePart, yearText string) Result {
	year, err := strconv.Atoi(yearText)
	if err != nil {
		return Result{Title: titleOrFallback(cleanTitle(name), name)}
	}
	title := cleanTitle(titlePart)
	if title == "" {
		title = titleOrFallback(cleanTitle(name), name)
	}
	return Result{Title: title, Year: &year}
}

// stripExtension removes the last dot segment when it looks like an
// extension: non-empty and free of whitespace.
func stripExtension(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return name
	}
	if strings.IndexFunc(name[idx+1:], unicode.IsSpace) >= 0 {
		return name
	}
	return name[:idx]
}

func cleanTitle(value string) string {
	value = separatorPattern.ReplaceAllString(value, " ")
	value = whitespacePattern.ReplaceAllString(value, " ")
	value = strings.TrimSpace(value)
	value = trailingDashes.ReplaceAllString(value, "")
	return strings.TrimSpace(value)
}

func titleOrFallback(title, fallback string) string {
	if title != "" {
		return title
	}
	return strings.TrimSpace(fallback)
}
