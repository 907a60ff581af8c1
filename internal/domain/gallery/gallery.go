package gallery

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// URLPrefix is the public path every listed image is served under.
const URLPrefix = "/img/galeria/"

// Extension represents an allowed image file extension (lower case, no dot)
type Extension string

const (
	ExtJPG  Extension = "jpg"
	ExtJPEG Extension = "jpeg"
	ExtPNG  Extension = "png"
	ExtWEBP Extension = "webp"
)

// AllowedExtensions returns the allow-set in a fixed order.
func AllowedExtensions() []Extension {
	return []Extension{ExtJPG, ExtJPEG, ExtPNG, ExtWEBP}
}

var allowed = func() map[Extension]struct{} {
	m := make(map[Extension]struct{})
	for _, e := range AllowedExtensions() {
		m[e] = struct{}{}
	}
	return m
}()

// ImageFile is a directory entry that passed the extension filter.
type ImageFile struct {
	Name      string
	Extension Extension
}

// NewImageFile returns the image file for name, or false when name is not an image.
// A name that is only an extension (".png") has no extension, like a dot-file.
func NewImageFile(name string) (ImageFile, bool) {
	ext := filepath.Ext(name)
	if ext == "" || ext == name {
		return ImageFile{}, false
	}
	e := Extension(strings.ToLower(strings.TrimPrefix(ext, ".")))
	if _, ok := allowed[e]; !ok {
		return ImageFile{}, false
	}
	return ImageFile{Name: name, Extension: e}, true
}

// IsImage reports whether name carries an allowed extension (case-insensitive).
func IsImage(name string) bool {
	_, ok := NewImageFile(name)
	return ok
}

// URL returns the public URL of the image with its name percent-encoded.
func (f ImageFile) URL() string {
	return URLPrefix + url.PathEscape(f.Name)
}

// Label derives a human readable caption from an image URL or file name:
// "nail-art_design.png" -> "Nail Art Design". Every run of letters, digits
// and underscores starts a word, so "o'brien" becomes "O'Brien".
func Label(imgPath string) string {
	name := path.Base(imgPath)
	if unescaped, err := url.PathUnescape(name); err == nil {
		name = unescaped
	}
	if ext := path.Ext(name); ext != "" && ext != name {
		name = strings.TrimSuffix(name, ext)
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	return capitalizeWords(name)
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// capitalizeWords upper-cases the first rune of each word and leaves the
// rest untouched.
func capitalizeWords(s string) string {
	upper := cases.Upper(language.Und)
	var b strings.Builder
	b.Grow(len(s))
	inWord := false
	for _, r := range s {
		word := isWordRune(r)
		if word && !inWord {
			b.WriteString(upper.String(string(r)))
		} else {
			b.WriteRune(r)
		}
		inWord = word
	}
	return b.String()
}

// Page is one bounded, ordered subset of the gallery.
type Page struct {
	Images      []string `json:"images"`
	CurrentPage int      `json:"currentPage"`
	TotalPages  int      `json:"totalPages"`
	TotalImages int      `json:"totalImages"`
}

// Paginate slices urls into the requested page; page and perPage below 1 are
// treated as 1. A page past the end yields an empty, non-nil slice.
func Paginate(urls []string, page, perPage int) Page {
	page, perPage = max(page, 1), max(perPage, 1)
	total := len(urls)
	start := total
	if page-1 <= total/perPage {
		start = min((page-1)*perPage, total)
	}
	end := start + perPage
	if end > total || end < start {
		end = total
	}

	images := make([]string, end-start)
	copy(images, urls[start:end])

	return Page{
		Images:      images,
		CurrentPage: page,
		TotalPages:  TotalPages(total, perPage),
		TotalImages: total,
	}
}

// TotalPages is ceil(total / perPage).
func TotalPages(total, perPage int) int {
	if perPage <= 0 {
		return 0
	}
	n := total / perPage
	if total%perPage != 0 {
		n++
	}
	return n
}

// ErrorKind classifies listing failures.
type ErrorKind string

const (
	KindDirectoryNotFound ErrorKind = "DIRECTORY_NOT_FOUND"
	KindReadError         ErrorKind = "READ_ERROR"
	KindNoImagesFound     ErrorKind = "NO_IMAGES_FOUND"
	KindUnexpected        ErrorKind = "UNEXPECTED_ERROR"
)

// DomainError represents a domain-level error
type DomainError struct {
	Message string
	Kind    ErrorKind
}

func (e DomainError) Error() string {
	return fmt.Sprintf("domain error [%s]: %s", e.Kind, e.Message)
}

// Is matches any DomainError of the same kind.
func (e DomainError) Is(target error) bool {
	t, ok := target.(DomainError)
	return ok && t.Kind == e.Kind
}

var (
	ErrDirectoryNotFound = DomainError{Kind: KindDirectoryNotFound, Message: "gallery directory not found"}
	ErrNoImagesFound     = DomainError{Kind: KindNoImagesFound, Message: "no images found"}
)
