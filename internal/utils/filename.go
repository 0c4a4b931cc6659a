package utils

import (
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"
)

// allowedImageExt lists the image extensions accepted for complaint photos.
var allowedImageExt = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true}

// AllowedImage reports whether filename has an allowed image extension.
// The check is case-insensitive and requires a dot.
func AllowedImage(filename string) bool {
	i := strings.LastIndex(filename, ".")
	if i < 0 {
		return false
	}
	return allowedImageExt[strings.ToLower(filename[i+1:])]
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// SecureFilename reduces a client-supplied file name to a safe base name.
// Accented letters are folded to ASCII (NFKD, marks dropped), path
// components are dropped, whitespace becomes underscores and anything
// outside [A-Za-z0-9_.-] is removed.  Leading dots and underscores are
// stripped so the result can never be hidden or relative.  The result may
// be empty.
func SecureFilename(name string) string {
	name = norm.NFKD.String(name)
	name = strings.ReplaceAll(name, "\\", "/")
	name = filepath.Base("/" + name)
	name = strings.Join(strings.Fields(name), "_")
	name = unsafeFilenameChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")
	if name == "" || name == "/" {
		return ""
	}
	return name
}

// ImageBaseName returns the stored base name for an uploaded image, or ""
// when filename does not carry an allowed extension.  The extension is taken
// from filename as given; when nothing of the stem survives SecureFilename,
// fallback is used as the stem instead.
func ImageBaseName(filename, fallback string) string {
	if !AllowedImage(filename) {
		return ""
	}
	i := strings.LastIndex(filename, ".")
	ext := filename[i+1:]
	stem := SecureFilename(filename[:i])
	if stem == "" {
		stem = fallback
	}
	return stem + "." + ext
}

// TimestampedName prefixes name with t formatted as YYYYMMDD_HHMMSS_.
func TimestampedName(t time.Time, name string) string {
	return t.Format("20060102_150405_") + name
}
