// SPDX-License-Identifier: EPL-2.0

package recordings

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

const (
	wavExt    = ".wav"
	pcmSuffix = "_pcm" + wavExt

	// timestampLayout prefixes every stored file name.
	timestampLayout = "20060102_150405"
)

var (
	unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_.-]`)
	storedName  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*\.wav$`)
)

// SanitizeName reduces a client supplied file name to ASCII letters, digits,
// dots, dashes and underscores. Accents are folded, path separators and
// whitespace become underscores, and leading or trailing dots and
// underscores are dropped.
func SanitizeName(name string) (string, error) {
	name = norm.NFKD.String(name)
	name = strings.Map(func(r rune) rune {
		switch {
		case r > unicode.MaxASCII:
			return -1
		case r == '/' || r == '\\':
			return ' '
		}
		return r
	}, name)

	name = strings.Join(strings.Fields(name), "_")
	name = unsafeChars.ReplaceAllString(name, "")
	name = strings.Trim(name, "._")

	if name == "" {
		return "", ErrInvalidName
	}

	return name, nil
}

// isWAV reports whether name has a .wav extension in any case.
func isWAV(name string) bool {
	return strings.EqualFold(filepath.Ext(name), wavExt)
}

// validStoredName reports whether name can refer to a file inside the store.
func validStoredName(name string) bool {
	return name == filepath.Base(name) && storedName.MatchString(name)
}
