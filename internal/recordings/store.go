// SPDX-License-Identifier: EPL-2.0

package recordings

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ik5/adpcmpbx/formats/wav"
)

// maxNameAttempts bounds the suffixes tried when names collide within the
// same second.
const maxNameAttempts = 100

// Store keeps uploaded recordings in a single directory.
type Store struct {
	dir string
}

// Upload is a recording being written. Both files are open for writing.
type Upload struct {
	Name     string
	PCMName  string
	Original *os.File
	PCM      *os.File
}

// Recording describes a stored upload and its decoded counterpart.
type Recording struct {
	Name            string    `json:"name"`
	PCMName         string    `json:"pcmName,omitempty"`
	OriginalSize    int64     `json:"originalSize"`
	PCMSize         int64     `json:"pcmSize"`
	Timestamp       time.Time `json:"timestamp"`
	DurationSeconds float64   `json:"durationSeconds"`
}

// NewStore returns a Store over dir, creating it when missing.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return &Store{dir: dir}, nil
}

// Dir returns the directory the store writes to.
func (s *Store) Dir() string { return s.dir }

// Create opens a new pair of files for an upload called name. The stored
// names are prefixed with the UTC time of now.
func (s *Store) Create(name string, now time.Time) (*Upload, error) {
	clean, err := SanitizeName(name)
	if err != nil {
		return nil, err
	}

	stem := clean
	if isWAV(stem) {
		stem = stem[:len(stem)-len(wavExt)]
	}
	if stem == "" {
		stem = "recording"
	}

	prefix := now.UTC().Format(timestampLayout) + "_" + stem

	for attempt := range maxNameAttempts {
		base := prefix
		if attempt > 0 {
			base += "-" + strconv.Itoa(attempt)
		}

		u, err := s.create(base)
		if errors.Is(err, fs.ErrExist) {
			continue
		}

		return u, err
	}

	return nil, fmt.Errorf("%s: %w", prefix, fs.ErrExist)
}

func (s *Store) create(base string) (*Upload, error) {
	u := &Upload{
		Name:    base + wavExt,
		PCMName: base + pcmSuffix,
	}

	var err error

	u.Original, err = os.OpenFile(s.path(u.Name), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	u.PCM, err = os.OpenFile(s.path(u.PCMName), os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		u.Original.Close()
		return nil, errors.Join(fmt.Errorf("%w", err), os.Remove(s.path(u.Name)))
	}

	return u, nil
}

// Close closes both files of u.
func (u *Upload) Close() error {
	return errors.Join(u.Original.Close(), u.PCM.Close())
}

// Remove closes and deletes both files of u.
func (s *Store) Remove(u *Upload) error {
	u.Close()

	var errs []error
	for _, name := range []string{u.Name, u.PCMName} {
		if err := os.Remove(s.path(name)); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Open opens a stored file for reading.
func (s *Store) Open(name string) (*os.File, error) {
	if !validStoredName(name) {
		return nil, ErrInvalidName
	}

	f, err := os.Open(s.path(name))
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	return f, nil
}

// List returns every stored upload, newest first.
func (s *Store) List() ([]Recording, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	present := make(map[string]bool, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			present[e.Name()] = true
		}
	}

	recs := make([]Recording, 0, len(entries)/2)

	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !isWAV(name) || isDecodedCopy(name, present) {
			continue
		}

		info, err := e.Info()
		if err != nil {
			continue
		}

		rec := Recording{
			Name:         name,
			OriginalSize: info.Size(),
			Timestamp:    timestampOf(name, info.ModTime()),
		}
		s.describePCM(&rec)

		recs = append(recs, rec)
	}

	slices.SortFunc(recs, func(a, b Recording) int {
		if c := b.Timestamp.Compare(a.Timestamp); c != 0 {
			return c
		}
		return cmp.Compare(b.Name, a.Name)
	})

	return recs, nil
}

// Latest returns at most n of the newest uploads.
func (s *Store) Latest(n int) ([]Recording, error) {
	recs, err := s.List()
	if err != nil {
		return nil, err
	}

	if n >= 0 && n < len(recs) {
		recs = recs[:n]
	}

	return recs, nil
}

// isDecodedCopy reports whether name is the PCM file of another stored
// upload. Uploads whose own name ends in _pcm.wav are originals as long as
// no file they could have been decoded from exists.
func isDecodedCopy(name string, present map[string]bool) bool {
	stem, ok := strings.CutSuffix(name, pcmSuffix)
	return ok && present[stem+wavExt]
}

func (s *Store) describePCM(rec *Recording) {
	pcmName := strings.TrimSuffix(rec.Name, filepath.Ext(rec.Name)) + pcmSuffix

	f, err := os.Open(s.path(pcmName))
	if err != nil {
		return
	}
	defer f.Close()

	rec.PCMName = pcmName
	if st, err := f.Stat(); err == nil {
		rec.PCMSize = st.Size()
	}

	if info, err := wav.Probe(f); err == nil {
		rec.DurationSeconds = info.Duration.Seconds()
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// timestampOf reads the time prefix of a stored name, falling back to the
// file modification time for files placed there by hand.
func timestampOf(name string, modTime time.Time) time.Time {
	if len(name) >= len(timestampLayout) {
		if t, err := time.ParseInLocation(timestampLayout, name[:len(timestampLayout)], time.UTC); err == nil {
			return t
		}
	}

	return modTime.UTC()
}
