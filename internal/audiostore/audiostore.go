// Package audiostore owns the audio assets behind the catalog's audio
// references. The catalog never sees audio bytes; it stores the opaque
// reference this package hands out.
package audiostore

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/franz/soundbot/internal/util"
)

// Store moves validated audio files into a permanent directory and deletes
// them again. Built on afero so tests run against an in-memory filesystem.
type Store struct {
	fs  afero.Fs
	dir string
}

// New returns a store over the real filesystem rooted at dir
func New(dir string) *Store {
	return NewWithFs(afero.NewOsFs(), dir)
}

// NewWithFs returns a store over the given filesystem rooted at dir
func NewWithFs(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Init ensures the audio directory exists
func (s *Store) Init() error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create audio dir %s: %w", s.dir, err)
	}
	return nil
}

// Dir returns the audio directory path
func (s *Store) Dir() string {
	return s.dir
}

// Ingest validates tmpPath as MPEG audio and copies it into permanent
// storage under a fresh name. Returns the opaque reference for the catalog
// and the embedded title tag, if any, as a naming suggestion.
func (s *Store) Ingest(tmpPath string) (ref string, title string, err error) {
	f, err := s.fs.Open(tmpPath)
	if err != nil {
		return "", "", fmt.Errorf("failed to open %s: %w", tmpPath, err)
	}
	defer f.Close()

	title, err = sniffMPEG(f)
	if err != nil {
		return "", "", fmt.Errorf("%s: %w", tmpPath, err)
	}

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return "", "", fmt.Errorf("failed to rewind %s: %w", tmpPath, err)
	}

	if err := s.Init(); err != nil {
		return "", "", err
	}

	ref = uuid.NewString() + ".mp3"
	dest, err := s.fs.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", "", fmt.Errorf("failed to create asset %s: %w", ref, err)
	}

	if _, err := io.Copy(dest, f); err != nil {
		dest.Close()
		s.fs.Remove(filepath.Join(s.dir, ref))
		return "", "", fmt.Errorf("failed to copy asset %s: %w", ref, err)
	}
	if err := dest.Close(); err != nil {
		return "", "", fmt.Errorf("failed to close asset %s: %w", ref, err)
	}

	util.InfoLog("stored audio asset %s (from %s)", ref, tmpPath)
	return ref, title, nil
}

// Path returns the filesystem path behind a reference
func (s *Store) Path(ref string) (string, error) {
	if ref == "" || filepath.Base(ref) != ref {
		return "", fmt.Errorf("audio ref %q: %w", ref, util.ErrNotFound)
	}
	return filepath.Join(s.dir, ref), nil
}

// Exists reports whether the asset behind ref is present
func (s *Store) Exists(ref string) bool {
	path, err := s.Path(ref)
	if err != nil {
		return false
	}
	ok, err := afero.Exists(s.fs, path)
	return err == nil && ok
}

// DeleteAsset removes the asset behind ref. Satisfies catalog.AssetDeleter.
func (s *Store) DeleteAsset(ref string) error {
	path, err := s.Path(ref)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil {
		return fmt.Errorf("failed to delete asset %s: %w", ref, err)
	}

	util.InfoLog("deleted audio asset %s", ref)
	return nil
}

// List returns all asset references currently stored
func (s *Store) List() ([]string, error) {
	infos, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list audio dir %s: %w", s.dir, err)
	}

	var refs []string
	for _, info := range infos {
		if info.IsDir() {
			continue
		}
		refs = append(refs, info.Name())
	}
	return refs, nil
}

// sniffMPEG checks that the reader starts with an ID3 header or an MPEG
// frame sync and pulls the title tag when one is embedded. The store never
// decodes audio; this is a cheap format gate, not a codec check.
func sniffMPEG(f afero.File) (title string, err error) {
	header := make([]byte, 3)
	if _, err := io.ReadFull(f, header); err != nil {
		return "", fmt.Errorf("not MPEG audio: %w", util.ErrUnsupported)
	}

	isID3 := string(header) == "ID3"
	isFrameSync := header[0] == 0xFF && header[1]&0xE0 == 0xE0
	if !isID3 && !isFrameSync {
		return "", fmt.Errorf("not MPEG audio: %w", util.ErrUnsupported)
	}

	if isID3 {
		if _, err := f.Seek(0, io.SeekStart); err != nil {
			return "", err
		}
		meta, err := tag.ReadFrom(f)
		if err == nil {
			title = strings.TrimSpace(meta.Title())
		}
		// A broken tag block is not fatal; the frame gate already passed
	}

	return title, nil
}
