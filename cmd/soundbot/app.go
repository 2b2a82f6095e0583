package main

import (
	"fmt"
	"strconv"

	"github.com/franz/soundbot/internal/audiostore"
	"github.com/franz/soundbot/internal/catalog"
	"github.com/spf13/viper"
)

// openCatalog opens the catalog database configured via --db
func openCatalog() (*catalog.Store, error) {
	store, err := catalog.Open(viper.GetString("db"))
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	return store, nil
}

// openAssets returns the audio store configured via --audio-dir
func openAssets() *audiostore.Store {
	return audiostore.New(viper.GetString("audio_dir"))
}

// pageSize returns the configured page size, clamped to something sane
func pageSize() int64 {
	size := viper.GetInt64("page_size")
	if size <= 0 {
		size = 20
	}
	return size
}

// soundKey turns a CLI argument into a catalog lookup key. A purely
// numeric argument is treated as an id, anything else as a name.
func soundKey(arg string) catalog.Key {
	if id, err := strconv.ParseInt(arg, 10, 64); err == nil {
		return catalog.ByID(id)
	}
	return catalog.ByName(arg)
}

// mustFindSound resolves arg to a sound or returns a user-facing error
func mustFindSound(store *catalog.Store, arg string) (*catalog.Sound, error) {
	snd, err := store.FindSound(soundKey(arg))
	if err != nil {
		return nil, fmt.Errorf("failed to look up sound %q: %w", arg, err)
	}
	if snd == nil {
		return nil, fmt.Errorf("no sound matches %q", arg)
	}
	return snd, nil
}
