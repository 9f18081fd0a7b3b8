// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shadowtrack Contributors

package save

import (
	"os"
	"path/filepath"

	"github.com/gobwas/glob"
	"github.com/samber/oops"

	"github.com/shadowtrack/shadowtrack/internal/core"
)

// LoadFilter matches the file names offered when loading.
const LoadFilter = "*.{json,txt}"

var loadGlob = glob.MustCompile(LoadFilter, filepath.Separator)

// FilePicker chooses save and load paths. ok is false when the user
// cancelled the choice.
type FilePicker interface {
	PickSaveFile(defaultName string) (path string, ok bool, err error)
	PickLoadFile() (path string, ok bool, err error)
}

// SaveTo asks picker for a path and writes state there. A cancelled pick
// writes nothing and is not an error.
func SaveTo(picker FilePicker, state *core.GameState) (string, error) {
	path, ok, err := picker.PickSaveFile(DefaultFileName)
	if err != nil {
		return "", ioErr("").Wrapf(err, "choose save file")
	}
	if !ok {
		return "", nil
	}
	if err := WriteSave(path, state); err != nil {
		return "", err
	}
	return path, nil
}

// LoadFrom asks picker for a path and loads it.
func LoadFrom(picker FilePicker) (*core.GameState, string, error) {
	path, ok, err := picker.PickLoadFile()
	if err != nil {
		return nil, "", ioErr("").Wrapf(err, "choose load file")
	}
	if !ok {
		return nil, "", errNoFileSelected()
	}
	state, err := LoadSave(path)
	if err != nil {
		return nil, "", err
	}
	return state, path, nil
}

// PathPicker always picks the same path.
type PathPicker struct {
	Path string
}

// PickSaveFile returns the fixed path.
func (p PathPicker) PickSaveFile(string) (string, bool, error) {
	return p.Path, p.Path != "", nil
}

// PickLoadFile returns the fixed path.
func (p PathPicker) PickLoadFile() (string, bool, error) {
	return p.Path, p.Path != "", nil
}

// DirPicker picks inside a save directory without asking. Saves go to the
// default file name; loads take the most recently modified file matching
// LoadFilter.
type DirPicker struct {
	Dir string
}

// PickSaveFile returns Dir joined with defaultName.
func (p DirPicker) PickSaveFile(defaultName string) (string, bool, error) {
	if err := os.MkdirAll(p.dir(), 0o700); err != nil {
		return "", false, oops.With("dir", p.dir()).Wrapf(err, "create save directory")
	}
	return filepath.Join(p.dir(), defaultName), true, nil
}

// PickLoadFile returns the newest matching file, or ok=false when there is none.
func (p DirPicker) PickLoadFile() (string, bool, error) {
	entries, err := os.ReadDir(p.dir())
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, oops.With("dir", p.dir()).Wrapf(err, "list save directory")
	}

	var (
		newest  string
		newestT int64
	)
	for _, e := range entries {
		if e.IsDir() || !loadGlob.Match(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		if mt := info.ModTime().UnixNano(); newest == "" || mt > newestT {
			newest, newestT = e.Name(), mt
		}
	}
	if newest == "" {
		return "", false, nil
	}
	return filepath.Join(p.dir(), newest), true, nil
}

func (p DirPicker) dir() string {
	if p.Dir == "" {
		return "."
	}
	return p.Dir
}
