// Package backup keeps JSON snapshots of previous PATH values so a bad
// commit can be undone with --restore.
package backup

import (
	"encoding/json"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"editpath/internal/errors"
	"editpath/internal/logging"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

const fileSuffix = ".json"

// Snapshot is one saved value.
type Snapshot struct {
	Variable string    `json:"variable"`
	Store    string    `json:"store"`
	Value    string    `json:"value"`
	Reason   string    `json:"reason"`
	Created  time.Time `json:"created"`
}

// Info names a snapshot on disk.
type Info struct {
	Name string
	Snapshot
}

// Store manages snapshots in a single directory.
type Store struct {
	fs   afero.Fs
	dir  string
	keep int
	now  func() time.Time
	log  zerolog.Logger
}

// DefaultDir is where snapshots go when no directory is configured.
func DefaultDir() string {
	return filepath.Join(xdg.StateHome, "editpath", "backups")
}

// New creates a Store in dir keeping at most keep snapshots (0 keeps all).
func New(fs afero.Fs, dir string, keep int) *Store {
	if dir == "" {
		dir = DefaultDir()
	}
	return &Store{
		fs:   fs,
		dir:  dir,
		keep: keep,
		now:  time.Now,
		log:  logging.GetLogger("backup"),
	}
}

// Dir returns the snapshot directory.
func (s *Store) Dir() string { return s.dir }

// Save writes snap and prunes old snapshots. It returns the snapshot name.
func (s *Store) Save(snap Snapshot) (string, error) {
	if snap.Created.IsZero() {
		snap.Created = s.now()
	}
	name := snap.Created.UTC().Format("20060102T150405.000000000") + fileSuffix

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, errors.ErrBackup, "cannot encode snapshot")
	}
	if err := s.fs.MkdirAll(s.dir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot create %s", s.dir).WithDetail("dir", s.dir)
	}
	if err := afero.WriteFile(s.fs, filepath.Join(s.dir, name), data, 0600); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackup, "cannot write snapshot %s", name).WithDetail("dir", s.dir)
	}

	s.log.Info().Str("name", name).Str("reason", snap.Reason).Msg("Snapshot saved")
	s.prune()
	return name, nil
}

// List returns snapshots newest first. Unreadable files are skipped.
func (s *Store) List() ([]Info, error) {
	names, err := s.names()
	if err != nil {
		return nil, err
	}

	infos := make([]Info, 0, len(names))
	for i := len(names) - 1; i >= 0; i-- {
		snap, err := s.Load(names[i])
		if err != nil {
			s.log.Warn().Err(err).Str("name", names[i]).Msg("Skipping unreadable snapshot")
			continue
		}
		infos = append(infos, Info{Name: names[i], Snapshot: snap})
	}
	return infos, nil
}

// Load reads a snapshot by name.
func (s *Store) Load(name string) (Snapshot, error) {
	if name == "" || filepath.Base(name) != name {
		return Snapshot{}, errors.Newf(errors.ErrInvalidInput, "invalid snapshot name %q", name)
	}

	data, err := afero.ReadFile(s.fs, filepath.Join(s.dir, name))
	if err != nil {
		return Snapshot{}, errors.Wrapf(err, errors.ErrNotFound, "snapshot %q not found", name).WithDetail("dir", s.dir)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return Snapshot{}, errors.Wrapf(err, errors.ErrBackup, "snapshot %q is corrupt", name)
	}
	return snap, nil
}

// names returns snapshot file names oldest first.
func (s *Store) names() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		if exists, _ := afero.DirExists(s.fs, s.dir); !exists {
			return nil, nil
		}
		return nil, errors.Wrapf(err, errors.ErrBackup, "cannot list %s", s.dir)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), fileSuffix) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (s *Store) prune() {
	if s.keep <= 0 {
		return
	}
	names, err := s.names()
	if err != nil || len(names) <= s.keep {
		return
	}
	for _, name := range names[:len(names)-s.keep] {
		if err := s.fs.Remove(filepath.Join(s.dir, name)); err != nil {
			s.log.Warn().Err(err).Str("name", name).Msg("Failed to prune snapshot")
		}
	}
}
