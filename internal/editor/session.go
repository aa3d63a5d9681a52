package editor

import (
	"os"

	"editpath/internal/backup"
	"editpath/internal/envstore"
	"editpath/internal/errors"
	"editpath/internal/logging"

	"github.com/rs/zerolog"
)

// Session owns the list being edited and the store it was loaded from.
// The store is read once by Open and written by Commit.
type Session struct {
	List PathList

	sep      rune
	variable string
	store    envstore.Store
	backups  *backup.Store
	loaded   string
	log      zerolog.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithSeparator overrides the platform list separator.
func WithSeparator(sep rune) Option {
	return func(s *Session) { s.sep = sep }
}

// WithBackups saves the previous value to b before each changing commit.
func WithBackups(b *backup.Store) Option {
	return func(s *Session) { s.backups = b }
}

// WithVariable names the variable in log lines and snapshots.
func WithVariable(name string) Option {
	return func(s *Session) { s.variable = name }
}

// Open reads the store and loads its value into a new Session.
func Open(store envstore.Store, opts ...Option) (*Session, error) {
	s := &Session{
		sep:      os.PathListSeparator,
		variable: "PATH",
		store:    store,
		log:      logging.GetLogger("editor"),
	}
	for _, opt := range opts {
		opt(s)
	}

	raw, err := store.Get()
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrapf(err, errors.ErrStoreRead, "cannot read %s", store.Name())
		}
		return nil, err
	}

	s.loaded = raw
	s.List = Load(raw, s.sep)
	s.log.Debug().
		Str("store", store.Name()).
		Int("entries", len(s.List)).
		Msg("Loaded path list")
	return s, nil
}

// Separator returns the list separator in use.
func (s *Session) Separator() rune { return s.sep }

// Variable is the name of the environment variable being edited.
func (s *Session) Variable() string { return s.variable }

// StoreName describes where Commit writes.
func (s *Session) StoreName() string { return s.store.Name() }

// Value is the serialized list.
func (s *Session) Value() string { return s.List.Serialize(s.sep) }

// Original is the value read by Open, or written by the last Commit.
func (s *Session) Original() string { return s.loaded }

// Dirty reports whether Commit would change the stored value.
func (s *Session) Dirty() bool { return s.Value() != s.loaded }

// Replace discards the current list and loads raw in its place.
func (s *Session) Replace(raw string) {
	s.List = Load(raw, s.sep)
}

// Commit writes the serialized list to the store. Writing the same value
// twice has the same effect as writing it once.
func (s *Session) Commit() error {
	done := logging.LogOperationStart(s.log, "commit")
	defer done()

	value := s.Value()
	if s.backups != nil && value != s.loaded {
		if _, err := s.backups.Save(backup.Snapshot{
			Variable: s.variable,
			Store:    s.store.Name(),
			Value:    s.loaded,
			Reason:   "before commit",
		}); err != nil {
			return errors.Wrap(err, errors.ErrBackup, "refusing to commit without a backup")
		}
	}

	if err := s.store.Set(value); err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrapf(err, errors.ErrStoreWrite, "cannot write %s", s.store.Name())
		}
		s.log.Error().Err(err).Str("store", s.store.Name()).Msg("Commit failed")
		return err
	}

	s.log.Info().
		Str("store", s.store.Name()).
		Int("entries", len(s.List)).
		Bool("changed", value != s.loaded).
		Msg("Committed path list")
	s.loaded = value
	return nil
}
