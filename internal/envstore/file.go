package envstore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"editpath/internal/errors"
	"editpath/internal/logging"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
)

// DefaultEnvironmentFile is the pam_env file holding machine-wide variables.
const DefaultEnvironmentFile = "/etc/environment"

// FileStore keeps NAME=value in a KEY=VALUE environment file such as
// /etc/environment. Only the assignment line for NAME is ever rewritten.
type FileStore struct {
	fs        afero.Fs
	path      string
	name      string
	lookupEnv func(string) (string, bool)
	log       zerolog.Logger
}

// NewFileStore creates a store for variable name inside the file at path.
func NewFileStore(fs afero.Fs, path, name string) *FileStore {
	return &FileStore{
		fs:        fs,
		path:      path,
		name:      name,
		lookupEnv: os.LookupEnv,
		log:       logging.GetLogger("envstore"),
	}
}

func (s *FileStore) Name() string {
	return fmt.Sprintf("%s in %s", s.name, s.path)
}

// Get returns the value assigned in the file. When the file or the assignment
// is missing, the process environment is used so the editor starts from the
// PATH the user actually has.
func (s *FileStore) Get() (string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil && !os.IsNotExist(err) {
		return "", errors.Wrapf(err, errors.ErrStoreRead, "cannot read %s", s.path)
	}

	if err == nil {
		lines := strings.Split(string(data), "\n")
		if idx := s.findAssignment(lines); idx >= 0 {
			value, _, _ := parseAssignment(lines[idx], s.name)
			return value, nil
		}
	}

	value, _ := s.lookupEnv(s.name)
	s.log.Info().
		Str("file", s.path).
		Str("variable", s.name).
		Msg("No assignment in environment file, starting from process environment")
	return value, nil
}

// Set rewrites the assignment line, appending one if there is none. The file
// is replaced through a temporary sibling so readers never see a partial write.
func (s *FileStore) Set(value string) error {
	perm := os.FileMode(0644)
	var lines []string

	data, err := afero.ReadFile(s.fs, s.path)
	switch {
	case err == nil:
		if info, statErr := s.fs.Stat(s.path); statErr == nil {
			perm = info.Mode().Perm()
		}
		content := strings.TrimSuffix(string(data), "\n")
		if content != "" {
			lines = strings.Split(content, "\n")
		}
	case os.IsNotExist(err):
	default:
		return errors.Wrapf(err, errors.ErrStoreWrite, "cannot read %s", s.path)
	}

	if idx := s.findAssignment(lines); idx >= 0 {
		_, quote, _ := parseAssignment(lines[idx], s.name)
		lines[idx] = formatAssignment(s.name, value, quote)
	} else {
		lines = append(lines, formatAssignment(s.name, value, '"'))
	}

	tmp := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".editpath.tmp")
	if err := afero.WriteFile(s.fs, tmp, []byte(strings.Join(lines, "\n")+"\n"), perm); err != nil {
		return s.writeError(err)
	}
	if err := s.fs.Rename(tmp, s.path); err != nil {
		_ = s.fs.Remove(tmp)
		return s.writeError(err)
	}

	s.log.Info().Str("file", s.path).Str("variable", s.name).Int("length", len(value)).Msg("Environment file updated")
	return nil
}

func (s *FileStore) writeError(err error) error {
	code := errors.ErrStoreWrite
	if os.IsPermission(err) {
		code = errors.ErrPermission
	}
	return errors.Wrapf(err, code, "cannot write %s", s.path).WithDetail("file", s.path)
}

// findAssignment returns the index of the last line assigning s.name, or -1.
func (s *FileStore) findAssignment(lines []string) int {
	idx := -1
	for i, line := range lines {
		if _, _, ok := parseAssignment(line, s.name); ok {
			idx = i
		}
	}
	return idx
}

// parseAssignment recognises NAME=value, export NAME=value and quoted values.
// quote is 0 for an unquoted value.
func parseAssignment(line, name string) (value string, quote byte, ok bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return "", 0, false
	}
	trimmed = strings.TrimPrefix(trimmed, "export ")

	key, rhs, found := strings.Cut(trimmed, "=")
	if !found || strings.TrimSpace(key) != name {
		return "", 0, false
	}

	if len(rhs) >= 2 && (rhs[0] == '"' || rhs[0] == '\'') && rhs[len(rhs)-1] == rhs[0] {
		return rhs[1 : len(rhs)-1], rhs[0], true
	}
	return rhs, 0, true
}

func formatAssignment(name, value string, quote byte) string {
	if quote == 0 {
		return name + "=" + value
	}
	q := string(quote)
	return name + "=" + q + value + q
}
