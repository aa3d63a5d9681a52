package editor

import (
	"fmt"
	"testing"
	"time"

	"editpath/internal/backup"
	"editpath/internal/envstore"
	"editpath/internal/errors"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_LoadsStoreValue(t *testing.T) {
	store := envstore.NewMemoryStore("memory", `C:\A;C:\B`)

	s, err := Open(store, WithSeparator(';'))
	require.NoError(t, err)

	assert.Equal(t, PathList{`C:\A`, `C:\B`}, s.List)
	assert.Equal(t, ';', s.Separator())
	assert.Equal(t, "memory", s.StoreName())
	assert.Equal(t, "PATH", s.Variable())
	assert.False(t, s.Dirty())
}

func TestOpen_ReadErrorIsCoded(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "")
	store.GetErr = fmt.Errorf("registry unavailable")

	_, err := Open(store)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreRead))
}

func TestCommit_WritesSerializedList(t *testing.T) {
	store := envstore.NewMemoryStore("memory", `C:\A;C:\B`)
	s, err := Open(store, WithSeparator(';'))
	require.NoError(t, err)

	s.List.MoveDown(0)
	s.List.Insert(`C:\C`)
	assert.True(t, s.Dirty())

	require.NoError(t, s.Commit())
	assert.Equal(t, `C:\B;C:\A;C:\C`, store.Value())
	assert.False(t, s.Dirty())
	assert.Equal(t, `C:\B;C:\A;C:\C`, s.Original())
}

func TestCommit_Idempotent(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "/a:/b")
	s, err := Open(store, WithSeparator(':'))
	require.NoError(t, err)

	require.NoError(t, s.Commit())
	first := store.Value()
	require.NoError(t, s.Commit())

	assert.Equal(t, first, store.Value())
	assert.Equal(t, "/a:/b", store.Value())
}

func TestCommit_WriteErrorSurfaced(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "/a")
	store.SetErr = fmt.Errorf("access denied")

	s, err := Open(store, WithSeparator(':'))
	require.NoError(t, err)
	s.List.Insert("/b")

	err = s.Commit()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrStoreWrite))
	assert.Contains(t, err.Error(), "access denied")
	assert.True(t, s.Dirty(), "a failed commit leaves the session dirty")
}

func TestCommit_PreservesCodedStoreErrors(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "/a")
	store.SetErr = errors.New(errors.ErrPermission, "not elevated")

	s, err := Open(store, WithSeparator(':'))
	require.NoError(t, err)

	err = s.Commit()
	assert.True(t, errors.IsErrorCode(err, errors.ErrPermission))
}

func TestCommit_BacksUpPreviousValue(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "/a:/b")
	backups := backup.New(afero.NewMemMapFs(), "/backups", 0)

	s, err := Open(store, WithSeparator(':'), WithBackups(backups), WithVariable("PATH"))
	require.NoError(t, err)

	require.NoError(t, s.Commit())
	infos, err := backups.List()
	require.NoError(t, err)
	assert.Empty(t, infos, "unchanged commits are not backed up")

	s.List.RemoveAt(0)
	require.NoError(t, s.Commit())

	infos, err = backups.List()
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "/a:/b", infos[0].Value)
	assert.Equal(t, "PATH", infos[0].Variable)
	assert.Equal(t, "memory", infos[0].Store)
	assert.WithinDuration(t, time.Now(), infos[0].Created, time.Minute)
	assert.Equal(t, "/b", store.Value())
}

func TestCommit_BackupFailureAbortsWrite(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "/a")
	backups := backup.New(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/backups", 0)

	s, err := Open(store, WithSeparator(':'), WithBackups(backups))
	require.NoError(t, err)
	s.List.Insert("/b")

	err = s.Commit()
	assert.True(t, errors.IsErrorCode(err, errors.ErrBackup))
	assert.Equal(t, "/a", store.Value())
	assert.Zero(t, store.Writes())
}

func TestReplace(t *testing.T) {
	store := envstore.NewMemoryStore("memory", "/a")
	s, err := Open(store, WithSeparator(':'))
	require.NoError(t, err)

	s.Replace("/x:/y")
	assert.Equal(t, PathList{"/x", "/y"}, s.List)
	assert.True(t, s.Dirty())
}
