package toml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bnema/scantally/internal/domain"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepository(t *testing.T, sessionPath string) *Repository {
	t.Helper()

	config := viper.New()
	config.Set(SessionPathKey, sessionPath)

	repo, err := NewRepository(config)
	require.NoError(t, err)
	return repo
}

func TestRepositoryRoundTrip(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "session.toml"))

	session := domain.Session{
		ID: "6f1c7a2e-3d1b-4d8e-9a4c-0b6c1f2e3d4a",
		Live: []domain.CarryOverEntry{
			{Payload: "111", Category: "CODE128", Quantity: 2},
			{Payload: "222", Category: "QR", Quantity: 1},
		},
		CarryOver: domain.CarryOver{Entries: []domain.CarryOverEntry{
			{Payload: "333", Category: "EAN8", Quantity: 4},
		}},
		UpdatedAt: time.Date(2026, 2, 14, 11, 0, 0, 0, time.UTC),
	}

	require.NoError(t, repo.Save(context.Background(), session))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, session, got)
}

func TestRepositoryRoundTripKeepsPayloadBytes(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "session.toml"))

	payload := "]C1010950600013435210LOT\x1d17251231"
	require.NoError(t, repo.Save(context.Background(), domain.Session{
		ID:   "s-1",
		Live: []domain.CarryOverEntry{{Payload: payload, Category: "DATAMATRIX", Quantity: 1}},
	}))

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Live, 1)
	assert.Equal(t, payload, got.Live[0].Payload)
}

func TestRepositoryLoadMissingFileReturnsNotFound(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "missing", "session.toml"))

	_, err := repo.Load(context.Background())
	require.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRepositoryEmptySessionOmitsEntries(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repo := newTestRepository(t, sessionPath)

	require.NoError(t, repo.Save(context.Background(), domain.Session{ID: "s-1"}))

	data, err := os.ReadFile(sessionPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.NotContains(t, string(data), "[[live]]")
	assert.NotContains(t, string(data), "[[carry_over]]")

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("s-1"), got.ID)
	assert.Empty(t, got.Live)
	assert.True(t, got.CarryOver.Empty())
}

func TestRepositoryReadsHandWrittenFile(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte(strings.Join([]string{
		"version = 1",
		"id = \"s-1\"",
		"",
		"[[live]]",
		"payload = \"111\"",
		"category = \"CODE128\"",
		"quantity = 2",
		"",
	}, "\n")), 0o600))

	repo := newTestRepository(t, sessionPath)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []domain.CarryOverEntry{{Payload: "111", Category: "CODE128", Quantity: 2}}, got.Live)
	assert.True(t, got.UpdatedAt.IsZero())
}

func TestRepositorySaveCreatesDefaultPathAndEnforcesPermissions(t *testing.T) {
	homeDir := t.TempDir()
	t.Setenv("HOME", homeDir)

	repo, err := NewRepository(viper.New())
	require.NoError(t, err)

	require.NoError(t, repo.Save(context.Background(), domain.Session{ID: "s-1"}))

	sessionPath := filepath.Join(homeDir, ConfigDir, "session.toml")
	assert.Equal(t, sessionPath, repo.Path())

	info, err := os.Stat(sessionPath)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestRepositoryLoadMalformedTOMLReturnsError(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte("live = ["), 0o600))

	repo := newTestRepository(t, sessionPath)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "decode session file")
}

func TestRepositoryFutureSchemaVersionReturnsError(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	require.NoError(t, os.WriteFile(sessionPath, []byte("version = 999\n"), 0o600))

	repo := newTestRepository(t, sessionPath)

	_, err := repo.Load(context.Background())
	require.Error(t, err)
	assert.ErrorContains(t, err, "unsupported session schema version")
}

func TestRepositoryCanceledContextReturnsContextError(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "session.toml"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, domain.Session{ID: "s-1"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))

	_, err = repo.Load(ctx)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRepositoryConcurrentSavesAcrossInstancesLeaveValidFile(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repoA := newTestRepository(t, sessionPath)
	repoB := newTestRepository(t, sessionPath)

	const perRepoWrites = 50
	start := make(chan struct{})
	errCh := make(chan error, perRepoWrites*2)
	var wg sync.WaitGroup
	wg.Add(2)

	write := func(repo *Repository, prefix string) {
		defer wg.Done()
		<-start
		for i := 0; i < perRepoWrites; i++ {
			errCh <- repo.Save(context.Background(), domain.Session{
				ID:   domain.SessionID(prefix),
				Live: []domain.CarryOverEntry{{Payload: prefix + "-" + strconv.Itoa(i), Category: "QR", Quantity: i + 1}},
			})
		}
	}

	go write(repoA, "a")
	go write(repoB, "b")

	close(start)
	wg.Wait()
	close(errCh)

	for err := range errCh {
		require.NoError(t, err)
	}

	got, err := repoA.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Live, 1)
	assert.Equal(t, perRepoWrites, got.Live[0].Quantity)
}

func TestRepositoryUpdateStartsFromZeroSessionAndSkipsUnchanged(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repo := newTestRepository(t, sessionPath)

	err := repo.Update(context.Background(), func(session *domain.Session) (bool, error) {
		assert.Equal(t, domain.Session{}, *session)
		return false, nil
	})
	require.NoError(t, err)
	_, err = os.Stat(sessionPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	fnErr := errors.New("rejected")
	err = repo.Update(context.Background(), func(session *domain.Session) (bool, error) {
		session.ID = "s-1"
		return true, fnErr
	})
	require.ErrorIs(t, err, fnErr)
	_, err = os.Stat(sessionPath)
	assert.True(t, errors.Is(err, os.ErrNotExist))

	err = repo.Update(context.Background(), func(session *domain.Session) (bool, error) {
		session.ID = "s-1"
		session.Live = []domain.CarryOverEntry{{Payload: "A", Category: "QR", Quantity: 1}}
		return true, nil
	})
	require.NoError(t, err)

	got, err := repo.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.SessionID("s-1"), got.ID)
	assert.Equal(t, []domain.CarryOverEntry{{Payload: "A", Category: "QR", Quantity: 1}}, got.Live)
}

func TestRepositoryConcurrentUpdatesAcrossInstancesLoseNothing(t *testing.T) {
	t.Parallel()

	sessionPath := filepath.Join(t.TempDir(), "session.toml")
	repoA := newTestRepository(t, sessionPath)
	repoB := newTestRepository(t, sessionPath)

	const perRepoUpdates = 40
	var wg sync.WaitGroup
	increment := func(repo *Repository) {
		defer wg.Done()
		for i := 0; i < perRepoUpdates; i++ {
			err := repo.Update(context.Background(), func(session *domain.Session) (bool, error) {
				if len(session.Live) == 0 {
					session.Live = []domain.CarryOverEntry{{Payload: "A", Category: "QR"}}
				}
				session.Live[0].Quantity++
				return true, nil
			})
			assert.NoError(t, err)
		}
	}

	wg.Add(2)
	go increment(repoA)
	go increment(repoB)
	wg.Wait()

	got, err := repoB.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got.Live, 1)
	assert.Equal(t, 2*perRepoUpdates, got.Live[0].Quantity)
}

func TestRepositoryUpdateHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	repo := newTestRepository(t, filepath.Join(t.TempDir(), "session.toml"))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := repo.Update(ctx, func(*domain.Session) (bool, error) {
		called = true
		return true, nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}
