package library

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/myply/myply-go/host/adaptor"
	logpkg "github.com/myply/myply-go/host/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func newTestRepository(t *testing.T) *Repository {
	t.Helper()
	base := slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
	gormLogger := logpkg.NewGormLogger(base, logger.Silent)

	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "library.db"), gormLogger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func samplePlaylist() *adaptor.Playlist {
	return &adaptor.Playlist{
		Name: "My Mix",
		Tracks: []adaptor.Track{
			{Name: "First", Artist: "X", ChannelIDs: map[string]string{"bugs": "1"}},
			{Name: "Second", Artist: "Y", ChannelIDs: map[string]string{}},
			{Name: "Third", Artist: "Z", ChannelIDs: map[string]string{"bugs": "3", "melon": "m3"}},
		},
		PreGenerated: map[string]string{"bugs": "https://example/share/xyz789"},
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	id, err := repo.Save(ctx, "bugs", samplePlaylist())
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)

	entry, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, entry.ID)
	assert.Equal(t, "bugs", entry.Source)
	assert.False(t, entry.CreatedAt.IsZero())
	assert.Equal(t, samplePlaylist(), entry.Playlist)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestRepositorySaveNilMaps(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, "bugs", &adaptor.Playlist{
		Name:   "bare",
		Tracks: []adaptor.Track{{Name: "a", Artist: "b"}},
	})
	require.NoError(t, err)

	entry, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.NotNil(t, entry.Playlist.PreGenerated)
	require.Len(t, entry.Playlist.Tracks, 1)
	assert.NotNil(t, entry.Playlist.Tracks[0].ChannelIDs)
	assert.Empty(t, entry.Playlist.Tracks[0].ChannelIDs)
}

func TestRepositoryPreservesOrder(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	playlist := &adaptor.Playlist{Name: "long"}
	for i := 0; i < 30; i++ {
		playlist.Tracks = append(playlist.Tracks, adaptor.Track{Name: string(rune('A' + i)), ChannelIDs: map[string]string{}})
	}

	id, err := repo.Save(ctx, "bugs", playlist)
	require.NoError(t, err)

	entry, err := repo.Get(ctx, id)
	require.NoError(t, err)
	require.Len(t, entry.Playlist.Tracks, 30)
	for i, track := range entry.Playlist.Tracks {
		assert.Equal(t, string(rune('A'+i)), track.Name)
	}
}

func TestRepositoryNotFound(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	_, err := repo.Get(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = repo.Get(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.Delete(ctx, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)

	err = repo.UpdateChannelIDs(ctx, uuid.NewString(), samplePlaylist())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRepositoryUpdateChannelIDs(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	id, err := repo.Save(ctx, "bugs", samplePlaylist())
	require.NoError(t, err)
	before, err := repo.Get(ctx, id)
	require.NoError(t, err)

	updated := samplePlaylist()
	updated.Tracks[1].ChannelIDs["bugs"] = "2"
	updated.Tracks[0].ChannelIDs["spotify"] = "s1"
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, repo.UpdateChannelIDs(ctx, id, updated))

	entry, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"bugs": "1", "spotify": "s1"}, entry.Playlist.Tracks[0].ChannelIDs)
	assert.Equal(t, map[string]string{"bugs": "2"}, entry.Playlist.Tracks[1].ChannelIDs)
	assert.Equal(t, "Second", entry.Playlist.Tracks[1].Name)
	assert.True(t, entry.UpdatedAt.After(before.UpdatedAt))

	short := samplePlaylist()
	short.Tracks = short.Tracks[:1]
	assert.ErrorIs(t, repo.UpdateChannelIDs(ctx, id, short), ErrTrackCountMismatch)
}

func TestRepositoryListAndDelete(t *testing.T) {
	repo := newTestRepository(t)
	ctx := context.Background()

	first, err := repo.Save(ctx, "bugs", samplePlaylist())
	require.NoError(t, err)
	second, err := repo.Save(ctx, "bugs", &adaptor.Playlist{Name: "Other"})
	require.NoError(t, err)

	entries, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	ids := []string{entries[0].ID, entries[1].ID}
	assert.ElementsMatch(t, []string{first, second}, ids)

	require.NoError(t, repo.Delete(ctx, first))
	_, err = repo.Get(ctx, first)
	assert.ErrorIs(t, err, ErrNotFound)

	entries, err = repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, second, entries[0].ID)
	assert.Empty(t, entries[0].Playlist.Tracks)
}

func TestConfigurePool(t *testing.T) {
	repo := newTestRepository(t)
	assert.NoError(t, repo.ConfigurePool(2, 1, time.Minute))

	var empty *Repository
	assert.Error(t, empty.ConfigurePool(1, 1, time.Minute))
}

func TestNewSQLiteRepositoryRequiresDSN(t *testing.T) {
	_, err := NewSQLiteRepository("  ", nil)
	assert.Error(t, err)
}

func TestNewSQLiteRepositoryClosesOnSetupError(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("inspects /proc/self/fd")
	}
	dsn := filepath.Join(t.TempDir(), "library.db")
	require.NoError(t, os.WriteFile(dsn, bytes.Repeat([]byte("not a database "), 64), 0o600))

	_, err := NewSQLiteRepository(dsn, nil)
	require.Error(t, err)

	entries, err := os.ReadDir("/proc/self/fd")
	require.NoError(t, err)
	for _, entry := range entries {
		target, err := os.Readlink(filepath.Join("/proc/self/fd", entry.Name()))
		if err != nil {
			continue
		}
		assert.NotEqual(t, dsn, target, "library file left open")
	}
}
