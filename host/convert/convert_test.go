package convert

import (
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/myply/myply-go/host/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubTarget struct {
	name     string
	find     func(ctx context.Context, song adaptor.Song) (string, error)
	calls    atomic.Int32
	inFlight atomic.Int32
	peak     atomic.Int32
	mu       sync.Mutex
	asked    []adaptor.Song
}

func (s *stubTarget) Name() string { return s.name }

func (s *stubTarget) FindSongID(ctx context.Context, song adaptor.Song) (string, error) {
	s.calls.Add(1)
	current := s.inFlight.Add(1)
	defer s.inFlight.Add(-1)
	for {
		peak := s.peak.Load()
		if current <= peak || s.peak.CompareAndSwap(peak, current) {
			break
		}
	}
	s.mu.Lock()
	s.asked = append(s.asked, song)
	s.mu.Unlock()
	return s.find(ctx, song)
}

func (s *stubTarget) GetPlaylistContent(context.Context, string) (*adaptor.Playlist, error) {
	return nil, errors.New("not supported")
}

// GenerateURL joins the target ids like a real link generator would.
func (s *stubTarget) GenerateURL(_ context.Context, playlist *adaptor.Playlist) (string, error) {
	ids := make([]string, len(playlist.Tracks))
	for i, track := range playlist.Tracks {
		ids[i] = track.ChannelIDs[s.name]
	}
	return s.name + "://" + playlist.Name + "/" + strings.Join(ids, ","), nil
}

func (s *stubTarget) Determinator() []string {
	return []string{s.name}
}

func (s *stubTarget) Display() adaptor.Display {
	return adaptor.Display{Name: s.name}
}

func sourcePlaylist() *adaptor.Playlist {
	return &adaptor.Playlist{
		Name: "mix",
		Tracks: []adaptor.Track{
			{Name: "One", Artist: "A", ChannelIDs: map[string]string{"bugs": "1"}},
			{Name: "Two", Artist: "B", ChannelIDs: map[string]string{"bugs": "2", "melon": "m2"}},
			{Name: "Three", Artist: "C", ChannelIDs: map[string]string{"bugs": "3"}},
			{Name: "Four", Artist: "D"},
		},
		PreGenerated: map[string]string{"bugs": "https://example/share/1"},
	}
}

func TestConvert(t *testing.T) {
	target := &stubTarget{name: "melon", find: func(_ context.Context, song adaptor.Song) (string, error) {
		if song.Name == "Three" {
			return "", adaptor.NewNoMatchError("melon", "findSongId", song.Artist+" "+song.Name)
		}
		return "m-" + strings.ToLower(song.Name), nil
	}}
	source := sourcePlaylist()

	result, err := NewService(Options{Concurrency: 2}, nil).Convert(context.Background(), source, target)
	require.NoError(t, err)

	assert.Equal(t, "melon", result.Target)
	assert.Equal(t, "melon://mix/m-one,m2,m-four", result.URL)
	assert.Equal(t, 2, result.Resolved)
	assert.Equal(t, []OmittedTrack{{Index: 2, Name: "Three", Artist: "C"}}, result.Omitted)
	assert.Equal(t, int32(3), target.calls.Load(), "tracks with an id are not resolved again")

	require.Len(t, result.Playlist.Tracks, 3)
	assert.Equal(t, []string{"One", "Two", "Four"}, []string{
		result.Playlist.Tracks[0].Name, result.Playlist.Tracks[1].Name, result.Playlist.Tracks[2].Name,
	})
	assert.Equal(t, map[string]string{"bugs": "1", "melon": "m-one"}, result.Playlist.Tracks[0].ChannelIDs)
	assert.Equal(t, source.PreGenerated, result.Playlist.PreGenerated)

	assert.Equal(t, sourcePlaylist(), source, "source playlist must not change")
}

func TestConvertAbortsOnTransportError(t *testing.T) {
	boom := adaptor.NewTransportError("melon", "findSongId", "D Four", errors.New("connection reset"))
	target := &stubTarget{name: "melon", find: func(_ context.Context, song adaptor.Song) (string, error) {
		if song.Name == "Four" {
			return "", boom
		}
		return "x", nil
	}}

	result, err := NewService(Options{Concurrency: 1}, nil).Convert(context.Background(), sourcePlaylist(), target)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, adaptor.ErrTransport)
	assert.Contains(t, err.Error(), "resolve track 3")
}

func TestConvertAllResolved(t *testing.T) {
	target := &stubTarget{name: "bugs", find: func(context.Context, adaptor.Song) (string, error) {
		return "4", nil
	}}

	result, err := NewService(Options{}, nil).Convert(context.Background(), sourcePlaylist(), target)
	require.NoError(t, err)
	assert.Equal(t, "bugs://mix/1,2,3,4", result.URL)
	assert.Equal(t, 1, result.Resolved)
	assert.Empty(t, result.Omitted)
	assert.Equal(t, []adaptor.Song{{Artist: "D", Name: "Four"}}, target.asked)
}

func TestConvertRespectsConcurrencyLimit(t *testing.T) {
	target := &stubTarget{name: "melon", find: func(context.Context, adaptor.Song) (string, error) {
		time.Sleep(20 * time.Millisecond)
		return "id", nil
	}}
	playlist := &adaptor.Playlist{Name: "big"}
	for i := 0; i < 12; i++ {
		playlist.Tracks = append(playlist.Tracks, adaptor.Track{Name: "t", Artist: "a"})
	}

	_, err := NewService(Options{Concurrency: 3}, nil).Convert(context.Background(), playlist, target)
	require.NoError(t, err)
	assert.Equal(t, int32(12), target.calls.Load())
	assert.LessOrEqual(t, target.peak.Load(), int32(3))
}

func TestConvertRateLimited(t *testing.T) {
	target := &stubTarget{name: "melon", find: func(context.Context, adaptor.Song) (string, error) {
		return "id", nil
	}}
	playlist := &adaptor.Playlist{Name: "paced"}
	for i := 0; i < 4; i++ {
		playlist.Tracks = append(playlist.Tracks, adaptor.Track{Name: "t", Artist: "a"})
	}

	started := time.Now()
	_, err := NewService(Options{Concurrency: 4, RatePerSecond: 20, Burst: 1}, nil).Convert(context.Background(), playlist, target)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(started), 140*time.Millisecond)
}

func TestConvertCanceled(t *testing.T) {
	target := &stubTarget{name: "melon", find: func(ctx context.Context, _ adaptor.Song) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	}}
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewService(Options{}, nil).Convert(ctx, sourcePlaylist(), target)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestConvertRejectsNil(t *testing.T) {
	svc := NewService(Options{}, nil)
	_, err := svc.Convert(context.Background(), nil, &stubTarget{name: "x"})
	assert.Error(t, err)
	_, err = svc.Convert(context.Background(), sourcePlaylist(), nil)
	assert.Error(t, err)
}
