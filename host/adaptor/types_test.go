package adaptor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaylistCloneIsDeep(t *testing.T) {
	src := &Playlist{
		Name: "mix",
		Tracks: []Track{
			{Name: "a", Artist: "x", ChannelIDs: map[string]string{"bugs": "1"}},
			{Name: "b", Artist: "y"},
		},
		PreGenerated: map[string]string{"bugs": "https://m.bugs.co.kr/share/1"},
	}

	dup := src.Clone()
	dup.Tracks[0].ChannelIDs["melon"] = "9"
	dup.Tracks[1].ChannelIDs["bugs"] = "2"
	dup.PreGenerated["melon"] = "x"

	assert.NotContains(t, src.Tracks[0].ChannelIDs, "melon")
	assert.Nil(t, src.Tracks[1].ChannelIDs)
	assert.NotContains(t, src.PreGenerated, "melon")
	assert.Equal(t, "mix", dup.Name)

	var nilPlaylist *Playlist
	assert.Nil(t, nilPlaylist.Clone())
}

func TestTrackChannelID(t *testing.T) {
	track := Track{Name: "a", Artist: "x"}
	_, ok := track.ChannelID("bugs")
	assert.False(t, ok)

	track.ChannelIDs = map[string]string{"bugs": "42"}
	id, ok := track.ChannelID("bugs")
	assert.True(t, ok)
	assert.Equal(t, "42", id)
	assert.Equal(t, Song{Artist: "x", Name: "a"}, track.Song())
}

func TestAdaptorErrorWrapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		target  error
		message string
	}{
		{
			name:    "no match",
			err:     NewNoMatchError("bugs", "findSongId", "IU Blueming"),
			target:  ErrNoMatch,
			message: `bugs: findSongId "IU Blueming": adaptor: no matching track`,
		},
		{
			name:    "malformed",
			err:     NewMalformedError("bugs", "getPlaylistContent", "abc", "list[0].artists"),
			target:  ErrMalformedResponse,
			message: `bugs: getPlaylistContent "abc": adaptor: malformed response: list[0].artists`,
		},
		{
			name:    "transport",
			err:     NewTransportError("bugs", "findSongId", "", errors.New("dial tcp: refused")),
			target:  ErrTransport,
			message: "bugs: findSongId: adaptor: transport failure: dial tcp: refused",
		},
		{
			name:    "missing identifier",
			err:     NewMissingIdentifierError("bugs", "mix", 3),
			target:  ErrMissingIdentifier,
			message: `bugs: generateURL "mix": adaptor: missing track identifier: tracks[3]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.ErrorIs(t, tt.err, tt.target)
			assert.Equal(t, tt.message, tt.err.Error())

			var adaptorErr *AdaptorError
			require.ErrorAs(t, tt.err, &adaptorErr)
			assert.Equal(t, "bugs", adaptorErr.Adaptor)
		})
	}
}
