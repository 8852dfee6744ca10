package bugs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/myply/myply-go/host"
	"github.com/myply/myply-go/host/adaptor"
)

const (
	opFindSongID   = "findSongId"
	opGetPlaylist  = "getPlaylistContent"
	playlistSize   = 25
	displayColor   = "#FF3B28"
	displayName    = "벅스"
	appLinkPrefix  = "bugs3://app/tracks/lists"
	trackSeparator = "|"
)

// Adaptor implements adaptor.Adaptor for Bugs.
type Adaptor struct {
	client      *Client
	strictLinks bool
	logger      host.Logger
}

// NewAdaptor creates a Bugs adaptor on top of client. With strictLinks set,
// GenerateURL rejects playlists containing tracks without a Bugs id.
func NewAdaptor(client *Client, strictLinks bool, logger host.Logger) *Adaptor {
	if logger == nil {
		logger = host.NopLogger{}
	}
	return &Adaptor{client: client, strictLinks: strictLinks, logger: logger}
}

func (a *Adaptor) Name() string { return pluginName }

func (a *Adaptor) Determinator() []string { return []string{pluginName} }

func (a *Adaptor) Display() adaptor.Display {
	return adaptor.Display{Color: displayColor, Logo: logoSVG, Name: displayName}
}

// FindSongID returns the id of the top search hit for "<artist> <name>".
func (a *Adaptor) FindSongID(ctx context.Context, song adaptor.Song) (string, error) {
	query := song.Artist + " " + song.Name
	fields := map[string]any{
		"type":  "track",
		"query": query,
		"page":  1,
		"size":  1,
		"_ci":   "",
		"_at":   "",
	}

	body, err := a.post(ctx, opFindSongID, query, a.client.SearchEndpoint(), fields)
	if err != nil {
		return "", err
	}

	var resp bugsSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", adaptor.NewMalformedError(pluginName, opFindSongID, query, fmt.Sprintf("decode search response: %v", err))
	}
	if resp.List == nil {
		return "", adaptor.NewMalformedError(pluginName, opFindSongID, query, "list")
	}
	if len(*resp.List) == 0 {
		return "", adaptor.NewNoMatchError(pluginName, opFindSongID, query)
	}
	id := (*resp.List)[0].TrackID
	if !id.valid() {
		return "", adaptor.NewMalformedError(pluginName, opFindSongID, query, "list[0].track_id")
	}
	return id.value, nil
}

// GetPlaylistContent fetches the first page of a shared playlist.
func (a *Adaptor) GetPlaylistContent(ctx context.Context, uri string) (*adaptor.Playlist, error) {
	shareID := shareLogID(uri)
	fields := map[string]any{
		"track_share_log_id": shareID,
		"size":               playlistSize,
		"_ci":                "",
		"_at":                "",
	}

	body, err := a.post(ctx, opGetPlaylist, shareID, a.client.ContentEndpoint(), fields)
	if err != nil {
		return nil, err
	}

	var resp bugsPlaylistResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, adaptor.NewMalformedError(pluginName, opGetPlaylist, shareID, fmt.Sprintf("decode playlist response: %v", err))
	}
	if field := resp.missingField(); field != "" {
		return nil, adaptor.NewMalformedError(pluginName, opGetPlaylist, shareID, field)
	}

	entries := *resp.List
	playlist := &adaptor.Playlist{
		Name:         *resp.Info.Title,
		Tracks:       make([]adaptor.Track, 0, len(entries)),
		PreGenerated: map[string]string{pluginName: uri},
	}
	for _, entry := range entries {
		track := adaptor.Track{
			Name:       *entry.TrackTitle,
			Artist:     *entry.Artists[0].ArtistName,
			ChannelIDs: map[string]string{},
		}
		if entry.TrackID.valid() {
			track.ChannelIDs[pluginName] = entry.TrackID.value
		}
		playlist.Tracks = append(playlist.Tracks, track)
	}
	return playlist, nil
}

// GenerateURL builds the Bugs app deep link for playlist. Tracks without a Bugs
// id leave an empty slot unless strict links are enabled.
func (a *Adaptor) GenerateURL(_ context.Context, playlist *adaptor.Playlist) (string, error) {
	if playlist == nil {
		return "", fmt.Errorf("bugs: generate url: nil playlist")
	}

	ids := make([]string, len(playlist.Tracks))
	for i, track := range playlist.Tracks {
		id, ok := track.ChannelID(pluginName)
		if !ok {
			if a.strictLinks {
				return "", adaptor.NewMissingIdentifierError(pluginName, playlist.Name, i)
			}
			a.logger.Warn("bugs: track has no bugs id, leaving slot empty", "playlist", playlist.Name, "index", i, "track", track.Name)
		}
		ids[i] = id
	}

	return appLinkPrefix +
		"?title=" + encodeURIComponent(playlist.Name) +
		"&miniplay=Y" +
		"&track_ids=" + strings.Join(ids, trackSeparator), nil
}

// post encodes fields and sends them to endpoint. Only the round trip itself
// is reported as a transport failure.
func (a *Adaptor) post(ctx context.Context, op, ref, endpoint string, fields map[string]any) ([]byte, error) {
	form, headers, err := EncodeForm(fields)
	if err != nil {
		return nil, fmt.Errorf("bugs: %s %q: %w", op, ref, err)
	}
	body, err := a.client.Post(ctx, endpoint, form.Bytes(), headers)
	if err != nil {
		return nil, adaptor.NewTransportError(pluginName, op, ref, err)
	}
	return body, nil
}

// shareLogID returns the last "/"-delimited segment of uri.
func shareLogID(uri string) string {
	return uri[strings.LastIndex(uri, "/")+1:]
}

const upperHex = "0123456789ABCDEF"

// encodeURIComponent percent-encodes s byte-wise, leaving A-Z a-z 0-9 and
// - _ . ! ~ * ' ( ) untouched.
func encodeURIComponent(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isURIComponentSafe(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

func isURIComponentSafe(c byte) bool {
	switch {
	case 'A' <= c && c <= 'Z', 'a' <= c && c <= 'z', '0' <= c && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
