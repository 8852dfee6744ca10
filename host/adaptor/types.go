package adaptor

// Song is a track the host wants to locate on a service.
type Song struct {
	// Artist is the performing artist as the host knows it.
	Artist string `json:"artist"`

	// Name is the track title.
	Name string `json:"name"`
}

// Track is a single entry of a Playlist.
// This is the canonical representation shared by every adaptor.
type Track struct {
	// Name is the track title.
	Name string `json:"name"`

	// Artist is the primary artist.
	Artist string `json:"artist"`

	// ChannelIDs maps an adaptor name (e.g., "bugs") to that service's track identifier.
	// Each adaptor reads and writes only its own entry.
	ChannelIDs map[string]string `json:"channelIds"`
}

// Song returns the resolution input for this track.
func (t Track) Song() Song {
	return Song{Artist: t.Artist, Name: t.Name}
}

// ChannelID returns the identifier stored for the given adaptor.
func (t Track) ChannelID(adaptor string) (string, bool) {
	if t.ChannelIDs == nil {
		return "", false
	}
	id, ok := t.ChannelIDs[adaptor]
	return id, ok
}

// Clone returns a deep copy of the track.
func (t Track) Clone() Track {
	out := t
	out.ChannelIDs = make(map[string]string, len(t.ChannelIDs))
	for k, v := range t.ChannelIDs {
		out.ChannelIDs[k] = v
	}
	return out
}

// Playlist is an ordered list of tracks from any service.
type Playlist struct {
	// Name is the playlist title.
	Name string `json:"name"`

	// Tracks keeps the order returned by the source service.
	Tracks []Track `json:"tracks"`

	// PreGenerated maps an adaptor name to an opaque reference (e.g., the original share URI)
	// that lets the host regenerate links without fetching again.
	PreGenerated map[string]string `json:"preGenerated"`
}

// Clone returns a deep copy of the playlist. Adaptors never mutate a playlist
// after returning it; callers that enrich one should work on a copy.
func (p *Playlist) Clone() *Playlist {
	if p == nil {
		return nil
	}
	out := &Playlist{
		Name:         p.Name,
		Tracks:       make([]Track, len(p.Tracks)),
		PreGenerated: make(map[string]string, len(p.PreGenerated)),
	}
	for i, track := range p.Tracks {
		out.Tracks[i] = track.Clone()
	}
	for k, v := range p.PreGenerated {
		out.PreGenerated[k] = v
	}
	return out
}

// Display is the static presentation metadata of an adaptor.
type Display struct {
	// Color is the brand color as a CSS hex string.
	Color string `json:"color"`

	// Logo is inline SVG markup.
	Logo string `json:"logo"`

	// Name is the human readable service name.
	Name string `json:"name"`
}
