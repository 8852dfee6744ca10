package adaptor

import "context"

// Adaptor defines the contract every third-party music service implementation must satisfy.
// The host treats all services identically through it: resolve a song to the service's
// identifier, read a shared playlist, and produce a link the service's app can open.
//
// Adaptor implementations should be safe for concurrent use by multiple goroutines.
type Adaptor interface {
	// Name returns the adaptor identifier (e.g., "bugs").
	// It is also the key used in Track.ChannelIDs and Playlist.PreGenerated.
	Name() string

	// FindSongID resolves a song to the service's track identifier.
	//
	// Returns ErrNoMatch if the service has no result for the song.
	FindSongID(ctx context.Context, song Song) (string, error)

	// GetPlaylistContent reads the shared playlist referenced by uri.
	//
	// Returns ErrMalformedResponse if the service answered with an unexpected shape.
	GetPlaylistContent(ctx context.Context, uri string) (*Playlist, error)

	// GenerateURL builds a link the service's native application understands.
	// The tracks are expected to carry this adaptor's ChannelIDs entry.
	GenerateURL(ctx context.Context, playlist *Playlist) (string, error)

	// Determinator returns the URI tokens that identify content of this service.
	// The host routes incoming references with them; adaptors do not interpret them.
	Determinator() []string

	// Display returns presentation metadata.
	Display() Display
}
