package bugs

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// trackID accepts the service's track ids whether they arrive as JSON strings or numbers.
type trackID struct {
	value string
	set   bool
}

func (t *trackID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	switch v := raw.(type) {
	case string:
		t.value = v
	case json.Number:
		t.value = v.String()
	default:
		return fmt.Errorf("track_id: unexpected JSON type %T", raw)
	}
	t.set = true
	return nil
}

// valid reports whether a usable id was present.
func (t trackID) valid() bool {
	return t.set && t.value != ""
}

// bugsSearchResponse is the body of the search endpoint.
type bugsSearchResponse struct {
	List *[]bugsSearchTrack `json:"list"`
}

type bugsSearchTrack struct {
	TrackID trackID `json:"track_id"`
}

// bugsPlaylistResponse is the body of the share-album content endpoint.
type bugsPlaylistResponse struct {
	Info *bugsPlaylistInfo    `json:"info"`
	List *[]bugsPlaylistTrack `json:"list"`
}

type bugsPlaylistInfo struct {
	Title *string `json:"title"`
}

type bugsPlaylistTrack struct {
	TrackTitle *string      `json:"track_title"`
	TrackID    trackID      `json:"track_id"`
	Artists    []bugsArtist `json:"artists"`
}

type bugsArtist struct {
	ArtistName *string `json:"artist_nm"`
}

// missingField returns the path of the first required field absent from the
// playlist response, or "" when the shape is complete. track_id is optional.
func (r *bugsPlaylistResponse) missingField() string {
	if r.Info == nil {
		return "info"
	}
	if r.Info.Title == nil {
		return "info.title"
	}
	if r.List == nil {
		return "list"
	}
	for i, track := range *r.List {
		if track.TrackTitle == nil {
			return fmt.Sprintf("list[%d].track_title", i)
		}
		if len(track.Artists) == 0 {
			return fmt.Sprintf("list[%d].artists", i)
		}
		if track.Artists[0].ArtistName == nil {
			return fmt.Sprintf("list[%d].artists[0].artist_nm", i)
		}
	}
	return ""
}
