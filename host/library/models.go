package library

import (
	"time"

	"github.com/myply/myply-go/host/adaptor"
)

// PlaylistModel is a stored playlist. Tracks hang off it ordered by position.
type PlaylistModel struct {
	ID           string            `gorm:"primaryKey;size:36"`
	CreatedAt    time.Time         `gorm:"index"`
	UpdatedAt    time.Time         `gorm:"autoUpdateTime"`
	Source       string            `gorm:"not null;index"`
	Name         string            `gorm:"not null;default:''"`
	PreGenerated map[string]string `gorm:"serializer:json"`
	Tracks       []TrackModel      `gorm:"foreignKey:PlaylistID;constraint:OnDelete:CASCADE"`
}

func (PlaylistModel) TableName() string {
	return "playlists"
}

// TrackModel is one track of a stored playlist.
type TrackModel struct {
	ID         uint              `gorm:"primaryKey"`
	PlaylistID string            `gorm:"size:36;not null;index:idx_playlist_position,unique"`
	Position   int               `gorm:"not null;index:idx_playlist_position,unique"`
	Name       string            `gorm:"not null;default:''"`
	Artist     string            `gorm:"not null;default:''"`
	ChannelIDs map[string]string `gorm:"serializer:json"`
}

func (TrackModel) TableName() string {
	return "playlist_tracks"
}

// Entry is a playlist together with its library bookkeeping.
type Entry struct {
	ID        string            `json:"id"`
	Source    string            `json:"source"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Playlist  *adaptor.Playlist `json:"playlist"`
}

func toModel(id, source string, playlist *adaptor.Playlist) PlaylistModel {
	model := PlaylistModel{
		ID:           id,
		Source:       source,
		Name:         playlist.Name,
		PreGenerated: copyMap(playlist.PreGenerated),
		Tracks:       make([]TrackModel, len(playlist.Tracks)),
	}
	for i, track := range playlist.Tracks {
		model.Tracks[i] = TrackModel{
			PlaylistID: id,
			Position:   i,
			Name:       track.Name,
			Artist:     track.Artist,
			ChannelIDs: copyMap(track.ChannelIDs),
		}
	}
	return model
}

func toEntry(model PlaylistModel) *Entry {
	playlist := &adaptor.Playlist{
		Name:         model.Name,
		Tracks:       make([]adaptor.Track, len(model.Tracks)),
		PreGenerated: copyMap(model.PreGenerated),
	}
	for i, track := range model.Tracks {
		playlist.Tracks[i] = adaptor.Track{
			Name:       track.Name,
			Artist:     track.Artist,
			ChannelIDs: copyMap(track.ChannelIDs),
		}
	}
	return &Entry{
		ID:        model.ID,
		Source:    model.Source,
		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,
		Playlist:  playlist,
	}
}

func copyMap(in map[string]string) map[string]string {
	out := make(map[string]string, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
