// Package convert carries playlists from one service to another by resolving
// every track on the target adaptor and asking it for a link.
package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/myply/myply-go/host"
	"github.com/myply/myply-go/host/adaptor"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const defaultConcurrency = 4

// Options tunes how aggressively tracks are resolved.
type Options struct {
	// Concurrency bounds the number of in-flight FindSongID calls.
	Concurrency int

	// RatePerSecond paces FindSongID calls; zero or less disables pacing.
	RatePerSecond float64

	// Burst is the limiter burst when pacing is enabled.
	Burst int
}

// OmittedTrack is a source track the target service could not find.
type OmittedTrack struct {
	Index  int    `json:"index"`
	Name   string `json:"name"`
	Artist string `json:"artist"`
}

// Result is the outcome of a conversion.
type Result struct {
	Target   string            `json:"target"`
	URL      string            `json:"url"`
	Playlist *adaptor.Playlist `json:"playlist"`
	Resolved int               `json:"resolved"`
	Omitted  []OmittedTrack    `json:"omitted,omitempty"`
}

// Service converts playlists between adaptors.
type Service struct {
	concurrency int
	limiter     *rate.Limiter
	logger      host.Logger
}

// NewService creates a conversion service.
func NewService(opts Options, logger host.Logger) *Service {
	if logger == nil {
		logger = host.NopLogger{}
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}

	var limiter *rate.Limiter
	if opts.RatePerSecond > 0 {
		burst := opts.Burst
		if burst <= 0 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(opts.RatePerSecond), burst)
	}

	return &Service{
		concurrency: concurrency,
		limiter:     limiter,
		logger:      logger.With("component", "convert"),
	}
}

type resolution struct {
	id       string
	resolved bool
	omitted  bool
}

// Convert resolves every track of playlist that lacks a target identifier and
// returns the target's link for the result. Tracks the target cannot find are
// dropped and reported in Result.Omitted; any other failure aborts. playlist is
// left untouched.
func (s *Service) Convert(ctx context.Context, playlist *adaptor.Playlist, target adaptor.Adaptor) (*Result, error) {
	if playlist == nil {
		return nil, fmt.Errorf("convert: nil playlist")
	}
	if target == nil {
		return nil, fmt.Errorf("convert: nil target")
	}

	source := playlist.Clone()
	name := target.Name()
	outcomes := make([]resolution, len(source.Tracks))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, track := range source.Tracks {
		if id, ok := track.ChannelID(name); ok && id != "" {
			continue
		}
		i, track := i, track
		g.Go(func() error {
			if s.limiter != nil {
				if err := s.limiter.Wait(gctx); err != nil {
					return err
				}
			}
			id, err := target.FindSongID(gctx, track.Song())
			if errors.Is(err, adaptor.ErrNoMatch) {
				s.logger.Info("track not found on target", "target", name, "index", i, "name", track.Name, "artist", track.Artist)
				outcomes[i].omitted = true
				return nil
			}
			if err != nil {
				return fmt.Errorf("convert: resolve track %d: %w", i, err)
			}
			outcomes[i] = resolution{id: id, resolved: true}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &Result{Target: name}
	converted := &adaptor.Playlist{
		Name:         source.Name,
		Tracks:       make([]adaptor.Track, 0, len(source.Tracks)),
		PreGenerated: source.PreGenerated,
	}
	for i, track := range source.Tracks {
		outcome := outcomes[i]
		if outcome.omitted {
			result.Omitted = append(result.Omitted, OmittedTrack{Index: i, Name: track.Name, Artist: track.Artist})
			continue
		}
		if outcome.resolved {
			track.ChannelIDs[name] = outcome.id
			result.Resolved++
		}
		converted.Tracks = append(converted.Tracks, track)
	}

	url, err := target.GenerateURL(ctx, converted)
	if err != nil {
		return nil, err
	}
	result.URL = url
	result.Playlist = converted

	s.logger.Debug("playlist converted", "target", name, "tracks", len(converted.Tracks), "resolved", result.Resolved, "omitted", len(result.Omitted))
	return result, nil
}
