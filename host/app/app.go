package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/myply/myply-go/host/adaptor"
	adaptorplugins "github.com/myply/myply-go/host/adaptor/plugins"
	"github.com/myply/myply-go/host/config"
	"github.com/myply/myply-go/host/convert"
	"github.com/myply/myply-go/host/library"
	logpkg "github.com/myply/myply-go/host/logger"
)

// App wires all application dependencies.
type App struct {
	Config    *config.Config
	Logger    *logpkg.Logger
	Library   *library.Repository
	Adaptors  *adaptor.Manager
	Converter *convert.Service
	Build     BuildInfo
}

// BuildInfo provides build-time metadata.
type BuildInfo struct {
	RuntimeVer string `json:"runtime"`
	BinVersion string `json:"version"`
	CommitSHA  string `json:"commit"`
	BuildTime  string `json:"buildTime"`
	BuildArch  string `json:"arch"`
}

// New builds the application container.
func New(ctx context.Context, configPath string, build BuildInfo) (*App, error) {
	conf, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	return NewWithConfig(ctx, conf, build)
}

// NewWithConfig builds the application container from an already loaded config.
func NewWithConfig(_ context.Context, conf *config.Config, build BuildInfo) (*App, error) {
	log, err := logpkg.New(conf.GetString("LogLevel"), conf.GetString("LogFormat"), conf.GetBool("LogSource"), conf.GetString("LogDir"))
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	gormLogger := logpkg.NewGormLogger(log.Slog(), logpkg.ParseGormLevel(conf.GetString("GormLogLevel")))
	databasePath := strings.TrimSpace(conf.GetString("Database"))
	if databasePath == "" {
		databasePath = "myply.db"
	}

	repo, err := library.NewSQLiteRepository(databasePath, gormLogger)
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("init library: %w", err)
	}
	poolMaxOpen := conf.GetInt("DBMaxOpenConns")
	poolMaxIdle := conf.GetInt("DBMaxIdleConns")
	poolMaxLifetimeSec := conf.GetInt("DBConnMaxLifetimeSec")
	if err := repo.ConfigurePool(poolMaxOpen, poolMaxIdle, time.Duration(poolMaxLifetimeSec)*time.Second); err != nil {
		_ = repo.Close()
		_ = log.Close()
		return nil, fmt.Errorf("configure db pool: %w", err)
	}

	manager := adaptor.NewManager()
	pluginNames := conf.PluginNames()
	if len(pluginNames) == 0 {
		pluginNames = adaptorplugins.Names()
	}
	for _, name := range pluginNames {
		if conf.HasPluginKey(name, "enabled") && !conf.GetPluginBool(name, "enabled") {
			log.Info("plugin disabled by config", "plugin", name)
			continue
		}

		factory, ok := adaptorplugins.Get(name)
		if !ok {
			log.Warn("plugin not registered", "plugin", name)
			continue
		}

		contrib, err := factory(conf, log)
		if err != nil {
			log.Error("plugin init failed", "plugin", name, "error", err)
			continue
		}
		if contrib == nil || contrib.Adaptor == nil {
			continue
		}
		if err := manager.Register(contrib.Adaptor); err != nil {
			log.Error("adaptor registration failed", "plugin", name, "error", err)
		}
	}

	converter := convert.NewService(convert.Options{
		Concurrency:   conf.GetInt("ResolveConcurrency"),
		RatePerSecond: conf.GetFloat64("ResolveRatePerSecond"),
		Burst:         conf.GetInt("ResolveBurst"),
	}, log)

	return &App{
		Config:    conf,
		Logger:    log,
		Library:   repo,
		Adaptors:  manager,
		Converter: converter,
		Build:     build,
	}, nil
}

// FindSong resolves song on the named adaptor.
func (a *App) FindSong(ctx context.Context, adaptorName string, song adaptor.Song) (string, error) {
	return a.Adaptors.ResolveSong(ctx, adaptorName, song)
}

// Fetch reads the playlist behind uri and stores it in the library.
func (a *App) Fetch(ctx context.Context, uri string) (*library.Entry, error) {
	source, playlist, err := a.Adaptors.FetchPlaylist(ctx, uri)
	if err != nil {
		return nil, err
	}
	id, err := a.Library.Save(ctx, source, playlist)
	if err != nil {
		return nil, err
	}
	a.Logger.Info("playlist stored", "id", id, "source", source, "tracks", len(playlist.Tracks))
	return a.Library.Get(ctx, id)
}

// Listing is a snapshot of the library.
type Listing struct {
	Count     int64            `json:"count"`
	Playlists []*library.Entry `json:"playlists"`
}

// List returns every stored playlist, oldest first.
func (a *App) List(ctx context.Context) (*Listing, error) {
	count, err := a.Library.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("library: count playlists: %w", err)
	}
	entries, err := a.Library.List(ctx)
	if err != nil {
		return nil, err
	}
	return &Listing{Count: count, Playlists: entries}, nil
}

// Link builds a link for a stored playlist. An empty adaptorName means the
// playlist's source adaptor.
func (a *App) Link(ctx context.Context, id, adaptorName string) (string, error) {
	entry, err := a.Library.Get(ctx, id)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(adaptorName) == "" {
		adaptorName = entry.Source
	}
	return a.Adaptors.GenerateURL(ctx, adaptorName, entry.Playlist)
}

// Convert carries a stored playlist over to the target adaptor. Identifiers
// found on the way are written back to the library so later links need no search.
func (a *App) Convert(ctx context.Context, id, target string) (*convert.Result, error) {
	entry, err := a.Library.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	targetAdaptor, err := a.Adaptors.GetAdaptor(target)
	if err != nil {
		return nil, err
	}

	result, err := a.Converter.Convert(ctx, entry.Playlist, targetAdaptor)
	if err != nil {
		return nil, err
	}

	if result.Resolved > 0 {
		updated := mergeResolved(entry.Playlist, result)
		if err := a.Library.UpdateChannelIDs(ctx, id, updated); err != nil {
			return nil, fmt.Errorf("store resolved ids: %w", err)
		}
	}
	return result, nil
}

// mergeResolved copies the target identifiers of result back onto a copy of
// the stored playlist, skipping the tracks the target omitted.
func mergeResolved(stored *adaptor.Playlist, result *convert.Result) *adaptor.Playlist {
	updated := stored.Clone()
	omitted := make(map[int]bool, len(result.Omitted))
	for _, o := range result.Omitted {
		omitted[o.Index] = true
	}

	next := 0
	for i := range updated.Tracks {
		if omitted[i] {
			continue
		}
		if next >= len(result.Playlist.Tracks) {
			break
		}
		if id, ok := result.Playlist.Tracks[next].ChannelID(result.Target); ok {
			updated.Tracks[i].ChannelIDs[result.Target] = id
		}
		next++
	}
	return updated
}

// Shutdown releases resources.
func (a *App) Shutdown(context.Context) error {
	var firstErr error

	if a.Library != nil {
		if err := a.Library.Close(); err != nil {
			if a.Logger != nil {
				a.Logger.Error("failed to close library", "error", err)
			}
			firstErr = fmt.Errorf("close library: %w", err)
		}
	}

	if a.Logger != nil {
		if err := a.Logger.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close logger: %w", err)
		}
	}

	return firstErr
}
