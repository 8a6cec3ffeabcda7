package cli

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/alywork/lawdesk/internal/analytics"
	"github.com/alywork/lawdesk/internal/config"
	"github.com/alywork/lawdesk/internal/corpus"
	"github.com/alywork/lawdesk/internal/engine"
	"github.com/alywork/lawdesk/internal/memory"
	"github.com/alywork/lawdesk/internal/storage"
)

// loadConfig reads the config named by --config (or the default path),
// falling back to defaults when the file does not exist, then applies
// environment overrides and validates the result. With create set, a
// missing file is written with the defaults first.
func loadConfig(create bool) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		if path, err = config.GetDefaultConfigPath(); err != nil {
			return nil, err
		}
	}

	var (
		cfg *config.Config
		err error
	)
	if create {
		cfg, err = config.LoadOrCreate(path)
	} else {
		cfg, err = config.LoadFrom(path)
	}

	var notFound *config.ConfigNotFoundError
	if errors.As(err, &notFound) {
		cfg, err = config.NewConfig(), nil
	}
	if err != nil {
		return nil, err
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// runtime bundles the components a command works with.
type runtime struct {
	cfg     *config.Config
	engine  *engine.Engine
	memory  *memory.FileStore
	storage *storage.SQLiteStorage
	tracker *analytics.Tracker
}

// openRuntime builds the engine, memory store and analytics store from
// config, passing create on to loadConfig. A corpus that cannot be loaded
// is logged and replaced by an empty one, so queries answer with the
// no-data sentinel.
func openRuntime(create bool) (*runtime, error) {
	cfg, err := loadConfig(create)
	if err != nil {
		return nil, err
	}

	rt := &runtime{
		cfg:    cfg,
		memory: memory.NewFileStore(cfg.Memory.Path, cfg.Memory.MaxInteractions),
	}

	opts := engine.DefaultOptions()
	opts.DefaultTopN = cfg.Search.TopN
	opts.FallbackCutoff = cfg.Search.FallbackCutoff
	opts.SuggestCutoff = cfg.Search.SuggestCutoff
	opts.SuggestCount = cfg.Search.SuggestCount
	opts.Memory = rt.memory

	if cfg.Analytics.Enabled {
		rt.storage = openStorage(cfg)
		rt.tracker = analytics.NewTracker(rt.storage)
		opts.Recorder = rt.tracker
	}

	rt.engine, err = engine.Open(cfg.Corpus.Path, cfg.Corpus.Sheet, opts)
	var loadErr *corpus.LoadError
	if errors.As(err, &loadErr) {
		log.Printf("Warning: %v; continuing with an empty corpus", err)
		rt.engine, err = engine.New(nil, opts)
	}
	if err != nil {
		rt.Close()
		return nil, fmt.Errorf("failed to build engine: %w", err)
	}

	return rt, nil
}

// openStorage initializes the analytics database and applies retention.
// Failures leave a disabled store that ignores every call.
func openStorage(cfg *config.Config) *storage.SQLiteStorage {
	store := storage.NewStorage(cfg.Analytics.DBPath)
	if err := store.Init(); err != nil {
		log.Printf("Warning: analytics disabled: %v", err)
		return store
	}
	if cfg.Analytics.RetentionDays > 0 {
		retention := time.Duration(cfg.Analytics.RetentionDays) * 24 * time.Hour
		if _, err := store.Cleanup(retention); err != nil {
			log.Printf("Warning: analytics cleanup failed: %v", err)
		}
	}
	return store
}

// Close flushes pending analytics and releases the engine and the
// analytics database.
func (r *runtime) Close() {
	if r.tracker != nil {
		r.tracker.Stop()
	}
	if r.engine != nil {
		if err := r.engine.Close(); err != nil {
			log.Printf("Warning: failed to close engine: %v", err)
		}
	}
	if r.storage != nil {
		if err := r.storage.Close(); err != nil {
			log.Printf("Warning: failed to close analytics: %v", err)
		}
	}
}
