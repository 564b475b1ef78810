package main

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/llehouerou/spotiqueue-worker/internal/bridge"
	"github.com/llehouerou/spotiqueue-worker/internal/config"
	"github.com/llehouerou/spotiqueue-worker/internal/errmsg"
	"github.com/llehouerou/spotiqueue-worker/internal/history"
	"github.com/llehouerou/spotiqueue-worker/internal/logging"
	"github.com/llehouerou/spotiqueue-worker/internal/playback"
	"github.com/llehouerou/spotiqueue-worker/internal/player"
	"github.com/llehouerou/spotiqueue-worker/internal/session"
)

// process returns the process-wide worker state, building it on first use.
// It returns nil if the configuration cannot be loaded.
var process = sync.OnceValue(func() *bridge.Process {
	cfg, err := config.Load()
	if err != nil {
		logrus.Error(errmsg.Format(errmsg.OpLoadConfig, err))
		return nil
	}
	return newProcess(cfg)
})

// newProcess wires the worker from cfg. The log file and history database
// stay open for the life of the host process.
func newProcess(cfg *config.Config) *bridge.Process {
	log, _, err := logging.New(logging.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Dir:    cfg.LogDir(),
	})
	if err != nil {
		logrus.Warn(errmsg.Format(errmsg.OpSetupLogging, err))
		log = logrus.StandardLogger()
	}

	pcfg := cfg.GetPlayerConfig()
	opts := bridge.Options{
		Logger:       log,
		LoginTimeout: cfg.LoginTimeout,
		LoadTimeout:  pcfg.LoadTimeout,
		Connect: func(ctx context.Context, creds session.Credentials) (player.Source, error) {
			s, err := session.Login(ctx, creds, session.Options{
				DeviceName: cfg.DeviceName,
				Bitrate:    pcfg.Bitrate,
				Logger:     log,
			})
			if err != nil {
				return nil, err
			}
			return s, nil
		},
		NewPlayer: func(src player.Source) player.Interface {
			return player.New(src, player.Config{
				SampleRate: player.DefaultSampleRate,
				Buffer:     pcfg.Buffer,
				Volume:     *pcfg.Volume,
			})
		},
	}

	if store := openHistory(cfg, log); store != nil {
		rec := history.NewRecorder(store, log)
		opts.OnStart = func(w *playback.Worker) {
			go rec.Run(w.Subscribe())
		}
	}

	return bridge.New(opts)
}

func openHistory(cfg *config.Config, log logrus.FieldLogger) *history.Store {
	if !cfg.HistoryEnabled() {
		return nil
	}
	path, err := cfg.HistoryPath()
	if err != nil {
		log.Warn(errmsg.Format(errmsg.OpHistoryOpen, err))
		return nil
	}
	store, err := history.Open(path)
	if err != nil {
		log.WithField("path", path).Warn(errmsg.Format(errmsg.OpHistoryOpen, err))
		return nil
	}
	return store
}
