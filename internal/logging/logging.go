// Package logging builds the logrus logger shared by the worker components.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// Options selects the level, format and destination of log output.
type Options struct {
	Level  string // logrus level name; invalid or empty means info
	Format string // "json" or "text"
	File   bool   // write to <Dir>/<date>.log instead of Output
	Dir    string
	Output io.Writer // defaults to os.Stderr
}

// New creates a logger from opts. The returned close function releases the
// log file, if one was opened.
func New(opts Options) (*logrus.Logger, func() error, error) {
	log := logrus.New()
	closeFn := func() error { return nil }

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	if opts.File {
		if opts.Dir == "" {
			return nil, nil, fmt.Errorf("log directory path is empty")
		}
		if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create log directory: %w", err)
		}

		path := filepath.Join(opts.Dir, fmt.Sprintf("%s.log", time.Now().Format("2006-01-02")))
		f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = f
		closeFn = f.Close
	}
	log.SetOutput(out)

	if opts.Format == "json" {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	lvl, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)

	return log, closeFn, nil
}
