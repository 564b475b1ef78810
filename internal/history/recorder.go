package history

import (
	"github.com/sirupsen/logrus"

	"github.com/llehouerou/spotiqueue-worker/internal/errmsg"
	"github.com/llehouerou/spotiqueue-worker/internal/playback"
)

// Recorder stores worker events off the worker goroutine.
type Recorder struct {
	store *Store
	log   logrus.FieldLogger
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store *Store, log logrus.FieldLogger) *Recorder {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Recorder{store: store, log: log.WithField("component", "history")}
}

// Run records events from sub until it is done. Write errors are logged
// and never reach the worker.
func (r *Recorder) Run(sub *playback.Subscription) {
	for {
		select {
		case ev := <-sub.CommandHandled:
			r.record(ev)
		case <-sub.Done:
			// Flush what the worker published before closing.
			for {
				select {
				case ev := <-sub.CommandHandled:
					r.record(ev)
				default:
					return
				}
			}
		}
	}
}

func (r *Recorder) record(ev playback.CommandHandled) {
	if err := r.store.Record(EntryFromEvent(ev)); err != nil {
		r.log.WithField("uri", string(ev.Command)).Warn(errmsg.Format(errmsg.OpHistoryRecord, err))
	}
}

// EntryFromEvent converts a worker event to a history entry.
func EntryFromEvent(ev playback.CommandHandled) Entry {
	e := Entry{
		URI:       string(ev.Command),
		Outcome:   ev.Outcome.String(),
		HandledAt: ev.At,
	}
	if ev.Track != nil {
		e.TrackHex = ev.Track.ID.Hex()
	}
	if ev.Err != nil {
		e.Error = ev.Err.Error()
	}
	return e
}
