package race

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/padraicbc/amidarace/course"
	"github.com/padraicbc/amidarace/runner"
)

type EventType string

const (
	EventCommentary     EventType = "commentary"
	EventGimmickPlaced  EventType = "gimmick-placed"
	EventGimmickRemoved EventType = "gimmick-removed"
	EventRaceComplete   EventType = "race-complete"
)

// Event is one notification from a running race. Which fields are set
// depends on Type.
type Event struct {
	Type     EventType       `json:"type"`
	Time     time.Duration   `json:"time"`
	Text     string          `json:"text,omitempty"`
	Category runner.Category `json:"category,omitempty"`
	HorseID  int             `json:"horseId,omitempty"`
	Gimmick  *course.Gimmick `json:"gimmick,omitempty"`
	Results  []Result        `json:"results,omitempty"`
}

// Sink receives race events synchronously during Update. Implementations
// must not block.
type Sink interface {
	Publish(Event)
}

type SinkFunc func(Event)

func (f SinkFunc) Publish(e Event) {
	if f == nil {
		return
	}
	f(e)
}

type nopSink struct{}

func (nopSink) Publish(Event) {}

func NopSink() Sink { return nopSink{} }

// Tee fans an event out to every non-nil sink in order.
func Tee(sinks ...Sink) Sink {
	out := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return SinkFunc(func(e Event) {
		for _, s := range out {
			s.Publish(e)
		}
	})
}

// Recorder keeps every event in memory. It is safe to read while another
// goroutine drives the race.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
}

// Events returns a copy of everything recorded so far.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

// Filter returns the recorded events of type t.
func (r *Recorder) Filter(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// LogSink writes race events to a zap logger.
func LogSink(log *zap.Logger, raceID string) Sink {
	log = log.With(zap.String("race", raceID))
	return SinkFunc(func(e Event) {
		fields := []zap.Field{
			zap.String("event", string(e.Type)),
			zap.Duration("at", e.Time),
		}
		switch e.Type {
		case EventCommentary:
			log.Debug(e.Text, append(fields, zap.String("category", string(e.Category)))...)
		case EventGimmickPlaced, EventGimmickRemoved:
			if e.Gimmick != nil {
				fields = append(fields,
					zap.String("gimmick", e.Gimmick.ID),
					zap.String("type", string(e.Gimmick.Type)),
					zap.Int("lane", e.Gimmick.Lane),
					zap.Float64("x", e.Gimmick.X))
			}
			log.Debug("gimmick", fields...)
		case EventRaceComplete:
			if len(e.Results) > 0 {
				fields = append(fields, zap.String("winner", e.Results[0].HorseName))
			}
			log.Info("race complete", append(fields, zap.Int("runners", len(e.Results)))...)
		}
	})
}
