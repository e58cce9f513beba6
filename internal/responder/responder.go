// Package responder maps a chat message to a reply using a fixed, ordered list
// of regular-expression rules.
package responder

import (
	"fmt"
	"strings"
	"time"

	"github.com/ashureev/simple-agent/internal/domain"
)

// Responder is stateless apart from its injected clock and picker and may be
// shared across goroutines.
type Responder struct {
	picker Picker
	clock  func() time.Time
	loc    *time.Location
}

// Option configures a Responder.
type Option func(*Responder)

// WithPicker sets the source used for joke and fallback selection.
func WithPicker(p Picker) Option {
	return func(r *Responder) {
		if p != nil {
			r.picker = p
		}
	}
}

// WithClock overrides the time source used by the time and date rules.
func WithClock(clock func() time.Time) Option {
	return func(r *Responder) {
		if clock != nil {
			r.clock = clock
		}
	}
}

// WithLocation sets the time zone for time and date replies.
func WithLocation(loc *time.Location) Option {
	return func(r *Responder) {
		if loc != nil {
			r.loc = loc
		}
	}
}

// New creates a Responder. Without options it uses the global random source,
// the wall clock and the local time zone.
func New(opts ...Option) *Responder {
	r := &Responder{
		picker: globalPicker{},
		clock:  time.Now,
		loc:    time.Local,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Respond returns the reply for message. History is accepted for API
// compatibility with the chat transcript but does not influence the reply.
func (r *Responder) Respond(message string, history []domain.Message) string {
	reply, _ := r.RespondWithCategory(message, history)
	return reply
}

// RespondWithCategory is Respond plus the name of the rule that matched.
func (r *Responder) RespondWithCategory(message string, _ []domain.Message) (string, Category) {
	lower := strings.ToLower(message)
	for _, rl := range rules {
		if m := rl.pattern.FindStringSubmatch(lower); m != nil {
			return rl.reply(r, message, m), rl.category
		}
	}
	return fmt.Sprintf(pick(r.picker, fallbackTemplates), message), CategoryFallback
}

// Classify reports which rule answers message.
func (r *Responder) Classify(message string) Category {
	_, category := r.RespondWithCategory(message, nil)
	return category
}

// Categories lists the rule names in priority order, ending with the fallback.
func (r *Responder) Categories() []Category {
	out := make([]Category, 0, len(rules)+1)
	for _, rl := range rules {
		out = append(out, rl.category)
	}
	return append(out, CategoryFallback)
}

func (r *Responder) now() time.Time {
	return r.clock().In(r.loc)
}
