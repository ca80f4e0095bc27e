// Package insight asks a hosted language model for a short comment on a
// journal entry. A comment is always produced: failures and timeouts degrade
// to fixed encouragement messages.
package insight

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"

	"github.com/aebalz/vibetrack/internal/model"
)

const (
	DefaultTimeout = 5 * time.Second

	TimeoutMessage  = "Hôm nay bạn đã cố gắng rất nhiều rồi! 💪"
	ErrorMessage    = "Hôm nay bạn đã làm rất tốt rồi! Nghỉ ngơi thôi nào! 💖"
	FallbackMessage = "Cố gắng lên nhé, ngày mai sẽ tốt hơn!"
)

// Outcome labels of insight_requests_total.
const (
	OutcomeOK      = "ok"
	OutcomeEmpty   = "empty"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

var requestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "insight_requests_total",
		Help: "Number of insight generations by outcome.",
	},
	[]string{"outcome"},
)

// Commenter produces the comment stored with an entry.
type Commenter interface {
	Comment(ctx context.Context, energy model.EnergyLevel, note string, history []model.JournalEntry) string
}

// Insighter wraps a Generator with a deadline and fallbacks.
type Insighter struct {
	gen     Generator
	timeout time.Duration
	log     zerolog.Logger
}

// New returns an Insighter. A non-positive timeout means DefaultTimeout.
func New(gen Generator, timeout time.Duration, log zerolog.Logger) *Insighter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Insighter{gen: gen, timeout: timeout, log: log}
}

// Comment never fails. It returns TimeoutMessage when the deadline expires,
// ErrorMessage on any other failure and FallbackMessage when the model
// answers with empty text.
func (i *Insighter) Comment(ctx context.Context, energy model.EnergyLevel, note string, history []model.JournalEntry) string {
	text, outcome := i.comment(ctx, BuildPrompt(energy, note, history))
	requestsTotal.WithLabelValues(outcome).Inc()
	return text
}

func (i *Insighter) comment(ctx context.Context, prompt string) (string, string) {
	if i.gen == nil {
		return ErrorMessage, OutcomeError
	}

	ctx, cancel := context.WithTimeout(ctx, i.timeout)
	defer cancel()

	text, err := i.gen.Generate(ctx, prompt)
	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded)):
		i.log.Warn().Dur("timeout", i.timeout).Msg("insight generation timed out")
		return TimeoutMessage, OutcomeTimeout
	case err != nil:
		i.log.Error().Err(err).Msg("insight generation failed")
		return ErrorMessage, OutcomeError
	}

	if text = strings.TrimSpace(text); text == "" {
		return FallbackMessage, OutcomeEmpty
	}
	return text, OutcomeOK
}
