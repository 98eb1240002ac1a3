package scoring

import (
	"context"
	"time"

	"github.com/angelmondragon/wishlist-ai/internal/features"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/angelmondragon/wishlist-ai/pkg/openai"
)

type Source string

const (
	SourceModel   Source = "model"
	SourceDefault Source = "default"
)

// Result is a bounded score together with where it came from.
type Result struct {
	Value  int
	Source Source
}

// Scorer turns a feature summary into a likelihood-to-purchase score.
type Scorer interface {
	Score(ctx context.Context, summary features.Summary) Result
}

// Requester asks a completion model for a score and never fails.
type Requester struct {
	completer openai.Completer
	timeout   time.Duration
	logg      *logger.Logger
}

// NewRequester wires the completion client. A zero timeout leaves deadlines to the client.
func NewRequester(completer openai.Completer, timeout time.Duration, logg *logger.Logger) *Requester {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Requester{completer: completer, timeout: timeout, logg: logg}
}

// Score returns the parsed model score, or DefaultScore when the model cannot be reached.
func (r *Requester) Score(ctx context.Context, summary features.Summary) Result {
	if r == nil || r.completer == nil {
		return Result{Value: DefaultScore, Source: SourceDefault}
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	text, err := r.completer.Complete(ctx, systemPrompt, BuildPrompt(summary))
	if err != nil {
		r.logg.WarnErr(r.logg.WithField(ctx, "reason", "model_unavailable"), "scoring model unavailable, using default score", err)
		return Result{Value: DefaultScore, Source: SourceDefault}
	}

	value := ParseScore(text)
	r.logg.Debug(r.logg.WithField(ctx, "score", value), "scoring model responded")
	return Result{Value: value, Source: SourceModel}
}
