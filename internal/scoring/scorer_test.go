package scoring

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/wishlist-ai/internal/features"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/shopspring/decimal"
)

type stubCompleter struct {
	text   string
	err    error
	system string
	user   string
	calls  int
	block  bool
}

func (s *stubCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	s.calls++
	s.system = system
	s.user = user
	if s.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.text, s.err
}

func sampleSummary() features.Summary {
	return features.Summary{
		TotalOrders:         2,
		TotalSpent:          decimal.RequireFromString("150"),
		Currency:            "USD",
		AvgOrderValue:       decimal.RequireFromString("75"),
		PurchasedCategories: []string{"Apparel"},
		HasBoughtSimilar:    false,
		Product: features.Product{
			Title:    "Trail Runner",
			Category: "Shoes",
			MaxPrice: decimal.RequireFromString("89.99"),
			Currency: "USD",
		},
	}
}

func TestParseScore(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{in: "Score: 35%", want: 35},
		{in: "72", want: 72},
		{in: "no idea", want: 0},
		{in: "", want: 0},
		{in: "150", want: 100},
		{in: "about 40 to 60", want: 40},
		{in: "99999999999999999999999", want: 100},
		{in: "007", want: 7},
		{in: "-20", want: 20},
	}
	for _, tc := range cases {
		if got := ParseScore(tc.in); got != tc.want {
			t.Errorf("ParseScore(%q) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestRequesterScoresFromModel(t *testing.T) {
	completer := &stubCompleter{text: "Score: 35%"}
	requester := NewRequester(completer, time.Second, logger.Nop())

	result := requester.Score(context.Background(), sampleSummary())
	if result.Value != 35 || result.Source != SourceModel {
		t.Fatalf("unexpected result %+v", result)
	}
	if completer.system != systemPrompt {
		t.Fatalf("unexpected system prompt %q", completer.system)
	}
}

func TestRequesterDefaultsOnError(t *testing.T) {
	requester := NewRequester(&stubCompleter{err: errors.New("boom")}, 0, nil)
	result := requester.Score(context.Background(), sampleSummary())
	if result.Value != DefaultScore || result.Source != SourceDefault {
		t.Fatalf("expected default score, got %+v", result)
	}
}

func TestRequesterDefaultsOnTimeout(t *testing.T) {
	requester := NewRequester(&stubCompleter{block: true}, 10*time.Millisecond, logger.Nop())
	result := requester.Score(context.Background(), sampleSummary())
	if result.Value != DefaultScore || result.Source != SourceDefault {
		t.Fatalf("expected default score on timeout, got %+v", result)
	}
}

func TestRequesterWithoutCompleter(t *testing.T) {
	result := NewRequester(nil, 0, nil).Score(context.Background(), sampleSummary())
	if result.Value != DefaultScore {
		t.Fatalf("expected default score, got %+v", result)
	}
}

func TestBuildPromptIncludesEveryFeature(t *testing.T) {
	prompt := BuildPrompt(sampleSummary())
	for _, want := range []string{
		"Total orders: 2",
		"Total spent: 150.00 USD",
		"Average order value: 75.00 USD",
		"Purchased categories: Apparel",
		"same category: no",
		"Title: Trail Runner",
		"Category: Shoes",
		"Price: 89.99 USD",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}
	if prompt != BuildPrompt(sampleSummary()) {
		t.Fatal("prompt is not deterministic")
	}
}

func TestBuildPromptWithoutHistory(t *testing.T) {
	prompt := BuildPrompt(features.Summary{Currency: "USD"})
	if !strings.Contains(prompt, "Purchased categories: none") {
		t.Fatalf("expected none categories:\n%s", prompt)
	}
	if !strings.Contains(prompt, "Category: uncategorized") {
		t.Fatalf("expected uncategorized product:\n%s", prompt)
	}
}
