package orderhistory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/angelmondragon/wishlist-ai/pkg/shopify"
	"github.com/shopspring/decimal"
)

type historyClient interface {
	CustomerOrderHistory(ctx context.Context, req shopify.OrderHistoryRequest) (*shopify.OrderHistory, error)
}

// FetchInput identifies whose history to load and for which product.
type FetchInput struct {
	Shop        string
	AccessToken string
	CustomerID  string
	ProductID   string
}

// OrderHistory is the bounded order sample plus the target product.
type OrderHistory struct {
	Orders    []shopify.OrderEdge
	Product   *shopify.Product
	OrderIDs  []string
	Summaries []string
}

// Fetcher loads order history and fails closed.
type Fetcher struct {
	client historyClient
	logg   *logger.Logger
}

func NewFetcher(client historyClient, logg *logger.Logger) *Fetcher {
	if logg == nil {
		logg = logger.Nop()
	}
	return &Fetcher{client: client, logg: logg}
}

// Fetch returns the history and true, or nil and false when anything goes wrong.
func (f *Fetcher) Fetch(ctx context.Context, input FetchInput) (*OrderHistory, bool) {
	if f == nil || f.client == nil {
		return nil, false
	}

	result, err := f.client.CustomerOrderHistory(ctx, shopify.OrderHistoryRequest{
		Shop:        input.Shop,
		AccessToken: input.AccessToken,
		CustomerID:  input.CustomerID,
		ProductID:   input.ProductID,
	})
	if err != nil {
		f.logg.WarnErr(ctx, "order history unavailable", err)
		return nil, false
	}
	if result == nil || result.Customer == nil || result.Product == nil {
		f.logg.Warn(ctx, "order history response missing customer or product")
		return nil, false
	}

	orders := result.Customer.Orders.Edges
	history := &OrderHistory{
		Orders:    orders,
		Product:   result.Product,
		OrderIDs:  make([]string, 0, len(orders)),
		Summaries: make([]string, 0, len(orders)),
	}
	for _, edge := range orders {
		history.OrderIDs = append(history.OrderIDs, edge.Node.ID)
		history.Summaries = append(history.Summaries, SummarizeOrder(edge.Node))
	}
	return history, true
}

// SummarizeOrder renders an order as "#1001 on 2024-01-02: 2 x Sneaker (75.00 USD)".
func SummarizeOrder(order shopify.Order) string {
	label := strings.TrimSpace(order.Name)
	if label == "" {
		label = order.ID
	}

	var b strings.Builder
	b.WriteString(label)
	if date := orderDate(order.CreatedAt); date != "" {
		b.WriteString(" on ")
		b.WriteString(date)
	}

	items := make([]string, 0, len(order.LineItems.Edges))
	for _, edge := range order.LineItems.Edges {
		items = append(items, fmt.Sprintf("%d x %s", edge.Node.Quantity, strings.TrimSpace(edge.Node.Title)))
	}
	if len(items) > 0 {
		b.WriteString(": ")
		b.WriteString(strings.Join(items, ", "))
	}

	money := order.TotalPriceSet.ShopMoney
	if amount := formatAmount(money.Amount); amount != "" {
		fmt.Fprintf(&b, " (%s %s)", amount, strings.TrimSpace(money.CurrencyCode))
	}
	return b.String()
}

func orderDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return ts.UTC().Format(time.DateOnly)
	}
	return raw
}

func formatAmount(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return raw
	}
	return amount.StringFixed(2)
}
