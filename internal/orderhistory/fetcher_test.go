package orderhistory

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/angelmondragon/wishlist-ai/pkg/shopify"
)

type stubHistoryClient struct {
	history *shopify.OrderHistory
	err     error
	lastReq shopify.OrderHistoryRequest
}

func (s *stubHistoryClient) CustomerOrderHistory(ctx context.Context, req shopify.OrderHistoryRequest) (*shopify.OrderHistory, error) {
	s.lastReq = req
	return s.history, s.err
}

func sampleOrder() shopify.Order {
	return shopify.Order{
		ID:        "gid://shopify/Order/1",
		Name:      "#1001",
		CreatedAt: "2024-01-02T15:04:05Z",
		TotalPriceSet: shopify.MoneyBag{
			ShopMoney: shopify.Money{Amount: "75.0", CurrencyCode: "USD"},
		},
		LineItems: shopify.LineItemConnection{Edges: []shopify.LineItemEdge{
			{Node: shopify.LineItem{Title: "Sneaker", Quantity: 2}},
			{Node: shopify.LineItem{Title: "Sock", Quantity: 1}},
		}},
	}
}

func TestFetchBuildsIDsAndSummaries(t *testing.T) {
	client := &stubHistoryClient{history: &shopify.OrderHistory{
		Customer: &shopify.Customer{Orders: shopify.OrderConnection{Edges: []shopify.OrderEdge{{Node: sampleOrder()}}}},
		Product:  &shopify.Product{ID: "gid://shopify/Product/9", Title: "Boot"},
	}}
	fetcher := NewFetcher(client, logger.Nop())

	history, ok := fetcher.Fetch(context.Background(), FetchInput{
		Shop: "demo.myshopify.com", AccessToken: "tok", CustomerID: "C1", ProductID: "P1",
	})
	if !ok {
		t.Fatal("expected fetch to succeed")
	}
	if client.lastReq.Shop != "demo.myshopify.com" || client.lastReq.AccessToken != "tok" || client.lastReq.CustomerID != "C1" {
		t.Fatalf("unexpected request %+v", client.lastReq)
	}
	if !reflect.DeepEqual(history.OrderIDs, []string{"gid://shopify/Order/1"}) {
		t.Fatalf("unexpected order ids %v", history.OrderIDs)
	}
	want := "#1001 on 2024-01-02: 2 x Sneaker, 1 x Sock (75.00 USD)"
	if len(history.Summaries) != 1 || history.Summaries[0] != want {
		t.Fatalf("unexpected summaries %v", history.Summaries)
	}
	if history.Product.Title != "Boot" {
		t.Fatalf("unexpected product %+v", history.Product)
	}
}

func TestFetchFailsClosed(t *testing.T) {
	cases := []struct {
		name   string
		client *stubHistoryClient
	}{
		{name: "transport error", client: &stubHistoryClient{err: errors.New("dial tcp: timeout")}},
		{name: "nil history", client: &stubHistoryClient{}},
		{name: "missing customer", client: &stubHistoryClient{history: &shopify.OrderHistory{Product: &shopify.Product{}}}},
		{name: "missing product", client: &stubHistoryClient{history: &shopify.OrderHistory{Customer: &shopify.Customer{}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			history, ok := NewFetcher(tc.client, nil).Fetch(context.Background(), FetchInput{CustomerID: "1", ProductID: "2"})
			if ok || history != nil {
				t.Fatalf("expected (nil, false), got (%v, %v)", history, ok)
			}
		})
	}
}

func TestFetchWithoutClient(t *testing.T) {
	if _, ok := NewFetcher(nil, nil).Fetch(context.Background(), FetchInput{}); ok {
		t.Fatal("expected fetch without client to fail")
	}
}

func TestSummarizeOrderFallbacks(t *testing.T) {
	got := SummarizeOrder(shopify.Order{ID: "gid://shopify/Order/5", CreatedAt: "yesterday"})
	if got != "gid://shopify/Order/5 on yesterday" {
		t.Fatalf("unexpected summary %q", got)
	}
}
