package features

import (
	"sort"
	"strings"

	"github.com/angelmondragon/wishlist-ai/pkg/shopify"
	"github.com/shopspring/decimal"
)

// FallbackCurrency is used when no order carries a currency code.
const FallbackCurrency = "USD"

// Product describes the wishlisted product as seen by the scoring prompt.
type Product struct {
	Title    string
	Category string
	MaxPrice decimal.Decimal
	Currency string
}

// Summary is the purchase-behavior feature set derived from an order history sample.
type Summary struct {
	TotalOrders         int
	TotalSpent          decimal.Decimal
	Currency            string
	AvgOrderValue       decimal.Decimal
	PurchasedCategories []string
	HasBoughtSimilar    bool
	Product             Product
}

// Extract derives a Summary from order edges and the target product. It performs no I/O.
func Extract(orders []shopify.OrderEdge, product *shopify.Product) Summary {
	summary := Summary{
		TotalOrders:         len(orders),
		TotalSpent:          decimal.Zero,
		AvgOrderValue:       decimal.Zero,
		Currency:            FallbackCurrency,
		PurchasedCategories: []string{},
	}

	categories := map[string]struct{}{}
	for i, edge := range orders {
		money := edge.Node.TotalPriceSet.ShopMoney
		summary.TotalSpent = summary.TotalSpent.Add(parseAmount(money.Amount))
		if i == 0 && strings.TrimSpace(money.CurrencyCode) != "" {
			summary.Currency = strings.TrimSpace(money.CurrencyCode)
		}
		for _, item := range edge.Node.LineItems.Edges {
			if category := item.Node.Category(); category != "" {
				categories[category] = struct{}{}
			}
		}
	}

	for category := range categories {
		summary.PurchasedCategories = append(summary.PurchasedCategories, category)
	}
	sort.Strings(summary.PurchasedCategories)

	if summary.TotalOrders > 0 {
		summary.AvgOrderValue = summary.TotalSpent.Div(decimal.NewFromInt(int64(summary.TotalOrders)))
	}

	if product != nil {
		price := product.PriceRangeV2.MaxVariantPrice
		summary.Product = Product{
			Title:    strings.TrimSpace(product.Title),
			Category: strings.TrimSpace(product.ProductType),
			MaxPrice: parseAmount(price.Amount),
			Currency: strings.TrimSpace(price.CurrencyCode),
		}
		if summary.Product.Currency == "" {
			summary.Product.Currency = summary.Currency
		}
		if summary.Product.Category != "" {
			_, summary.HasBoughtSimilar = categories[summary.Product.Category]
		}
	}

	return summary
}

func parseAmount(raw string) decimal.Decimal {
	amount, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero
	}
	return amount
}
