package scoring

import (
	"fmt"
	"strings"

	"github.com/angelmondragon/wishlist-ai/internal/features"
)

const systemPrompt = "You estimate how likely a shopper is to buy a wishlisted product. " +
	"Reply with a single integer between 0 and 100 and nothing else."

// BuildPrompt renders the feature summary as the user message sent to the model.
func BuildPrompt(summary features.Summary) string {
	categories := "none"
	if len(summary.PurchasedCategories) > 0 {
		categories = strings.Join(summary.PurchasedCategories, ", ")
	}
	similar := "no"
	if summary.HasBoughtSimilar {
		similar = "yes"
	}
	productCategory := summary.Product.Category
	if productCategory == "" {
		productCategory = "uncategorized"
	}

	var b strings.Builder
	b.WriteString("A shopper added a product to their wishlist.\n\n")
	b.WriteString("Shopper purchase history (most recent orders):\n")
	fmt.Fprintf(&b, "- Total orders: %d\n", summary.TotalOrders)
	fmt.Fprintf(&b, "- Total spent: %s %s\n", summary.TotalSpent.StringFixed(2), summary.Currency)
	fmt.Fprintf(&b, "- Average order value: %s %s\n", summary.AvgOrderValue.StringFixed(2), summary.Currency)
	fmt.Fprintf(&b, "- Purchased categories: %s\n", categories)
	fmt.Fprintf(&b, "- Has bought from the same category: %s\n\n", similar)
	b.WriteString("Wishlisted product:\n")
	fmt.Fprintf(&b, "- Title: %s\n", summary.Product.Title)
	fmt.Fprintf(&b, "- Category: %s\n", productCategory)
	fmt.Fprintf(&b, "- Price: %s %s\n\n", summary.Product.MaxPrice.StringFixed(2), summary.Product.Currency)
	b.WriteString("On a scale of 0 to 100, how likely is this shopper to purchase the product?")
	return b.String()
}
