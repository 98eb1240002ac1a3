package shopify

import (
	"context"
	"strings"

	pkgerrors "github.com/angelmondragon/wishlist-ai/pkg/errors"
)

const gidPrefix = "gid://shopify/"

// CustomerOrderHistoryQuery fetches the newest orders of a customer and the target product.
const CustomerOrderHistoryQuery = `query GetCustomerOrderHistory($customerId: ID!, $productId: ID!) {
  customer(id: $customerId) {
    id
    orders(first: 10, sortKey: CREATED_AT, reverse: true) {
      edges {
        node {
          id
          name
          createdAt
          totalPriceSet {
            shopMoney {
              amount
              currencyCode
            }
          }
          lineItems(first: 10) {
            edges {
              node {
                title
                quantity
                variant {
                  id
                  product {
                    productType
                  }
                }
              }
            }
          }
        }
      }
    }
  }
  product(id: $productId) {
    id
    title
    productType
    priceRangeV2 {
      maxVariantPrice {
        amount
        currencyCode
      }
    }
  }
}`

// Money is a decimal string amount with its ISO currency code.
type Money struct {
	Amount       string `json:"amount"`
	CurrencyCode string `json:"currencyCode"`
}

type MoneyBag struct {
	ShopMoney Money `json:"shopMoney"`
}

type VariantProduct struct {
	ProductType string `json:"productType"`
}

type Variant struct {
	ID      string          `json:"id"`
	Product *VariantProduct `json:"product"`
}

type LineItem struct {
	Title    string   `json:"title"`
	Quantity int      `json:"quantity"`
	Variant  *Variant `json:"variant"`
}

// Category returns the product type of the purchased variant, if known.
func (l LineItem) Category() string {
	if l.Variant == nil || l.Variant.Product == nil {
		return ""
	}
	return strings.TrimSpace(l.Variant.Product.ProductType)
}

type LineItemEdge struct {
	Node LineItem `json:"node"`
}

type LineItemConnection struct {
	Edges []LineItemEdge `json:"edges"`
}

type Order struct {
	ID            string             `json:"id"`
	Name          string             `json:"name"`
	CreatedAt     string             `json:"createdAt"`
	TotalPriceSet MoneyBag           `json:"totalPriceSet"`
	LineItems     LineItemConnection `json:"lineItems"`
}

type OrderEdge struct {
	Node Order `json:"node"`
}

type OrderConnection struct {
	Edges []OrderEdge `json:"edges"`
}

type Customer struct {
	ID     string          `json:"id"`
	Orders OrderConnection `json:"orders"`
}

type PriceRange struct {
	MaxVariantPrice Money `json:"maxVariantPrice"`
}

// Product is the wishlisted product as returned by the Admin API.
type Product struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	ProductType  string     `json:"productType"`
	PriceRangeV2 PriceRange `json:"priceRangeV2"`
}

// OrderHistoryRequest identifies the shop, credentials and subjects of a lookup.
type OrderHistoryRequest struct {
	Shop        string
	AccessToken string
	CustomerID  string
	ProductID   string
}

type orderHistoryVariables struct {
	CustomerID string `json:"customerId"`
	ProductID  string `json:"productId"`
}

// OrderHistory is the decoded data object of CustomerOrderHistoryQuery.
type OrderHistory struct {
	Customer *Customer `json:"customer"`
	Product  *Product  `json:"product"`
}

// CustomerOrderHistory runs CustomerOrderHistoryQuery for the request.
func (c *Client) CustomerOrderHistory(ctx context.Context, req OrderHistoryRequest) (*OrderHistory, error) {
	if strings.TrimSpace(req.CustomerID) == "" || strings.TrimSpace(req.ProductID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer and product ids are required")
	}
	variables := orderHistoryVariables{
		CustomerID: CustomerGID(req.CustomerID),
		ProductID:  ProductGID(req.ProductID),
	}

	var history OrderHistory
	if err := c.Do(ctx, req.Shop, req.AccessToken, CustomerOrderHistoryQuery, variables, &history); err != nil {
		return nil, err
	}
	if history.Customer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	if history.Product == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return &history, nil
}

// CustomerGID converts a numeric customer id into a global id.
func CustomerGID(id string) string {
	return globalID("Customer", id)
}

// ProductGID converts a numeric product id into a global id.
func ProductGID(id string) string {
	return globalID("Product", id)
}

func globalID(resource, id string) string {
	trimmed := strings.TrimSpace(id)
	if strings.HasPrefix(trimmed, gidPrefix) {
		return trimmed
	}
	return gidPrefix + resource + "/" + trimmed
}
