package controllers

import (
	"net/http"

	"github.com/angelmondragon/wishlist-ai/api/middleware"
	"github.com/angelmondragon/wishlist-ai/api/responses"
	"github.com/angelmondragon/wishlist-ai/api/validators"
	"github.com/angelmondragon/wishlist-ai/internal/wishlist"
	"github.com/angelmondragon/wishlist-ai/pkg/enums"
	pkgerrors "github.com/angelmondragon/wishlist-ai/pkg/errors"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
)

const (
	messageInvalidAction     = "Invalid action"
	messageInvalidParameters = "Invalid parameters"
)

type wishlistProxyQuery struct {
	Action     string `query:"action"`
	CustomerID string `query:"customer_id" validate:"required,max=255"`
	ProductID  string `query:"product_id" validate:"required,max=255"`
	Shop       string `query:"shop" validate:"required,max=255"`
}

type wishlistCheckResponse struct {
	Success         bool                 `json:"success"`
	InWishlist      bool                 `json:"inWishlist"`
	ConversionScore wishlist.ScoreResult `json:"conversionScore"`
}

type wishlistAddResponse struct {
	Success         bool                 `json:"success"`
	Action          wishlist.State       `json:"action"`
	ConversionScore wishlist.ScoreResult `json:"conversionScore"`
	Message         string               `json:"message"`
}

type wishlistRemoveResponse struct {
	Success bool           `json:"success"`
	Action  wishlist.State `json:"action"`
	Message string         `json:"message"`
}

// WishlistProxy serves the storefront app-proxy endpoint. check is a read and
// accepts GET or POST; add and remove require POST.
func WishlistProxy(svc wishlist.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "wishlist service unavailable"))
			return
		}

		var params wishlistProxyQuery
		if err := validators.BindQuery(r, &params); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if params.Shop == "" {
			params.Shop = middleware.ShopFromContext(ctx)
		}
		if err := validators.Validate(&params); err != nil {
			message := messageInvalidParameters
			if validators.MissingRequired(err) {
				message = wishlist.MessageMissingParameters
			}
			rejected := pkgerrors.New(pkgerrors.CodeValidation, message)
			if typed := pkgerrors.As(err); typed != nil {
				rejected = rejected.WithDetails(typed.Details())
			}
			responses.WriteError(ctx, logg, w, rejected)
			return
		}

		action, err := enums.ParseWishlistAction(params.Action)
		if err != nil || (action.IsMutation() && r.Method != http.MethodPost) {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, messageInvalidAction))
			return
		}

		if action == enums.WishlistActionCheck {
			result, err := svc.Check(ctx, wishlist.CheckInput{
				Shop:       params.Shop,
				CustomerID: params.CustomerID,
				ProductID:  params.ProductID,
			})
			if err != nil {
				responses.WriteError(ctx, logg, w, err)
				return
			}
			responses.WriteJSON(w, http.StatusOK, wishlistCheckResponse{
				Success:         true,
				InWishlist:      result.InWishlist,
				ConversionScore: result.Score,
			})
			return
		}

		result, err := svc.Toggle(ctx, wishlist.ToggleInput{
			Shop:       params.Shop,
			CustomerID: params.CustomerID,
			ProductID:  params.ProductID,
			Action:     action,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if result.State == wishlist.StateRemoved {
			responses.WriteJSON(w, http.StatusOK, wishlistRemoveResponse{
				Success: true,
				Action:  result.State,
				Message: result.Message,
			})
			return
		}
		responses.WriteJSON(w, http.StatusOK, wishlistAddResponse{
			Success:         true,
			Action:          result.State,
			ConversionScore: result.Score,
			Message:         result.Message,
		})
	}
}
