package stores

import (
	"context"
	"errors"
	"strings"

	"github.com/angelmondragon/wishlist-ai/pkg/db/models"
	"github.com/angelmondragon/wishlist-ai/pkg/enums"
	pkgerrors "github.com/angelmondragon/wishlist-ai/pkg/errors"
	"gorm.io/gorm"
)

type storeRepository interface {
	FindByShop(ctx context.Context, shop string) (*models.Store, error)
}

// Service resolves shop domains to installed store accounts.
type Service interface {
	Resolve(ctx context.Context, shop string) (*models.Store, error)
}

type service struct {
	repo storeRepository
}

// NewService builds the store service.
func NewService(repo storeRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store repository required")
	}
	return &service{repo: repo}, nil
}

// Resolve returns the installed store for shop. Unknown and uninstalled shops are not found.
func (s *service) Resolve(ctx context.Context, shop string) (*models.Store, error) {
	domain := NormalizeShop(shop)
	if domain == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "shop is required")
	}
	store, err := s.repo.FindByShop(ctx, domain)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "Store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.Status == enums.StoreStatusUninstalled {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
	}
	return store, nil
}

// NormalizeShop lowercases and trims a shop domain, dropping any scheme or trailing slash.
func NormalizeShop(shop string) string {
	domain := strings.ToLower(strings.TrimSpace(shop))
	domain = strings.TrimPrefix(domain, "https://")
	domain = strings.TrimPrefix(domain, "http://")
	return strings.TrimRight(domain, "/")
}
