package wishlist

import (
	"context"
	"strings"
	"time"

	"github.com/angelmondragon/wishlist-ai/internal/features"
	"github.com/angelmondragon/wishlist-ai/internal/orderhistory"
	"github.com/angelmondragon/wishlist-ai/internal/scoring"
	"github.com/angelmondragon/wishlist-ai/pkg/db"
	"github.com/angelmondragon/wishlist-ai/pkg/db/models"
	"github.com/angelmondragon/wishlist-ai/pkg/enums"
	pkgerrors "github.com/angelmondragon/wishlist-ai/pkg/errors"
	"github.com/angelmondragon/wishlist-ai/pkg/logger"
	"github.com/angelmondragon/wishlist-ai/pkg/metrics"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

type repository interface {
	FindEntry(ctx context.Context, storeID uuid.UUID, customerID, productID string) (*models.WishlistEntry, error)
	InsertEntryIfAbsent(ctx context.Context, storeID uuid.UUID, customerID, productID string) (*models.WishlistEntry, bool, error)
	FindConversion(ctx context.Context, wishlistID uuid.UUID) (*models.ConversionRecord, error)
	CreateConversion(ctx context.Context, record *models.ConversionRecord) error
	DeleteByKey(ctx context.Context, storeID uuid.UUID, customerID, productID string) (int64, error)
}

type storeResolver interface {
	Resolve(ctx context.Context, shop string) (*models.Store, error)
}

type historyFetcher interface {
	Fetch(ctx context.Context, input orderhistory.FetchInput) (*orderhistory.OrderHistory, bool)
}

// ServiceParams groups dependencies for the wishlist service.
type ServiceParams struct {
	Repo    repository
	Stores  storeResolver
	Fetcher historyFetcher
	Scorer  scoring.Scorer
	Guard   ScoringGuard
	Metrics *metrics.WishlistMetrics
	Logger  *logger.Logger
	// ScoringTimeout bounds the shared fetch and score work for one entry.
	ScoringTimeout time.Duration
}

const defaultScoringTimeout = time.Minute

// Service toggles wishlist membership and scores first additions.
type Service interface {
	Toggle(ctx context.Context, input ToggleInput) (ToggleResult, error)
	Check(ctx context.Context, input CheckInput) (CheckResult, error)
}

type service struct {
	repo    repository
	stores  storeResolver
	fetcher historyFetcher
	scorer  scoring.Scorer
	guard   ScoringGuard
	metrics *metrics.WishlistMetrics
	logg    *logger.Logger
	group   singleflight.Group

	scoringTimeout time.Duration
}

// NewService builds a wishlist service with the required dependencies. Guard and
// Metrics are optional.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "wishlist repo is required")
	}
	if params.Stores == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "store resolver is required")
	}
	if params.Fetcher == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order history fetcher is required")
	}
	if params.Scorer == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "scorer is required")
	}
	logg := params.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	timeout := params.ScoringTimeout
	if timeout <= 0 {
		timeout = defaultScoringTimeout
	}
	return &service{
		repo:    params.Repo,
		stores:  params.Stores,
		fetcher: params.Fetcher,
		scorer:  params.Scorer,
		guard:   params.Guard,
		metrics: params.Metrics,
		logg:    logg,

		scoringTimeout: timeout,
	}, nil
}

// Toggle adds or removes the entry named by input.
func (s *service) Toggle(ctx context.Context, input ToggleInput) (ToggleResult, error) {
	customerID, productID, err := requireKey(input.CustomerID, input.ProductID)
	if err != nil {
		return ToggleResult{}, err
	}
	ctx = s.logg.WithWishlistKey(s.logg.WithShop(ctx, input.Shop), customerID, productID)

	store, err := s.stores.Resolve(ctx, input.Shop)
	if err != nil {
		return ToggleResult{}, err
	}

	var result ToggleResult
	switch input.Action {
	case enums.WishlistActionAdd:
		result, err = s.add(ctx, store, customerID, productID)
	case enums.WishlistActionRemove:
		result, err = s.remove(ctx, store, customerID, productID)
	default:
		return ToggleResult{}, pkgerrors.New(pkgerrors.CodeValidation, "Invalid action")
	}
	if err != nil {
		return ToggleResult{}, err
	}
	s.metrics.IncToggle(input.Action.String(), string(result.State))
	return result, nil
}

// Check reports membership and any stored score without side effects.
func (s *service) Check(ctx context.Context, input CheckInput) (CheckResult, error) {
	customerID, productID, err := requireKey(input.CustomerID, input.ProductID)
	if err != nil {
		return CheckResult{}, err
	}
	ctx = s.logg.WithWishlistKey(s.logg.WithShop(ctx, input.Shop), customerID, productID)

	store, err := s.stores.Resolve(ctx, input.Shop)
	if err != nil {
		return CheckResult{}, err
	}

	entry, err := s.repo.FindEntry(ctx, store.ID, customerID, productID)
	if err != nil {
		if isNotFound(err) {
			s.metrics.IncToggle(enums.WishlistActionCheck.String(), "absent")
			return CheckResult{InWishlist: false, Score: Unscored(ReasonNotInWishlist)}, nil
		}
		return CheckResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load wishlist entry")
	}

	score, err := s.storedScore(ctx, entry.ID)
	if err != nil {
		return CheckResult{}, err
	}
	s.metrics.IncToggle(enums.WishlistActionCheck.String(), "present")
	return CheckResult{InWishlist: true, Score: score}, nil
}

func (s *service) add(ctx context.Context, store *models.Store, customerID, productID string) (ToggleResult, error) {
	entry, created, err := s.repo.InsertEntryIfAbsent(ctx, store.ID, customerID, productID)
	if err != nil {
		return ToggleResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert wishlist entry")
	}
	ctx = s.logg.WithField(ctx, "wishlist_id", entry.ID.String())

	// the entry is committed from here on; scoring failures degrade the result
	existing, err := s.storedScore(ctx, entry.ID)
	if err != nil {
		s.logg.WarnErr(ctx, "conversion lookup failed, entry left unscored", err)
		return added(Unscored(ReasonStorageFailed)), nil
	}
	if existing.IsScored() {
		return ToggleResult{State: StateAdded, Score: existing, Message: MessageAlreadyAdded}, nil
	}
	if created {
		s.logg.Info(ctx, "wishlist entry created")
	}

	// joined callers share one run; it must outlive whichever caller started it
	ch := s.group.DoChan(entry.ID.String(), func() (any, error) {
		workCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.scoringTimeout)
		defer cancel()
		return s.scoreEntry(workCtx, store, entry), nil
	})
	select {
	case res := <-ch:
		return added(res.Val.(ScoreResult)), nil
	case <-ctx.Done():
		s.logg.Info(ctx, "caller gone before scoring finished")
		return added(Unscored(ReasonInProgress)), nil
	}
}

func added(score ScoreResult) ToggleResult {
	return ToggleResult{State: StateAdded, Score: score, Message: addedMessage(score)}
}

func (s *service) remove(ctx context.Context, store *models.Store, customerID, productID string) (ToggleResult, error) {
	removed, err := s.repo.DeleteByKey(ctx, store.ID, customerID, productID)
	if err != nil {
		return ToggleResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove wishlist entry")
	}
	if removed > 0 {
		s.logg.Info(ctx, "wishlist entry removed")
	}
	return ToggleResult{State: StateRemoved, Score: Unscored(ReasonNotInWishlist), Message: MessageRemoved}, nil
}

// scoreEntry runs fetch, extract and score for an entry that has no conversion record yet.
// Every failure is absorbed into an unscored result.
func (s *service) scoreEntry(ctx context.Context, store *models.Store, entry *models.WishlistEntry) ScoreResult {
	if s.guard != nil {
		release, acquired, err := s.guard.Acquire(ctx, entry.ID.String())
		switch {
		case err != nil:
			s.logg.WarnErr(ctx, "scoring guard unavailable, relying on storage constraint", err)
		case !acquired:
			s.logg.Info(ctx, "scoring already in progress elsewhere")
			return Unscored(ReasonInProgress)
		default:
			defer func() {
				if err := release(context.WithoutCancel(ctx)); err != nil {
					s.logg.WarnErr(ctx, "release scoring guard", err)
				}
			}()
		}
	}

	// a concurrent request may have finished between the first lookup and the guard
	if existing, err := s.storedScore(ctx, entry.ID); err != nil {
		s.logg.WarnErr(ctx, "conversion lookup failed, entry left unscored", err)
		return Unscored(ReasonStorageFailed)
	} else if existing.IsScored() {
		return existing
	}

	started := time.Now()
	history, ok := s.fetcher.Fetch(ctx, orderhistory.FetchInput{
		Shop:        store.Shop,
		AccessToken: store.AccessToken,
		CustomerID:  entry.CustomerID,
		ProductID:   entry.ProductID,
	})
	if !ok {
		s.metrics.IncFetchFailure()
		s.logg.Warn(ctx, "order history unavailable, entry left unscored")
		return Unscored(ReasonFetchUnavailable)
	}

	summary := features.Extract(history.Orders, history.Product)
	result := s.scorer.Score(ctx, summary)
	s.metrics.IncScore(string(result.Source))
	s.metrics.ObserveScoring(time.Since(started))

	record := &models.ConversionRecord{
		ID:           uuid.New(),
		WishlistID:   entry.ID,
		OrderIDs:     history.OrderIDs,
		OrderHistory: history.Summaries,
		Score:        result.Value,
	}
	if err := s.repo.CreateConversion(ctx, record); err != nil {
		if db.IsUniqueViolation(err, ConversionUniqueConstraint) {
			s.logg.Info(ctx, "conversion recorded by concurrent request")
			winner, findErr := s.repo.FindConversion(ctx, entry.ID)
			if findErr != nil {
				s.logg.WarnErr(ctx, "reload conversion record failed", findErr)
				return Unscored(ReasonStorageFailed)
			}
			return Scored(winner.Score)
		}
		s.logg.WarnErr(ctx, "persist conversion record failed, entry left unscored", err)
		return Unscored(ReasonStorageFailed)
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"score":        result.Value,
		"score_source": string(result.Source),
	}), "conversion score recorded")
	return Scored(result.Value)
}

func (s *service) storedScore(ctx context.Context, wishlistID uuid.UUID) (ScoreResult, error) {
	record, err := s.repo.FindConversion(ctx, wishlistID)
	if err != nil {
		if isNotFound(err) {
			return Unscored(ReasonNotScored), nil
		}
		return ScoreResult{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load conversion record")
	}
	return Scored(record.Score), nil
}

func addedMessage(score ScoreResult) string {
	if score.IsScored() {
		return MessageAdded
	}
	if score.Reason() == ReasonInProgress {
		return MessageAddedPending
	}
	return MessageAddedUnscored
}

func requireKey(customerID, productID string) (string, string, error) {
	customerID = strings.TrimSpace(customerID)
	productID = strings.TrimSpace(productID)
	if customerID == "" || productID == "" {
		return "", "", pkgerrors.New(pkgerrors.CodeValidation, MessageMissingParameters)
	}
	return customerID, productID, nil
}
