// Package impl contains the concrete use case services.
package impl

import (
	"context"
	"strings"
	"time"

	"restock/config"
	"restock/internal/domain/entity"
	domainerrors "restock/internal/domain/errors"
	"restock/internal/domain/nlp"
	"restock/internal/domain/recurrence"
	"restock/internal/domain/repository"
	"restock/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// itemService is the service facade over the item store and event log. All
// state transitions write the item row and its event record inside one
// transaction, so a crash cannot leave a transition without its log entry.
type itemService struct {
	itemRepo  repository.ItemRepository
	eventRepo repository.EventRepository
	txManager repository.TransactionManager
	config    *config.Config

	// now is the clock used for all temporal decisions; injectable for tests.
	now func() time.Time
}

// NewItemService creates a new item service instance
func NewItemService(
	itemRepo repository.ItemRepository,
	eventRepo repository.EventRepository,
	txManager repository.TransactionManager,
	cfg *config.Config,
) usecase.ItemUsecase {
	return &itemService{
		itemRepo:  itemRepo,
		eventRepo: eventRepo,
		txManager: txManager,
		config:    cfg,
		now:       time.Now,
	}
}

// AddItem captures a single item, guarding against duplicate capture within
// the configured trailing window.
func (s *itemService) AddItem(ctx context.Context, input usecase.AddItemInput) (*usecase.AddItemResult, error) {
	if strings.TrimSpace(input.UserID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("user_id is required")
	}

	name := nlp.NormalizeName(input.Name)
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("item name is empty after normalization")
	}

	now := s.now()

	// Duplicate guard. Two near-simultaneous adds of the same name can both
	// pass this check before either commits; the guard is best-effort and
	// there is deliberately no unique index backing it.
	since := now.Add(-s.config.Tracking.DuplicateWindow)
	existing, err := s.itemRepo.FindActiveDuplicate(ctx, input.UserID, name, since)
	if err == nil {
		return &usecase.AddItemResult{Item: existing, IsNew: false}, nil
	}
	if !errors.Is(err, repository.ErrItemNotFound) {
		return nil, errors.Wrap(err, "failed to check for duplicate item")
	}

	category, err := resolveCategory(input.Category, name)
	if err != nil {
		return nil, err
	}

	urgency := entity.UrgencyNormal
	if input.Urgency != nil {
		if !input.Urgency.Valid() {
			return nil, domainerrors.ErrValidationFailed.WithDetails("unknown urgency: " + string(*input.Urgency))
		}
		urgency = *input.Urgency
	}

	item := &entity.Item{
		ID:        uuid.New(),
		UserID:    input.UserID,
		Name:      name,
		Category:  category,
		Urgency:   urgency,
		Status:    entity.StatusActive,
		CreatedAt: now,
	}

	err = s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewItemRepository().CreateItem(ctx, item); err != nil {
			return err
		}

		return f.NewEventRepository().AppendEvent(ctx, entity.NewItemEvent(item, entity.EventItemAdded, now))
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to add item")
	}

	return &usecase.AddItemResult{Item: item, IsNew: true}, nil
}

// ParseAndAddItems splits free text into item names and adds each one in
// input order. Duplicates are normal results, not errors.
func (s *itemService) ParseAndAddItems(ctx context.Context, userID, text string) ([]*usecase.AddItemResult, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("user_id is required")
	}

	names := nlp.SplitItems(text)
	if len(names) == 0 {
		return nil, domainerrors.ErrValidationFailed.WithDetails("no items recognized in text")
	}

	results := make([]*usecase.AddItemResult, 0, len(names))
	for _, name := range names {
		result, err := s.AddItem(ctx, usecase.AddItemInput{UserID: userID, Name: name})
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}

	return results, nil
}

// GetActiveItems retrieves the user's active items with derived freshness.
func (s *itemService) GetActiveItems(ctx context.Context, userID, sortBy string, category *entity.Category) ([]*usecase.ActiveItem, error) {
	if strings.TrimSpace(userID) == "" {
		return nil, domainerrors.ErrValidationFailed.WithDetails("user_id is required")
	}

	switch sortBy {
	case "", repository.SortByUrgency, repository.SortByNewest, repository.SortByName:
	default:
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown sort_by: " + sortBy)
	}

	if category != nil && !category.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown category: " + string(*category))
	}

	items, err := s.itemRepo.FindActiveItems(ctx, repository.ActiveItemQuery{
		UserID:   userID,
		Category: category,
		SortBy:   sortBy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to find active items")
	}

	now := s.now()
	active := make([]*usecase.ActiveItem, 0, len(items))
	for _, item := range items {
		active = append(active, &usecase.ActiveItem{
			Item: item,
			Freshness: item.FreshnessAt(now,
				s.config.Tracking.FreshnessAgingAfter,
				s.config.Tracking.FreshnessStaleAfter),
		})
	}

	return active, nil
}

// GetItem retrieves a single item by ID.
func (s *itemService) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	return item, nil
}

// GetItemEvents retrieves the full transition history of an item.
func (s *itemService) GetItemEvents(ctx context.Context, id uuid.UUID) ([]*entity.ItemEvent, error) {
	if _, err := s.GetItem(ctx, id); err != nil {
		return nil, err
	}

	events, err := s.eventRepo.FindEventsByItem(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to find events by item")
	}

	return events, nil
}

// CompleteItem marks an active item purchased and re-evaluates recurrence.
func (s *itemService) CompleteItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.findActiveItem(ctx, id, entity.StatusCompleted)
	if err != nil {
		return nil, err
	}

	now := s.now()
	purchasedAt := now
	item.Status = entity.StatusCompleted
	item.LastPurchasedAt = &purchasedAt
	item.PurchaseCount++

	if item.PurchaseCount >= s.config.Tracking.RecurrenceMinPurchases {
		history, err := s.eventRepo.FindPurchaseTimes(ctx, id, s.config.Tracking.RecurrenceMinPurchases)
		if err != nil {
			return nil, errors.Wrap(err, "failed to load purchase history")
		}

		estimate := recurrence.Analyze(append(history, now),
			s.config.Tracking.RecurrenceMinPurchases,
			s.config.Tracking.RecurrenceTolerance)
		if estimate.Regular {
			item.IsRecurring = true
		}
	}

	if err := s.persistTransition(ctx, item, entity.EventItemPurchased, now); err != nil {
		return nil, err
	}

	return item, nil
}

// CancelItem marks an active item cancelled.
func (s *itemService) CancelItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	item, err := s.findActiveItem(ctx, id, entity.StatusCancelled)
	if err != nil {
		return nil, err
	}

	now := s.now()
	item.Status = entity.StatusCancelled

	if err := s.persistTransition(ctx, item, entity.EventItemCancelled, now); err != nil {
		return nil, err
	}

	return item, nil
}

// UpdateUrgency changes the urgency of an active item.
func (s *itemService) UpdateUrgency(ctx context.Context, id uuid.UUID, urgency entity.Urgency) (*entity.Item, error) {
	if !urgency.Valid() {
		return nil, domainerrors.ErrValidationFailed.WithDetails("unknown urgency: " + string(urgency))
	}

	item, err := s.findActiveItem(ctx, id, entity.StatusActive)
	if err != nil {
		return nil, err
	}

	if err := s.itemRepo.UpdateUrgency(ctx, id, urgency); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to update urgency")
	}
	item.Urgency = urgency

	return item, nil
}

// AddNotes replaces the free-text notes of an active item.
func (s *itemService) AddNotes(ctx context.Context, id uuid.UUID, notes string) (*entity.Item, error) {
	item, err := s.findActiveItem(ctx, id, entity.StatusActive)
	if err != nil {
		return nil, err
	}

	trimmed := strings.TrimSpace(notes)
	if err := s.itemRepo.UpdateNotes(ctx, id, trimmed); err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to update notes")
	}
	item.Notes = trimmed

	return item, nil
}

// findActiveItem loads an item and verifies it can move to the target status.
// StatusActive as target means "must currently be active" for in-place
// mutations that are not lifecycle transitions.
func (s *itemService) findActiveItem(ctx context.Context, id uuid.UUID, target entity.Status) (*entity.Item, error) {
	item, err := s.itemRepo.FindItemByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return nil, domainerrors.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item")
	}

	if target == entity.StatusActive {
		if item.Status != entity.StatusActive {
			return nil, domainerrors.ErrItemNotActive
		}

		return item, nil
	}

	if !item.Status.CanTransitionTo(target) {
		return nil, domainerrors.ErrItemNotActive
	}

	return item, nil
}

// persistTransition writes the mutated item and its event atomically.
func (s *itemService) persistTransition(ctx context.Context, item *entity.Item, eventType entity.EventType, at time.Time) error {
	err := s.txManager.Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.NewItemRepository().UpdateItem(ctx, item); err != nil {
			return err
		}

		return f.NewEventRepository().AppendEvent(ctx, entity.NewItemEvent(item, eventType, at))
	})
	if err != nil {
		if errors.Is(err, repository.ErrItemNotFound) {
			return domainerrors.ErrItemNotFound
		}

		return errors.Wrap(err, "failed to persist item transition")
	}

	return nil
}

// resolveCategory validates a supplied category or derives one from the name.
func resolveCategory(supplied *entity.Category, name string) (entity.Category, error) {
	if supplied == nil {
		return nlp.Categorize(name), nil
	}

	if !supplied.Valid() {
		return "", domainerrors.ErrValidationFailed.WithDetails("unknown category: " + string(*supplied))
	}

	return *supplied, nil
}
