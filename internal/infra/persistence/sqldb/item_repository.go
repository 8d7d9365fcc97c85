package sqldb

import (
	"context"
	"time"

	"restock/internal/domain/entity"
	domainerrors "restock/internal/domain/errors"
	"restock/internal/domain/repository"
	"restock/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// itemRepository implements the repository.ItemRepository interface.
type itemRepository struct {
	db *gorm.DB
}

// NewItemRepository is the constructor for itemRepository.
func NewItemRepository(db *gorm.DB) repository.ItemRepository {
	return &itemRepository{
		db: db,
	}
}

// CreateItem persists a new item.
func (repo *itemRepository) CreateItem(ctx context.Context, item *entity.Item) error {
	itemM := fromItemDomain(item)

	if err := repo.db.WithContext(ctx).Create(itemM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to create item")
	}

	return nil
}

// FindItemByID retrieves an item by its unique ID.
func (repo *itemRepository) FindItemByID(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("id = ?", id).
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find item by ID")
	}

	return toItemDomain(&itemM), nil
}

// FindActiveDuplicate retrieves the most recent active item with the same
// name (case-insensitive) captured by the user at or after the given time.
func (repo *itemRepository) FindActiveDuplicate(ctx context.Context, userID, name string, since time.Time) (*entity.Item, error) {
	var itemM model.ItemModel

	if err := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ? AND LOWER(name) = LOWER(?) AND created_at >= ?",
			userID, string(entity.StatusActive), name, since).
		Order("created_at DESC").
		First(&itemM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrItemNotFound
		}

		return nil, errors.Wrap(err, "failed to find duplicate item")
	}

	return toItemDomain(&itemM), nil
}

// FindActiveItems retrieves all active items matching the query.
func (repo *itemRepository) FindActiveItems(ctx context.Context, query repository.ActiveItemQuery) ([]*entity.Item, error) {
	tx := repo.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", query.UserID, string(entity.StatusActive))

	if query.Category != nil {
		tx = tx.Where("category = ?", string(*query.Category))
	}

	switch query.SortBy {
	case repository.SortByNewest:
		tx = tx.Order("created_at DESC")
	case repository.SortByName:
		tx = tx.Order("LOWER(name) ASC")
	default:
		// Urgency bands first, newest capture first within each band.
		tx = tx.Order("CASE urgency WHEN 'urgent' THEN 0 WHEN 'normal' THEN 1 ELSE 2 END").
			Order("created_at DESC")
	}

	var itemModels []*model.ItemModel
	if err := tx.Find(&itemModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find active items")
	}

	items := make([]*entity.Item, 0, len(itemModels))
	for _, itemM := range itemModels {
		items = append(items, toItemDomain(itemM))
	}

	return items, nil
}

// UpdateItem persists the mutable fields of an item.
func (repo *itemRepository) UpdateItem(ctx context.Context, item *entity.Item) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", item.ID).
		Updates(map[string]any{
			"status":            string(item.Status),
			"urgency":           string(item.Urgency),
			"last_purchased_at": item.LastPurchasedAt,
			"purchase_count":    item.PurchaseCount,
			"is_recurring":      item.IsRecurring,
			"notes":             item.Notes,
		})

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update item")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// UpdateUrgency updates the urgency of an item.
func (repo *itemRepository) UpdateUrgency(ctx context.Context, id uuid.UUID, urgency entity.Urgency) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", id).
		Update("urgency", string(urgency))

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update item urgency")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// UpdateNotes updates the free-text notes of an item.
func (repo *itemRepository) UpdateNotes(ctx context.Context, id uuid.UUID, notes string) error {
	result := repo.db.WithContext(ctx).
		Model(&model.ItemModel{}).
		Where("id = ?", id).
		Update("notes", notes)

	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to update item notes")
	}

	if result.RowsAffected == 0 {
		return repository.ErrItemNotFound
	}

	return nil
}

// fromItemDomain converts a domain entity into its GORM model.
func fromItemDomain(item *entity.Item) *model.ItemModel {
	return &model.ItemModel{
		ID:              item.ID,
		UserID:          item.UserID,
		Name:            item.Name,
		Category:        string(item.Category),
		Urgency:         string(item.Urgency),
		Status:          string(item.Status),
		CreatedAt:       item.CreatedAt,
		LastPurchasedAt: item.LastPurchasedAt,
		PurchaseCount:   item.PurchaseCount,
		IsRecurring:     item.IsRecurring,
		Notes:           item.Notes,
	}
}

// toItemDomain converts a GORM model into the domain entity.
func toItemDomain(itemM *model.ItemModel) *entity.Item {
	return &entity.Item{
		ID:              itemM.ID,
		UserID:          itemM.UserID,
		Name:            itemM.Name,
		Category:        entity.Category(itemM.Category),
		Urgency:         entity.Urgency(itemM.Urgency),
		Status:          entity.Status(itemM.Status),
		CreatedAt:       itemM.CreatedAt,
		LastPurchasedAt: itemM.LastPurchasedAt,
		PurchaseCount:   itemM.PurchaseCount,
		IsRecurring:     itemM.IsRecurring,
		Notes:           itemM.Notes,
	}
}
