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

// eventRepository implements the repository.EventRepository interface.
// The events table is append-only; this type exposes no update or delete.
type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository is the constructor for eventRepository.
func NewEventRepository(db *gorm.DB) repository.EventRepository {
	return &eventRepository{
		db: db,
	}
}

// AppendEvent persists a new event record.
func (repo *eventRepository) AppendEvent(ctx context.Context, event *entity.ItemEvent) error {
	eventM := fromEventDomain(event)

	if err := repo.db.WithContext(ctx).Create(eventM).Error; err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to append event")
	}

	return nil
}

// FindEventsByItem retrieves all events for an item, oldest first.
func (repo *eventRepository) FindEventsByItem(ctx context.Context, itemID uuid.UUID) ([]*entity.ItemEvent, error) {
	var eventModels []*model.EventModel

	if err := repo.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Order("created_at ASC").
		Find(&eventModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find events by item")
	}

	events := make([]*entity.ItemEvent, 0, len(eventModels))
	for _, eventM := range eventModels {
		events = append(events, toEventDomain(eventM))
	}

	return events, nil
}

// FindPurchaseTimes retrieves the timestamps of the most recent purchase
// events for an item, newest first.
func (repo *eventRepository) FindPurchaseTimes(ctx context.Context, itemID uuid.UUID, limit int) ([]time.Time, error) {
	var times []time.Time

	if err := repo.db.WithContext(ctx).
		Model(&model.EventModel{}).
		Where("item_id = ? AND event_type = ?", itemID, string(entity.EventItemPurchased)).
		Order("created_at DESC").
		Limit(limit).
		Pluck("created_at", &times).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find purchase times")
	}

	return times, nil
}

// fromEventDomain converts a domain entity into its GORM model.
func fromEventDomain(event *entity.ItemEvent) *model.EventModel {
	return &model.EventModel{
		ID:        event.ID,
		UserID:    event.UserID,
		ItemID:    event.ItemID,
		EventType: string(event.Type),
		DayOfWeek: event.DayOfWeek,
		HourOfDay: event.HourOfDay,
		CreatedAt: event.CreatedAt,
	}
}

// toEventDomain converts a GORM model into the domain entity.
func toEventDomain(eventM *model.EventModel) *entity.ItemEvent {
	return &entity.ItemEvent{
		ID:        eventM.ID,
		UserID:    eventM.UserID,
		ItemID:    eventM.ItemID,
		Type:      entity.EventType(eventM.EventType),
		DayOfWeek: eventM.DayOfWeek,
		HourOfDay: eventM.HourOfDay,
		CreatedAt: eventM.CreatedAt,
	}
}
