package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"restock/internal/delivery/http/validator"
	"restock/internal/domain/entity"
	domainerrors "restock/internal/domain/errors"
	"restock/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubItemUsecase implements usecase.ItemUsecase with overridable functions
// so each test controls exactly the calls it expects.
type stubItemUsecase struct {
	addItem          func(ctx context.Context, input usecase.AddItemInput) (*usecase.AddItemResult, error)
	parseAndAddItems func(ctx context.Context, userID, text string) ([]*usecase.AddItemResult, error)
	getActiveItems   func(ctx context.Context, userID, sortBy string, category *entity.Category) ([]*usecase.ActiveItem, error)
	getItem          func(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	getItemEvents    func(ctx context.Context, id uuid.UUID) ([]*entity.ItemEvent, error)
	completeItem     func(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	cancelItem       func(ctx context.Context, id uuid.UUID) (*entity.Item, error)
	updateUrgency    func(ctx context.Context, id uuid.UUID, urgency entity.Urgency) (*entity.Item, error)
	addNotes         func(ctx context.Context, id uuid.UUID, notes string) (*entity.Item, error)
}

func (s *stubItemUsecase) AddItem(ctx context.Context, input usecase.AddItemInput) (*usecase.AddItemResult, error) {
	return s.addItem(ctx, input)
}

func (s *stubItemUsecase) ParseAndAddItems(ctx context.Context, userID, text string) ([]*usecase.AddItemResult, error) {
	return s.parseAndAddItems(ctx, userID, text)
}

func (s *stubItemUsecase) GetActiveItems(ctx context.Context, userID, sortBy string, category *entity.Category) ([]*usecase.ActiveItem, error) {
	return s.getActiveItems(ctx, userID, sortBy, category)
}

func (s *stubItemUsecase) GetItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	return s.getItem(ctx, id)
}

func (s *stubItemUsecase) GetItemEvents(ctx context.Context, id uuid.UUID) ([]*entity.ItemEvent, error) {
	return s.getItemEvents(ctx, id)
}

func (s *stubItemUsecase) CompleteItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	return s.completeItem(ctx, id)
}

func (s *stubItemUsecase) CancelItem(ctx context.Context, id uuid.UUID) (*entity.Item, error) {
	return s.cancelItem(ctx, id)
}

func (s *stubItemUsecase) UpdateUrgency(ctx context.Context, id uuid.UUID, urgency entity.Urgency) (*entity.Item, error) {
	return s.updateUrgency(ctx, id, urgency)
}

func (s *stubItemUsecase) AddNotes(ctx context.Context, id uuid.UUID, notes string) (*entity.Item, error) {
	return s.addNotes(ctx, id, notes)
}

func newTestHandler(stub *stubItemUsecase) (*ItemHandler, *echo.Echo) {
	e := echo.New()
	e.Validator = validator.New()

	h := &ItemHandler{
		itemUC: stub,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	return h, e
}

func doJSON(e *echo.Echo, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Details string `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

func sampleItem() *entity.Item {
	return &entity.Item{
		ID:        uuid.New(),
		UserID:    "alice",
		Name:      "Milk",
		Category:  entity.CategoryGroceries,
		Urgency:   entity.UrgencyNormal,
		Status:    entity.StatusActive,
		CreatedAt: time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
	}
}

func TestItemHandler_CaptureItems(t *testing.T) {
	stub := &stubItemUsecase{
		parseAndAddItems: func(_ context.Context, userID, text string) ([]*usecase.AddItemResult, error) {
			assert.Equal(t, "alice", userID)
			assert.Equal(t, "buy milk and eggs", text)

			return []*usecase.AddItemResult{
				{Item: sampleItem(), IsNew: true},
				{Item: sampleItem(), IsNew: true},
			}, nil
		},
	}
	h, e := newTestHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/items", `{"user_id":"alice","text":"buy milk and eggs"}`)
	require.NoError(t, h.CaptureItems(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}

func TestItemHandler_CaptureItems_MissingFields(t *testing.T) {
	h, e := newTestHandler(&stubItemUsecase{})

	c, rec := doJSON(e, http.MethodPost, "/items", `{"user_id":"alice"}`)
	require.NoError(t, h.CaptureItems(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.False(t, env.Success)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
}

func TestItemHandler_CaptureItems_NoItemsRecognized(t *testing.T) {
	stub := &stubItemUsecase{
		parseAndAddItems: func(_ context.Context, _, _ string) ([]*usecase.AddItemResult, error) {
			return nil, domainerrors.ErrValidationFailed.WithDetails("no items recognized in text")
		},
	}
	h, e := newTestHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/items", `{"user_id":"alice","text":", and ,"}`)
	require.NoError(t, h.CaptureItems(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestItemHandler_AddItem_NewAndDuplicate(t *testing.T) {
	item := sampleItem()

	t.Run("new item returns 201", func(t *testing.T) {
		stub := &stubItemUsecase{
			addItem: func(_ context.Context, input usecase.AddItemInput) (*usecase.AddItemResult, error) {
				assert.Equal(t, "alice", input.UserID)
				assert.Equal(t, "milk", input.Name)
				assert.Nil(t, input.Category)

				return &usecase.AddItemResult{Item: item, IsNew: true}, nil
			},
		}
		h, e := newTestHandler(stub)

		c, rec := doJSON(e, http.MethodPost, "/items/single", `{"user_id":"alice","name":"milk"}`)
		require.NoError(t, h.AddItem(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})

	t.Run("duplicate returns 200", func(t *testing.T) {
		stub := &stubItemUsecase{
			addItem: func(_ context.Context, _ usecase.AddItemInput) (*usecase.AddItemResult, error) {
				return &usecase.AddItemResult{Item: item, IsNew: false}, nil
			},
		}
		h, e := newTestHandler(stub)

		c, rec := doJSON(e, http.MethodPost, "/items/single", `{"user_id":"alice","name":"milk"}`)
		require.NoError(t, h.AddItem(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("optional category and urgency are forwarded", func(t *testing.T) {
		stub := &stubItemUsecase{
			addItem: func(_ context.Context, input usecase.AddItemInput) (*usecase.AddItemResult, error) {
				require.NotNil(t, input.Category)
				require.NotNil(t, input.Urgency)
				assert.Equal(t, entity.CategoryBooks, *input.Category)
				assert.Equal(t, entity.UrgencyUrgent, *input.Urgency)

				return &usecase.AddItemResult{Item: item, IsNew: true}, nil
			},
		}
		h, e := newTestHandler(stub)

		c, rec := doJSON(e, http.MethodPost, "/items/single",
			`{"user_id":"alice","name":"atlas","category":"books","urgency":"urgent"}`)
		require.NoError(t, h.AddItem(c))

		assert.Equal(t, http.StatusCreated, rec.Code)
	})
}

func TestItemHandler_ListItems(t *testing.T) {
	stub := &stubItemUsecase{
		getActiveItems: func(_ context.Context, userID, sortBy string, category *entity.Category) ([]*usecase.ActiveItem, error) {
			assert.Equal(t, "alice", userID)
			assert.Equal(t, "newest", sortBy)
			require.NotNil(t, category)
			assert.Equal(t, entity.CategoryGroceries, *category)

			return []*usecase.ActiveItem{
				{Item: sampleItem(), Freshness: entity.FreshnessFresh},
			}, nil
		},
	}
	h, e := newTestHandler(stub)

	c, rec := doJSON(e, http.MethodGet, "/items?user_id=alice&sort_by=newest&category=groceries", "")
	require.NoError(t, h.ListItems(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
	assert.Contains(t, string(env.Data), `"freshness":"fresh"`)
}

func TestItemHandler_ListItems_MissingUserID(t *testing.T) {
	h, e := newTestHandler(&stubItemUsecase{})

	c, rec := doJSON(e, http.MethodGet, "/items", "")
	require.NoError(t, h.ListItems(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestItemHandler_GetItem_InvalidID(t *testing.T) {
	h, e := newTestHandler(&stubItemUsecase{})

	c, rec := doJSON(e, http.MethodGet, "/items/not-a-uuid", "")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")
	require.NoError(t, h.GetItem(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "INVALID_ID", env.Error.Code)
}

func TestItemHandler_GetItem_NotFound(t *testing.T) {
	stub := &stubItemUsecase{
		getItem: func(_ context.Context, _ uuid.UUID) (*entity.Item, error) {
			return nil, domainerrors.ErrItemNotFound
		},
	}
	h, e := newTestHandler(stub)

	id := uuid.New()
	c, rec := doJSON(e, http.MethodGet, "/items/"+id.String(), "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h.GetItem(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "ITEM_NOT_FOUND", env.Error.Code)
}

func TestItemHandler_CompleteItem(t *testing.T) {
	item := sampleItem()
	item.Status = entity.StatusCompleted
	item.PurchaseCount = 1

	stub := &stubItemUsecase{
		completeItem: func(_ context.Context, id uuid.UUID) (*entity.Item, error) {
			assert.Equal(t, item.ID, id)

			return item, nil
		},
	}
	h, e := newTestHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/items/"+item.ID.String()+"/complete", "")
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	require.NoError(t, h.CompleteItem(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Contains(t, string(env.Data), `"status":"completed"`)
}

func TestItemHandler_CompleteItem_NotActive(t *testing.T) {
	stub := &stubItemUsecase{
		completeItem: func(_ context.Context, _ uuid.UUID) (*entity.Item, error) {
			return nil, domainerrors.ErrItemNotActive
		},
	}
	h, e := newTestHandler(stub)

	id := uuid.New()
	c, rec := doJSON(e, http.MethodPost, "/items/"+id.String()+"/complete", "")
	c.SetParamNames("id")
	c.SetParamValues(id.String())
	require.NoError(t, h.CompleteItem(c))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.Equal(t, "ITEM_NOT_ACTIVE", env.Error.Code)
}

func TestItemHandler_CancelItem(t *testing.T) {
	item := sampleItem()
	item.Status = entity.StatusCancelled

	stub := &stubItemUsecase{
		cancelItem: func(_ context.Context, _ uuid.UUID) (*entity.Item, error) {
			return item, nil
		},
	}
	h, e := newTestHandler(stub)

	c, rec := doJSON(e, http.MethodPost, "/items/"+item.ID.String()+"/cancel", "")
	c.SetParamNames("id")
	c.SetParamValues(item.ID.String())
	require.NoError(t, h.CancelItem(c))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestItemHandler_UpdateItem(t *testing.T) {
	item := sampleItem()
	id := item.ID.String()

	t.Run("urgency only", func(t *testing.T) {
		stub := &stubItemUsecase{
			updateUrgency: func(_ context.Context, _ uuid.UUID, urgency entity.Urgency) (*entity.Item, error) {
				assert.Equal(t, entity.UrgencyUrgent, urgency)

				return item, nil
			},
		}
		h, e := newTestHandler(stub)

		c, rec := doJSON(e, http.MethodPatch, "/items/"+id, `{"urgency":"urgent"}`)
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.UpdateItem(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("notes only", func(t *testing.T) {
		stub := &stubItemUsecase{
			addNotes: func(_ context.Context, _ uuid.UUID, notes string) (*entity.Item, error) {
				assert.Equal(t, "oat milk", notes)

				return item, nil
			},
		}
		h, e := newTestHandler(stub)

		c, rec := doJSON(e, http.MethodPatch, "/items/"+id, `{"notes":"oat milk"}`)
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.UpdateItem(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("neither field is a validation error", func(t *testing.T) {
		h, e := newTestHandler(&stubItemUsecase{})

		c, rec := doJSON(e, http.MethodPatch, "/items/"+id, `{}`)
		c.SetParamNames("id")
		c.SetParamValues(id)
		require.NoError(t, h.UpdateItem(c))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		env := decodeEnvelope(t, rec)
		assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	})
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	c, rec := doJSON(e, http.MethodGet, "/health", "")

	require.NoError(t, HealthCheck(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)
}
