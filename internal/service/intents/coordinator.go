package intents

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/integrations/stripeclient"
)

// idempotencyNamespace пространство имен для ключей идемпотентности создания intent
var idempotencyNamespace = uuid.MustParse("8f0c5a6e-4d1b-5b7e-9a63-2f4de1c0b7a1")

// Coordinator единственная точка, которая обращается к процессору до оплаты.
// Один черновик - один intent: повторный вызов с existingID обновляет intent, а не создает новый.
type Coordinator struct {
	processor PaymentProcessor
	metrics   Metrics
	logger    Logger
}

// NewCoordinator создает координатор payment intent
func NewCoordinator(processor PaymentProcessor, metrics Metrics, logger Logger) *Coordinator {
	return &Coordinator{
		processor: processor,
		metrics:   metrics,
		logger:    logger,
	}
}

// CreateOrUpdateIntent создает intent для черновика или обновляет существующий.
// Сумма всегда пересчитывается по комнате, а не берется из черновика.
func (c *Coordinator) CreateOrUpdateIntent(ctx context.Context, draft IntentDraft, existingID string) (domain.PaymentIntentRef, error) {
	amount, err := domain.QuoteRoom(draft.Room, draft.Draft.Interval, draft.Draft.BreakfastIncluded)
	if err != nil {
		return domain.PaymentIntentRef{}, err
	}

	req := stripeclient.IntentRequest{
		Amount:   amount,
		Currency: draft.Currency,
		Metadata: draft.metadata(amount),
	}

	if existingID == "" {
		return c.create(ctx, draft, req, idempotencyKey(draft, amount), true)
	}

	intent, err := c.processor.UpdateIntent(ctx, existingID, req)
	c.metrics.RecordProcessorCall("update_intent", err)
	if err != nil {
		if errors.Is(err, stripeclient.ErrIntentNotFound) {
			c.logger.Warn("CreateOrUpdateIntent: intent=%s not found", existingID)
			return domain.PaymentIntentRef{}, fmt.Errorf("%w: %s", ErrIntentNotFound, existingID)
		}
		if errors.Is(err, stripeclient.ErrIntentNotMutable) {
			c.logger.Warn("CreateOrUpdateIntent: intent=%s can no longer be updated", existingID)
			return domain.PaymentIntentRef{}, fmt.Errorf("%w: %s", ErrIntentNotMutable, existingID)
		}
		c.logger.Error("CreateOrUpdateIntent: update intent=%s failed: %v", existingID, err)
		return domain.PaymentIntentRef{}, fmt.Errorf("%w: update intent %s: %v", domain.ErrProcessor, existingID, err)
	}

	c.logger.Info("CreateOrUpdateIntent: updated intent=%s room=%s amount=%d", intent.ID, draft.Room.ID, amount)
	return domain.PaymentIntentRef{PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
}

// create создает intent по ключу идемпотентности.
// Stripe 24 часа отвечает на тот же ключ кэшированным ответом создания, хотя сам intent
// за это время мог быть обновлен под другой черновик или уже оплачен. Поэтому повторенный
// intent приводится к текущей сумме, а если он уже закрыт - создается новый с разовым ключом.
func (c *Coordinator) create(ctx context.Context, draft IntentDraft, req stripeclient.IntentRequest, key string, reconcile bool) (domain.PaymentIntentRef, error) {
	req.IdempotencyKey = key

	intent, err := c.processor.CreateIntent(ctx, req)
	c.metrics.RecordProcessorCall("create_intent", err)
	if err != nil {
		c.logger.Error("CreateOrUpdateIntent: create intent for room=%s user=%s failed: %v", draft.Room.ID, draft.UserID, err)
		return domain.PaymentIntentRef{}, fmt.Errorf("%w: create intent: %v", domain.ErrProcessor, err)
	}

	if !intent.Replayed || !reconcile {
		c.logger.Info("CreateOrUpdateIntent: created intent=%s room=%s amount=%d", intent.ID, draft.Room.ID, req.Amount)
		return domain.PaymentIntentRef{PaymentIntentID: intent.ID, ClientSecret: intent.ClientSecret}, nil
	}

	req.IdempotencyKey = ""
	updated, err := c.processor.UpdateIntent(ctx, intent.ID, req)
	c.metrics.RecordProcessorCall("update_intent", err)
	switch {
	case err == nil:
		c.logger.Info("CreateOrUpdateIntent: replayed intent=%s synced to room=%s amount=%d", updated.ID, draft.Room.ID, req.Amount)
		return domain.PaymentIntentRef{PaymentIntentID: updated.ID, ClientSecret: updated.ClientSecret}, nil
	case errors.Is(err, stripeclient.ErrIntentNotMutable), errors.Is(err, stripeclient.ErrIntentNotFound):
		c.logger.Warn("CreateOrUpdateIntent: replayed intent=%s is closed, creating a new one: %v", intent.ID, err)
		return c.create(ctx, draft, req, uuid.NewString(), false)
	default:
		c.logger.Error("CreateOrUpdateIntent: sync replayed intent=%s failed: %v", intent.ID, err)
		return domain.PaymentIntentRef{}, fmt.Errorf("%w: update intent %s: %v", domain.ErrProcessor, intent.ID, err)
	}
}

// GetIntent читает intent для проверки при подтверждении
func (c *Coordinator) GetIntent(ctx context.Context, id string) (*stripeclient.Intent, error) {
	intent, err := c.processor.GetIntent(ctx, id)
	c.metrics.RecordProcessorCall("get_intent", err)
	if err != nil {
		if errors.Is(err, stripeclient.ErrIntentNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrIntentNotFound, id)
		}
		c.logger.Error("GetIntent: intent=%s: %v", id, err)
		return nil, fmt.Errorf("%w: get intent %s: %v", domain.ErrProcessor, id, err)
	}
	return intent, nil
}

// idempotencyKey детерминированный ключ: повтор того же запроса из той же сессии
// вернет уже созданный intent (с флагом Replayed)
func idempotencyKey(draft IntentDraft, amount int64) string {
	parts := []string{
		draft.SessionID,
		draft.UserID,
		draft.Room.ID,
		draft.Draft.Interval.String(),
		strconv.FormatBool(draft.Draft.BreakfastIncluded),
		strconv.FormatInt(amount, 10),
		draft.Currency,
	}
	return uuid.NewSHA1(idempotencyNamespace, []byte(strings.Join(parts, "|"))).String()
}
