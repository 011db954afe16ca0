package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"campus-hub/pkg/logger"
	"campus-hub/pkg/push"
	"campus-hub/services/notifier/internal/entity"
	"campus-hub/services/notifier/internal/repo/persistent"
)

type DispatchUseCase interface {
	// HandleDocumentCreated never fails the trigger: every problem is
	// reported through the returned result and the sinks.
	HandleDocumentCreated(ctx context.Context, ev entity.TriggerEvent) entity.DispatchResult
}

// DispatchLedger guards against dispatching the same document twice.
type DispatchLedger interface {
	Claim(ctx context.Context, collection, documentID string) (bool, error)
}

// ResultSink receives every dispatch result.
type ResultSink interface {
	Record(result entity.DispatchResult)
}

type Options struct {
	AndroidChannelID string
	DefaultTitle     string
	DefaultBody      string
	Timeout          time.Duration
}

type dispatchUseCase struct {
	userRepo persistent.UserRepository
	gateway  push.Gateway
	ledger   DispatchLedger
	sinks    []ResultSink
	opts     Options
	logger   *logger.Logger
}

// NewDispatchUseCase wires the dispatcher. ledger may be nil.
func NewDispatchUseCase(userRepo persistent.UserRepository, gateway push.Gateway, ledger DispatchLedger, opts Options, logger *logger.Logger, sinks ...ResultSink) DispatchUseCase {
	if opts.AndroidChannelID == "" {
		opts.AndroidChannelID = "campus_hub_channel"
	}
	if opts.DefaultTitle == "" {
		opts.DefaultTitle = "CampusHub"
	}
	if opts.DefaultBody == "" {
		opts.DefaultBody = "New notification"
	}
	return &dispatchUseCase{
		userRepo: userRepo,
		gateway:  gateway,
		ledger:   ledger,
		sinks:    sinks,
		opts:     opts,
		logger:   logger,
	}
}

func (uc *dispatchUseCase) HandleDocumentCreated(ctx context.Context, ev entity.TriggerEvent) (result entity.DispatchResult) {
	result = entity.DispatchResult{Collection: ev.Collection, DocumentID: ev.DocumentID}
	defer func() {
		if r := recover(); r != nil {
			result = result.Failed(fmt.Errorf("panic during dispatch: %v", r))
		}
		uc.record(result)
	}()

	category, ok := entity.LookupCategory(ev.Collection)
	if !ok {
		return result.Skipped(entity.ReasonUnknownCollection)
	}
	result.Mode = category.Mode
	result.Tag = category.Tag

	if uc.opts.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.opts.Timeout)
		defer cancel()
	}

	if uc.ledger != nil {
		claimed, err := uc.ledger.Claim(ctx, ev.Collection, ev.DocumentID)
		if err != nil {
			uc.logger.Warn("Dispatch ledger unavailable for %s/%s, sending anyway: %v", ev.Collection, ev.DocumentID, err)
		} else if !claimed {
			result.Outcome = entity.OutcomeDuplicate
			result.Reason = entity.ReasonAlreadyDispatched
			return result
		}
	}

	switch category.Mode {
	case entity.ModeSingle:
		return uc.sendToUser(ctx, ev, result)
	default:
		return uc.broadcast(ctx, ev, category, result)
	}
}

func (uc *dispatchUseCase) sendToUser(ctx context.Context, ev entity.TriggerEvent, result entity.DispatchResult) entity.DispatchResult {
	userID := ev.String("userId")
	if userID == "" {
		return result.Skipped(entity.ReasonMissingUserID)
	}
	result.UserID = userID

	token, err := uc.userRepo.GetDeliveryToken(ctx, userID)
	if errors.Is(err, persistent.ErrUserNotFound) {
		return result.Skipped(entity.ReasonUserNotFound)
	}
	if err != nil {
		return result.Failed(err)
	}
	if token == "" {
		return result.Skipped(entity.ReasonNoToken)
	}

	payload := uc.personalPayload(ev)
	result.Tag = payload.Data["type"]
	result.Targeted = 1

	messageID, err := uc.gateway.Send(ctx, token, payload)
	if err != nil {
		result.FailureCount = 1
		return result.Failed(err)
	}

	result.Outcome = entity.OutcomeSent
	result.SuccessCount = 1
	result.MessageID = messageID
	return result
}

func (uc *dispatchUseCase) broadcast(ctx context.Context, ev entity.TriggerEvent, category entity.Category, result entity.DispatchResult) entity.DispatchResult {
	tokens, err := uc.userRepo.ListDeliveryTokens(ctx)
	if err != nil {
		return result.Failed(err)
	}
	if len(tokens) == 0 {
		return result.Skipped(entity.ReasonNoTokens)
	}
	result.Targeted = len(tokens)

	resp, err := uc.gateway.SendMulticast(ctx, tokens, uc.broadcastPayload(ev, category))
	result.SuccessCount = resp.SuccessCount
	result.FailureCount = resp.FailureCount
	if err != nil {
		return result.Failed(err)
	}

	result.Outcome = entity.OutcomeSent
	return result
}

// personalPayload uses the document's own title, description and type.
// relatedId and notificationId are both the document id.
func (uc *dispatchUseCase) personalPayload(ev entity.TriggerEvent) push.Payload {
	return push.Payload{
		Title: ev.StringOr("title", uc.opts.DefaultTitle),
		Body:  ev.StringOr("description", uc.opts.DefaultBody),
		Data: map[string]string{
			"type":           ev.StringOr("type", entity.TagGeneral),
			"relatedId":      ev.DocumentID,
			"notificationId": ev.DocumentID,
		},
		Android: &push.AndroidHints{
			Priority:              "high",
			Sound:                 "default",
			ChannelID:             uc.opts.AndroidChannelID,
			HighNotificationPrio:  true,
			DefaultSound:          true,
			DefaultVibrateTimings: true,
		},
		APNS: &push.APNSHints{Sound: "default", Badge: 1},
	}
}

func (uc *dispatchUseCase) broadcastPayload(ev entity.TriggerEvent, category entity.Category) push.Payload {
	title, body := category.Render(ev)
	return push.Payload{
		Title: title,
		Body:  body,
		Data: map[string]string{
			"type":      category.Tag,
			"relatedId": ev.DocumentID,
		},
		Android: &push.AndroidHints{
			Priority:  "high",
			Sound:     "default",
			ChannelID: uc.opts.AndroidChannelID,
		},
	}
}

func (uc *dispatchUseCase) record(result entity.DispatchResult) {
	for _, sink := range uc.sinks {
		sink.Record(result)
	}
}
