package push

import (
	"context"
	"fmt"

	"campus-hub/pkg/config"
	"campus-hub/pkg/logger"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// MaxMulticastTokens is the FCM ceiling for one SendEachForMulticast call.
const MaxMulticastTokens = 500

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
	SendEachForMulticast(ctx context.Context, message *messaging.MulticastMessage) (*messaging.BatchResponse, error)
}

type FCMGateway struct {
	client messagingClient
	logger *logger.Logger
}

func NewFCMGateway(ctx context.Context, cfg *config.Config, log *logger.Logger) (*FCMGateway, error) {
	var opts []option.ClientOption
	if cfg.FirebaseCredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.FirebaseCredentialsFile))
	}

	var fbConfig *firebase.Config
	if cfg.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: cfg.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize firebase app: %w", err)
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create messaging client: %w", err)
	}

	log.Info("Connected to Firebase Cloud Messaging (project=%s)", cfg.FirebaseProjectID)
	return &FCMGateway{client: client, logger: log}, nil
}

func (g *FCMGateway) Send(ctx context.Context, token string, p Payload) (string, error) {
	msg := toMessage(p)
	msg.Token = token

	id, err := g.client.Send(ctx, msg)
	if err != nil {
		return "", fmt.Errorf("fcm send: %w", err)
	}
	return id, nil
}

// SendMulticast splits tokens into FCM-sized chunks and sums their counts. A
// failing chunk stops the loop; counts for chunks already sent are returned with the error.
func (g *FCMGateway) SendMulticast(ctx context.Context, tokens []string, p Payload) (BatchResponse, error) {
	var total BatchResponse
	chunks := chunkTokens(tokens, MaxMulticastTokens)
	for i, chunk := range chunks {
		msg := toMulticastMessage(p)
		msg.Tokens = chunk

		resp, err := g.client.SendEachForMulticast(ctx, msg)
		if err != nil {
			g.logger.Error("[FCM] Multicast chunk %d/%d failed after %d delivered: %v", i+1, len(chunks), total.SuccessCount, err)
			return total, fmt.Errorf("fcm multicast (%d tokens): %w", len(chunk), err)
		}
		total.SuccessCount += resp.SuccessCount
		total.FailureCount += resp.FailureCount
	}
	g.logger.Debug("[FCM] Multicast to %d tokens in %d chunks: %d succeeded, %d failed", len(tokens), len(chunks), total.SuccessCount, total.FailureCount)
	return total, nil
}

func chunkTokens(tokens []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(tokens); start += size {
		end := start + size
		if end > len(tokens) {
			end = len(tokens)
		}
		chunks = append(chunks, tokens[start:end])
	}
	return chunks
}

func toMessage(p Payload) *messaging.Message {
	return &messaging.Message{
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Data:         p.Data,
		Android:      toAndroidConfig(p.Android),
		APNS:         toAPNSConfig(p.APNS),
	}
}

func toMulticastMessage(p Payload) *messaging.MulticastMessage {
	return &messaging.MulticastMessage{
		Notification: &messaging.Notification{Title: p.Title, Body: p.Body},
		Data:         p.Data,
		Android:      toAndroidConfig(p.Android),
		APNS:         toAPNSConfig(p.APNS),
	}
}

func toAndroidConfig(h *AndroidHints) *messaging.AndroidConfig {
	if h == nil {
		return nil
	}
	n := &messaging.AndroidNotification{
		Sound:                 h.Sound,
		ChannelID:             h.ChannelID,
		DefaultSound:          h.DefaultSound,
		DefaultVibrateTimings: h.DefaultVibrateTimings,
	}
	if h.HighNotificationPrio {
		n.Priority = messaging.PriorityHigh
	}
	return &messaging.AndroidConfig{
		Priority:     h.Priority,
		Notification: n,
	}
}

func toAPNSConfig(h *APNSHints) *messaging.APNSConfig {
	if h == nil {
		return nil
	}
	badge := h.Badge
	return &messaging.APNSConfig{
		Payload: &messaging.APNSPayload{
			Aps: &messaging.Aps{
				Sound: h.Sound,
				Badge: &badge,
			},
		},
	}
}
