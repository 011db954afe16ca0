// Package push delivers notification payloads to mobile devices through a
// push gateway. FCMGateway talks to Firebase Cloud Messaging; LogGateway only
// writes what it would have sent.
package push

import "context"

// Payload is the gateway-neutral notification built per trigger.
type Payload struct {
	Title   string
	Body    string
	Data    map[string]string
	Android *AndroidHints
	APNS    *APNSHints
}

// AndroidHints carries the Android delivery options. Priority applies to the
// message, NotificationPriority to the rendered notification.
type AndroidHints struct {
	Priority              string
	Sound                 string
	ChannelID             string
	HighNotificationPrio  bool
	DefaultSound          bool
	DefaultVibrateTimings bool
}

type APNSHints struct {
	Sound string
	Badge int
}

// BatchResponse aggregates a multicast send. Individual token results are not exposed.
type BatchResponse struct {
	SuccessCount int
	FailureCount int
}

// Gateway is the delivery surface the dispatcher depends on.
type Gateway interface {
	// Send delivers p to one token and returns the gateway message id.
	Send(ctx context.Context, token string, p Payload) (string, error)
	// SendMulticast delivers p to every token in one logical call.
	SendMulticast(ctx context.Context, tokens []string, p Payload) (BatchResponse, error)
}
