package push

import (
	"context"
	"fmt"

	"campus-hub/pkg/logger"

	"github.com/google/uuid"
)

// LogGateway reports every send as delivered without contacting a provider.
// It backs PUSH_DRY_RUN and local development without Firebase credentials.
type LogGateway struct {
	logger *logger.Logger
}

func NewLogGateway(log *logger.Logger) *LogGateway {
	return &LogGateway{logger: log}
}

func (g *LogGateway) Send(ctx context.Context, token string, p Payload) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := fmt.Sprintf("dry-run/%s", uuid.New().String())
	g.logger.Info("[PUSH] dry-run send to %s: %s - %s (data=%v)", maskToken(token), p.Title, p.Body, p.Data)
	return id, nil
}

func (g *LogGateway) SendMulticast(ctx context.Context, tokens []string, p Payload) (BatchResponse, error) {
	if err := ctx.Err(); err != nil {
		return BatchResponse{}, err
	}
	g.logger.Info("[PUSH] dry-run multicast to %d devices: %s - %s (data=%v)", len(tokens), p.Title, p.Body, p.Data)
	return BatchResponse{SuccessCount: len(tokens)}, nil
}

func maskToken(token string) string {
	if len(token) <= 8 {
		return "****"
	}
	return token[:4] + "****" + token[len(token)-4:]
}
