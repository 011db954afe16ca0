package push

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"campus-hub/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogGateway(t *testing.T) {
	var buf bytes.Buffer
	gw := NewLogGateway(logger.NewWithWriter(&buf, "info"))

	id, err := gw.Send(context.Background(), "abcdefghijklmnop", Payload{Title: "Hi", Body: "Test"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(id, "dry-run/"))
	assert.Contains(t, buf.String(), "abcd****mnop")
	assert.NotContains(t, buf.String(), "abcdefghijklmnop")

	resp, err := gw.SendMulticast(context.Background(), []string{"t1", "t2"}, Payload{Title: "Hi"})
	require.NoError(t, err)
	assert.Equal(t, BatchResponse{SuccessCount: 2}, resp)
}

func TestLogGateway_CancelledContext(t *testing.T) {
	gw := NewLogGateway(logger.New())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := gw.Send(ctx, "t1", Payload{})
	assert.ErrorIs(t, err, context.Canceled)

	_, err = gw.SendMulticast(ctx, []string{"t1"}, Payload{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMaskToken(t *testing.T) {
	assert.Equal(t, "****", maskToken("short"))
	assert.Equal(t, "1234****5678", maskToken("1234abcd5678"))
}
