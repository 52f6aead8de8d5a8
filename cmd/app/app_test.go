package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/vietanh2810/ticket-order-api/internal/config"
)

func TestOpenTicketCache_EmptyAddrDisablesCache(t *testing.T) {
	c, closeCache := openTicketCache(&config.RedisConfig{})
	defer closeCache()

	assert.Nil(t, c)
}

func TestOpenTicketCache_UnreachableServerDisablesCache(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	t.Cleanup(zap.ReplaceGlobals(zap.New(core)))

	c, closeCache := openTicketCache(&config.RedisConfig{Addr: "127.0.0.1:1", TicketTTL: time.Minute})
	defer closeCache()

	assert.Nil(t, c)
	entries := logs.FilterMessage("ticket cache disabled").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "127.0.0.1:1", entries[0].ContextMap()["addr"])
}
