package go_sync_lock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func Test_Options(t *testing.T) {
	logger := zap.NewNop()
	l := MustNew(1.5,
		WithTimeout(time.Second),
		WithName("ratio"),
		WithLogger(logger),
		WithSlowHoldThreshold(time.Minute),
	)

	assert.Equal(t, time.Second, l.Timeout())
	assert.Equal(t, "ratio", l.name)
	assert.Equal(t, "float64", l.typeName)
	assert.Same(t, logger, l.log())
	assert.Equal(t, time.Minute, l.slowHold)
	assert.Nil(t, l.metrics)

	l2 := MustNew(struct{}{})
	assert.Equal(t, "struct {}", l2.name)
	assert.Same(t, zap.L(), l2.log())
}

func Test_Logging(t *testing.T) {
	t.Run("timeout is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.DebugLevel)
		l := MustNew(0, WithLogger(zap.New(core)), WithTimeout(0), WithName("jobs"))

		g, err := l.Acquire()
		require.NoError(t, err)
		defer g.Release()

		_, err = l.Acquire()
		require.ErrorIs(t, err, ErrLockTimeout)

		entries := logs.FilterMessage("Failed to acquire lock").All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
		assert.Equal(t, "jobs", entries[0].ContextMap()["lock"])
		assert.Equal(t, "int", entries[0].ContextMap()["type"])
		assert.Equal(t, "0s", entries[0].ContextMap()["timeout"])
	})

	t.Run("slow hold is logged", func(t *testing.T) {
		core, logs := observer.New(zapcore.WarnLevel)
		l := MustNew(0, WithLogger(zap.New(core)), WithSlowHoldThreshold(10*time.Millisecond))

		g, err := l.Acquire()
		require.NoError(t, err)
		g.Release()
		require.Zero(t, logs.Len())

		g, err = l.Acquire()
		require.NoError(t, err)
		time.Sleep(15 * time.Millisecond)
		g.Release()
		g.Release()

		require.Equal(t, 1, logs.FilterMessage("Lock held longer than expected").Len())
	})
}
