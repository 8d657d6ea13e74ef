package natskv

import (
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFoundError(t *testing.T) {
	assert.True(t, IsNotFoundError(jetstream.ErrKeyNotFound))
	assert.True(t, IsNotFoundError(fmt.Errorf("get: %w", jetstream.ErrKeyDeleted)))
	assert.False(t, IsNotFoundError(nil))
	assert.False(t, IsNotFoundError(jetstream.ErrBucketNotFound))
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, 1024*1024, o.MaxValueSize)
	assert.Greater(t, o.Timeout, time.Duration(0))
	assert.NotNil(t, o.Logger)
}
