package rabbitmq

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnect_InvalidURI(t *testing.T) {
	conn, err := Connect("not-an-amqp-uri", 2, time.Millisecond)
	require.Error(t, err)
	assert.Nil(t, conn)
	assert.Contains(t, err.Error(), "rabbitmq.Connect")
}
