package rabbitmq

import (
	"blogify/internal/core/domain/logging"
	"testing"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
)

func TestSwapInstallsConnection(t *testing.T) {
	c := &Connection{log: logging.NewFakeLogger()}
	conn := &amqp.Connection{}

	assert.True(t, c.swap(conn))
	assert.Same(t, conn, c.current())
}

func TestSwapAfterCloseKeepsPreviousConnection(t *testing.T) {
	previous := &amqp.Connection{}
	c := &Connection{log: logging.NewFakeLogger(), conn: previous}
	c.closed.Store(true)

	assert.False(t, c.swap(&amqp.Connection{}))
	assert.Same(t, previous, c.current())
}
