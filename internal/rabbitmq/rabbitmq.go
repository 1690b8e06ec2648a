package rabbitmq

import (
	"blogify/internal/core/domain/logging"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const DEFAULT_RECONNECT_DELAY = 3 * time.Second

// Connection keeps an AMQP connection alive, redialing after it is closed by
// the broker or the network.
type Connection struct {
	url            string
	log            logging.Logger
	reconnectDelay time.Duration

	lock   sync.RWMutex
	conn   *amqp.Connection
	closed atomic.Bool
}

func Dial(url string, log logging.Logger) (*Connection, error) {
	return DialWithDelay(url, log, DEFAULT_RECONNECT_DELAY)
}

func DialWithDelay(url string, log logging.Logger, reconnectDelay time.Duration) (*Connection, error) {
	if log == nil {
		return nil, fmt.Errorf("log argument must not be nil")
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	connection := &Connection{
		url:            url,
		log:            log,
		reconnectDelay: reconnectDelay,
		conn:           conn,
	}
	go connection.watch(conn)
	return connection, nil
}

func (c *Connection) current() *amqp.Connection {
	c.lock.RLock()
	defer c.lock.RUnlock()
	return c.conn
}

func (c *Connection) watch(conn *amqp.Connection) {
	for {
		reason, ok := <-conn.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || c.closed.Load() {
			c.log.Info(context.Background(), "RabbitMQ connection closed.")
			return
		}
		c.log.Warning(context.Background(), "RabbitMQ connection lost.", logging.Entry("reason", reason.Error()))

		conn = c.redial()
		if conn == nil {
			return
		}
	}
}

func (c *Connection) redial() *amqp.Connection {
	for !c.closed.Load() {
		time.Sleep(c.reconnectDelay)

		conn, err := amqp.Dial(c.url)
		if err != nil {
			c.log.Error(context.Background(), "RabbitMQ reconnect failed.", logging.Entry("err", err))
			continue
		}
		if !c.swap(conn) {
			conn.Close()
			return nil
		}
		c.log.Info(context.Background(), "RabbitMQ reconnect success.")
		return conn
	}
	return nil
}

// swap installs conn unless Close has already been called.
func (c *Connection) swap(conn *amqp.Connection) bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.closed.Load() {
		return false
	}
	c.conn = conn
	return true
}

func (c *Connection) Close() error {
	c.lock.Lock()
	if !c.closed.CompareAndSwap(false, true) {
		c.lock.Unlock()
		return amqp.ErrClosed
	}
	conn := c.conn
	c.lock.Unlock()
	return conn.Close()
}

// Channel opens a channel that is reopened whenever the broker closes it.
func (c *Connection) Channel() (*Channel, error) {
	ch, err := c.current().Channel()
	if err != nil {
		return nil, err
	}

	channel := &Channel{conn: c, log: c.log, ch: ch}
	go channel.watch(ch)
	return channel, nil
}

type Channel struct {
	conn *Connection
	log  logging.Logger

	lock   sync.RWMutex
	ch     *amqp.Channel
	closed atomic.Bool
}

func (ch *Channel) current() *amqp.Channel {
	ch.lock.RLock()
	defer ch.lock.RUnlock()
	return ch.ch
}

func (ch *Channel) watch(amqpChannel *amqp.Channel) {
	for {
		reason, ok := <-amqpChannel.NotifyClose(make(chan *amqp.Error, 1))
		if !ok || ch.IsClosed() {
			return
		}
		ch.log.Warning(context.Background(), "RabbitMQ channel closed.", logging.Entry("reason", reason.Error()))

		for {
			time.Sleep(ch.conn.reconnectDelay)
			if ch.IsClosed() {
				return
			}
			reopened, err := ch.conn.current().Channel()
			if err != nil {
				ch.log.Error(context.Background(), "Channel recreate failed.", logging.Entry("err", err))
				continue
			}
			ch.lock.Lock()
			ch.ch = reopened
			ch.lock.Unlock()
			amqpChannel = reopened
			ch.log.Info(context.Background(), "Channel recreate success.")
			break
		}
	}
}

// IsClosed reports whether Close has been called.
func (ch *Channel) IsClosed() bool {
	return ch.closed.Load()
}

func (ch *Channel) Close() error {
	if !ch.closed.CompareAndSwap(false, true) {
		return amqp.ErrClosed
	}
	return ch.current().Close()
}

// DeclareQueue declares a durable queue bound to the default exchange.
func (ch *Channel) DeclareQueue(name string) error {
	_, err := ch.current().QueueDeclare(name, true, false, false, false, nil)
	return err
}

func (ch *Channel) PublishWithContext(
	ctx context.Context,
	exchange, key string,
	mandatory, immediate bool,
	msg amqp.Publishing,
) error {
	return ch.current().PublishWithContext(ctx, exchange, key, mandatory, immediate, msg)
}

// Consume keeps delivering messages across channel reopenings until the
// channel is closed with Close.
func (ch *Channel) Consume(
	queue, consumer string,
	autoAck, exclusive, noLocal, noWait bool,
	args amqp.Table,
) (<-chan amqp.Delivery, error) {
	deliveries := make(chan amqp.Delivery)

	go func() {
		defer close(deliveries)
		for !ch.IsClosed() {
			d, err := ch.current().Consume(queue, consumer, autoAck, exclusive, noLocal, noWait, args)
			if err != nil {
				ch.log.Error(context.Background(), "Consume failed.", logging.Entry("err", err))
				time.Sleep(ch.conn.reconnectDelay)
				continue
			}

			for msg := range d {
				deliveries <- msg
			}

			// The closed flag may be set slightly after the delivery channel ends.
			time.Sleep(ch.conn.reconnectDelay)
		}
		ch.log.Info(context.Background(), "Channel is closed, stop consuming.", logging.Entry("queue", queue))
	}()

	return deliveries, nil
}
