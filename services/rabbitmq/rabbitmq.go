package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/AliaksandrTarashkevich/ppianieal/structs"
	"github.com/AliaksandrTarashkevich/ppianieal/utils"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

const reconnectDelay = 30 * time.Second

// Connection is one AMQP connection with the queues it declares and consumes.
type Connection struct {
	name    string
	Conn    *amqp.Connection
	Channel *amqp.Channel
	Queues  []string
	Err     chan error
	ApiErr  chan error
	logger  *logrus.Entry
	mu      sync.Mutex
}

var (
	poolMu         sync.Mutex
	connectionPool = make(map[string]*Connection)
)

// NewConnection returns the pooled connection for name, creating it on first use.
func NewConnection(name string, queues []string, logger *logrus.Entry) *Connection {
	poolMu.Lock()
	defer poolMu.Unlock()
	if c, ok := connectionPool[name]; ok {
		return c
	}
	c := &Connection{
		name:   name,
		Queues: queues,
		Err:    make(chan error, 1),
		ApiErr: make(chan error, 1),
		logger: logger.WithFields(logrus.Fields{"connection": name}),
	}
	connectionPool[name] = c
	return c
}

// GetConnection returns the connection which was instantiated
func GetConnection(name string) *Connection {
	poolMu.Lock()
	defer poolMu.Unlock()
	return connectionPool[name]
}

func (c *Connection) Connect() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := amqp.Dial(utils.EnvConfig.RabbitMQ.Domain)
	if err != nil {
		return fmt.Errorf("create rabbitmq connection: %w", err)
	}
	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}
	c.Conn, c.Channel = conn, channel

	go func() {
		closed := <-conn.NotifyClose(make(chan *amqp.Error))
		c.logger.WithFields(logrus.Fields{"reason": fmt.Sprint(closed)}).Warn("rabbitmq connection closed")
		notify(c.Err, errors.New("connection closed"))
		notify(c.ApiErr, errors.New("api detect connection closed"))
	}()
	return nil
}

func notify(ch chan error, err error) {
	select {
	case ch <- err:
	default:
	}
}

func (c *Connection) BindQueue() error {
	for _, q := range c.Queues {
		if _, err := c.Channel.QueueDeclare(q, true, false, false, false, nil); err != nil {
			return fmt.Errorf("declare queue %s: %w", q, err)
		}
	}
	return nil
}

// Reconnect reconnects the connection
func (c *Connection) Reconnect() error {
	if err := c.Connect(); err != nil {
		return err
	}
	return c.BindQueue()
}

func (c *Connection) Consume() (map[string]<-chan amqp.Delivery, error) {
	m := make(map[string]<-chan amqp.Delivery)
	for _, q := range c.Queues {
		deliveries, err := c.Channel.Consume(q, "", true, false, false, false, nil)
		if err != nil {
			return nil, err
		}
		m[q] = deliveries
	}
	return m, nil
}

// HandleConsumedDeliveries runs fn over the queue's deliveries and restarts it after every
// reconnect.
func (c *Connection) HandleConsumedDeliveries(q string, delivery <-chan amqp.Delivery, fn func(*Connection, string, <-chan amqp.Delivery)) {
	for {
		go fn(c, q, delivery)
		<-c.Err
		for {
			if err := c.Reconnect(); err != nil {
				c.logger.WithFields(logrus.Fields{"queue": q, "error": err.Error()}).Error("reconnect failed, retrying")
				time.Sleep(reconnectDelay)
				continue
			}
			deliveries, err := c.Consume()
			if err != nil {
				c.logger.WithFields(logrus.Fields{"queue": q, "error": err.Error()}).Error("consume failed, retrying")
				time.Sleep(reconnectDelay)
				continue
			}
			c.logger.WithFields(logrus.Fields{"queue": q}).Info("rabbitmq reconnected")
			delivery = deliveries[q]
			break
		}
	}
}

// Enqueue publishes a job on the first queue of the connection.
func (c *Connection) Enqueue(ctx context.Context, param structs.JobQueueParam) error {
	publishing, err := encodeJob(param)
	if err != nil {
		return err
	}
	c.mu.Lock()
	channel := c.Channel
	c.mu.Unlock()
	if channel == nil {
		return errors.New("rabbitmq channel is not open")
	}
	if err := channel.Publish("", c.Queues[0], false, false, publishing); err != nil {
		return fmt.Errorf("publish %s for %d: %w", param.Type, param.UserID, err)
	}
	return nil
}

func encodeJob(param structs.JobQueueParam) (amqp.Publishing, error) {
	body, err := json.Marshal(param)
	if err != nil {
		return amqp.Publishing{}, err
	}
	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		Type:         param.Type,
		Body:         body,
	}, nil
}

// DecodeJob parses a delivery body published by Enqueue.
func DecodeJob(body []byte) (structs.JobQueueParam, error) {
	var param structs.JobQueueParam
	if err := json.Unmarshal(body, &param); err != nil {
		return param, fmt.Errorf("decode job: %w", err)
	}
	if param.Type == "" || param.UserID == 0 {
		return param, fmt.Errorf("decode job: missing type or user id in %s", body)
	}
	return param, nil
}
