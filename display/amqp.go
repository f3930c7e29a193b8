package display

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/streadway/amqp"

	"github.com/theoremus-urban-solutions/mbta-board/arrivals"
	"github.com/theoremus-urban-solutions/mbta-board/config"
	"github.com/theoremus-urban-solutions/mbta-board/formatter"
)

type amqpChannel interface {
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// AMQPSink publishes each board's JSON payload to a queue
type AMQPSink struct {
	cfg        config.AMQPConfig
	connection *amqp.Connection
	channel    amqpChannel
	queue      string
	now        func() time.Time
}

// NewAMQPSink publishes to cfg.Queue on the broker at cfg.URL
func NewAMQPSink(cfg config.AMQPConfig) *AMQPSink {
	return &AMQPSink{cfg: cfg, now: time.Now}
}

// Open dials the broker and declares the queue
func (s *AMQPSink) Open() error {
	conn, err := amqp.Dial(s.cfg.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return fmt.Errorf("failed to open a channel: %w", err)
	}
	var args amqp.Table
	if s.cfg.TTLMS > 0 {
		args = amqp.Table{"x-message-ttl": int32(s.cfg.TTLMS)}
	}
	q, err := ch.QueueDeclare(
		s.cfg.Queue, // name
		false,       // durable
		false,       // delete when unused
		false,       // exclusive
		false,       // no-wait
		args,        // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to declare a queue: %w", err)
	}
	s.connection, s.channel, s.queue = conn, ch, q.Name
	log.Printf("RabbitMQ connected: queue=%s", q.Name)
	return nil
}

// Write publishes the board payload with a fresh message id
func (s *AMQPSink) Write(_ context.Context, b arrivals.Board) error {
	if s.channel == nil {
		return errors.New("amqp sink not open")
	}
	now := s.now()
	payload, err := formatter.BuildJSON(b, now)
	if err != nil {
		return err
	}
	return s.channel.Publish(
		"",      // exchange
		s.queue, // routing key
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType: "application/json",
			MessageId:   uuid.NewString(),
			Timestamp:   now,
			Body:        payload,
		})
}

// Close closes the channel, then the connection
func (s *AMQPSink) Close() error {
	var err error
	if s.channel != nil {
		err = s.channel.Close()
		s.channel = nil
	}
	if s.connection != nil {
		if cerr := s.connection.Close(); err == nil {
			err = cerr
		}
		s.connection = nil
	}
	return err
}
