// Curatorgraph - Trust-Weighted Music Social Graph Analytics
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/curatorgraph

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	natsgo "github.com/nats-io/nats.go"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/curatorgraph/internal/analysis"
	"github.com/tomtom215/curatorgraph/internal/config"
	"github.com/tomtom215/curatorgraph/internal/logging"
	"github.com/tomtom215/curatorgraph/internal/metrics"
)

// Backends
const (
	BackendMemory   = "memory"
	BackendNATS     = "nats"
	BackendEmbedded = "embedded"
)

const (
	breakerName             = "event-publisher"
	breakerFailureThreshold = 5
	breakerTimeout          = 30 * time.Second
)

// ErrClosed is returned when publishing on a closed publisher.
var ErrClosed = errors.New("publisher is closed")

// Publisher wraps a Watermill publisher with circuit breaker protection.
type Publisher struct {
	publisher message.Publisher
	cb        *gobreaker.CircuitBreaker[interface{}]
	backend   string
	topic     string
	log       *logging.EventLogger

	mu         sync.RWMutex
	closed     bool
	subscriber message.Subscriber

	// channel is set for the memory backend so in-process consumers can subscribe.
	channel *gochannel.GoChannel

	// natsURL and wmLogger are set for the NATS backends.
	natsURL  string
	wmLogger watermill.LoggerAdapter

	// embedded is the in-process NATS server of the embedded backend.
	embedded *EmbeddedServer
}

// NewPublisher creates the publisher selected by cfg.Backend.
func NewPublisher(cfg config.EventsConfig) (*Publisher, error) {
	topic := cfg.Topic
	if topic == "" {
		topic = config.DefaultEventTopic
	}
	logger := watermill.NewSlogLogger(logging.NewSlogLogger())

	switch cfg.Backend {
	case "", BackendMemory:
		ch := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 64}, logger)
		p := newPublisher(ch, BackendMemory, topic)
		p.channel = ch
		return p, nil
	case BackendNATS:
		pub, err := newNATSPublisher(cfg.NATSURL, logger)
		if err != nil {
			return nil, err
		}
		p := newPublisher(pub, BackendNATS, topic)
		p.natsURL, p.wmLogger = cfg.NATSURL, logger
		return p, nil
	case BackendEmbedded:
		srv, err := NewEmbeddedServer(cfg.EmbeddedHost, cfg.EmbeddedPort)
		if err != nil {
			return nil, err
		}
		pub, err := newNATSPublisher(srv.ClientURL(), logger)
		if err != nil {
			_ = srv.Shutdown(context.Background())
			return nil, err
		}
		p := newPublisher(pub, BackendEmbedded, topic)
		p.natsURL, p.wmLogger, p.embedded = srv.ClientURL(), logger, srv
		return p, nil
	default:
		return nil, fmt.Errorf("unknown events backend %q", cfg.Backend)
	}
}

// newNATSPublisher connects a core NATS publisher that keeps retrying the
// connection in the background.
func newNATSPublisher(url string, logger watermill.LoggerAdapter) (message.Publisher, error) {
	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(-1),
		natsgo.ReconnectWait(2 * time.Second),
		natsgo.DisconnectErrHandler(func(nc *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         url,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}
	return pub, nil
}

// newNATSSubscriber creates a core NATS subscriber. Core NATS only delivers
// messages published after the subscription is made.
func newNATSSubscriber(url string, logger watermill.LoggerAdapter) (message.Subscriber, error) {
	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              url,
		SubscribersCount: 1,
		CloseTimeout:     5 * time.Second,
		AckWaitTimeout:   30 * time.Second,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}
	return sub, nil
}

// newPublisher wraps pub with a circuit breaker and event logging.
func newPublisher(pub message.Publisher, backend, topic string) *Publisher {
	p := &Publisher{
		publisher: pub,
		backend:   backend,
		topic:     topic,
		log:       logging.NewEventLogger(),
	}

	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)
	p.cb = gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= breakerFailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := from.String(), to.String()
			logging.Info().Str("breaker", name).Str("from", fromStr).Str("to", toStr).Msg("[CIRCUIT BREAKER] State transition")
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
			switch to {
			case gobreaker.StateClosed:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
			case gobreaker.StateHalfOpen:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(1)
			case gobreaker.StateOpen:
				metrics.CircuitBreakerState.WithLabelValues(name).Set(2)
			}
		},
	})

	p.log.LogPublisherStarted(backend, topic)
	return p
}

// Topic returns the topic events are published to.
func (p *Publisher) Topic() string {
	return p.topic
}

// Backend returns the configured backend name.
func (p *Publisher) Backend() string {
	return p.backend
}

// State returns the circuit breaker state.
func (p *Publisher) State() string {
	return p.cb.State().String()
}

// BrokerURL returns the NATS URL events are published to, or "" for the
// memory backend.
func (p *Publisher) BrokerURL() string {
	return p.natsURL
}

// Subscribe returns a channel of events published to the topic from now on.
// The channel is closed when ctx is canceled or the publisher is closed.
func (p *Publisher) Subscribe(ctx context.Context) (<-chan *message.Message, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return nil, ErrClosed
	}

	if p.subscriber == nil {
		switch {
		case p.channel != nil:
			p.subscriber = p.channel
		case p.natsURL != "":
			sub, err := newNATSSubscriber(p.natsURL, p.wmLogger)
			if err != nil {
				return nil, err
			}
			p.subscriber = sub
		default:
			return nil, fmt.Errorf("backend %s does not support subscribing", p.backend)
		}
	}
	return p.subscriber.Subscribe(ctx, p.topic)
}

// PublishRunCompleted publishes the run-completed event of r.
func (p *Publisher) PublishRunCompleted(ctx context.Context, r *analysis.Report) error {
	if r == nil {
		return fmt.Errorf("report is required")
	}
	msg, err := NewRunCompleted(r).toMessage()
	if err != nil {
		return err
	}
	msg.SetContext(ctx)
	return p.publish(ctx, msg)
}

// publish sends msg through the circuit breaker.
func (p *Publisher) publish(ctx context.Context, msg *message.Message) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrClosed
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	// Nats-Msg-Id lets the broker drop duplicates on retry
	if msg.Metadata.Get(natsgo.MsgIdHdr) == "" {
		msg.Metadata.Set(natsgo.MsgIdHdr, msg.UUID)
	}

	start := time.Now()
	_, err := p.cb.Execute(func() (interface{}, error) {
		return nil, p.publisher.Publish(p.topic, msg)
	})

	switch {
	case err == nil:
		metrics.RecordEventPublished(p.topic, "success")
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "success").Inc()
		p.log.LogEventPublished(ctx, msg.UUID, p.topic, time.Since(start))
		return nil
	case errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordEventPublished(p.topic, "rejected")
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "rejected").Inc()
	default:
		metrics.RecordEventPublished(p.topic, "failure")
		metrics.CircuitBreakerRequests.WithLabelValues(breakerName, "failure").Inc()
	}
	p.log.LogPublishFailed(ctx, msg.UUID, p.topic, err)
	return fmt.Errorf("publish %s: %w", p.topic, err)
}

// Close gracefully shuts down the publisher. Closing twice is a no-op.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}
	p.closed = true
	p.log.LogPublisherClosed(p.backend)

	var errs []error
	// the gochannel is both publisher and subscriber; close it once
	if p.subscriber != nil && p.channel == nil {
		errs = append(errs, p.subscriber.Close())
	}
	errs = append(errs, p.publisher.Close())
	if p.embedded != nil {
		ctx, cancel := context.WithTimeout(context.Background(), embeddedReadyTimeout)
		defer cancel()
		errs = append(errs, p.embedded.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
