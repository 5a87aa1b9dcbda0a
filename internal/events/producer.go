package events

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const (
	AnalysisRequestedKind string = "roi.planner.analysis.requested"
	ScenarioDeletedKind   string = "roi.planner.scenario.deleted"
	eventSource           string = "roi.planner"
	defaultTopic          string = "roi-planner"
)

var ErrProducerClosed = errors.New("event producer is closed")

// Writer is the interface to be implemented by the underlying writer.
type Writer interface {
	Write(ctx context.Context, topic string, e cloudevents.Event) error
	Close(ctx context.Context) error
}

// EventProducer is a wrapper around a Writer with a buffer, so callers are never
// blocked by a slow writer. Write failures are logged and the event is dropped.
type EventProducer struct {
	buffer   *buffer
	notifyCh chan struct{}
	doneCh   chan struct{}
	exitedCh chan struct{}
	writer   Writer
	topic    string
	timeout  time.Duration
	// mu orders Write against Close, so every accepted event is drained before exit.
	mu     sync.RWMutex
	closed bool
}

func NewEventProducer(w Writer, opts ...ProducerOptions) *EventProducer {
	ep := &EventProducer{
		buffer:   newBuffer(),
		notifyCh: make(chan struct{}, 1),
		doneCh:   make(chan struct{}),
		exitedCh: make(chan struct{}),
		writer:   w,
		topic:    defaultTopic,
		timeout:  10 * time.Second,
	}

	for _, o := range opts {
		o(ep)
	}

	go ep.run()
	return ep
}

// Write queues data as the json payload of an event of the given kind.
func (ep *EventProducer) Write(_ context.Context, kind string, data []byte) error {
	if !json.Valid(data) {
		return errors.New("event data is not valid json")
	}

	ep.mu.RLock()
	defer ep.mu.RUnlock()
	if ep.closed {
		return ErrProducerClosed
	}

	if err := ep.buffer.PushBack(&message{Kind: kind, Data: data}); err != nil {
		return err
	}

	// wake up the consumer, a pending notification is enough
	select {
	case ep.notifyCh <- struct{}{}:
	default:
	}

	return nil
}

// WriteJSON marshals v and queues it.
func (ep *EventProducer) WriteJSON(ctx context.Context, kind string, v any) error {
	d, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return ep.Write(ctx, kind, d)
}

// Close flushes the pending events and closes the writer. Later writes fail with
// ErrProducerClosed.
func (ep *EventProducer) Close() error {
	closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	g, ctx := errgroup.WithContext(closeCtx)
	g.Go(func() error {
		ep.mu.Lock()
		if !ep.closed {
			ep.closed = true
			close(ep.doneCh)
		}
		ep.mu.Unlock()
		select {
		case <-ep.exitedCh:
		case <-ctx.Done():
			return ctx.Err()
		}
		return ep.writer.Close(ctx)
	})
	if err := g.Wait(); err != nil {
		zap.S().Named("event_producer").Errorf("event producer closed with error: %s", err)
		return err
	}

	zap.S().Named("event_producer").Info("event producer closed")

	return nil
}

func (ep *EventProducer) run() {
	defer close(ep.exitedCh)
	for {
		select {
		case <-ep.notifyCh:
			ep.drain()
		case <-ep.doneCh:
			ep.drain()
			return
		}
	}
}

func (ep *EventProducer) drain() {
	for msg := ep.buffer.Pop(); msg != nil; msg = ep.buffer.Pop() {
		e := cloudevents.NewEvent()
		e.SetID(uuid.NewString())
		e.SetSource(eventSource)
		e.SetType(msg.Kind)
		e.SetTime(time.Now())
		_ = e.SetData(cloudevents.ApplicationJSON, msg.Data)

		ctx, cancel := context.WithTimeout(context.Background(), ep.timeout)
		if err := ep.writer.Write(ctx, ep.topic, e); err != nil {
			zap.S().Named("event_producer").Errorw("failed to send event", "error", err, "type", e.Type(), "id", e.ID())
		}
		cancel()
	}
}
