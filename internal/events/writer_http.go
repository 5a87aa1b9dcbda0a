package events

import (
	"context"
	"fmt"

	cloudevents "github.com/cloudevents/sdk-go/v2"
)

const topicExtension = "topic"

// HTTPWriter posts events in binary mode to a webhook, the collaborator that
// turns analysis requests into emails.
type HTTPWriter struct {
	client cloudevents.Client
	target string
}

func NewHTTPWriter(target string) (*HTTPWriter, error) {
	c, err := cloudevents.NewClientHTTP()
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudevents client: %w", err)
	}
	return &HTTPWriter{client: c, target: target}, nil
}

func (h *HTTPWriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	e.SetExtension(topicExtension, topic)

	result := h.client.Send(cloudevents.ContextWithTarget(ctx, h.target), e)
	if cloudevents.IsUndelivered(result) {
		return fmt.Errorf("failed to deliver event %s: %w", e.ID(), result)
	}
	if !cloudevents.IsACK(result) {
		return fmt.Errorf("event %s was not acknowledged: %w", e.ID(), result)
	}
	return nil
}

func (h *HTTPWriter) Close(_ context.Context) error {
	return nil
}
