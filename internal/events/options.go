package events

import "time"

type ProducerOptions func(e *EventProducer)

func WithOutputTopic(topic string) ProducerOptions {
	return func(e *EventProducer) {
		if topic != "" {
			e.topic = topic
		}
	}
}

// WithWriteTimeout bounds a single writer call.
func WithWriteTimeout(d time.Duration) ProducerOptions {
	return func(e *EventProducer) {
		if d > 0 {
			e.timeout = d
		}
	}
}
