package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"time"

	cloudevents "github.com/cloudevents/sdk-go/v2"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("producer", Ordered, func() {
	Context("write", func() {
		It("writes successfully", func() {
			w := newTestWriter()
			kp := NewEventProducer(w, WithOutputTopic("leads"))

			err := kp.Write(context.TODO(), AnalysisRequestedKind, []byte(`{"name":"msg1"}`))
			Expect(err).To(BeNil())

			err = kp.WriteJSON(context.TODO(), ScenarioDeletedKind, ScenarioDeletedEvent{ScenarioID: "abc"})
			Expect(err).To(BeNil())

			Eventually(w.Len).WithTimeout(2 * time.Second).Should(Equal(2))

			messages := w.Events()
			Expect(messages[0].Type()).To(Equal(AnalysisRequestedKind))
			Expect(messages[0].Source()).To(Equal(eventSource))
			Expect(messages[1].Type()).To(Equal(ScenarioDeletedKind))
			Expect(w.Topics()).To(ConsistOf("leads", "leads"))

			var deleted ScenarioDeletedEvent
			Expect(json.Unmarshal(messages[1].Data(), &deleted)).To(Succeed())
			Expect(deleted.ScenarioID).To(Equal("abc"))

			Expect(kp.Close()).To(Succeed())
		})

		It("rejects invalid json", func() {
			kp := NewEventProducer(newTestWriter())
			defer kp.Close()

			Expect(kp.Write(context.TODO(), AnalysisRequestedKind, []byte("not json"))).NotTo(Succeed())
		})

		It("keeps going when the writer fails", func() {
			w := newTestWriter()
			w.failures = 1
			kp := NewEventProducer(w)

			Expect(kp.Write(context.TODO(), AnalysisRequestedKind, []byte(`{}`))).To(Succeed())
			Expect(kp.Write(context.TODO(), AnalysisRequestedKind, []byte(`{}`))).To(Succeed())

			Eventually(w.Len).WithTimeout(2 * time.Second).Should(Equal(1))
			Expect(kp.Close()).To(Succeed())
		})

		It("flushes pending events on close", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)

			for i := 0; i < 10; i++ {
				Expect(kp.Write(context.TODO(), AnalysisRequestedKind, []byte(`{}`))).To(Succeed())
			}
			Expect(kp.Close()).To(Succeed())
			Expect(w.Len()).To(Equal(10))
			Expect(w.closed).To(BeTrue())

			// closing twice is harmless
			Expect(kp.Close()).To(Succeed())
		})

		It("rejects writes after close", func() {
			w := newTestWriter()
			kp := NewEventProducer(w)
			Expect(kp.Close()).To(Succeed())

			err := kp.Write(context.TODO(), AnalysisRequestedKind, []byte(`{}`))
			Expect(errors.Is(err, ErrProducerClosed)).To(BeTrue())

			err = kp.WriteJSON(context.TODO(), ScenarioDeletedKind, ScenarioDeletedEvent{ScenarioID: "abc"})
			Expect(errors.Is(err, ErrProducerClosed)).To(BeTrue())
			Expect(w.Len()).To(Equal(0))
		})
	})

	Context("http writer", func() {
		It("posts the event to the target", func() {
			var (
				mu      sync.Mutex
				gotType string
				gotBody []byte
				topic   string
			)
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				mu.Lock()
				defer mu.Unlock()
				gotType = r.Header.Get("ce-type")
				topic = r.Header.Get("ce-topic")
				gotBody, _ = io.ReadAll(r.Body)
				w.WriteHeader(http.StatusAccepted)
			}))
			defer srv.Close()

			hw, err := NewHTTPWriter(srv.URL)
			Expect(err).To(BeNil())

			e := cloudevents.NewEvent()
			e.SetID("1")
			e.SetSource(eventSource)
			e.SetType(AnalysisRequestedKind)
			Expect(e.SetData(cloudevents.ApplicationJSON, []byte(`{"company":"Acme"}`))).To(Succeed())

			Expect(hw.Write(context.TODO(), "leads", e)).To(Succeed())

			mu.Lock()
			defer mu.Unlock()
			Expect(gotType).To(Equal(AnalysisRequestedKind))
			Expect(topic).To(Equal("leads"))
			Expect(string(gotBody)).To(MatchJSON(`{"company":"Acme"}`))
		})

		It("reports a rejected event", func() {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer srv.Close()

			hw, err := NewHTTPWriter(srv.URL)
			Expect(err).To(BeNil())

			e := cloudevents.NewEvent()
			e.SetID("1")
			e.SetSource(eventSource)
			e.SetType(AnalysisRequestedKind)

			Expect(hw.Write(context.TODO(), "leads", e)).NotTo(Succeed())
		})
	})
})

type testwriter struct {
	mu       sync.Mutex
	messages []cloudevents.Event
	topics   []string
	failures int
	closed   bool
}

func newTestWriter() *testwriter {
	return &testwriter{}
}

func (t *testwriter) Write(ctx context.Context, topic string, e cloudevents.Event) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.failures > 0 {
		t.failures--
		return errors.New("writer unavailable")
	}
	t.messages = append(t.messages, e)
	t.topics = append(t.topics, topic)
	return nil
}

func (t *testwriter) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.messages)
}

func (t *testwriter) Events() []cloudevents.Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]cloudevents.Event(nil), t.messages...)
}

func (t *testwriter) Topics() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.topics...)
}

func (t *testwriter) Close(_ context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	return nil
}
