package channel

import (
	"context"
	"fmt"
	"sync"

	logger_lib "github.com/s21platform/logger-lib"

	"github.com/s21platform/dialog-service/internal/model"
)

const subscriberQueueSize = 256

// Hub is the in-process Broker. It lives for the whole process and is
// reached only through Publish and Subscribe, never directly.
type Hub struct {
	logger logger_lib.LoggerInterface

	mu     sync.Mutex
	topics map[string]map[*hubSubscription]struct{}
}

func NewHub(logger logger_lib.LoggerInterface) *Hub {
	return &Hub{
		logger: logger,
		topics: make(map[string]map[*hubSubscription]struct{}),
	}
}

type hubSubscription struct {
	hub   *Hub
	topic string
	queue chan model.DecoratedMessage
	done  chan struct{}
	once  sync.Once
}

func (s *hubSubscription) run(handler Handler) {
	for {
		select {
		case msg := <-s.queue:
			handler(msg)
		case <-s.done:
			return
		}
	}
}

func (s *hubSubscription) Close() error {
	s.once.Do(func() {
		s.hub.remove(s)
		close(s.done)
	})
	return nil
}

func (h *Hub) Subscribe(userID string, handler Handler) (Subscription, error) {
	if userID == "" {
		return nil, fmt.Errorf("cannot subscribe to an empty topic")
	}

	sub := &hubSubscription{
		hub:   h,
		topic: userID,
		queue: make(chan model.DecoratedMessage, subscriberQueueSize),
		done:  make(chan struct{}),
	}

	h.mu.Lock()
	subs, ok := h.topics[userID]
	if !ok {
		subs = make(map[*hubSubscription]struct{})
		h.topics[userID] = subs
	}
	subs[sub] = struct{}{}
	h.mu.Unlock()

	go sub.run(handler)

	return sub, nil
}

// Publish enqueues to every subscriber of the topic while holding the hub
// lock, so per-topic delivery order matches publish order. A subscriber
// whose queue is full loses the record rather than stalling the topic.
func (h *Hub) Publish(_ context.Context, userID string, msg model.DecoratedMessage) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.topics[userID] {
		select {
		case sub.queue <- msg:
		default:
			h.logger.Warn(fmt.Sprintf("dropping message %s for slow subscriber on topic %s", msg.ID, userID))
		}
	}

	return nil
}

func (h *Hub) remove(sub *hubSubscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	subs, ok := h.topics[sub.topic]
	if !ok {
		return
	}

	delete(subs, sub)
	if len(subs) == 0 {
		delete(h.topics, sub.topic)
	}
}

// Subscribers reports the current subscription count of a topic.
func (h *Hub) Subscribers(userID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.topics[userID])
}
