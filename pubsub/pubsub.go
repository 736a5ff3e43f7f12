// Package pubsub is the delivery backbone for realtime fan-out. The
// in-process implementation serves a single node and tests; the NATS
// implementation serves multi-instance deployments.
package pubsub

import "sync"

type PubSub interface {
	Pub(topic string, data []byte) error
	// Sub registers cb for topic and returns an unsubscribe func.
	// Callbacks must not block the publisher.
	Sub(topic string, cb func(data []byte)) (func() error, error)
}

type InProcess struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[string]map[uint64]func(data []byte)
}

func NewInProcess() *InProcess {
	return &InProcess{
		subs: map[string]map[uint64]func(data []byte){},
	}
}

func (ps *InProcess) Pub(topic string, data []byte) error {
	ps.mu.RLock()
	cbs := make([]func([]byte), 0, len(ps.subs[topic]))
	for _, cb := range ps.subs[topic] {
		cbs = append(cbs, cb)
	}
	ps.mu.RUnlock()

	for _, cb := range cbs {
		go cb(data)
	}

	return nil
}

func (ps *InProcess) Sub(topic string, cb func(data []byte)) (func() error, error) {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	ps.nextID++
	id := ps.nextID

	if ps.subs[topic] == nil {
		ps.subs[topic] = map[uint64]func(data []byte){}
	}
	ps.subs[topic][id] = cb

	return func() error {
		ps.mu.Lock()
		defer ps.mu.Unlock()

		delete(ps.subs[topic], id)
		if len(ps.subs[topic]) == 0 {
			delete(ps.subs, topic)
		}
		return nil
	}, nil
}
