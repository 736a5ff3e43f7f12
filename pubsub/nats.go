package pubsub

import (
	"fmt"

	"github.com/nats-io/nats.go"
)

type NATS struct {
	conn *nats.Conn
}

func NewNATS(conn *nats.Conn) *NATS {
	return &NATS{conn: conn}
}

func (ps *NATS) Pub(topic string, data []byte) error {
	if err := ps.conn.Publish(topic, data); err != nil {
		return fmt.Errorf("nats publish %q: %w", topic, err)
	}
	return nil
}

func (ps *NATS) Sub(topic string, cb func(data []byte)) (func() error, error) {
	sub, err := ps.conn.Subscribe(topic, func(msg *nats.Msg) {
		cb(msg.Data)
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe %q: %w", topic, err)
	}

	return func() error {
		if err := sub.Unsubscribe(); err != nil {
			return fmt.Errorf("nats unsubscribe %q: %w", topic, err)
		}
		return nil
	}, nil
}
