package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	log "github.com/sirupsen/logrus"
)

const logPrefix = "broker"

const (
	EventCreated = "created"
	EventUpdated = "updated"
	EventDeleted = "deleted"
)

// ListingEvent announces a confirmed change of a listing
type ListingEvent struct {
	Type       string    `json:"type"`
	Collection string    `json:"collection"`
	ID         string    `json:"id"`
	At         time.Time `json:"at"`
}

// Subject is the subject an event is published on under the given prefix
func (e ListingEvent) Subject(prefix string) string {
	return fmt.Sprintf("%s.%s.%s", prefix, e.Collection, e.Type)
}

// Publisher - interface to announce listing changes
type Publisher interface {
	Publish(ctx context.Context, e ListingEvent) error
	Close()
}

type natsPublisher struct {
	conn   *nats.Conn
	prefix string
}

// New connects to nats. Events are published on `<prefix>.<collection>.<type>`.
func New(url, prefix string) (Publisher, error) {
	conn, err := nats.Connect(url, nats.Name("community-aid-api"))
	if err != nil {
		return nil, err
	}

	log.WithField("prefix", logPrefix).Infof("connected to nats at %s", conn.ConnectedUrl())
	return &natsPublisher{conn: conn, prefix: prefix}, nil
}

func (p *natsPublisher) Publish(_ context.Context, e ListingEvent) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return p.conn.Publish(e.Subject(p.prefix), data)
}

func (p *natsPublisher) Close() {
	if err := p.conn.Drain(); err != nil {
		log.WithField("prefix", logPrefix).Errorf("drain nats connection with error: %s", err)
	}
}

type noop struct{}

// Noop discards every event. It is used when no broker is configured.
func Noop() Publisher {
	return noop{}
}

func (noop) Publish(context.Context, ListingEvent) error { return nil }
func (noop) Close()                                      {}
