package main

import (
	"context"
	"errors"

	gcppubsub "cloud.google.com/go/pubsub/v2"
)

// message is the transport-neutral shape handed to a publisher.
type message struct {
	Data       []byte
	Attributes map[string]string
}

type publisher interface {
	Publish(context.Context, message) publishResult
}

type publishResult interface {
	Get(context.Context) (string, error)
}

type publisherFactory func(topic string) publisher

type topicSource interface {
	Publisher(name string) *gcppubsub.Publisher
}

// gcpPublisherFactory resolves topic publishers from the Pub/Sub client.
func gcpPublisherFactory(src topicSource) publisherFactory {
	return func(topic string) publisher {
		p := src.Publisher(topic)
		if p == nil {
			return nil
		}
		return &gcpPublisher{p: p}
	}
}

type gcpPublisher struct {
	p *gcppubsub.Publisher
}

func (g *gcpPublisher) Publish(ctx context.Context, msg message) publishResult {
	return &gcpPublishResult{r: g.p.Publish(ctx, &gcppubsub.Message{Data: msg.Data, Attributes: msg.Attributes})}
}

type gcpPublishResult struct {
	r *gcppubsub.PublishResult
}

func (g *gcpPublishResult) Get(ctx context.Context) (string, error) {
	if g.r == nil {
		return "", errors.New("publish result is nil")
	}
	return g.r.Get(ctx)
}
