package pubsub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"cloud.google.com/go/pubsub"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/logger"
)

func NewPubSub(ctx context.Context, projectID string) (*pubsub.Client, error) {
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("pubsub client: %w", err)
	}
	return client, nil
}

type topicPublisher interface {
	Publish(ctx context.Context, payload []byte, attrs map[string]string) (string, error)
}

type gcpTopic struct {
	topic *pubsub.Topic
}

func (g *gcpTopic) Publish(ctx context.Context, payload []byte, attrs map[string]string) (string, error) {
	return g.topic.Publish(ctx, &pubsub.Message{Data: payload, Attributes: attrs}).Get(ctx)
}

// OutcomePublisher forwards publish outcomes to a Pub/Sub topic.
type OutcomePublisher struct {
	topic topicPublisher
}

// NewOutcomePublisher creates the topic when it does not exist yet.
func NewOutcomePublisher(ctx context.Context, client *pubsub.Client, topicID string) (*OutcomePublisher, error) {
	if client == nil {
		return nil, errors.New("pubsub client is nil")
	}
	topic := client.Topic(topicID)
	exists, err := topic.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if !exists {
		logger.GetLogger().WithField("topic", topicID).Info("Topic doesn't exist - creating it")
		if topic, err = client.CreateTopic(ctx, topicID); err != nil {
			return nil, err
		}
	}
	return &OutcomePublisher{topic: &gcpTopic{topic: topic}}, nil
}

func (p *OutcomePublisher) Notify(ctx context.Context, outcome model.PublishOutcome) error {
	payload, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	serverID, err := p.topic.Publish(ctx, payload, map[string]string{
		"item_id": outcome.ItemID,
		"status":  outcome.Status,
	})
	if err != nil {
		return fmt.Errorf("publish outcome: %w", err)
	}
	logger.GetLogger().WithField("server ID", serverID).WithField("item_id", outcome.ItemID).Info("Outcome published")
	return nil
}
