package servicebus

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/Azure/azure-sdk-for-go/sdk/messaging/azservicebus"
	"linkedin-autoposter/domain/model"
	"linkedin-autoposter/infrastructure/logger"
)

// NewServiceBus connects to a fully qualified namespace, e.g. myns.servicebus.windows.net.
func NewServiceBus(namespace string) (*azservicebus.Client, error) {
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, err
	}
	return azservicebus.NewClient(namespace, cred, nil)
}

type messageSender interface {
	SendMessage(ctx context.Context, message *azservicebus.Message, options *azservicebus.SendMessageOptions) error
	Close(ctx context.Context) error
}

// OutcomeSender queues publish outcomes on a Service Bus queue.
type OutcomeSender struct {
	sender messageSender
}

func NewOutcomeSender(client *azservicebus.Client, queue string) (*OutcomeSender, error) {
	if client == nil {
		return nil, errors.New("service bus client is nil")
	}
	sender, err := client.NewSender(queue, nil)
	if err != nil {
		logger.GetLogger().
			WithField("error", err).
			Error("Error while making new sender service bus.")
		return nil, err
	}
	return &OutcomeSender{sender: sender}, nil
}

func (s *OutcomeSender) Notify(ctx context.Context, outcome model.PublishOutcome) error {
	body, err := json.Marshal(outcome)
	if err != nil {
		return err
	}
	contentType := "application/json"
	subject := outcome.Status
	msg := &azservicebus.Message{
		Body:        body,
		ContentType: &contentType,
		Subject:     &subject,
		ApplicationProperties: map[string]any{
			"item_id": outcome.ItemID,
		},
	}
	if err := s.sender.SendMessage(ctx, msg, nil); err != nil {
		logger.GetLogger().WithField("error", err).Error("Error while sending message.")
		return err
	}
	return nil
}

func (s *OutcomeSender) Close(ctx context.Context) error {
	return s.sender.Close(ctx)
}
