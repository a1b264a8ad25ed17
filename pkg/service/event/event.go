package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
)

const Source = "ship"

type EventBridgeClient interface {
	PutEvents(ctx context.Context, params *eventbridge.PutEventsInput, optFns ...func(*eventbridge.Options)) (*eventbridge.PutEventsOutput, error)
}

type Client struct {
	EventBridge EventBridgeClient
}

type Service struct {
	Client Client
}

func FromClients(eventBridge EventBridgeClient) Service {
	return Service{
		Client: Client{
			EventBridge: eventBridge,
		},
	}
}

// Emit puts a single event on busName with detail encoded as JSON.
func (s Service) Emit(ctx context.Context, busName, detailType string, detail any) error {
	detailJson, err := json.Marshal(detail)
	if err != nil {
		return err
	}

	putEventsInput := &eventbridge.PutEventsInput{
		Entries: []types.PutEventsRequestEntry{
			{
				EventBusName: aws.String(busName),
				Source:       aws.String(Source),
				DetailType:   aws.String(detailType),
				Detail:       aws.String(string(detailJson)),
			},
		},
	}

	output, err := s.Client.EventBridge.PutEvents(ctx, putEventsInput)
	if err != nil {
		return err
	}

	if output.FailedEntryCount > 0 && len(output.Entries) > 0 {
		entry := output.Entries[0]
		return fmt.Errorf("event rejected by %s: %s %s", busName, aws.ToString(entry.ErrorCode), aws.ToString(entry.ErrorMessage))
	}

	return nil
}
