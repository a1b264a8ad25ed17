package event

import (
	"context"
	"testing"

	clientmock "github.com/linecard/ship/pkg/mock/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEmit(t *testing.T) {
	ctx := context.Background()
	detail := map[string]string{"function": "lambda-s3-processor"}

	t.Run("encodes detail", func(t *testing.T) {
		m := &clientmock.MockEventBridgeClient{}
		m.On("PutEvents", ctx, &eventbridge.PutEventsInput{
			Entries: []types.PutEventsRequestEntry{
				{
					EventBusName: aws.String("deployments"),
					Source:       aws.String(Source),
					DetailType:   aws.String("Function Deployed"),
					Detail:       aws.String(`{"function":"lambda-s3-processor"}`),
				},
			},
		}).Return(&eventbridge.PutEventsOutput{}, nil)

		assert.NoError(t, FromClients(m).Emit(ctx, "deployments", "Function Deployed", detail))
		m.AssertExpectations(t)
	})

	t.Run("rejected entry", func(t *testing.T) {
		m := &clientmock.MockEventBridgeClient{}
		m.On("PutEvents", ctx, mock.Anything).Return(&eventbridge.PutEventsOutput{
			FailedEntryCount: 1,
			Entries: []types.PutEventsResultEntry{
				{ErrorCode: aws.String("AccessDenied"), ErrorMessage: aws.String("nope")},
			},
		}, nil)

		err := FromClients(m).Emit(ctx, "deployments", "Function Deployed", detail)
		assert.ErrorContains(t, err, "AccessDenied")
	})
}
