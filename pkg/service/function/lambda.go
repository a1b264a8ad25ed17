package function

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	types "github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/aws/smithy-go"
)

const conflictAttempts = 10

// ErrNotFound is returned when the target function does not exist. Functions are never created here.
var ErrNotFound = errors.New("function not found")

// Lambda refuses a second update while the previous one is still in progress.
func retryConflicts(options *lambda.Options) {
	options.Retryer = retry.AddWithErrorCodes(options.Retryer, (*types.ResourceConflictException)(nil).ErrorCode())
	options.Retryer = retry.AddWithMaxAttempts(options.Retryer, conflictAttempts)
}

// UpdateCode points name at imageUri. The function keeps its package type, so imageUri must be an ECR image.
func (s Service) UpdateCode(ctx context.Context, name, imageUri string) (*lambda.UpdateFunctionCodeOutput, error) {
	updateFunctionCodeInput := &lambda.UpdateFunctionCodeInput{
		FunctionName: aws.String(name),
		ImageUri:     aws.String(imageUri),
	}

	output, err := s.Client.Lambda.UpdateFunctionCode(ctx, updateFunctionCodeInput, retryConflicts)
	return output, notFound(name, err)
}

// WaitUpdated blocks until the last update of name settles or maxWait elapses.
func (s Service) WaitUpdated(ctx context.Context, name string, maxWait time.Duration) error {
	waiter := lambda.NewFunctionUpdatedV2Waiter(s.Client.Lambda, func(o *lambda.FunctionUpdatedV2WaiterOptions) {
		o.MinDelay = 2 * time.Second
		o.MaxDelay = 10 * time.Second
	})

	getFunctionInput := &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	}

	if err := waiter.Wait(ctx, getFunctionInput, maxWait); err != nil {
		return fmt.Errorf("waiting for %s to finish updating: %w", name, notFound(name, err))
	}

	return nil
}

// PatchConfiguration replaces the environment of name and sets timeout and memory.
// The environment map holds plaintext values and must not be logged.
func (s Service) PatchConfiguration(ctx context.Context, name string, environment map[string]string, timeout, memory int32) (*lambda.UpdateFunctionConfigurationOutput, error) {
	updateFunctionConfigurationInput := &lambda.UpdateFunctionConfigurationInput{
		FunctionName: aws.String(name),
		Environment: &types.Environment{
			Variables: environment,
		},
		Timeout:    aws.Int32(timeout),
		MemorySize: aws.Int32(memory),
	}

	output, err := s.Client.Lambda.UpdateFunctionConfiguration(ctx, updateFunctionConfigurationInput, retryConflicts)
	return output, notFound(name, err)
}

func notFound(name string, err error) error {
	var apiErr smithy.APIError

	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ResourceNotFoundException":
			return fmt.Errorf("%w: %s: %w", ErrNotFound, name, err)
		}
	}

	return err
}
