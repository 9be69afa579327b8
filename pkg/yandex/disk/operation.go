package yadisk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// errPending marks a poll that saw a non-terminal status.
type errPending struct {
	status string
}

func (e *errPending) Error() string {
	return fmt.Sprintf("operation status is %q", e.status)
}

// GetOperationStatus fetches the current status of the operation at href.
func (c *Client) GetOperationStatus(ctx context.Context, href string) (*Operation, error) {
	if href == "" {
		return nil, fmt.Errorf("operation href is required")
	}
	var op Operation
	if _, err := c.do(ctx, request{method: http.MethodGet, endpoint: href, absolute: true}, &op); err != nil {
		return nil, err
	}
	return &op, nil
}

// WaitForOperation polls href at the configured interval until the operation
// reports success. With the default PollConfig it waits for as long as it
// takes; ctx cancellation always stops it.
//
// A failed poll caused by the network or a 5xx status counts as still
// pending. Any other failure stops polling and is returned.
func (c *Client) WaitForOperation(ctx context.Context, href string) (*Operation, error) {
	if href == "" {
		return nil, fmt.Errorf("operation href is required")
	}
	poll := c.config.Poll

	c.logger.Info("Waiting for operation", zap.String("href", href))
	start := time.Now()
	attempts := 0

	operation := func() (*Operation, error) {
		attempts++
		op, err := c.GetOperationStatus(ctx, href)
		if err != nil {
			if retryable(err) {
				return nil, err
			}
			return nil, backoff.Permanent(err)
		}
		switch op.Status {
		case OperationSuccess:
			return op, nil
		case OperationFailed:
			if poll.FailOnFailed {
				return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrOperationFailed, href))
			}
		}
		return nil, &errPending{status: op.Status}
	}

	notify := func(err error, next time.Duration) {
		c.logger.Debug("Operation not finished yet",
			zap.String("href", href),
			zap.Int("attempt", attempts),
			zap.Duration("next_poll", next),
			zap.Error(err))
	}

	op, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(poll.Interval)),
		backoff.WithMaxTries(poll.MaxAttempts),
		backoff.WithMaxElapsedTime(poll.Timeout),
		backoff.WithNotify(notify),
	)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			c.logger.Warn("Stopped waiting for operation", zap.String("href", href), zap.Error(ctxErr))
			return nil, ctxErr
		}
		var pending *errPending
		if errors.As(err, &pending) || retryable(err) {
			err = fmt.Errorf("%w after %d polls: %w", ErrOperationTimeout, attempts, err)
		}
		c.logger.Error("Operation did not succeed",
			zap.String("href", href),
			zap.Int("attempts", attempts),
			zap.Error(err))
		return nil, err
	}

	c.logger.Info("Operation completed",
		zap.String("href", href),
		zap.Int("attempts", attempts),
		zap.Duration("elapsed", time.Since(start)))

	return op, nil
}

// retryable reports whether a failed poll may succeed when repeated: the
// request never got a response or the API answered with a 5xx status.
func retryable(err error) bool {
	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		return true
	}
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 500
}

// followOperation waits for the operation link points at, if any.
func (c *Client) followOperation(ctx context.Context, link *Link) (*OperationResult, error) {
	result := &OperationResult{Link: link}
	if !link.IsOperation() {
		return result, nil
	}
	op, err := c.WaitForOperation(ctx, link.Href)
	if err != nil {
		return nil, err
	}
	result.Operation = op
	return result, nil
}
