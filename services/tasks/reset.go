// Package tasks defines the background task types and the enqueue client
// shared by the API and the worker.
package tasks

import (
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"agritrust/config"
)

const TypeResetEmail = "reset:email"

// ResetEmailPayload carries everything the worker needs to deliver a
// password-reset code.
type ResetEmailPayload struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Code  string `json:"code"`
}

// Client enqueues background tasks on the Redis task queue.
type Client struct {
	inner *asynq.Client
}

// NewClient builds an enqueue client from the application configuration.
func NewClient() *Client {
	return &Client{inner: asynq.NewClient(RedisOpt())}
}

// RedisOpt returns the asynq Redis connection options for both the
// client and the worker.
func RedisOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisTaskQueueDB,
	}
}

// EnqueueResetEmail queues delivery of a reset code. Tasks are retried
// by the worker, so transient mail failures do not lose the code.
func (c *Client) EnqueueResetEmail(email, name, code string) error {
	b, err := json.Marshal(ResetEmailPayload{Email: email, Name: name, Code: code})
	if err != nil {
		return fmt.Errorf("failed to marshal reset email payload: %w", err)
	}
	task := asynq.NewTask(TypeResetEmail, b)
	if _, err := c.inner.Enqueue(task, asynq.MaxRetry(3)); err != nil {
		return fmt.Errorf("failed to enqueue reset email: %w", err)
	}
	return nil
}

// Close releases the underlying Redis connection.
func (c *Client) Close() error {
	return c.inner.Close()
}
