package tasks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/madinah-companion/internal/scheduler"
)

const webhookTimeout = 10 * time.Second

// DeliverReminderTask hands one fired daily reminder to the configured sinks.
type DeliverReminderTask struct {
	Handle  string    `json:"handle"`
	Title   string    `json:"title"`
	Body    string    `json:"body"`
	FiredAt time.Time `json:"fired_at"`
}

// Config returns the queue configuration for reminder delivery.
func (t DeliverReminderTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "deliver_reminder",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Sink delivers a reminder to the user.
type Sink interface {
	Deliver(ctx context.Context, task DeliverReminderTask) error
}

// LogSink writes reminders to the application log.
type LogSink struct {
	log *zap.Logger
}

func NewLogSink(log *zap.Logger) *LogSink {
	return &LogSink{log: log}
}

func (s *LogSink) Deliver(ctx context.Context, task DeliverReminderTask) error {
	s.log.Info("reminder delivered",
		zap.String("title", task.Title),
		zap.String("body", task.Body),
		zap.String("handle", task.Handle),
		zap.Time("fired_at", task.FiredAt),
	)
	return nil
}

// WebhookSink POSTs reminders as JSON. Any non-2xx response is an error so
// the task is retried.
type WebhookSink struct {
	url        string
	httpClient *http.Client
}

func NewWebhookSink(url string) *WebhookSink {
	return &WebhookSink{
		url: url,
		httpClient: &http.Client{
			Timeout: webhookTimeout,
		},
	}
}

func (s *WebhookSink) Deliver(ctx context.Context, task DeliverReminderTask) error {
	payload, err := json.Marshal(task)
	if err != nil {
		return fmt.Errorf("failed to encode reminder: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("webhook request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}

// Sinks fans a reminder out to several sinks and joins their errors.
type Sinks []Sink

func (s Sinks) Deliver(ctx context.Context, task DeliverReminderTask) error {
	var errs []error
	for _, sink := range s {
		if err := sink.Deliver(ctx, task); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// DeliverReminderProcessor creates a processor function for DeliverReminderTask.
func DeliverReminderProcessor(sink Sink) backlite.QueueProcessor[DeliverReminderTask] {
	return func(ctx context.Context, task DeliverReminderTask) error {
		if sink == nil {
			return fmt.Errorf("reminder sink not configured")
		}
		if err := sink.Deliver(ctx, task); err != nil {
			return fmt.Errorf("deliver reminder %s: %w", task.Handle, err)
		}
		return nil
	}
}

// NewDeliverReminderQueue creates a backlite queue for reminder delivery.
func NewDeliverReminderQueue(sink Sink) backlite.Queue {
	return backlite.NewQueue(DeliverReminderProcessor(sink))
}

func taskFromFiring(firing scheduler.Firing) DeliverReminderTask {
	return DeliverReminderTask{
		Handle:  firing.Handle,
		Title:   firing.Title,
		Body:    firing.Body,
		FiredAt: firing.FiredAt,
	}
}

// QueueDispatcher enqueues fired reminders for durable delivery.
type QueueDispatcher struct {
	client *Client
}

func NewQueueDispatcher(client *Client) *QueueDispatcher {
	return &QueueDispatcher{client: client}
}

func (d *QueueDispatcher) Dispatch(ctx context.Context, firing scheduler.Firing) error {
	if _, err := d.client.Add(taskFromFiring(firing)).Save(); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}

// DirectDispatcher delivers fired reminders synchronously, for when the task
// queue is disabled.
type DirectDispatcher struct {
	sink Sink
}

func NewDirectDispatcher(sink Sink) *DirectDispatcher {
	return &DirectDispatcher{sink: sink}
}

func (d *DirectDispatcher) Dispatch(ctx context.Context, firing scheduler.Firing) error {
	return d.sink.Deliver(ctx, taskFromFiring(firing))
}
