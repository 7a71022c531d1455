package notification

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/SherClockHolmes/webpush-go"

	"nursery-prep-backend/internal/model"
	"nursery-prep-backend/internal/store"
)

// NotificationSender defines the interface for sending a web push notification.
type NotificationSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is a real implementation of NotificationSender using the webpush library.
type WebPushSender struct{}

// Send sends a notification using the webpush library.
func (s *WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// Message is the JSON payload the service worker renders.
type Message struct {
	Title string `json:"title"`
	Body  string `json:"body"`
	// Date is the day the message is about, YYYY-MM-DD.
	Date string `json:"date,omitempty"`
	URL  string `json:"url,omitempty"`
}

// WorkerPool manages a pool of workers that broadcast messages to every
// stored push subscription.
type WorkerPool struct {
	size    int
	jobs    chan Message
	subs    store.SubscriptionStore
	webpush *webpush.Options
	sender  NotificationSender
}

// NewWorkerPool creates a new worker pool.
func NewWorkerPool(size int, subs store.SubscriptionStore, webpushOptions *webpush.Options) *WorkerPool {
	if size <= 0 {
		size = 1
	}
	return &WorkerPool{
		size:    size,
		jobs:    make(chan Message, size),
		subs:    subs,
		webpush: webpushOptions,
		sender:  &WebPushSender{},
	}
}

// Start launches the worker goroutines.
func (wp *WorkerPool) Start(ctx context.Context) {
	for i := 0; i < wp.size; i++ {
		go wp.worker(ctx, i)
	}
}

func (wp *WorkerPool) worker(ctx context.Context, id int) {
	log.Printf("Worker %d started", id)
	for {
		select {
		case msg := <-wp.jobs:
			log.Printf("Worker %d broadcasting %q", id, msg.Title)
			wp.broadcast(ctx, msg)
		case <-ctx.Done():
			log.Printf("Worker %d shutting down", id)
			return
		}
	}
}

// Dispatch queues a message for every subscriber. It blocks while the queue
// is full and gives up when ctx is done.
func (wp *WorkerPool) Dispatch(ctx context.Context, msg Message) error {
	select {
	case wp.jobs <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Jobs returns the jobs channel for testing.
func (wp *WorkerPool) Jobs() chan Message {
	return wp.jobs
}

func (wp *WorkerPool) broadcast(ctx context.Context, msg Message) {
	subscriptions, err := wp.subs.ListSubscriptions(ctx)
	if err != nil {
		log.Printf("Error fetching subscriptions: %v", err)
		return
	}
	if len(subscriptions) == 0 {
		return
	}

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error encoding notification: %v", err)
		return
	}

	log.Printf("Sending %d notifications", len(subscriptions))
	for _, sub := range subscriptions {
		wp.sendNotification(ctx, sub, payload)
	}
}

func (wp *WorkerPool) sendNotification(ctx context.Context, sub model.PushSubscription, payload []byte) {
	wpSub := &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys: webpush.Keys{
			P256dh: sub.P256DH,
			Auth:   sub.Auth,
		},
	}

	resp, err := wp.sender.Send(payload, wpSub, wp.webpush)
	if err != nil {
		log.Printf("Error sending notification to %s: %v", sub.Endpoint, err)
		return
	}
	defer resp.Body.Close()

	// Expired subscriptions
	if resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound {
		log.Printf("Subscription for endpoint %s is expired. Deleting.", sub.Endpoint)
		if err := wp.subs.DeleteSubscription(ctx, sub.Endpoint); err != nil {
			log.Printf("Failed to delete expired subscription %s: %v", sub.Endpoint, err)
		}
	}
}
