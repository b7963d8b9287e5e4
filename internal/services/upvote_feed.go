package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/launchboard/launchboard-backend/internal/database"
)

// UpvoteEvent is broadcast over Redis whenever a startup gains an upvote, so
// detail pages can show a live counter.
type UpvoteEvent struct {
	StartupID    string    `json:"startup_id"`
	UpvotesCount int       `json:"upvotes_count"`
	Timestamp    time.Time `json:"timestamp,omitempty"`
}

const upvoteChannelPrefix = "upvotes:startup:"

// upvoteHub fans Redis upvote events out to local WebSocket subscribers,
// keyed by startup id.
type upvoteHub struct {
	mu          sync.RWMutex
	subscribers map[string]map[chan UpvoteEvent]struct{}
}

var (
	feedHub           = &upvoteHub{subscribers: make(map[string]map[chan UpvoteEvent]struct{})}
	upvoteFeedStarted sync.Once
)

// SubscribeUpvotes registers a local subscriber for one startup's upvote
// events. The returned func must be called to unsubscribe; it closes the
// channel.
func SubscribeUpvotes(startupID string) (<-chan UpvoteEvent, func()) {
	ch := make(chan UpvoteEvent, 8)

	feedHub.mu.Lock()
	subs, ok := feedHub.subscribers[startupID]
	if !ok {
		subs = make(map[chan UpvoteEvent]struct{})
		feedHub.subscribers[startupID] = subs
	}
	subs[ch] = struct{}{}
	feedHub.mu.Unlock()

	unsubscribe := func() {
		feedHub.mu.Lock()
		if subs, ok := feedHub.subscribers[startupID]; ok {
			if _, present := subs[ch]; present {
				delete(subs, ch)
				close(ch)
			}
			if len(subs) == 0 {
				delete(feedHub.subscribers, startupID)
			}
		}
		feedHub.mu.Unlock()
	}
	return ch, unsubscribe
}

// fanOutUpvoteEvent delivers an event to all local subscribers for its
// startup. Slow consumers drop events rather than block the feed.
func fanOutUpvoteEvent(event UpvoteEvent) {
	feedHub.mu.RLock()
	defer feedHub.mu.RUnlock()

	for ch := range feedHub.subscribers[event.StartupID] {
		select {
		case ch <- event:
		default:
		}
	}
}

// StartUpvoteFeedSubscriber ensures a single shared Redis listener per
// instance.
func StartUpvoteFeedSubscriber(ctx context.Context) {
	upvoteFeedStarted.Do(func() {
		go runUpvoteFeedSubscriber(ctx)
	})
}

func runUpvoteFeedSubscriber(ctx context.Context) {
	client := database.RedisClient
	if client == nil {
		log.Println("Redis client not initialized; upvote feed subscriber not started")
		return
	}

	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := client.PSubscribe(ctx, upvoteChannelPrefix+"*")
			defer pubsub.Close()

			log.Println("✅ Upvote feed Redis subscriber started (pattern: " + upvoteChannelPrefix + "*)")

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					log.Printf("Redis upvote subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event UpvoteEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal upvote event: %v", err)
					continue
				}

				fanOutUpvoteEvent(event)
			}
		}()
	}
}

// PublishUpvoteEvent publishes an event to Redis; called after a successful
// upvote. Best-effort: the vote itself is already durable, and with no Redis
// connection the event is simply dropped.
func PublishUpvoteEvent(ctx context.Context, event UpvoteEvent) error {
	if database.RedisClient == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return database.RedisClient.Publish(ctx, upvoteChannelPrefix+event.StartupID, data).Err()
}
