// Package queue wires background jobs over asynq/Redis. Its one job today is
// tearing down rooms whose meetup time has passed.
package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"meetgo/backend/internal/config"
	"meetgo/backend/internal/post"

	"github.com/hibiken/asynq"
)

// TypeDestroyExpired is the task name for post/room teardown.
const TypeDestroyExpired = "post:destroy_expired"

type destroyPayload struct {
	PostID uint `json:"postId"`
}

// Client enqueues teardown tasks. Satisfies post.Scheduler.
type Client struct {
	client *asynq.Client
}

// NewClient creates the enqueue side against the shared Redis.
func NewClient(redisAddr string) *Client {
	return &Client{
		client: asynq.NewClient(asynq.RedisClientOpt{Addr: redisAddr}),
	}
}

var _ post.Scheduler = (*Client)(nil)

// ScheduleDestroy books a teardown at the post's end time. MaxRetry covers
// transient store failures; the handler itself is idempotent.
func (c *Client) ScheduleDestroy(postID uint, at time.Time) error {
	payload, err := json.Marshal(destroyPayload{PostID: postID})
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeDestroyExpired, payload)
	_, err = c.client.Enqueue(task, asynq.ProcessAt(at), asynq.MaxRetry(3))
	return err
}

// Close releases the underlying connection.
func (c *Client) Close() error {
	return c.client.Close()
}

// Server runs the teardown worker plus a periodic sweep that catches posts
// whose scheduled task was lost.
type Server struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	posts  *post.Service
}

// NewServer creates the worker side.
func NewServer(redisAddr string, posts *post.Service) *Server {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: redisAddr},
		asynq.Config{
			Concurrency: 5,
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				log.Printf("ERROR: Task %s failed: %v", task.Type(), err)
			}),
		},
	)

	mux := asynq.NewServeMux()
	s := &Server{server: srv, mux: mux, posts: posts}
	mux.HandleFunc(TypeDestroyExpired, s.handleDestroyExpired)
	return s
}

func (s *Server) handleDestroyExpired(ctx context.Context, t *asynq.Task) error {
	var p destroyPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		// Malformed payload; retrying cannot help.
		return nil
	}
	return s.posts.Destroy(p.PostID)
}

// Run starts the worker and the expiry sweep, blocking until the context is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	go s.sweepLoop(ctx)

	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	s.server.Shutdown()
	return nil
}

func (s *Server) sweepLoop(ctx context.Context) {
	ticker := time.NewTicker(config.ExpiryScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := s.posts.DestroyExpired(time.Now()); err != nil {
				log.Printf("ERROR: Expiry sweep failed: %v", err)
			}
		case <-ctx.Done():
			return
		}
	}
}
