// Package scheduler manages the per-chat recurring polling jobs.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"mention_bot/internal/model"
)

// CycleRunner executes one polling cycle and records its deliveries.
type CycleRunner interface {
	Run(ctx context.Context, chatID int64, window time.Duration) []model.Post
	Record(ctx context.Context, chatID int64, posts []model.Post)
}

// Sender delivers a cycle's posts to a chat.
type Sender interface {
	SendPosts(chatID int64, posts []model.Post)
}

// Scheduler runs one polling goroutine per chat that issued the start
// command. A chat's cycles run synchronously inside its goroutine, so a
// slow cycle delays the next tick instead of overlapping it.
type Scheduler struct {
	runner      CycleRunner
	sender      Sender
	interval    time.Duration
	firstWindow time.Duration
	log         *slog.Logger

	mu   sync.Mutex
	jobs map[int64]context.CancelFunc
	wg   sync.WaitGroup
}

// New creates a Scheduler. interval is both the tick period and the
// look-back window of recurring cycles; firstWindow is the wider window of
// the immediate first cycle.
func New(runner CycleRunner, sender Sender, interval, firstWindow time.Duration, log *slog.Logger) *Scheduler {
	return &Scheduler{
		runner:      runner,
		sender:      sender,
		interval:    interval,
		firstWindow: firstWindow,
		log:         log,
		jobs:        make(map[int64]context.CancelFunc),
	}
}

// Start launches the polling job for chatID: an immediate cycle with the
// first-run window, then a recurring cycle every interval. A previous job
// for the same chat is cancelled first; other chats' jobs are untouched.
func (s *Scheduler) Start(ctx context.Context, chatID int64) {
	s.mu.Lock()
	if cancel, ok := s.jobs[chatID]; ok {
		cancel()
	}
	jobCtx, cancel := context.WithCancel(ctx)
	s.jobs[chatID] = cancel
	s.mu.Unlock()

	s.log.Info("schedule started", "chat_id", chatID, "interval", s.interval)

	s.wg.Add(1)
	go s.run(jobCtx, chatID)
}

// Stop cancels chatID's job. Reports whether a job existed.
func (s *Scheduler) Stop(chatID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	cancel, ok := s.jobs[chatID]
	if !ok {
		return false
	}
	cancel()
	delete(s.jobs, chatID)
	s.log.Info("schedule stopped", "chat_id", chatID)
	return true
}

// StopAll cancels every job and waits for their goroutines to return.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	for chatID, cancel := range s.jobs {
		cancel()
		delete(s.jobs, chatID)
	}
	s.mu.Unlock()
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context, chatID int64) {
	defer s.wg.Done()

	s.cycle(ctx, chatID, s.firstWindow)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cycle(ctx, chatID, s.interval)
		}
	}
}

func (s *Scheduler) cycle(ctx context.Context, chatID int64, window time.Duration) {
	posts := s.runner.Run(ctx, chatID, window)
	if ctx.Err() != nil || len(posts) == 0 {
		return
	}

	s.sender.SendPosts(chatID, posts)
	s.runner.Record(ctx, chatID, posts)

	s.log.Info("cycle delivered", "chat_id", chatID, "posts", len(posts))
}
