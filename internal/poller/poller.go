// Package poller runs one search-and-collect cycle over all configured keywords.
package poller

import (
	"context"
	"log/slog"
	"time"

	"mention_bot/internal/collector"
	"mention_bot/internal/model"
	"mention_bot/internal/storage"
	"mention_bot/internal/vk"
)

// Searcher is the interface for the paginated search client.
type Searcher interface {
	Search(ctx context.Context, keyword string, startTime int64) ([]vk.Item, error)
}

// Poller orchestrates polling cycles: one invocation of Run is one cycle
// for one chat.
type Poller struct {
	searcher  Searcher
	collector *collector.Collector
	store     storage.Storage
	keys      []string
	retention time.Duration
	log       *slog.Logger
}

// New creates a Poller that searches the given keywords in order.
func New(searcher Searcher, coll *collector.Collector, store storage.Storage, keys []string, retention time.Duration, log *slog.Logger) *Poller {
	return &Poller{
		searcher:  searcher,
		collector: coll,
		store:     store,
		keys:      keys,
		retention: retention,
		log:       log,
	}
}

// Run executes one polling cycle for chatID, considering posts published
// within the given look-back window. Keywords are processed in configured
// order, sharing one accumulator and one seen-set; a keyword whose search
// fails is logged and skipped until the next cycle, without aborting the
// others. Posts already recorded as notified to this chat are dropped.
func (p *Poller) Run(ctx context.Context, chatID int64, window time.Duration) []model.Post {
	since := time.Now().Add(-window).Unix()

	var posts []model.Post
	seen := make(map[string]struct{})

	for _, key := range p.keys {
		if ctx.Err() != nil {
			return nil
		}
		items, err := p.searcher.Search(ctx, key, since)
		if err != nil {
			p.log.Error("search keyword", "key", key, "error", err)
			continue
		}
		posts = p.collector.Collect(items, key, posts, seen)
	}

	fresh := posts[:0]
	for _, post := range posts {
		notified, err := p.store.WasNotified(ctx, chatID, post.Key())
		if err != nil {
			p.log.Error("check notified", "chat_id", chatID, "post", post.Key(), "error", err)
		}
		if notified {
			continue
		}
		fresh = append(fresh, post)
	}

	p.log.Debug("cycle collected", "chat_id", chatID, "posts", len(fresh))
	return fresh
}

// Record marks the cycle's delivered posts in the notified cache and prunes
// entries beyond the retention horizon. Called after the posts are sent.
func (p *Poller) Record(ctx context.Context, chatID int64, posts []model.Post) {
	for _, post := range posts {
		if err := p.store.MarkNotified(ctx, chatID, post.Key()); err != nil {
			p.log.Error("mark notified", "chat_id", chatID, "post", post.Key(), "error", err)
		}
	}

	pruned, err := p.store.Prune(ctx, time.Now().Add(-p.retention))
	if err != nil {
		p.log.Error("prune notified cache", "error", err)
		return
	}
	if pruned > 0 {
		p.log.Debug("pruned notified cache", "rows", pruned)
	}
}
