// Package collector turns raw search results into deduplicated post records.
package collector

import (
	"strconv"

	"mention_bot/internal/model"
	"mention_bot/internal/vk"
)

// MuteChecker reports whether a group's notifications are muted.
type MuteChecker interface {
	Contains(groupID string) bool
}

// Collector filters raw items against the mute-list and a per-cycle
// seen-set. It performs no I/O and is deterministic for a given mute-list
// snapshot.
type Collector struct {
	muted MuteChecker
}

// New creates a Collector that consults muted for group suppression.
func New(muted MuteChecker) *Collector {
	return &Collector{muted: muted}
}

// Collect appends to acc a post record for every item that is
// group-authored, not muted, and not yet present in seen. seen is shared
// across all keywords of one polling cycle, so a post matching several
// keywords is collected once, tagged with the keyword processed first.
func (c *Collector) Collect(items []vk.Item, searchKey string, acc []model.Post, seen map[string]struct{}) []model.Post {
	for _, item := range items {
		// Only group-authored posts are eligible; groups have negative
		// owner IDs.
		if item.OwnerID >= 0 {
			continue
		}

		post := model.Post{
			ID:        item.ID,
			GroupID:   strconv.FormatInt(-item.OwnerID, 10),
			Date:      item.Date,
			SearchKey: searchKey,
		}
		key := post.Key()

		if c.muted.Contains(post.GroupID) {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}

		seen[key] = struct{}{}
		acc = append(acc, post)
	}
	return acc
}
