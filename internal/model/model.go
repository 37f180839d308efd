// Package model defines the domain types used across the application.
package model

import "fmt"

// Post is a single group-authored mention found during a polling cycle.
// Posts are derived from raw search results, live for the duration of one
// cycle, and are never persisted.
type Post struct {
	ID        int64
	GroupID   string
	Date      int64 // unix seconds
	SearchKey string
}

// Key returns the composite identity "{post_id}_{group_id}" used for
// deduplication within and across cycles.
func (p Post) Key() string {
	return fmt.Sprintf("%d_%s", p.ID, p.GroupID)
}
