package bot

import (
	"fmt"
	"strings"
	"time"

	"mention_bot/internal/model"
)

// FormatPost renders one mention as a Telegram notification message: a
// header naming the matched keyword, the post's wall link, its relative
// age, and the keyword repeated as a tag.
func FormatPost(p model.Post, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Новое упоминание #%s\n", p.SearchKey)
	fmt.Fprintf(&b, "https://vk.com/wall-%s_%d\n", p.GroupID, p.ID)
	b.WriteString(FormatAge(now.Unix() - p.Date))
	fmt.Fprintf(&b, "\n#%s", p.SearchKey)
	return b.String()
}

// FormatAge renders a post's age as a human-readable relative string.
// Ranges are contiguous and half-open, inclusive of their lower bound.
func FormatAge(seconds int64) string {
	if seconds < 0 {
		seconds = 0
	}
	switch {
	case seconds < 60:
		return fmt.Sprintf("%d сек. назад", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%d мин. назад", seconds/60)
	case seconds < 86400:
		return fmt.Sprintf("%d ч. назад", seconds/3600)
	case seconds < 2592000:
		return fmt.Sprintf("%d дн. назад", seconds/86400)
	case seconds < 31536000:
		return fmt.Sprintf("%d мес. назад", seconds/2592000)
	default:
		return fmt.Sprintf("%d г. назад", seconds/31536000)
	}
}
