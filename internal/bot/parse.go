package bot

import (
	"fmt"
	"regexp"
)

var wallLinkRe = regexp.MustCompile(`wall-(\d+)_(\d+)`)

// ExtractGroupID pulls the group identifier out of a notification
// message's embedded wall link ("wall-<group_id>_<post_id>").
func ExtractGroupID(text string) (string, error) {
	m := wallLinkRe.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("no wall link in message text")
	}
	return m[1], nil
}
