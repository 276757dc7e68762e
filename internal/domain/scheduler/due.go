package scheduler

import (
	"time"

	"github.com/recallhq/recall-api/internal/domain"
)

// IsDue reports whether a card should be reviewed now.
//
// A nil progress record means the card has never been studied and is always
// due. Otherwise the card is due when its scheduled NextDueAt is at or
// before now. The predicate is pure and total: it never panics regardless
// of the progress state passed in.
func IsDue(progress *domain.Progress, now time.Time) bool {
	if progress == nil {
		return true
	}
	return !progress.NextDueAt.After(now)
}
