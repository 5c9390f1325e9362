package goal

import (
	"sync"
	"time"
)

const (
	DisplayDuration = 5 * time.Second
	ExitGrace       = 300 * time.Millisecond
)

// Notice is an achievement as currently shown. Exiting notices are in their
// exit grace period and disappear on a later call.
type Notice struct {
	Achievement
	Exiting bool
}

type queued struct {
	achievement Achievement
	shownAt     time.Time
	exitAt      time.Time
}

// Notifications is the queue of achievements waiting to expire.
type Notifications struct {
	mu    sync.Mutex
	items []queued
}

func (n *Notifications) Push(now time.Time, achievements ...Achievement) {
	n.mu.Lock()
	defer n.mu.Unlock()

	for _, a := range achievements {
		n.items = append(n.items, queued{
			achievement: a,
			shownAt:     now,
			exitAt:      now.Add(DisplayDuration),
		})
	}
}

// Dismiss starts the exit grace period of id early.
func (n *Notifications) Dismiss(id string, now time.Time) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i := range n.items {
		if n.items[i].achievement.ID != id {
			continue
		}

		if now.Before(n.items[i].exitAt) {
			n.items[i].exitAt = now
		}

		return true
	}

	return false
}

// Active drops notices whose grace period is over and returns the rest in
// the order they were pushed.
func (n *Notifications) Active(now time.Time) []Notice {
	n.mu.Lock()
	defer n.mu.Unlock()

	kept := n.items[:0]
	out := make([]Notice, 0, len(n.items))

	for _, q := range n.items {
		if !now.Before(q.exitAt.Add(ExitGrace)) {
			continue
		}

		kept = append(kept, q)
		out = append(out, Notice{
			Achievement: q.achievement,
			Exiting:     !now.Before(q.exitAt),
		})
	}

	n.items = kept

	return out
}
