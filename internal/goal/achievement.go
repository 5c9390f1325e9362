package goal

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/finassist/internal/i18n"
	"github.com/MrJamesThe3rd/finassist/internal/transaction"
)

// Achievement is emitted once when a goal's category stayed within budget for
// a closed calendar month. It is never persisted.
type Achievement struct {
	ID          string
	GoalID      uuid.UUID
	Title       string
	Description string
	Date        time.Time
}

type monthKey struct {
	year  int
	month time.Month
}

func monthOf(t time.Time) monthKey {
	return monthKey{year: t.Year(), month: t.Month()}
}

func (k monthKey) start(loc *time.Location) time.Time {
	return time.Date(k.year, k.month, 1, 0, 0, 0, 0, loc)
}

func (k monthKey) next() monthKey {
	if k.month == time.December {
		return monthKey{year: k.year + 1, month: time.January}
	}

	return monthKey{year: k.year, month: k.month + 1}
}

func (k monthKey) before(o monthKey) bool {
	return k.year < o.year || (k.year == o.year && k.month < o.month)
}

type emitted struct {
	goal  uuid.UUID
	month monthKey
}

// Tracker watches for month rollovers during a session. The first Evaluate
// only records the current month; later calls that land in a new month check
// every month closed since then.
type Tracker struct {
	mu      sync.Mutex
	current monthKey
	started bool
	seen    map[emitted]struct{}
}

func NewTracker() *Tracker {
	return &Tracker{seen: make(map[emitted]struct{})}
}

func (t *Tracker) Evaluate(goals []*Goal, txs []*transaction.Transaction, lang i18n.Language, now time.Time) []Achievement {
	t.mu.Lock()
	defer t.mu.Unlock()

	month := monthOf(now)

	if !t.started {
		t.started = true
		t.current = month

		return nil
	}

	var out []Achievement

	for closed := t.current; closed.before(month); closed = closed.next() {
		for _, g := range goals {
			key := emitted{goal: g.ID, month: closed}
			if _, ok := t.seen[key]; ok {
				continue
			}

			if !g.CreatedAt.Before(closed.next().start(time.UTC)) {
				continue
			}

			if spentIn(txs, g.Category, closed).GreaterThan(g.Amount) {
				continue
			}

			t.seen[key] = struct{}{}
			out = append(out, newAchievement(g, closed, lang, now))
		}
	}

	if t.current.before(month) {
		t.current = month
	}

	return out
}

// spentIn sums expenses by the calendar month of their stored date, which is
// a UTC midnight, so the viewer's zone never moves a day across months.
func spentIn(txs []*transaction.Transaction, cat transaction.Category, month monthKey) decimal.Decimal {
	spent := decimal.Zero

	for _, tx := range txs {
		if tx.Category != cat || !tx.IsExpense() {
			continue
		}

		if monthOf(tx.Date) != month {
			continue
		}

		spent = spent.Add(tx.Amount.Abs())
	}

	return spent
}

func newAchievement(g *Goal, month monthKey, lang i18n.Language, now time.Time) Achievement {
	return Achievement{
		ID:          fmt.Sprintf("achievement-%s-%04d-%02d", g.ID, month.year, month.month),
		GoalID:      g.ID,
		Title:       fmt.Sprintf("%s %s", i18n.T(lang, i18n.KeyGoalMet), i18n.CategoryLabel(string(g.Category), lang)),
		Description: fmt.Sprintf("%s %s.", i18n.T(lang, i18n.KeyGoalMetDescription), i18n.FormatCurrency(g.Amount, lang)),
		Date:        now,
	}
}
