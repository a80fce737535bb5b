// Package kanban models the client-observable status board: three columns,
// optimistic drag-and-drop transitions, and full rollback to the last
// server-confirmed task set when a transition fails.
package kanban

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/sakumura/taskboard-api/internal/models"
)

// DefaultNoticeTTL is how long a failure notice stays up before it dismisses
// itself.
const DefaultNoticeTTL = 5 * time.Second

// StatusUpdater persists a status transition. The board treats it as a black
// box; any failure triggers a rollback.
type StatusUpdater interface {
	UpdateTaskStatus(ctx context.Context, taskID uint64, status models.TaskStatus) error
}

// Card is the board's view of a task.
type Card struct {
	ID        uint64
	Title     string
	Status    models.TaskStatus
	Priority  models.TaskPriority
	DueDate   *time.Time
	CreatedAt time.Time
}

// CardFromTask builds a Card from a task model.
func CardFromTask(task models.Task) Card {
	return Card{
		ID:        task.ID,
		Title:     task.Title,
		Status:    task.Status,
		Priority:  task.Priority,
		DueDate:   task.DueDate,
		CreatedAt: task.CreatedAt,
	}
}

// CardsFromTasks builds the board's task set from task models.
func CardsFromTasks(tasks []models.Task) []Card {
	cards := make([]Card, len(tasks))
	for i, task := range tasks {
		cards[i] = CardFromTask(task)
	}
	return cards
}

// Column is one status lane with its cards in canonical order.
type Column struct {
	Status models.TaskStatus
	Cards  []Card
}

// State describes the board's lifecycle.
type State int

const (
	StateStable State = iota
	StatePending
	StateErrored
)

var columnOrder = []models.TaskStatus{
	models.TaskStatusTodo,
	models.TaskStatusInProgress,
	models.TaskStatusDone,
}

// Board tracks a local, optimistically updated view of a task set alongside
// the last server-confirmed snapshot.
type Board struct {
	mu        sync.Mutex
	updater   StatusUpdater
	confirmed []Card
	local     []Card
	pendingID uint64
	notice    string
	hasNotice bool

	noticeTTL   time.Duration
	noticeTimer *time.Timer

	onInvalidate func()
}

// Option configures a Board.
type Option func(*Board)

// WithNoticeTTL overrides the failure notice auto-dismiss interval.
func WithNoticeTTL(ttl time.Duration) Option {
	return func(b *Board) {
		b.noticeTTL = ttl
	}
}

// WithInvalidation registers a hook fired after a confirmed transition so
// cached aggregates (dashboards, counts) can refresh to server truth.
func WithInvalidation(fn func()) Option {
	return func(b *Board) {
		b.onInvalidate = fn
	}
}

// NewBoard creates a board over the given task set.
func NewBoard(updater StatusUpdater, cards []Card, opts ...Option) *Board {
	b := &Board{
		updater:   updater,
		confirmed: cloneCards(cards),
		local:     cloneCards(cards),
		noticeTTL: DefaultNoticeTTL,
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// Sync replaces the confirmed snapshot, e.g. after a refetch.
func (b *Board) Sync(cards []Card) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.confirmed = cloneCards(cards)
	b.local = cloneCards(cards)
}

// MoveTask transitions a task to the target column. Dropping a task in its
// current column, on an unknown column, or dropping an unknown task is a
// no-op. The local view changes before the mutation is issued; on failure the
// whole task set reverts to the confirmed snapshot and a transient notice is
// raised.
//
// Concurrent moves on the same task are resolved last-resolved-wins; there is
// no queuing.
func (b *Board) MoveTask(ctx context.Context, taskID uint64, target models.TaskStatus) error {
	if !target.IsValid() {
		return nil
	}

	b.mu.Lock()
	idx := indexOf(b.local, taskID)
	if idx < 0 || b.local[idx].Status == target {
		b.mu.Unlock()
		return nil
	}

	// Optimistic update: the column changes before the server answers.
	b.local[idx].Status = target
	b.pendingID = taskID
	b.mu.Unlock()

	err := b.updater.UpdateTaskStatus(ctx, taskID, target)

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		// Revert the entire task set, not just the moved card.
		b.local = cloneCards(b.confirmed)
		b.pendingID = 0
		b.raiseNoticeLocked(fmt.Sprintf("Failed to move task: %v. The board has been reverted.", err))
		return err
	}

	if i := indexOf(b.confirmed, taskID); i >= 0 {
		b.confirmed[i].Status = target
	}
	b.pendingID = 0
	b.clearNoticeLocked()

	if b.onInvalidate != nil {
		b.onInvalidate()
	}

	return nil
}

// Columns returns the three lanes with cards in canonical order: priority
// descending (HIGH, MEDIUM, LOW), then creation time descending. The order is
// recomputed from the full task set on every call and never persisted.
func (b *Board) Columns() []Column {
	b.mu.Lock()
	defer b.mu.Unlock()

	columns := make([]Column, len(columnOrder))
	for i, status := range columnOrder {
		var cards []Card
		for _, card := range b.local {
			if card.Status == status {
				cards = append(cards, card)
			}
		}

		sort.SliceStable(cards, func(a, z int) bool {
			if cards[a].Priority.Rank() != cards[z].Priority.Rank() {
				return cards[a].Priority.Rank() < cards[z].Priority.Rank()
			}
			return cards[a].CreatedAt.After(cards[z].CreatedAt)
		})

		columns[i] = Column{Status: status, Cards: cards}
	}

	return columns
}

// Tasks returns a copy of the current local task set.
func (b *Board) Tasks() []Card {
	b.mu.Lock()
	defer b.mu.Unlock()

	return cloneCards(b.local)
}

// State reports the board's lifecycle state.
func (b *Board) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.pendingID != 0:
		return StatePending
	case b.hasNotice:
		return StateErrored
	default:
		return StateStable
	}
}

// Pending returns the task with an outstanding transition, if any.
func (b *Board) Pending() (uint64, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.pendingID, b.pendingID != 0
}

// Notice returns the current failure notice, if any.
func (b *Board) Notice() (string, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	return b.notice, b.hasNotice
}

// DismissNotice clears the failure notice immediately.
func (b *Board) DismissNotice() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.clearNoticeLocked()
}

func (b *Board) raiseNoticeLocked(message string) {
	if b.noticeTimer != nil {
		b.noticeTimer.Stop()
	}

	b.notice = message
	b.hasNotice = true

	if b.noticeTTL > 0 {
		b.noticeTimer = time.AfterFunc(b.noticeTTL, b.DismissNotice)
	}
}

func (b *Board) clearNoticeLocked() {
	if b.noticeTimer != nil {
		b.noticeTimer.Stop()
		b.noticeTimer = nil
	}

	b.notice = ""
	b.hasNotice = false
}

func indexOf(cards []Card, taskID uint64) int {
	for i := range cards {
		if cards[i].ID == taskID {
			return i
		}
	}
	return -1
}

func cloneCards(cards []Card) []Card {
	cloned := make([]Card, len(cards))
	copy(cloned, cards)
	return cloned
}
