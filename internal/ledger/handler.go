package ledger

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"
	"github.com/pixil98/go-quest/internal/game"
	"github.com/pixil98/go-quest/internal/storage"
)

// StateKey is the asset id the game snapshot is saved under.
const StateKey = "state"

// OperationFunc applies a transaction to the game state and returns the
// value reported in the receipt.
type OperationFunc func(ctx context.Context, g *game.GameState, tx *Tx) (any, error)

// Operation is a named entry point into the game.
type Operation struct {
	// Admin restricts the operation to configured admin senders.
	Admin bool
	Exec  OperationFunc
}

// Handler applies transactions to a GameState one at a time. It is the only
// component that touches the state, so the state itself needs no locking.
type Handler struct {
	mu    sync.Mutex
	state *game.GameState
	ops   map[string]Operation

	admins map[game.PlayerID]bool

	store        storage.Storer[*game.Snapshot]
	savedVersion uint64
}

// NewHandler creates a Handler with the built-in game operations registered.
func NewHandler(state *game.GameState, opts ...HandlerOpt) *Handler {
	h := &Handler{
		state:        state,
		ops:          make(map[string]Operation),
		admins:       make(map[game.PlayerID]bool),
		savedVersion: state.Version(),
	}

	for _, opt := range opts {
		opt(h)
	}

	registerBuiltins(h)
	return h
}

// Register adds an operation under name.
func (h *Handler) Register(name string, op Operation) error {
	if name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if op.Exec == nil {
		return fmt.Errorf("operation %q has no exec func", name)
	}
	if _, exists := h.ops[name]; exists {
		return fmt.Errorf("operation %q already registered", name)
	}
	h.ops[name] = op
	return nil
}

// Operations returns the registered operation names in sorted order.
func (h *Handler) Operations() []string {
	names := make([]string, 0, len(h.ops))
	for name := range h.ops {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Exec applies a transaction and returns its receipt. A transaction without
// an id is given one.
func (h *Handler) Exec(ctx context.Context, tx *Tx) *Receipt {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}

	value, err := h.exec(ctx, tx)
	if err != nil {
		slog.WarnContext(ctx, "transaction rejected", "tx", tx.ID, "op", tx.Op, "sender", tx.Sender, "error", err)
	} else {
		slog.InfoContext(ctx, "transaction applied", "tx", tx.ID, "op", tx.Op, "sender", tx.Sender)
	}

	return newReceipt(tx, value, err)
}

func (h *Handler) exec(ctx context.Context, tx *Tx) (any, error) {
	name := strings.ToLower(strings.TrimSpace(tx.Op))
	op, ok := h.ops[name]
	if !ok {
		if s := h.suggest(name); s != "" {
			return nil, NewUserError(fmt.Sprintf("unknown operation %q, did you mean %q?", tx.Op, s))
		}
		return nil, NewUserError(fmt.Sprintf("unknown operation %q", tx.Op))
	}

	if tx.Sender == "" {
		return nil, NewUserError("transaction sender is required")
	}

	if op.Admin && !h.admins[tx.Sender] {
		return nil, fmt.Errorf("%s requires an admin sender: %w", name, game.ErrNotAuthorized)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	return op.Exec(ctx, h.state, tx)
}

// suggest returns the registered operation closest to name, or "" when none
// is close enough.
func (h *Handler) suggest(name string) string {
	best, bestDist := "", -1
	for _, candidate := range h.Operations() {
		dist := levenshtein.ComputeDistance(name, candidate)
		if dist > suggestLimit(len(candidate)) {
			continue
		}
		if bestDist < 0 || dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}

func suggestLimit(n int) int {
	if n <= 4 {
		return 1
	}
	return max(2, n/4)
}

// Tick saves the game state if it changed since the last save.
func (h *Handler) Tick(ctx context.Context) error {
	return h.Save(ctx)
}

// Save writes the game snapshot to the configured store when the state has
// changed. Without a store it does nothing.
func (h *Handler) Save(ctx context.Context) error {
	if h.store == nil {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	version := h.state.Version()
	if version == h.savedVersion {
		return nil
	}

	if err := h.store.Save(StateKey, h.state.Snapshot()); err != nil {
		return fmt.Errorf("saving game state: %w", err)
	}
	h.savedVersion = version

	slog.InfoContext(ctx, "game state saved", "version", version)
	return nil
}

// Start blocks until ctx is done, then saves the state one last time.
func (h *Handler) Start(ctx context.Context) error {
	<-ctx.Done()

	// ctx is already cancelled; log against a fresh context.
	return h.Save(context.WithoutCancel(ctx))
}
