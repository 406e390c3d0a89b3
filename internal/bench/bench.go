// Package bench times insert, search and remove over generated key sets.
package bench

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/Sumatoshi-tech/rbkeys/pkg/rbtree"
)

// Benchmark errors.
var (
	ErrNoSizes      = errors.New("no benchmark sizes")
	ErrInvalidSize  = errors.New("benchmark size must be positive")
	ErrInvalidOrder = errors.New("unknown key order")
	ErrInvariant    = errors.New("tree invariant violated")
)

// Order is the sequence in which keys are fed to the tree.
type Order string

// Key orders.
const (
	OrderShuffled Order = "shuffled"
	OrderSorted   Order = "sorted"
	OrderReversed Order = "reversed"
)

// Orders returns every supported order.
func Orders() []Order {
	return []Order{OrderShuffled, OrderSorted, OrderReversed}
}

// ParseOrder converts an order name into an Order.
func ParseOrder(name string) (Order, error) {
	switch order := Order(name); order {
	case OrderShuffled, OrderSorted, OrderReversed:
		return order, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidOrder, name)
	}
}

// Keys returns 0..n-1 in the given order. Shuffled keys are reproducible
// for a given seed.
func Keys(n int, order Order, seed int64) ([]int64, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}

	keys := make([]int64, n)

	for i := range keys {
		keys[i] = int64(i)
	}

	switch order {
	case OrderSorted:
	case OrderReversed:
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			keys[i], keys[j] = keys[j], keys[i]
		}
	case OrderShuffled:
		rng := rand.New(rand.NewSource(seed)) //nolint:gosec // reproducible workload, not security.
		rng.Shuffle(n, func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	default:
		return nil, fmt.Errorf("%w: %q", ErrInvalidOrder, order)
	}

	return keys, nil
}

// Config selects the workload.
type Config struct {
	Sizes []int
	// Orders defaults to every order when empty.
	Orders []Order
	Seed   int64
	Logger *slog.Logger
}

// Result holds the timings of one size and order.
type Result struct {
	Size        int
	Order       Order
	Insert      time.Duration
	Search      time.Duration
	Remove      time.Duration
	Height      int
	BlackHeight int
}

// NsPerOp converts a phase duration into nanoseconds per key.
func (r Result) NsPerOp(phase time.Duration) float64 {
	if r.Size == 0 {
		return 0
	}

	return float64(phase.Nanoseconds()) / float64(r.Size)
}

// Run times every size and order. Invariants are verified after the insert
// and remove phases, outside the timed sections.
func Run(ctx context.Context, cfg Config) ([]Result, error) {
	if len(cfg.Sizes) == 0 {
		return nil, ErrNoSizes
	}

	orders := cfg.Orders
	if len(orders) == 0 {
		orders = Orders()
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	results := make([]Result, 0, len(cfg.Sizes)*len(orders))

	for _, size := range cfg.Sizes {
		for _, order := range orders {
			keys, err := Keys(size, order, cfg.Seed)
			if err != nil {
				return nil, err
			}

			res, err := runOne(ctx, keys, order)
			if err != nil {
				return nil, fmt.Errorf("bench %s/%d: %w", order, size, err)
			}

			logger.DebugContext(ctx, "bench case done",
				"size", size, "order", order, "insert", res.Insert, "search", res.Search, "remove", res.Remove)

			results = append(results, res)
		}
	}

	return results, nil
}

func runOne(ctx context.Context, keys []int64, order Order) (Result, error) {
	tree := rbtree.New()
	res := Result{Size: len(keys), Order: order}

	start := time.Now()

	for _, key := range keys {
		tree.Insert(key)
	}

	res.Insert = time.Since(start)

	err := checkPhase(ctx, tree, len(keys))
	if err != nil {
		return Result{}, fmt.Errorf("after insert: %w", err)
	}

	res.Height = tree.Height()
	res.BlackHeight = tree.BlackHeight()

	start = time.Now()

	for _, key := range keys {
		tree.Search(key)
	}

	res.Search = time.Since(start)

	err = ctx.Err()
	if err != nil {
		return Result{}, fmt.Errorf("after search: %w", err)
	}

	start = time.Now()

	for _, key := range keys {
		tree.Remove(key)
	}

	res.Remove = time.Since(start)

	err = checkPhase(ctx, tree, 0)
	if err != nil {
		return Result{}, fmt.Errorf("after remove: %w", err)
	}

	return res, nil
}

func checkPhase(ctx context.Context, tree *rbtree.Tree, want int) error {
	err := ctx.Err()
	if err != nil {
		return err
	}

	err = tree.Verify()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvariant, err)
	}

	if tree.Len() != want {
		return fmt.Errorf("%w: %d keys, want %d", ErrInvariant, tree.Len(), want)
	}

	return nil
}
