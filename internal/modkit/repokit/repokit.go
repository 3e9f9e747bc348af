// Package repokit is the glue between services and their SQL repositories
package repokit

import (
	"context"
	"fmt"
	"time"

	"parliametrics/internal/platform/store"
)

type (
	// Queryer is what a repository runs statements on, a pool or an open tx
	Queryer = store.RowQuerier
	// TxRunner is a Queryer that can also open transactions
	TxRunner = store.TxRunner
	// CommandTag is the result of Exec
	CommandTag = store.CommandTag
)

// Binder hands out a repository bound to q
// services bind inside Tx so every read in the callback shares the transaction
type Binder[T any] interface {
	Bind(q Queryer) T
}

// BindFunc adapts a plain constructor to Binder
type BindFunc[T any] func(Queryer) T

func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// BeginHook runs first inside every transaction opened through WithBeginHooks
type BeginHook func(ctx context.Context, q Queryer) error

// ReadOnly makes the transaction reject writes
func ReadOnly(ctx context.Context, q Queryer) error {
	_, err := q.Exec(ctx, "set transaction read only")
	return err
}

// StatementTimeout caps every statement in the transaction at d
func StatementTimeout(d time.Duration) BeginHook {
	return func(ctx context.Context, q Queryer) error {
		_, err := q.Exec(ctx, fmt.Sprintf("set local statement_timeout = %d", d.Milliseconds()))
		return err
	}
}

// WithBeginHooks runs hooks in order before fn in every Tx
// statements outside Tx go straight to inner
func WithBeginHooks(inner TxRunner, hooks ...BeginHook) TxRunner {
	return hookedTx{TxRunner: inner, hooks: hooks}
}

type hookedTx struct {
	TxRunner
	hooks []BeginHook
}

func (h hookedTx) Tx(ctx context.Context, fn func(q Queryer) error) error {
	return h.TxRunner.Tx(ctx, func(q Queryer) error {
		for _, hk := range h.hooks {
			if err := hk(ctx, q); err != nil {
				return err
			}
		}
		return fn(q)
	})
}
