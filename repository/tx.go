package repository

import (
	"context"

	"github.com/Acedi-a/Proyecto-hospedaje-programacion4-sub000/db"
)

// TxRunner starts transactions on the shared pool
type TxRunner struct{}

// NewTxRunner creates a new TxRunner
func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

var _ TxRunnerInterface = (*TxRunner)(nil)

// WithTx runs fn in a transaction; repositories called with the derived context join it
func (TxRunner) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return db.WithTx(ctx, fn)
}
