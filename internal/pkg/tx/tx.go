package tx

import (
	"context"
	"net/http"
)

type key string

const KeyTx = key("tx")

// DBRepo is the slice of the repository the transaction plumbing needs.
type DBRepo interface {
	WithTx(ctx context.Context, cb func(ctx context.Context) error) error
}

type Tx struct {
	DbRepo DBRepo
}

// TxMiddlewareHTTP makes the repository's transaction entry point available
// to every handler through the request context.
func TxMiddlewareHTTP(repo DBRepo) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), KeyTx, Tx{DbRepo: repo})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// TxExecute runs cb inside a single database transaction when the request
// passed through TxMiddlewareHTTP, and plainly otherwise.
func TxExecute(ctx context.Context, cb func(ctx context.Context) error) error {
	t, ok := ctx.Value(KeyTx).(Tx)
	if !ok || t.DbRepo == nil {
		return cb(ctx)
	}
	return t.DbRepo.WithTx(ctx, cb)
}
