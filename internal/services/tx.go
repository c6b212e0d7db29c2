package services

import "context"

// TxRunner executes fn atomically. The MongoDB implementation runs fn inside
// a session transaction and hands it the session context, so every repository
// call made with that context joins the same transaction.
type TxRunner interface {
	RunTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
