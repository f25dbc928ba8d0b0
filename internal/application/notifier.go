package application

import "context"

// Publisher delivers activity notification jobs to the message queue.
// Implemented by helpers.RabbitPublisher; services treat delivery as
// best-effort and never fail a mutation over it.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}
