package services

import "context"

// Service is a single application operation. Cross-cutting concerns such as
// authentication or rate limiting are added by wrapping one Service in another.
type Service[T any, S any] interface {
	Run(ctx context.Context, input T) (S, error)
}
