package ratelimiting

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	ratelimiter "blogify/internal/core/domain/rate_limiter"
	"blogify/internal/core/services"
	"context"
)

// Keyed inputs name the bucket they are counted in, e.g. one per email.
type Keyed interface {
	GetRateLimitKey() string
}

type limited[T Keyed, S any] struct {
	log         logging.Logger
	rateLimiter ratelimiter.RateLimiter
	limit       ratelimiter.Limit
	inner       services.Service[T, S]
}

// WithRateLimiting fails with ratelimiter.ErrRateLimitExceeded, without
// calling inner, once the input's bucket has used up limit.
func WithRateLimiting[T Keyed, S any](
	log logging.Logger,
	rateLimiter ratelimiter.RateLimiter,
	limit ratelimiter.Limit,
	inner services.Service[T, S],
) services.Service[T, S] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if rateLimiter == nil {
		panic(e.NewNilArgumentError("rateLimiter"))
	}
	if inner == nil {
		panic(e.NewNilArgumentError("inner"))
	}
	return &limited[T, S]{log: log, rateLimiter: rateLimiter, limit: limit, inner: inner}
}

func (s *limited[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	key := input.GetRateLimitKey()
	if s.rateLimiter.CheckLimit(ctx, key, s.limit).IsAllowed {
		return s.inner.Run(ctx, input)
	}

	s.log.Warning(
		ctx,
		"Rate limit exceeded.",
		logging.Entry("key", key),
		logging.Entry("limit", s.limit.Value),
		logging.Entry("interval", s.limit.Interval.Duration().String()),
	)
	return result, ratelimiter.ErrRateLimitExceeded
}
