package services

import (
	"context"
	"sync"
)

// FakeService records every input it receives and replies with a fixed
// result or error.
type FakeService[T any, S any] struct {
	Result S
	Err    error
	Inputs []T
	lock   sync.Mutex
}

func NewFakeService[T any, S any](result S, err error) *FakeService[T, S] {
	return &FakeService[T, S]{Result: result, Err: err}
}

func (s *FakeService[T, S]) Run(ctx context.Context, input T) (result S, err error) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.Inputs = append(s.Inputs, input)
	if s.Err != nil {
		return result, s.Err
	}
	return s.Result, nil
}

func (s *FakeService[T, S]) WasCalled() bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	return len(s.Inputs) > 0
}

func (s *FakeService[T, S]) LastInput() (input T, ok bool) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if len(s.Inputs) == 0 {
		return input, false
	}
	return s.Inputs[len(s.Inputs)-1], true
}
