package common

import (
	"fmt"
	"strings"
)

type Optional[T any] struct {
	Value     T
	IsPresent bool
}

func (p *Optional[T]) String() string {
	if !p.IsPresent {
		return "[-]"
	}
	return fmt.Sprintf("[%v]", p.Value)
}

func NewOptional[T any](value T, isPresent bool) Optional[T] {
	return Optional[T]{Value: value, IsPresent: isPresent}
}

type Email string

func NewEmail(rawEmail string) Email {
	return Email(strings.ToLower(strings.TrimSpace(rawEmail)))
}

// PageRequest is a 1-based page of a listing.
type PageRequest struct {
	Number uint
	Size   uint
}

func NewPageRequest(number uint, size uint) PageRequest {
	if number == 0 {
		number = 1
	}
	return PageRequest{Number: number, Size: size}
}

func (p PageRequest) Offset() uint {
	if p.Number == 0 {
		return 0
	}
	return (p.Number - 1) * p.Size
}

func (p PageRequest) Limit() uint {
	return p.Size
}

func PagesCount(totalCount uint, size uint) uint {
	if size == 0 || totalCount == 0 {
		return 0
	}
	return (totalCount + size - 1) / size
}
