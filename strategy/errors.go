package strategy

import "errors"

// ErrCountOutOfRange indicates a selection count below zero or above the number of items.
var ErrCountOutOfRange = errors.New("selection count out of range")

// ErrNilRand indicates a strategy that needs randomness was called without a random source.
var ErrNilRand = errors.New("random source is required")
