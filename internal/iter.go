package internal

import (
	"iter"
)

// Concat2 concatenates multiple dual-return iterators into a single iterator sequence.
func Concat2[K any, V any](seqs ...iter.Seq2[K, V]) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, seq := range seqs {
			for k, v := range seq {
				if !yield(k, v) {
					return
				}
			}
		}
	}
}

// Map2 yields key(item), value(item) for each item of a slice, in order.
func Map2[T any, K any, V any](items []T, key func(T) K, value func(T) V) iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for _, item := range items {
			if !yield(key(item), value(item)) {
				return
			}
		}
	}
}
