// Copyright 2024 The Accumulate Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package pool

import "sync"

// New returns a pool of *T. If reset is not nil it is called on every value
// returned to the pool.
func New[T any](reset ...func(*T)) *Pool[*T] {
	p := &Pool[*T]{reset: reset}
	p.pool.New = func() any { return new(T) }
	return p
}

// Pool is a typed [sync.Pool].
type Pool[T any] struct {
	pool  sync.Pool
	reset []func(T)
}

func (p *Pool[T]) Get() T {
	return p.pool.Get().(T)
}

func (p *Pool[T]) Put(v T) {
	for _, fn := range p.reset {
		fn(v)
	}
	p.pool.Put(v)
}
