// Package pool hands out fixed-size byte buffers backed by sync.Pool.
package pool

import "sync"

// Buffers is a pool of byte slices that all have the same length.
// Get returns a pointer so that Put does not allocate.
type Buffers struct {
	size     int
	internal sync.Pool
}

// NewBuffers creates a pool of size-byte buffers.
func NewBuffers(size int) *Buffers {
	b := &Buffers{size: size}
	b.internal.New = func() any {
		buf := make([]byte, size)
		return &buf
	}
	return b
}

// Size returns the length of every buffer handed out by the pool.
func (b *Buffers) Size() int { return b.size }

// Get retrieves a buffer of length Size. Contents are undefined.
func (b *Buffers) Get() *[]byte {
	buf := b.internal.Get().(*[]byte)
	*buf = (*buf)[:b.size]
	return buf
}

// Put returns a buffer to the pool. Buffers that did not come from this
// pool (wrong capacity) are dropped.
func (b *Buffers) Put(buf *[]byte) {
	if buf == nil || cap(*buf) != b.size {
		return
	}
	b.internal.Put(buf)
}
