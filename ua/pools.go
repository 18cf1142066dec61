// Copyright 2021 Converter Systems LLC. All rights reserved.

package ua

import (
	"sync"

	"github.com/djherbis/buffer"
)

const defaultBufferSize = 64 * 1024

// bytesPool is a pool of byte slices
var bytesPool = sync.Pool{New: func() any { return make([]byte, defaultBufferSize) }}

// bufferPool is a pool of capacity buffers
var bufferPool = buffer.NewMemPoolAt(int64(defaultBufferSize))

// newPartitionBuffer returns a growable BufferAt drawing its partitions from the pool.
// Call Reset to return the partitions.
func newPartitionBuffer() buffer.BufferAt {
	return buffer.NewPartitionAt(bufferPool)
}
