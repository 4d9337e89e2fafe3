package buffer

// Buffer accumulates the bytes of the request being parsed. Its contents always start
// at the first byte of the request, as the parser is fed with the whole request every
// time. Once the request is done, it's shifted out, keeping the bytes of the next one.
type Buffer struct {
	memory  []byte
	maxSize int
}

func New(initialSize, maxSize int) *Buffer {
	return &Buffer{
		memory:  make([]byte, 0, initialSize),
		maxSize: maxSize,
	}
}

// Append writes data, checking whether the new amount of bytes doesn't exceed the
// limit, otherwise discarding the data and returning false.
func (b *Buffer) Append(data []byte) (ok bool) {
	if len(b.memory)+len(data) > b.maxSize {
		return false
	}

	b.memory = append(b.memory, data...)
	return true
}

// Bytes returns everything appended so far. The slice may be invalidated by the next
// Append or Shift.
func (b *Buffer) Bytes() []byte {
	return b.memory
}

func (b *Buffer) Len() int {
	return len(b.memory)
}

// Shift discards first n bytes, moving the rest to the beginning of the memory.
func (b *Buffer) Shift(n int) {
	if n >= len(b.memory) {
		b.Clear()
		return
	}

	b.memory = b.memory[:copy(b.memory, b.memory[n:])]
}

// Clear just resets the pointers, so old values may be overridden by new ones.
func (b *Buffer) Clear() {
	b.memory = b.memory[:0]
}
