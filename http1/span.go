package http1

// Span references a region of the buffer the parser was fed with. It is never a copy,
// so it's valid only as long as the buffer is.
type Span struct {
	Offset, Length int
}

func spanOf(from, to int) Span {
	return Span{Offset: from, Length: to - from}
}

func (s Span) End() int {
	return s.Offset + s.Length
}

// Of returns the referenced bytes. The data must be (a grown version of) the buffer
// the span was produced from.
func (s Span) Of(data []byte) []byte {
	return data[s.Offset:s.End():s.End()]
}

// Field is a slot of a known header.
type Field struct {
	Present    bool
	Key, Value Span
}
