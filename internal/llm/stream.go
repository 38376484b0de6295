package llm

// Stream is a pull-based sequence of reply text deltas. It is finite,
// single-consumer, and cannot be restarted.
//
// Usage mirrors the standard iterator shape:
//
//	for stream.Next() {
//	    fmt.Print(stream.Current())
//	}
//	if err := stream.Err(); err != nil { ... }
//	stream.Close()
type Stream interface {
	// Next advances to the next delta. It returns false when the stream is
	// exhausted or has failed; check Err afterwards.
	Next() bool

	// Current returns the delta produced by the last successful Next.
	Current() string

	// Err returns the error that terminated the stream, if any.
	Err() error

	// Close releases the underlying connection. It is safe to call more
	// than once.
	Close() error
}
