package llm

import "context"

// MockClient is a deterministic Client implementation for testing.
// Zero value returns a canned reply; fields script other behaviors.
type MockClient struct {
	// Reply is the fixed text returned by Complete.
	Reply string

	// Deltas is the scripted sequence returned by StreamComplete.
	// If empty, the Reply (or canned text) is streamed as one delta.
	Deltas []string

	// Error, if set, is returned by Complete and StreamComplete.
	Error error

	// StreamError, if set, terminates the stream after the scripted
	// deltas have been drained.
	StreamError error

	// CompleteFunc, if set, overrides Complete entirely. Useful for
	// per-request behavior such as failing on specific inputs.
	CompleteFunc func(ctx context.Context, req Request) (string, error)

	// LastRequest stores the most recent request; Requests stores all of
	// them in order.
	LastRequest Request
	Requests    []Request
}

// NewMockClient creates a mock client with the given fixed reply.
func NewMockClient(reply string) *MockClient {
	return &MockClient{Reply: reply}
}

// NewMockClientWithError creates a mock client that always fails.
func NewMockClientWithError(err error) *MockClient {
	return &MockClient{Error: err}
}

// Complete returns the configured reply, error, or CompleteFunc result.
func (m *MockClient) Complete(ctx context.Context, req Request) (string, error) {
	m.LastRequest = req
	m.Requests = append(m.Requests, req)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}
	if m.Error != nil {
		return "", m.Error
	}
	if m.Reply != "" {
		return m.Reply, nil
	}
	return "mock reply", nil
}

// StreamComplete returns the scripted deltas as a MockStream.
func (m *MockClient) StreamComplete(ctx context.Context, req Request) (Stream, error) {
	m.LastRequest = req
	m.Requests = append(m.Requests, req)

	if m.Error != nil {
		return nil, m.Error
	}

	deltas := m.Deltas
	if len(deltas) == 0 {
		reply := m.Reply
		if reply == "" {
			reply = "mock reply"
		}
		deltas = []string{reply}
	}

	return &MockStream{Deltas: deltas, FinalError: m.StreamError, ctx: ctx}, nil
}

// MockStream plays back a fixed sequence of deltas.
type MockStream struct {
	// Deltas is the sequence played back by Next/Current.
	Deltas []string

	// FinalError, if set, is reported by Err once the deltas are drained.
	FinalError error

	// Closed records whether Close has been called.
	Closed bool

	ctx     context.Context
	pos     int
	current string
	err     error
}

func (s *MockStream) Next() bool {
	if s.Closed || s.err != nil {
		return false
	}
	if s.ctx != nil && s.ctx.Err() != nil {
		s.err = s.ctx.Err()
		return false
	}
	if s.pos >= len(s.Deltas) {
		s.err = s.FinalError
		return false
	}
	s.current = s.Deltas[s.pos]
	s.pos++
	return true
}

func (s *MockStream) Current() string {
	return s.current
}

func (s *MockStream) Err() error {
	return s.err
}

func (s *MockStream) Close() error {
	s.Closed = true
	return nil
}
