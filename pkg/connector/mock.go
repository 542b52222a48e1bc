package connector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ryo246912/gh-pulls/pkg/requests"
)

type mockReply struct {
	status int
	value  any
	raw    *string
	err    error
}

// MockConnector replays queued replies in order and records every request
// it receives. Once the queue is drained it answers 200 with "[]".
type MockConnector struct {
	replies []mockReply

	// Track sent requests
	Requests []requests.Request
}

// NewMockConnector returns an empty mock.
func NewMockConnector() *MockConnector {
	return &MockConnector{}
}

// QueueJSON queues a 200 response whose body is v encoded as JSON.
func (m *MockConnector) QueueJSON(v any) *MockConnector {
	m.replies = append(m.replies, mockReply{status: http.StatusOK, value: v})
	return m
}

// QueueRaw queues a response with a literal body.
func (m *MockConnector) QueueRaw(status int, body string) *MockConnector {
	m.replies = append(m.replies, mockReply{status: status, raw: &body})
	return m
}

// QueueError queues an error returned in place of a response.
func (m *MockConnector) QueueError(err error) *MockConnector {
	m.replies = append(m.replies, mockReply{err: err})
	return m
}

// Send records req and pops the next queued reply.
func (m *MockConnector) Send(ctx context.Context, req requests.Request) (*Response, error) {
	m.Requests = append(m.Requests, req)

	if len(m.replies) == 0 {
		return NewResponse(http.StatusOK, nil, []byte("[]")), nil
	}
	reply := m.replies[0]
	m.replies = m.replies[1:]

	if reply.err != nil {
		return nil, reply.err
	}
	if reply.raw != nil {
		return NewResponse(reply.status, nil, []byte(*reply.raw)), nil
	}
	data, err := json.Marshal(reply.value)
	if err != nil {
		return nil, fmt.Errorf("mock: failed to encode reply: %w", err)
	}
	return NewResponse(reply.status, nil, data), nil
}

// CallCount returns the number of requests sent so far.
func (m *MockConnector) CallCount() int {
	return len(m.Requests)
}

// LastRequest returns the most recent request, if any.
func (m *MockConnector) LastRequest() (requests.Request, bool) {
	if len(m.Requests) == 0 {
		return requests.Request{}, false
	}
	return m.Requests[len(m.Requests)-1], true
}

// Reset clears recorded requests and pending replies.
func (m *MockConnector) Reset() {
	m.replies = nil
	m.Requests = nil
}

var _ Connector = (*MockConnector)(nil)
