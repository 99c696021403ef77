// Package gametest provides an in-memory broadcast channel for loop tests.
package gametest

import (
	"sync"

	"github.com/makerhqsac/wall-of-fortune/internal/comms"
	"github.com/makerhqsac/wall-of-fortune/internal/queue"
)

// Transport buffers delivered messages and records everything sent.
type Transport struct {
	Panel string
	inbox *queue.FIFO[comms.Message]

	mu   sync.Mutex
	sent []string
}

func NewTransport(panel string) *Transport {
	return &Transport{Panel: panel, inbox: queue.New[comms.Message]()}
}

// Deliver queues a message as if it arrived from origin.
func (t *Transport) Deliver(origin, body string) {
	t.inbox.Push(comms.Message{Origin: origin, Body: body})
}

func (t *Transport) Name() string { return t.Panel }

func (t *Transport) Send(body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.sent = append(t.sent, body)
	return nil
}

func (t *Transport) Available() int { return t.inbox.Len() }

func (t *Transport) Recv() comms.Message {
	m, _ := t.inbox.Pop()
	return m
}

// Sent returns a copy of every body sent so far.
func (t *Transport) Sent() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.sent...)
}
