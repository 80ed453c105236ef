// Package match runs host and client sessions over an abstract peer
// transport, plus the room manager that pairs peers into matches.
package match

import (
	"errors"
	"sync"
)

// ErrTransportClosed is returned by Send after the peer link goes away.
var ErrTransportClosed = errors.New("match: transport closed")

// Transport is a reliable, ordered, message-oriented link to one peer.
// Receive's channel closes when the link dies, which is how sessions detect
// disconnects.
type Transport interface {
	Send(data []byte) error
	Receive() <-chan []byte
	Close() error
}

// pipeEndpoint is one end of an in-process transport pair. Used by tests
// and by same-process matches.
type pipeEndpoint struct {
	out  chan []byte
	in   chan []byte
	done chan struct{}
	once *sync.Once
}

// NewPipe returns two connected in-process transports. Closing either end
// tears down both directions.
func NewPipe() (Transport, Transport) {
	ab := make(chan []byte, 64)
	ba := make(chan []byte, 64)
	done := make(chan struct{})
	once := &sync.Once{}

	a := &pipeEndpoint{out: ab, in: make(chan []byte, 64), done: done, once: once}
	b := &pipeEndpoint{out: ba, in: make(chan []byte, 64), done: done, once: once}

	// Forwarders own the receive channels: they close them exactly once
	// when the pipe dies, so raw sends never race a close.
	go forward(ba, a.in, done)
	go forward(ab, b.in, done)
	return a, b
}

func forward(src, dst chan []byte, done chan struct{}) {
	defer close(dst)
	for {
		select {
		case <-done:
			return
		case data := <-src:
			select {
			case <-done:
				return
			case dst <- data:
			}
		}
	}
}

func (p *pipeEndpoint) Send(data []byte) error {
	select {
	case <-p.done:
		return ErrTransportClosed
	case p.out <- data:
		return nil
	}
}

func (p *pipeEndpoint) Receive() <-chan []byte {
	return p.in
}

func (p *pipeEndpoint) Close() error {
	p.once.Do(func() { close(p.done) })
	return nil
}
