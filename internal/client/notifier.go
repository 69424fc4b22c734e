package client

import "log"

// Notifier receives connection health signals for user-facing
// presentation. Implementations must not block; they are called from
// the receive loop.
type Notifier interface {
	Connected()
	Disconnected()
	ConnectionError(err error)
}

// LogNotifier reports connection health via the standard logger.
type LogNotifier struct{}

func (LogNotifier) Connected() {
	log.Println("Connected to chat server")
}

func (LogNotifier) Disconnected() {
	log.Println("Disconnected from server")
}

func (LogNotifier) ConnectionError(err error) {
	log.Printf("Connection error: %v", err)
}
