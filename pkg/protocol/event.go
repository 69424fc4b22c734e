// Package protocol implements the line-oriented text protocol spoken
// between the chat client and the server: decoding inbound frames into
// typed events and encoding outbound commands.
package protocol

import "time"

// Message represents a single chat message. Immutable once created.
type Message struct {
	Sender    string
	Content   string
	Timestamp time.Time
}

// Event is a decoded inbound frame. The set of implementations is
// closed: RoomListEvent, LiveMessageEvent and HistoryMessageEvent.
type Event interface {
	isEvent()
}

// RoomListEvent is the authoritative membership snapshot carried by a
// ROOM_LIST frame. It says which rooms exist, not what they contain.
type RoomListEvent struct {
	Names []string
}

// LiveMessageEvent is a message broadcast to a room, carried by a MSG
// frame. Timestamp is the moment of decode.
type LiveMessageEvent struct {
	Room    string
	Message Message
}

// HistoryMessageEvent is a replayed transcript line received after
// joining a room. The server does not name the room; it is attributed
// to whatever room was current at decode time.
type HistoryMessageEvent struct {
	Room    string
	Message Message
}

func (RoomListEvent) isEvent()       {}
func (LiveMessageEvent) isEvent()    {}
func (HistoryMessageEvent) isEvent() {}
