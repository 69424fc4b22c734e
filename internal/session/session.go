// Package session turns user intents into protocol commands and local
// state updates, and folds inbound frames into the room store.
package session

import (
	"log"
	"sync"

	"roomchat/internal/store"
	"roomchat/pkg/protocol"
)

// Sender sends an encoded command to the server. Satisfied by
// client.Client.
type Sender interface {
	Send(cmd protocol.Command) error
}

// Session holds the client-local chat state: the chosen username, the
// room being viewed, and the room store. A single mutex serializes the
// inbound frame path and the user intents, so store mutations apply in
// a well-defined order.
type Session struct {
	sender  Sender
	decoder *protocol.Decoder

	mu          sync.Mutex
	store       *store.Store
	username    string
	currentRoom string
}

// New creates a Session around the given sender.
func New(sender Sender) *Session {
	return &Session{
		sender:  sender,
		decoder: protocol.NewDecoder(),
		store:   store.New(),
	}
}

// NewWithDecoder creates a Session with an explicit decoder, used by
// tests to pin timestamps.
func NewWithDecoder(sender Sender, decoder *protocol.Decoder) *Session {
	return &Session{
		sender:  sender,
		decoder: decoder,
		store:   store.New(),
	}
}

// SetUsername sets the name outgoing messages are attributed to.
func (s *Session) SetUsername(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.username = name
}

// Username returns the chosen username, empty when not set.
func (s *Session) Username() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.username
}

// CurrentRoom returns the name of the room being viewed, empty when
// none.
func (s *Session) CurrentRoom() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentRoom
}

// CreateRoom asks the server to create a room and optimistically
// inserts it locally, making it current. The next room-list snapshot
// reconciles the optimistic entry.
func (s *Session) CreateRoom(name string) {
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sendLocked(protocol.CreateRoom(name))
	s.store.Upsert(name)
	s.currentRoom = name
}

// JoinRoom joins a room, starting from a blank transcript; the server
// replays the room's history in response. The room becomes current.
func (s *Session) JoinRoom(name string) {
	if name == "" {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.store.Reset(name)
	s.currentRoom = name
	s.sendLocked(protocol.JoinRoom(name))
}

// LeaveRoom leaves the current room, clearing its local transcript and
// unsetting the current room. The room stays listed until the next
// snapshot says otherwise. No-op when no room is current.
func (s *Session) LeaveRoom() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentRoom == "" {
		return
	}

	s.sendLocked(protocol.LeaveRoom(s.currentRoom))
	s.store.Clear(s.currentRoom)
	s.currentRoom = ""
}

// SendMessage broadcasts text to the current room. No-op unless text,
// current room and username are all set. The message is not appended
// locally; it appears in the transcript when the server echoes it
// back.
func (s *Session) SendMessage(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if text == "" || s.currentRoom == "" || s.username == "" {
		return
	}

	s.sendLocked(protocol.RoomMessage(s.currentRoom, s.username, text))
}

// HandleFrame decodes one inbound frame against the current room and
// applies the resulting event to the store. Unknown frames do
// nothing.
func (s *Session) HandleFrame(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ev, ok := s.decoder.Decode(frame, s.currentRoom)
	if !ok {
		return
	}
	s.store.Apply(ev)
}

// Run drains inbound frames until the channel closes, applying each in
// receipt order. Intended to run in its own goroutine.
func (s *Session) Run(frames <-chan string) {
	for frame := range frames {
		s.HandleFrame(frame)
	}
}

// Rooms returns a copy of all known rooms in order.
func (s *Session) Rooms() []store.Room {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Rooms()
}

// Transcript returns a copy of the named room's transcript and whether
// the room exists.
func (s *Session) Transcript(name string) ([]protocol.Message, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.store.Room(name)
	if !ok {
		return nil, false
	}
	return r.Messages, true
}

// sendLocked fires a command without waiting for acknowledgment. Send
// failures are logged and otherwise ignored; once the transport is
// closed every intent degrades to a local-only update.
func (s *Session) sendLocked(cmd protocol.Command) {
	if err := s.sender.Send(cmd); err != nil {
		log.Printf("Failed to send %s command: %v", cmd.Kind, err)
	}
}
