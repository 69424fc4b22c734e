// Package store maintains the client's local view of chat rooms: an
// ordered collection of rooms, each with an append-only transcript.
package store

import "roomchat/pkg/protocol"

// Room is a named message channel with its transcript.
type Room struct {
	Name     string
	Messages []protocol.Message
}

// Store holds the rooms known to the client, in server-announced
// order. It is not safe for concurrent use; the session controller
// serializes all access.
type Store struct {
	rooms []*Room
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// Apply folds a decoded event into the store. Message events targeting
// an unknown room are dropped without any state change.
func (s *Store) Apply(ev protocol.Event) {
	switch e := ev.(type) {
	case protocol.RoomListEvent:
		s.applySnapshot(e.Names)
	case protocol.LiveMessageEvent:
		s.append(e.Room, e.Message)
	case protocol.HistoryMessageEvent:
		s.append(e.Room, e.Message)
	}
}

// applySnapshot rebuilds the room collection to exactly the given
// names, in the given order. Rooms surviving the snapshot keep their
// transcripts; new names start empty; absent rooms are dropped along
// with their history. Duplicate names collapse to the first
// occurrence.
func (s *Store) applySnapshot(names []string) {
	old := make(map[string]*Room, len(s.rooms))
	for _, r := range s.rooms {
		old[r.Name] = r
	}

	rooms := make([]*Room, 0, len(names))
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true

		if r, ok := old[name]; ok {
			rooms = append(rooms, r)
			continue
		}
		rooms = append(rooms, &Room{Name: name})
	}
	s.rooms = rooms
}

func (s *Store) append(name string, msg protocol.Message) {
	if r := s.find(name); r != nil {
		r.Messages = append(r.Messages, msg)
	}
}

// Upsert inserts an empty room if no room with that name exists. An
// existing room is left untouched. Used for the optimistic insert on
// room creation, before the server confirms via the next snapshot.
func (s *Store) Upsert(name string) {
	if s.find(name) == nil {
		s.rooms = append(s.rooms, &Room{Name: name})
	}
}

// Reset clears the transcript of the named room, inserting the room if
// it does not exist. Joining always starts from a blank transcript;
// the server replays history to refill it.
func (s *Store) Reset(name string) {
	if r := s.find(name); r != nil {
		r.Messages = nil
		return
	}
	s.rooms = append(s.rooms, &Room{Name: name})
}

// Clear empties the transcript of the named room if it exists. The
// room itself stays listed.
func (s *Store) Clear(name string) {
	if r := s.find(name); r != nil {
		r.Messages = nil
	}
}

// Room returns a copy of the named room and whether it exists.
func (s *Store) Room(name string) (Room, bool) {
	if r := s.find(name); r != nil {
		return r.copy(), true
	}
	return Room{}, false
}

// Rooms returns a copy of all rooms in order.
func (s *Store) Rooms() []Room {
	out := make([]Room, len(s.rooms))
	for i, r := range s.rooms {
		out[i] = r.copy()
	}
	return out
}

// Len returns the number of rooms.
func (s *Store) Len() int {
	return len(s.rooms)
}

func (s *Store) find(name string) *Room {
	for _, r := range s.rooms {
		if r.Name == name {
			return r
		}
	}
	return nil
}

func (r *Room) copy() Room {
	msgs := make([]protocol.Message, len(r.Messages))
	copy(msgs, r.Messages)
	return Room{Name: r.Name, Messages: msgs}
}
