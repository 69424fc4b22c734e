package store_test

import (
	"testing"
	"time"

	"roomchat/internal/store"
	"roomchat/pkg/protocol"
)

func msg(sender, content string) protocol.Message {
	return protocol.Message{
		Sender:    sender,
		Content:   content,
		Timestamp: time.Date(2024, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func TestStore_Apply_Snapshot(t *testing.T) {
	s := store.New()

	s.Apply(protocol.RoomListEvent{Names: []string{"general", "random"}})

	rooms := s.Rooms()
	if len(rooms) != 2 {
		t.Fatalf("Rooms() = %d rooms, want 2", len(rooms))
	}
	if rooms[0].Name != "general" || rooms[1].Name != "random" {
		t.Errorf("room order = [%s, %s], want [general, random]", rooms[0].Name, rooms[1].Name)
	}
}

func TestStore_Apply_Snapshot_PreservesSurvivingHistory(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general", "random"}})
	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "hello")})

	s.Apply(protocol.RoomListEvent{Names: []string{"general", "newroom"}})

	general, ok := s.Room("general")
	if !ok {
		t.Fatal("general missing after snapshot")
	}
	if len(general.Messages) != 1 || general.Messages[0].Content != "hello" {
		t.Errorf("general history not preserved: %v", general.Messages)
	}

	if _, ok := s.Room("random"); ok {
		t.Error("random should be dropped by the snapshot")
	}
	newroom, ok := s.Room("newroom")
	if !ok {
		t.Fatal("newroom missing after snapshot")
	}
	if len(newroom.Messages) != 0 {
		t.Errorf("newroom should start empty, got %d messages", len(newroom.Messages))
	}
}

func TestStore_Apply_Snapshot_DuplicateNamesCollapse(t *testing.T) {
	s := store.New()

	s.Apply(protocol.RoomListEvent{Names: []string{"general", "general"}})

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_Apply_LiveMessage(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})

	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "hello world")})

	general, _ := s.Room("general")
	if len(general.Messages) != 1 {
		t.Fatalf("got %d messages, want 1", len(general.Messages))
	}
	got := general.Messages[0]
	if got.Sender != "alice" || got.Content != "hello world" {
		t.Errorf("message = {%s, %s}, want {alice, hello world}", got.Sender, got.Content)
	}
}

func TestStore_Apply_UnknownRoomIsNoop(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})

	s.Apply(protocol.LiveMessageEvent{Room: "nowhere", Message: msg("alice", "lost")})
	s.Apply(protocol.HistoryMessageEvent{Room: "nowhere", Message: msg("bob", "also lost")})

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
	general, _ := s.Room("general")
	if len(general.Messages) != 0 {
		t.Errorf("general should be empty, got %d messages", len(general.Messages))
	}
}

func TestStore_Apply_OrderIsArrivalOrder(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})

	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "first")})
	s.Apply(protocol.HistoryMessageEvent{Room: "general", Message: msg("bob", "second")})
	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "third")})

	general, _ := s.Room("general")
	want := []string{"first", "second", "third"}
	if len(general.Messages) != len(want) {
		t.Fatalf("got %d messages, want %d", len(general.Messages), len(want))
	}
	for i, w := range want {
		if general.Messages[i].Content != w {
			t.Errorf("message[%d] = %q, want %q", i, general.Messages[i].Content, w)
		}
	}
}

func TestStore_Upsert(t *testing.T) {
	s := store.New()

	s.Upsert("general")
	s.Upsert("general")

	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}
}

func TestStore_Upsert_KeepsExistingHistory(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})
	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "hello")})

	s.Upsert("general")

	general, _ := s.Room("general")
	if len(general.Messages) != 1 {
		t.Errorf("Upsert cleared existing history: %d messages", len(general.Messages))
	}
}

func TestStore_Reset(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})
	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "old")})

	s.Reset("general")

	general, _ := s.Room("general")
	if len(general.Messages) != 0 {
		t.Errorf("Reset left %d messages", len(general.Messages))
	}
}

func TestStore_Reset_InsertsMissingRoom(t *testing.T) {
	s := store.New()

	s.Reset("fresh")

	if _, ok := s.Room("fresh"); !ok {
		t.Error("Reset did not insert the missing room")
	}
}

func TestStore_Clear_KeepsRoomListed(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})
	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "bye")})

	s.Clear("general")

	general, ok := s.Room("general")
	if !ok {
		t.Fatal("Clear removed the room")
	}
	if len(general.Messages) != 0 {
		t.Errorf("Clear left %d messages", len(general.Messages))
	}
}

func TestStore_Rooms_ReturnsCopies(t *testing.T) {
	s := store.New()
	s.Apply(protocol.RoomListEvent{Names: []string{"general"}})
	s.Apply(protocol.LiveMessageEvent{Room: "general", Message: msg("alice", "hello")})

	rooms := s.Rooms()
	rooms[0].Messages[0].Content = "tampered"
	rooms[0].Name = "renamed"

	general, ok := s.Room("general")
	if !ok {
		t.Fatal("room name mutated through the copy")
	}
	if general.Messages[0].Content != "hello" {
		t.Error("message mutated through the copy")
	}
}
