package protocol

import "fmt"

// CommandKind represents the type of outbound command.
type CommandKind int

const (
	CommandCreateRoom CommandKind = iota
	CommandJoinRoom
	CommandLeaveRoom
	CommandRoomMessage
)

// String returns the string representation of CommandKind.
func (ck CommandKind) String() string {
	switch ck {
	case CommandCreateRoom:
		return "CREATE_ROOM"
	case CommandJoinRoom:
		return "JOIN_ROOM"
	case CommandLeaveRoom:
		return "LEAVE_ROOM"
	case CommandRoomMessage:
		return "ROOM_MSG"
	default:
		return "UNKNOWN"
	}
}

// Command represents an outbound client command.
type Command struct {
	Kind   CommandKind
	Room   string
	Sender string
	Text   string
}

// CreateRoom builds a command asking the server to create a room.
func CreateRoom(name string) Command {
	return Command{Kind: CommandCreateRoom, Room: name}
}

// JoinRoom builds a command asking the server to add this client to a
// room. The server replays the room's history in response.
func JoinRoom(name string) Command {
	return Command{Kind: CommandJoinRoom, Room: name}
}

// LeaveRoom builds a command asking the server to remove this client
// from a room.
func LeaveRoom(name string) Command {
	return Command{Kind: CommandLeaveRoom, Room: name}
}

// RoomMessage builds a command broadcasting a message to a room.
// Fields are sent verbatim; the wire format has no escaping, so a
// sender or text containing a colon will confuse receivers that split
// positionally.
func RoomMessage(room, sender, text string) Command {
	return Command{Kind: CommandRoomMessage, Room: room, Sender: sender, Text: text}
}

// Encode encodes the command as a single protocol line.
func (c Command) Encode() string {
	if c.Kind == CommandRoomMessage {
		return fmt.Sprintf("%s:%s:%s:%s", c.Kind, c.Room, c.Sender, c.Text)
	}
	return fmt.Sprintf("%s:%s", c.Kind, c.Room)
}
