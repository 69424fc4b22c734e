package protocol

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	roomListPrefix = "ROOM_LIST:"
	liveMsgPrefix  = "MSG:"
)

// historyLine matches a replayed transcript line of the form
// "<sender> [<HH:MM:SS>]: <content>".
var historyLine = regexp.MustCompile(`^([^\[]+)\s*\[([^\]]+)\]:\s*(.+)$`)

// Decoder decodes inbound frames into events. The zero value is not
// usable; construct with NewDecoder.
type Decoder struct {
	now func() time.Time
}

// NewDecoder creates a Decoder that stamps live messages with the wall
// clock.
func NewDecoder() *Decoder {
	return &Decoder{now: time.Now}
}

// NewDecoderWithClock creates a Decoder with an injected clock, used
// by tests to pin timestamps.
func NewDecoderWithClock(now func() time.Time) *Decoder {
	return &Decoder{now: now}
}

// Decode parses a single inbound frame. currentRoom is the room being
// viewed, or empty when none; it is only needed to attribute history
// lines, which do not carry a room name. Frames matching no known
// shape are ignored: Decode returns (nil, false) and never an error,
// so unknown frame types from newer servers pass through harmlessly.
func (d *Decoder) Decode(frame, currentRoom string) (Event, bool) {
	if strings.HasPrefix(frame, roomListPrefix) {
		return d.decodeRoomList(frame), true
	}

	if strings.HasPrefix(frame, liveMsgPrefix) {
		return d.decodeLiveMessage(frame)
	}

	if currentRoom != "" {
		return d.decodeHistoryLine(frame, currentRoom)
	}

	return nil, false
}

func (d *Decoder) decodeRoomList(frame string) RoomListEvent {
	names := make([]string, 0)
	for _, name := range strings.Split(strings.TrimPrefix(frame, roomListPrefix), ",") {
		if name == "" {
			continue
		}
		names = append(names, name)
	}
	return RoomListEvent{Names: names}
}

// decodeLiveMessage splits a MSG frame on its first three colons only,
// so content containing the delimiter survives intact. A frame whose
// room or sender is empty is malformed and dropped; empty content is
// a valid blank message.
func (d *Decoder) decodeLiveMessage(frame string) (Event, bool) {
	parts := strings.SplitN(frame, ":", 4)
	if len(parts) != 4 || parts[1] == "" {
		return nil, false
	}

	sender := strings.TrimSpace(parts[2])
	if sender == "" {
		return nil, false
	}

	return LiveMessageEvent{
		Room: parts[1],
		Message: Message{
			Sender:    sender,
			Content:   parts[3],
			Timestamp: d.now(),
		},
	}, true
}

func (d *Decoder) decodeHistoryLine(frame, currentRoom string) (Event, bool) {
	m := historyLine.FindStringSubmatch(frame)
	if m == nil {
		return nil, false
	}

	ts, ok := d.clockTime(m[2])
	if !ok {
		return nil, false
	}

	return HistoryMessageEvent{
		Room: currentRoom,
		Message: Message{
			Sender:    strings.TrimSpace(m[1]),
			Content:   m[3],
			Timestamp: ts,
		},
	}, true
}

// clockTime rebuilds an instant from an HH:MM:SS string using today's
// date. History lines replayed across midnight end up dated today;
// the wire format carries no date to do better with.
func (d *Decoder) clockTime(s string) (time.Time, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	hms := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return time.Time{}, false
		}
		hms[i] = n
	}
	if hms[0] > 23 || hms[1] > 59 || hms[2] > 59 {
		return time.Time{}, false
	}

	now := d.now()
	return time.Date(now.Year(), now.Month(), now.Day(), hms[0], hms[1], hms[2], 0, now.Location()), true
}
