package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"roomchat/internal/client"
	"roomchat/internal/config"
	"roomchat/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	serverURL := flag.String("server", cfg.ServerURL, "WebSocket server URL (e.g., ws://localhost:8080)")
	username := flag.String("username", cfg.Username, "Username for chat")
	flag.Parse()

	if *username == "" {
		log.Fatal("Username is required. Use -username flag or CHAT_USERNAME")
	}

	c := client.New(*serverURL)
	if err := c.Connect(); err != nil {
		log.Fatalf("Failed to connect to server: %v", err)
	}
	defer c.Disconnect()

	s := session.New(c)
	s.SetUsername(*username)

	go watchRooms(s, c)

	fmt.Println("Commands: /create <name>, /join <name>, /leave, /rooms, /quit. Anything else is sent as a message.")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			break
		}
		if handleCommand(s, line) {
			continue
		}

		s.SendMessage(line)
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Error reading input: %v", err)
	}

	s.LeaveRoom()
}

// handleCommand interprets a slash command, returning false when the
// line is plain message text.
func handleCommand(s *session.Session, line string) bool {
	if !strings.HasPrefix(line, "/") {
		return false
	}

	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/create":
		if arg == "" {
			fmt.Println("Usage: /create <name>")
			return true
		}
		s.CreateRoom(arg)
		fmt.Printf("Created and switched to #%s\n", arg)
	case "/join":
		if arg == "" {
			fmt.Println("Usage: /join <name>")
			return true
		}
		s.JoinRoom(arg)
		fmt.Printf("Joined #%s\n", arg)
	case "/leave":
		room := s.CurrentRoom()
		if room == "" {
			fmt.Println("Not in a room")
			return true
		}
		s.LeaveRoom()
		fmt.Printf("Left #%s\n", room)
	case "/rooms":
		for _, r := range s.Rooms() {
			marker := " "
			if r.Name == s.CurrentRoom() {
				marker = "*"
			}
			fmt.Printf("%s #%s (%d messages)\n", marker, r.Name, len(r.Messages))
		}
	default:
		fmt.Printf("Unknown command: %s\n", cmd)
	}

	return true
}

// watchRooms applies inbound frames and prints new messages for the
// room being viewed.
func watchRooms(s *session.Session, c *client.Client) {
	printed := make(map[string]int)

	for frame := range c.Frames() {
		s.HandleFrame(frame)

		room := s.CurrentRoom()
		if room == "" {
			continue
		}
		transcript, ok := s.Transcript(room)
		if !ok {
			continue
		}
		// A join or snapshot can shrink the transcript under us.
		if printed[room] > len(transcript) {
			printed[room] = 0
		}
		for _, msg := range transcript[printed[room]:] {
			fmt.Printf("[%s] %s: %s\n", msg.Timestamp.Format("15:04:05"), msg.Sender, msg.Content)
		}
		printed[room] = len(transcript)
	}
}
