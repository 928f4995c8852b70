// Terminal client: dials the server, renders game state frames as colored
// ASCII, and turns keystrokes into paddle input.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/lguibr/asciiring/helpers"
	"github.com/lguibr/volley/game"
	"github.com/lguibr/volley/render"
	"golang.org/x/net/websocket"
	"golang.org/x/sys/unix"
)

const renderResolution = 48

func setRawMode(fileDescriptor uintptr) (*unix.Termios, error) {
	terminalSettings, err := unix.IoctlGetTermios(int(fileDescriptor), unix.TCGETS)
	if err != nil {
		return nil, err
	}
	savedTerminalSettings := *terminalSettings
	terminalSettings.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	terminalSettings.Oflag &^= unix.OPOST
	terminalSettings.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	terminalSettings.Cflag &^= unix.CSIZE | unix.PARENB
	terminalSettings.Cflag |= unix.CS8
	terminalSettings.Oflag |= unix.ONLCR

	if err := unix.IoctlSetTermios(int(fileDescriptor), unix.TCSETS, terminalSettings); err != nil {
		return nil, err
	}
	return &savedTerminalSettings, nil
}

func restoreTerminal(saved *unix.Termios) {
	if saved != nil {
		_ = unix.IoctlSetTermios(int(os.Stdin.Fd()), unix.TCSETS, saved)
	}
}

func renderFrame(state game.StateSnapshotMessage) {
	pixels := render.Rasterize(state, 160, 120)
	helpers.ClearScreen()
	fmt.Print(render.RenderToASCII(pixels, renderResolution))
	fmt.Printf("\r\n  %s  |  %d : %d", state.Phase, state.Scores[0], state.Scores[1])
	if state.Phase == game.StateCountdown {
		fmt.Printf("  |  launch in %.1fs", state.Countdown)
	}
	fmt.Print("\r\n  w/s move, p pause, r resume, q quit\r\n")
}

func receiveLoop(ws *websocket.Conn) {
	for {
		var message json.RawMessage
		if err := websocket.JSON.Receive(ws, &message); err != nil {
			fmt.Println("\r\nConnection closed:", err)
			return
		}

		var header game.MessageHeader
		if err := json.Unmarshal(message, &header); err != nil {
			continue
		}
		switch header.MessageType {
		case "playerAssignment":
			var msg game.PlayerAssignmentMessage
			if err := json.Unmarshal(message, &msg); err == nil {
				fmt.Printf("\r\nSeated as player %d\r\n", msg.PlayerIndex)
			}
		case "gameState":
			var state game.StateSnapshotMessage
			if err := json.Unmarshal(message, &state); err == nil {
				renderFrame(state)
			}
		case "gameOver":
			var msg game.GameOverMessage
			if err := json.Unmarshal(message, &msg); err == nil {
				fmt.Printf("\r\nGame over. Winner: player %d (%d : %d), longest rally %.1fs\r\n",
					msg.WinnerIndex, msg.FinalScores[0], msg.FinalScores[1], msg.Stats.LongestRallySeconds)
			}
			return
		}
	}
}

func sendJSON(ws *websocket.Conn, v interface{}) {
	if err := websocket.JSON.Send(ws, v); err != nil {
		fmt.Println("\r\nError sending to server:", err)
	}
}

func main() {
	serverURL := flag.String("url", "ws://localhost:3001/subscribe", "server subscribe endpoint")
	flag.Parse()

	ws, err := websocket.Dial(*serverURL, "", "http://localhost/")
	if err != nil {
		fmt.Println("Error connecting to server:", err)
		return
	}
	defer ws.Close()

	go receiveLoop(ws)

	savedTerminalSettings, err := setRawMode(os.Stdin.Fd())
	if err != nil {
		fmt.Println("Error setting raw mode:", err)
		return
	}
	defer restoreTerminal(savedTerminalSettings)

	interruptSignalChannel := make(chan os.Signal, 1)
	signal.Notify(interruptSignalChannel, os.Interrupt)
	go func() {
		<-interruptSignalChannel
		restoreTerminal(savedTerminalSettings)
		os.Exit(0)
	}()

	buffer := make([]byte, 1)
	for {
		if _, err := os.Stdin.Read(buffer); err != nil {
			return
		}
		switch buffer[0] {
		case 'w', 'W':
			sendJSON(ws, game.DirectionMessage{MessageType: "direction", Direction: "ArrowUp"})
		case 's', 'S':
			sendJSON(ws, game.DirectionMessage{MessageType: "direction", Direction: "ArrowDown"})
		case 'p', 'P':
			sendJSON(ws, game.PauseMessage{MessageType: "pause"})
		case 'r', 'R':
			sendJSON(ws, game.ResumeMessage{MessageType: "resume"})
		case 'q', 'Q', 'c', 'C':
			fmt.Println("\r\nQuitting game")
			restoreTerminal(savedTerminalSettings)
			os.Exit(0)
		default:
			sendJSON(ws, game.DirectionMessage{MessageType: "direction", Direction: "None"})
		}
	}
}
