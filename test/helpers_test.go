// File: test/helpers_test.go
package test

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"golang.org/x/net/websocket"

	"github.com/lguibr/volley/game"
)

// testClient wraps one client connection with typed reads.
type testClient struct {
	ws          *websocket.Conn
	playerIndex int
}

// connectClient dials the test server and consumes the seat assignment.
func connectClient(t *testing.T, setup E2ESetupResult) *testClient {
	t.Helper()
	client, err := tryConnectClient(setup, 3*time.Second)
	if err != nil {
		t.Fatalf("connecting client: %v", err)
	}
	t.Cleanup(func() { _ = client.ws.Close() })
	return client
}

// tryConnectClient is the non-fatal variant, safe outside the test goroutine.
func tryConnectClient(setup E2ESetupResult, timeout time.Duration) (*testClient, error) {
	ws, err := websocket.Dial(setup.WsURL, "", setup.Origin)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", setup.WsURL, err)
	}

	client := &testClient{ws: ws, playerIndex: -1}
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		raw, err := client.readRaw(time.Until(deadline))
		if err != nil {
			_ = ws.Close()
			return nil, fmt.Errorf("reading assignment: %w", err)
		}
		var assignment game.PlayerAssignmentMessage
		if json.Unmarshal(raw, &assignment) == nil && assignment.MessageType == "playerAssignment" {
			client.playerIndex = assignment.PlayerIndex
			return client, nil
		}
	}
	_ = ws.Close()
	return nil, errors.New("no seat assignment before the deadline")
}

// readRaw reads one JSON frame with a deadline.
func (c *testClient) readRaw(timeout time.Duration) (json.RawMessage, error) {
	if err := c.ws.SetReadDeadline(time.Now().Add(timeout)); err != nil {
		return nil, fmt.Errorf("setting read deadline: %w", err)
	}
	var raw json.RawMessage
	if err := websocket.JSON.Receive(c.ws, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

// awaitMessage reads frames until one carries the wanted messageType. Frames
// of other types (state broadcasts, update batches) are discarded.
func (c *testClient) awaitMessage(t *testing.T, messageType string, timeout time.Duration) json.RawMessage {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		raw, err := c.readRaw(time.Until(deadline))
		if err != nil {
			t.Fatalf("reading for %q: %v", messageType, err)
		}
		var header game.MessageHeader
		if json.Unmarshal(raw, &header) != nil {
			continue
		}
		if header.MessageType == messageType {
			return raw
		}
		// Batched updates may carry the wanted message inside.
		if header.MessageType == "gameUpdates" {
			if inner, found := findInBatch(raw, messageType); found {
				return inner
			}
		}
	}
	t.Fatalf("no %q message within %v", messageType, timeout)
	return nil
}

// awaitState reads frames until the next full state snapshot.
func (c *testClient) awaitState(t *testing.T, timeout time.Duration) game.StateSnapshotMessage {
	t.Helper()
	raw := c.awaitMessage(t, "gameState", timeout)
	var state game.StateSnapshotMessage
	if err := json.Unmarshal(raw, &state); err != nil {
		t.Fatalf("parsing state snapshot: %v", err)
	}
	return state
}

// awaitStateMatching reads snapshots until one satisfies the predicate.
func (c *testClient) awaitStateMatching(t *testing.T, timeout time.Duration, desc string, match func(game.StateSnapshotMessage) bool) game.StateSnapshotMessage {
	t.Helper()
	deadline := time.Now().Add(timeout)
	var last game.StateSnapshotMessage
	for time.Now().Before(deadline) {
		last = c.awaitState(t, time.Until(deadline))
		if match(last) {
			return last
		}
	}
	t.Fatalf("no snapshot matching %q within %v (last phase %s)", desc, timeout, last.Phase)
	return last
}

// send marshals and sends one client message.
func (c *testClient) send(t *testing.T, v interface{}) {
	t.Helper()
	if err := websocket.JSON.Send(c.ws, v); err != nil {
		t.Fatalf("sending %T: %v", v, err)
	}
}

// findInBatch digs a message of the wanted type out of a gameUpdates frame.
func findInBatch(raw json.RawMessage, messageType string) (json.RawMessage, bool) {
	var batch struct {
		Updates []json.RawMessage `json:"updates"`
	}
	if err := json.Unmarshal(raw, &batch); err != nil {
		return nil, false
	}
	for _, update := range batch.Updates {
		var header game.MessageHeader
		if json.Unmarshal(update, &header) == nil && header.MessageType == messageType {
			return update, true
		}
	}
	return nil, false
}

// errIsDisconnect reports whether an error looks like a server-side close.
func errIsDisconnect(err error) bool {
	if err == nil {
		return false
	}
	var netErr interface{ Timeout() bool }
	if errors.As(err, &netErr) && netErr.Timeout() {
		return false
	}
	return true
}
