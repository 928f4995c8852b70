// File: test/stress_test.go
package test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lguibr/volley/game"
)

// TestStressConcurrentRoomFill floods the server with simultaneous clients
// and checks the room manager packs them two per room.
func TestStressConcurrentRoomFill(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const clientCount = 10
	setup := SetupE2ETest(t, fastE2EConfig())
	defer TeardownE2ETest(t, setup, 5*time.Second)

	var wg sync.WaitGroup
	clients := make(chan *testClient, clientCount)
	errs := make(chan error, clientCount)
	for i := 0; i < clientCount; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			client, err := tryConnectClient(setup, 5*time.Second)
			if err != nil {
				errs <- err
				return
			}
			clients <- client
		}()
	}
	wg.Wait()
	close(clients)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}
	seats := map[int]int{}
	for client := range clients {
		seats[client.playerIndex]++
		c := client
		t.Cleanup(func() { _ = c.ws.Close() })
	}
	assert.Equal(t, clientCount/2, seats[0], "half the clients take the left seat")
	assert.Equal(t, clientCount/2, seats[1], "half the clients take the right seat")

	reply, err := setup.Engine.Ask(setup.RoomManagerPID, game.GetRoomListRequest{}, time.Second)
	require.NoError(t, err)
	list, ok := reply.(game.RoomListResponse)
	require.True(t, ok)
	assert.Len(t, list.Rooms, clientCount/2)

	total := 0
	for _, count := range list.Rooms {
		assert.LessOrEqual(t, count, 2)
		total += count
	}
	assert.Equal(t, clientCount, total)
}

// TestStressRoomsDrainAfterDisconnects connects a burst of clients, drops
// them all, and waits for the manager to reap every room.
func TestStressRoomsDrainAfterDisconnects(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping stress test in short mode")
	}

	const clientCount = 6
	setup := SetupE2ETest(t, fastE2EConfig())
	defer TeardownE2ETest(t, setup, 5*time.Second)

	clients := make([]*testClient, 0, clientCount)
	for i := 0; i < clientCount; i++ {
		client := connectClient(t, setup)
		client.awaitState(t, 5*time.Second)
		clients = append(clients, client)
	}

	for _, client := range clients {
		require.NoError(t, client.ws.Close())
	}

	require.Eventually(t, func() bool {
		reply, err := setup.Engine.Ask(setup.RoomManagerPID, game.GetRoomListRequest{}, time.Second)
		if err != nil {
			return false
		}
		list, ok := reply.(game.RoomListResponse)
		return ok && len(list.Rooms) == 0
	}, 10*time.Second, 200*time.Millisecond, "all rooms must be reaped after the disconnect storm")
}
