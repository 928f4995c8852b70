// File: test/e2e_setup_test.go
package test

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/game"
	"github.com/lguibr/volley/server"
	"github.com/lguibr/volley/utils"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"
)

// E2ESetupResult holds everything a scenario needs to drive the stack.
type E2ESetupResult struct {
	Engine         *bollywood.Engine
	RoomManagerPID *bollywood.PID
	Server         *httptest.Server
	WsURL          string
	Origin         string
	Cfg            utils.Config
}

// fastE2EConfig shrinks the timing constants so whole matches fit in a test.
func fastE2EConfig() utils.Config {
	cfg := utils.DefaultConfig()
	cfg.CountdownSeconds = 0.2
	cfg.TimeToCrossSeconds = 0.4 // 2000 px/s base speed
	cfg.ResizeDebounce = 100 * time.Millisecond
	return cfg
}

// SetupE2ETest boots the engine, the room manager and a WebSocket test server.
func SetupE2ETest(t *testing.T, cfg utils.Config) E2ESetupResult {
	t.Helper()

	engine := bollywood.NewEngine()
	roomManagerPID := engine.Spawn(bollywood.NewProps(game.NewRoomManagerProducer(engine, cfg)))
	require.NotNil(t, roomManagerPID, "RoomManager PID should not be nil")
	time.Sleep(100 * time.Millisecond) // Allow manager to start

	testServer := server.New(engine, roomManagerPID)
	s := httptest.NewServer(websocket.Handler(testServer.HandleSubscribe()))

	return E2ESetupResult{
		Engine:         engine,
		RoomManagerPID: roomManagerPID,
		Server:         s,
		WsURL:          "ws" + strings.TrimPrefix(s.URL, "http"),
		Origin:         "http://localhost/",
		Cfg:            cfg,
	}
}

// TeardownE2ETest shuts down the engine and closes the server.
func TeardownE2ETest(t *testing.T, setupResult E2ESetupResult, shutdownTimeout time.Duration) {
	t.Helper()
	if setupResult.Server != nil {
		setupResult.Server.Close()
	}
	if setupResult.Engine != nil {
		setupResult.Engine.Shutdown(shutdownTimeout)
	}
}
