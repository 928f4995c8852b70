package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lguibr/bollywood"
	"github.com/lguibr/volley/game"
	"github.com/lguibr/volley/server"
	"github.com/lguibr/volley/utils"
	"golang.org/x/net/websocket"
)

func main() {
	configPath := flag.String("config", "", "path to a JSON config file (defaults apply when absent)")
	addr := flag.String("addr", ":3001", "listen address")
	flag.Parse()

	cfg, err := utils.LoadConfig(*configPath)
	if err != nil {
		fmt.Println("Invalid configuration:", err)
		os.Exit(1)
	}

	engine := bollywood.NewEngine()
	roomManagerPID := engine.Spawn(bollywood.NewProps(game.NewRoomManagerProducer(engine, cfg)))
	if roomManagerPID == nil {
		fmt.Println("Failed to spawn room manager")
		os.Exit(1)
	}

	wsServer := server.New(engine, roomManagerPID)

	mux := http.NewServeMux()
	mux.Handle("/subscribe", websocket.Handler(wsServer.HandleSubscribe()))
	mux.HandleFunc("/rooms", wsServer.HandleRooms())

	httpServer := &http.Server{Addr: *addr, Handler: mux}

	go func() {
		fmt.Printf("Volley server listening on %s\n", *addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("HTTP server error:", err)
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	fmt.Println("Shutting down...")
	_ = httpServer.Close()
	engine.Shutdown(5 * time.Second)
}
