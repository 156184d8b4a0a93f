package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/websocket"
	"github.com/spf13/cobra"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Watch the live lobby feed",
		Long:  "Connects to the server WebSocket and prints open-match updates as they happen. Press Ctrl+C to stop.",
		RunE: func(cmd *cobra.Command, args []string) error {
			url := client.WSBaseURL() + "/ws"

			conn, _, err := websocket.DefaultDialer.Dial(url, nil)
			if err != nil {
				return fmt.Errorf("failed to connect: %w", err)
			}
			defer conn.Close()

			// Ask for the current open list up front; subsequent updates
			// are pushed by the server.
			request := map[string]any{"type": "get_open_matches"}
			if err := conn.WriteJSON(request); err != nil {
				return fmt.Errorf("failed to send request: %w", err)
			}

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

			msgCh := make(chan []byte)
			errCh := make(chan error, 1)
			go func() {
				for {
					_, data, err := conn.ReadMessage()
					if err != nil {
						errCh <- err
						return
					}
					msgCh <- data
				}
			}()

			out := NewOutput(cfg.Output)
			for {
				select {
				case <-sigCh:
					return nil
				case err := <-errCh:
					return fmt.Errorf("connection lost: %w", err)
				case data := <-msgCh:
					printEvent(out, data)
				}
			}
		},
	}
}

type serverEvent struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func printEvent(out *Output, data []byte) {
	var event serverEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return
	}

	if cfg.Output == "json" {
		out.Print(event)
		return
	}

	switch event.Type {
	case "open_matches":
		var payload OpenMatchList
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			return
		}
		fmt.Printf("[%s] ", time.Now().Format("15:04:05"))
		out.Print(payload)
	default:
		fmt.Printf("[%s] %s\n", time.Now().Format("15:04:05"), event.Type)
	}
}
