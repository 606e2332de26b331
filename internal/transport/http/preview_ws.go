package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var previewUpgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

type previewMessage struct {
	Type string `json:"type"`
	HTML string `json:"html"`
}

// PreviewWS streams re-rendered preview HTML to the editor client: the
// current state on connect, then a frame after every mutation.
func (h *EditorHandler) PreviewWS(c *gin.Context) {
	ed, ok := h.editor(c)
	if !ok {
		return
	}

	conn, err := previewUpgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		slog.Warn("ws upgrade failed", slog.String("error", err.Error()))
		return
	}
	defer conn.Close()

	updates, cancel := ed.Subscribe()
	defer cancel()

	// The reader only notices the client going away; a single writer
	// goroutine keeps websocket writes serialized.
	readerDone := make(chan struct{})
	go func() {
		defer close(readerDone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case html, ok := <-updates:
			if !ok {
				return
			}
			if err := conn.WriteJSON(previewMessage{Type: "preview", HTML: html}); err != nil {
				return
			}
		case <-readerDone:
			return
		}
	}
}
