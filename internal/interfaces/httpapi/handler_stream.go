package httpapi

import (
	"net/http"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/gorilla/websocket"

	"github.com/riskibarqy/bonk-fanzone/internal/domain/livestream"
)

const (
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingPeriod     = (wsPongWait * 9) / 10
	wsMaxMessageSize = 512
)

type streamEvent struct {
	Type   string    `json:"type"`
	Stream streamDTO `json:"stream"`
}

func (h *Handler) ListLiveStreams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLiveStreams")
	defer span.End()

	streams, err := h.liveStreams.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list live streams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]streamDTO, 0, len(streams))
	for _, s := range streams {
		items = append(items, streamToDTO(s))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLiveStream(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLiveStream")
	defer span.End()

	streamID := r.PathValue("streamID")
	item, err := h.liveStreams.Get(ctx, streamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get live stream failed", "stream_id", streamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, streamToDTO(item))
}

// WatchLiveStream upgrades to a websocket that pushes a snapshot on connect
// and after every viewer tick. Client messages are read only to notice a close.
func (h *Handler) WatchLiveStream(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WatchLiveStream")
	defer span.End()

	streamID := r.PathValue("streamID")
	item, err := h.liveStreams.Get(ctx, streamID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WarnContext(ctx, "websocket upgrade failed", "stream_id", streamID, "error", err)
		return
	}
	defer conn.Close()

	updates, cancel := h.liveStreams.Subscribe(item.ID)
	defer cancel()

	h.logger.InfoContext(ctx, "live stream watcher connected", "stream_id", item.ID)

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ticker := time.NewTicker(wsPingPeriod)
	defer ticker.Stop()

	if err := writeStreamEvent(conn, "snapshot", item); err != nil {
		return
	}

	for {
		select {
		case <-closed:
			h.logger.InfoContext(ctx, "live stream watcher disconnected", "stream_id", item.ID)
			return
		case next, ok := <-updates:
			if !ok {
				_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := writeStreamEvent(conn, "viewers", next); err != nil {
				h.logger.WarnContext(ctx, "live stream push failed", "stream_id", item.ID, "error", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	conn.SetReadLimit(wsMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writeStreamEvent(conn *websocket.Conn, kind string, item livestream.Stream) error {
	payload, err := sonic.Marshal(streamEvent{Type: kind, Stream: streamToDTO(item)})
	if err != nil {
		return err
	}
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return conn.WriteMessage(websocket.TextMessage, payload)
}
