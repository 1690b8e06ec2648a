package events

import (
	e "blogify/internal/core/domain/errors"
	"blogify/internal/core/domain/logging"
	"net/http"

	"github.com/r3labs/sse/v2"
)

// Handler subscribes a client to the public stream of new posts.
type Handler struct {
	log       logging.Logger
	sseServer *sse.Server
	streamID  string
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	streamID string,
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if streamID == "" {
		panic(e.NewNilArgumentError("streamID"))
	}
	if !sseServer.StreamExists(streamID) {
		sseServer.CreateStream(streamID)
	}
	return &Handler{log: log, sseServer: sseServer, streamID: streamID}
}

func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	query.Set("stream", h.streamID)
	r.URL.RawQuery = query.Encode()

	go func() {
		// Received browser disconnection
		<-r.Context().Done()
		h.log.Debug(r.Context(), "Unsubscribed from post events.")
	}()

	h.log.Debug(r.Context(), "Subscribed to post events.", logging.Entry("streamID", h.streamID))
	h.sseServer.ServeHTTP(rw, r)
}
