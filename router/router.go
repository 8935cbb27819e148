package router

import (
	docHandler "naskah/internal/document"
	"naskah/internal/document/service"
	"naskah/middleware"
	"naskah/socket"
	"net/http"
)

func Setup(docService *service.DocumentService, hub *socket.Hub, jwtSecret, corsOrigin string) http.Handler {
	mux := http.NewServeMux()
	auth := middleware.Auth(jwtSecret)

	// WebSocket change feed
	wsHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, _ := middleware.UserID(r.Context())
		socket.ServeWs(hub, w, r, userID)
	})
	mux.Handle("/ws", auth(wsHandler))

	// REST API
	h := docHandler.NewDocumentHandler(docService)

	mux.Handle("/api/documents", auth(http.HandlerFunc(h.GetDocument)))
	mux.Handle("/api/documents/save", auth(http.HandlerFunc(h.SaveDocument)))
	mux.Handle("/api/documents/search", auth(http.HandlerFunc(h.SearchDocuments)))
	mux.HandleFunc("/healthz", h.Health)

	return middleware.CORS(corsOrigin)(mux)
}
