package socket

import (
	"encoding/json"
	"naskah/internal/document/model"
	"naskah/pkg/logger"
	"sync"
)

const (
	SavedType    = "DOCUMENT_SAVED" // A document was created or replaced
	SnapshotType = "SNAPSHOT"       // Current state sent to a new subscriber

	// AllDocuments is the room for subscribers that did not ask for a docId.
	AllDocuments = "*"
)

type WSMessage struct {
	Type    string          `json:"type"`
	DocID   string          `json:"document_id"`
	Payload json.RawMessage `json:"payload"`
}

// DocumentFinder is what the hub needs to send a snapshot on subscribe.
type DocumentFinder interface {
	FindByID(id string) (model.Document, bool)
}

type Hub struct {
	Rooms      map[string]map[*Client]bool
	Broadcast  chan WSMessage
	Register   chan *Client
	Unregister chan *Client
	finder     DocumentFinder
	mu         sync.Mutex
}

func NewHub(finder DocumentFinder) *Hub {
	return &Hub{
		Rooms:      make(map[string]map[*Client]bool),
		Broadcast:  make(chan WSMessage),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		finder:     finder,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.Rooms[client.Room] == nil {
				h.Rooms[client.Room] = make(map[*Client]bool)
			}
			h.Rooms[client.Room][client] = true
			h.mu.Unlock()

			if client.Room == AllDocuments || h.finder == nil {
				continue
			}
			doc, ok := h.finder.FindByID(client.Room)
			if !ok {
				continue
			}
			msg, err := encode(SnapshotType, doc)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling snapshot for %s: %v", doc.ID, err)
				continue
			}
			client.Send <- msg

		case client := <-h.Unregister:
			h.mu.Lock()
			if _, ok := h.Rooms[client.Room][client]; ok {
				delete(h.Rooms[client.Room], client)
				close(client.Send)
				if len(h.Rooms[client.Room]) == 0 {
					delete(h.Rooms, client.Room)
				}
			}
			h.mu.Unlock()

		case msg := <-h.Broadcast:
			payload, err := json.Marshal(msg)
			if err != nil {
				logger.Sugar.Errorf("Error marshalling broadcast message: %v", err)
				continue
			}

			// Collect recipients first so no send happens under the lock.
			h.mu.Lock()
			clientsToSend := make([]*Client, 0, len(h.Rooms[msg.DocID])+len(h.Rooms[AllDocuments]))
			for client := range h.Rooms[msg.DocID] {
				clientsToSend = append(clientsToSend, client)
			}
			// A document whose ID is "*" already addressed the wildcard room above.
			if msg.DocID != AllDocuments {
				for client := range h.Rooms[AllDocuments] {
					clientsToSend = append(clientsToSend, client)
				}
			}
			h.mu.Unlock()

			for _, client := range clientsToSend {
				select {
				case client.Send <- payload:
				default:
					logger.Sugar.Warnf("Subscriber %s's send buffer is full. Dropping.", client.UserID)
					h.drop(client)
				}
			}
		}
	}
}

// Publish announces a stored document to its room and to AllDocuments.
// It blocks until Run picks the message up.
func (h *Hub) Publish(doc model.Document) error {
	payload, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	h.Broadcast <- WSMessage{Type: SavedType, DocID: doc.ID, Payload: payload}
	return nil
}

// Subscribers reports how many clients are connected across all rooms.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, clients := range h.Rooms {
		n += len(clients)
	}
	return n
}

// drop is the in-loop equivalent of sending on Unregister, which would
// deadlock when called from Run.
func (h *Hub) drop(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.Rooms[client.Room][client]; !ok {
		return
	}
	delete(h.Rooms[client.Room], client)
	close(client.Send)
	if len(h.Rooms[client.Room]) == 0 {
		delete(h.Rooms, client.Room)
	}
	client.Conn.Close()
}

func encode(msgType string, doc model.Document) ([]byte, error) {
	payload, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WSMessage{Type: msgType, DocID: doc.ID, Payload: payload})
}
