package room

import (
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/mo-shahab/go-pong/client"
	pb "github.com/mo-shahab/go-pong/proto"
)

// Room is the set of spectators watching the match.
type Room struct {
	ID      string
	Clients map[string]*client.Client
	Mu      sync.Mutex
}

func New() *Room {
	return &Room{
		ID:      generateRoomId(),
		Clients: make(map[string]*client.Client),
	}
}

func generateRoomId() string {
	return uuid.New().String()[:6]
}

// Join adds c to the room.
func (r *Room) Join(c *client.Client) {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	r.Clients[c.ID] = c
	log.Printf("Spectator %s joined room %s (%d watching)", c.ID, r.ID, len(r.Clients))
}

// Leave removes the client and closes its send queue. It reports whether the
// client was still in the room.
func (r *Room) Leave(id string) bool {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	c, exists := r.Clients[id]
	if !exists {
		return false
	}

	delete(r.Clients, id)
	c.Close()
	log.Printf("Spectator %s left room %s (%d watching)", id, r.ID, len(r.Clients))
	return true
}

// Len returns the number of spectators.
func (r *Room) Len() int {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	return len(r.Clients)
}

// Broadcast encodes f once per codec in use and queues it for every
// spectator. Spectators whose queue is full miss this frame; the count of
// such drops is returned.
func (r *Room) Broadcast(f *pb.Frame) int {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	encoded := make(map[pb.Codec][]byte, 2)
	dropped := 0

	for _, c := range r.Clients {
		msg, ok := encoded[c.Codec]
		if !ok {
			var err error
			msg, err = c.Codec.Encode(f)
			if err != nil {
				log.Printf("Failed to encode frame for %s: %v", c.Codec, err)
				continue
			}
			encoded[c.Codec] = msg
		}

		if !c.Enqueue(msg) {
			dropped++
		}
	}

	return dropped
}

// CloseAll removes every spectator.
func (r *Room) CloseAll() {
	r.Mu.Lock()
	defer r.Mu.Unlock()

	for id, c := range r.Clients {
		c.Close()
		delete(r.Clients, id)
	}
}
