package wsserver

import (
	"io"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mo-shahab/go-pong/client"
	"github.com/mo-shahab/go-pong/game"
	pb "github.com/mo-shahab/go-pong/proto"
)

func testFrame(t *testing.T) game.Frame {
	t.Helper()
	sim := game.NewSimulation(game.DefaultSettings(), rand.New(rand.NewSource(1)))
	ev := sim.Tick(game.Sample{})
	return game.Frame{Snapshot: sim.Snapshot(), Events: ev}
}

func waitForSpectators(t *testing.T, s *Server, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for s.Room.Len() != n {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d spectators, have %d", n, s.Room.Len())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func dial(t *testing.T, ts *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http") + "/ws" + query
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial %s: %v", url, err)
	}
	return conn
}

func TestSpectatorReceivesFrames(t *testing.T) {
	for _, codec := range []pb.Codec{pb.Protobuf, pb.Msgpack} {
		t.Run(codec.String(), func(t *testing.T) {
			s := New(1)
			ts := httptest.NewServer(s)
			defer ts.Close()

			conn := dial(t, ts, "?codec="+codec.String())
			defer conn.Close()
			waitForSpectators(t, s, 1)

			frame := testFrame(t)
			s.HandleFrame(frame)

			conn.SetReadDeadline(time.Now().Add(2 * time.Second))
			mt, msg, err := conn.ReadMessage()
			if err != nil {
				t.Fatalf("read: %v", err)
			}
			if mt != websocket.BinaryMessage {
				t.Errorf("expected a binary message, got type %d", mt)
			}

			got, err := codec.Decode(msg)
			if err != nil {
				t.Fatalf("decode: %v", err)
			}
			if want := pb.FromGame(frame); got != want {
				t.Errorf("frame mismatch:\n got %+v\nwant %+v", got, want)
			}
		})
	}
}

func TestSpectatorDisconnectLeavesRoom(t *testing.T) {
	s := New(1)
	ts := httptest.NewServer(s)
	defer ts.Close()

	conn := dial(t, ts, "")
	waitForSpectators(t, s, 1)

	conn.Close()
	waitForSpectators(t, s, 0)
}

func TestUnknownCodecRejected(t *testing.T) {
	s := New(1)
	ts := httptest.NewServer(s)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/ws?codec=xml")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	s := New(1)
	ts := httptest.NewServer(s)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if string(body) != "ok spectators=0\n" {
		t.Errorf("unexpected body %q", body)
	}
}

func TestBroadcastCadence(t *testing.T) {
	s := New(3)
	c := client.New(nil, pb.Protobuf, 16)
	s.Room.Join(c)

	frame := testFrame(t)
	frame.Events.Scored = false
	for i := 0; i < 6; i++ {
		s.HandleFrame(frame)
	}
	if c.Pending() != 2 {
		t.Fatalf("expected every third frame to be sent, got %d messages", c.Pending())
	}

	frame.Events.Scored = true
	s.HandleFrame(frame)
	if c.Pending() != 3 {
		t.Errorf("expected scoring frames to always be sent, got %d messages", c.Pending())
	}
}
