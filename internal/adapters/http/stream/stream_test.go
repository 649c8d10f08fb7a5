package stream_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/okian/draftassist/internal/adapters/http/stream"
	"github.com/okian/draftassist/internal/adapters/repository"
	service "github.com/okian/draftassist/internal/app"
	"github.com/okian/draftassist/internal/domain/model"
	"github.com/smartystreets/goconvey/convey"
)

type fakePublisher struct {
	updates  chan service.Update
	snap     *repository.Snapshot
	canceled atomic.Int32
}

func (f *fakePublisher) Subscribe() (<-chan service.Update, func()) {
	return f.updates, func() { f.canceled.Add(1) }
}

func (f *fakePublisher) Snapshot(context.Context) (*repository.Snapshot, error) {
	if f.snap == nil {
		return nil, service.ErrNoSnapshot
	}
	return f.snap, nil
}

func dial(srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	return websocket.DefaultDialer.Dial(url, header)
}

func read(conn *websocket.Conn) (stream.Message, error) {
	var msg stream.Message
	_ = conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	err := conn.ReadJSON(&msg)
	return msg, err
}

func newServer(pub *fakePublisher, opts ...stream.Option) *httptest.Server {
	mux := http.NewServeMux()
	stream.NewHandler(pub, opts...).Register(context.Background(), mux)
	return httptest.NewServer(mux)
}

func TestStream(t *testing.T) {
	convey.Convey("Given a stream over an applied snapshot", t, func() {
		pub := &fakePublisher{
			updates: make(chan service.Update, 4),
			snap: &repository.Snapshot{
				ID:      "snap-1",
				Version: 1,
				League:  "FanDuel",
				State:   &model.DraftState{Status: model.StatusInProgress, CurrentPick: 5},
			},
		}
		srv := newServer(pub)
		defer srv.Close()

		conn, _, err := dial(srv, "")
		convey.So(err, convey.ShouldBeNil)
		defer conn.Close()

		convey.Convey("When the client connects", func() {
			msg, err := read(conn)

			convey.Convey("Then it receives the current snapshot", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(msg.Type, convey.ShouldEqual, stream.TypeHello)
				convey.So(msg.Update, convey.ShouldNotBeNil)
				convey.So(msg.Update.SnapshotID, convey.ShouldEqual, "snap-1")
				convey.So(msg.Update.CurrentPick, convey.ShouldEqual, 5)
			})
		})

		convey.Convey("When a snapshot is published", func() {
			_, err := read(conn)
			convey.So(err, convey.ShouldBeNil)
			pub.updates <- service.Update{SnapshotID: "snap-2", Version: 2, CurrentPick: 6}
			msg, err := read(conn)

			convey.Convey("Then the client receives it", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(msg.Type, convey.ShouldEqual, stream.TypeSnapshot)
				convey.So(msg.Update.SnapshotID, convey.ShouldEqual, "snap-2")
				convey.So(msg.Update.Version, convey.ShouldEqual, 2)
			})
		})

		convey.Convey("When the publisher stops", func() {
			_, err := read(conn)
			convey.So(err, convey.ShouldBeNil)
			close(pub.updates)
			_, err = read(conn)

			convey.Convey("Then the connection is closed with going-away", func() {
				convey.So(websocket.IsCloseError(err, websocket.CloseGoingAway), convey.ShouldBeTrue)
				convey.So(waitFor(func() bool { return pub.canceled.Load() == 1 }), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When the client disconnects", func() {
			_, err := read(conn)
			convey.So(err, convey.ShouldBeNil)
			_ = conn.Close()

			convey.Convey("Then its subscription is canceled", func() {
				convey.So(waitFor(func() bool { return pub.canceled.Load() == 1 }), convey.ShouldBeTrue)
			})
		})
	})

	convey.Convey("Given a stream before the first refresh", t, func() {
		pub := &fakePublisher{updates: make(chan service.Update)}
		srv := newServer(pub)
		defer srv.Close()

		conn, _, err := dial(srv, "")
		convey.So(err, convey.ShouldBeNil)
		defer conn.Close()
		msg, err := read(conn)

		convey.Convey("Then hello carries no update", func() {
			convey.So(err, convey.ShouldBeNil)
			convey.So(msg.Type, convey.ShouldEqual, stream.TypeHello)
			convey.So(msg.Update, convey.ShouldBeNil)
		})
	})

	convey.Convey("Given a stream restricted to one origin", t, func() {
		pub := &fakePublisher{updates: make(chan service.Update)}
		srv := newServer(pub, stream.WithAllowedOrigins([]string{"http://localhost:3000"}))
		defer srv.Close()

		convey.Convey("Then the allowed origin connects", func() {
			conn, _, err := dial(srv, "http://localhost:3000")
			convey.So(err, convey.ShouldBeNil)
			_ = conn.Close()
		})

		convey.Convey("Then other origins are refused", func() {
			_, resp, err := dial(srv, "http://evil.example")
			convey.So(err, convey.ShouldNotBeNil)
			convey.So(resp.StatusCode, convey.ShouldEqual, http.StatusForbidden)
			convey.So(pub.canceled.Load(), convey.ShouldEqual, 0)
		})
	})
}

func waitFor(cond func() bool) bool {
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(5 * time.Millisecond)
	}
	return cond()
}
