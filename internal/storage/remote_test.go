package storage

import (
	"bufio"
	"context"
	"errors"
	"io"
	"net"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/WillyV3/todot/internal/config"
	"github.com/WillyV3/todot/internal/logging"
	"github.com/WillyV3/todot/internal/testutil"
	"github.com/WillyV3/todot/internal/todo"
)

// startServer runs a Server over mem on a loopback port and returns its address.
func startServer(t *testing.T, mem *testutil.MemStore) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	srv := NewServer(mem, logging.Discard())
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Errorf("Serve returned %v", err)
			}
		case <-time.After(5 * time.Second):
			t.Error("Serve did not stop after cancel")
		}
	})
	return ln.Addr().String()
}

// fakePeer accepts one connection, hands the raw request to handle and
// writes back whatever it returns.
func fakePeer(t *testing.T, handle func(r *bufio.Reader) string) (string, <-chan string) {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	got := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		conn.SetDeadline(time.Now().Add(5 * time.Second))

		var req strings.Builder
		r := bufio.NewReader(io.TeeReader(conn, &req))
		reply := handle(r)
		got <- req.String()
		io.WriteString(conn, reply)
	}()
	return ln.Addr().String(), got
}

func TestRemoteRoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := testutil.NewMemStore()
	client := NewRemoteStore(startServer(t, mem), time.Second)

	want := []todo.Task{{Text: "a", Completed: true}, {Text: "b"}}
	if err := client.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if !reflect.DeepEqual(mem.Saved(), want) {
		t.Errorf("peer holds %+v, want %+v", mem.Saved(), want)
	}

	got, err := client.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Load: got %+v, want %+v", got, want)
	}
}

func TestRemoteLoadEmptyPeer(t *testing.T) {
	client := NewRemoteStore(startServer(t, testutil.NewMemStore()), time.Second)

	got, err := client.Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %+v, want empty", got)
	}
}

func TestRemoteWriteWireFormat(t *testing.T) {
	addr, got := fakePeer(t, func(r *bufio.Reader) string {
		line, _ := r.ReadString('\n')
		if line != "write\n" {
			return "unexpected\n"
		}
		r.ReadString(']')
		return "\n"
	})

	client := NewRemoteStore(addr, time.Second)
	if err := client.Save(context.Background(), []todo.Task{{Text: "x"}}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	want := "write\n" + `[{"text":"x","completed":false}]`
	if req := <-got; req != want {
		t.Errorf("request: got %q, want %q", req, want)
	}
}

func TestRemoteReadWireFormat(t *testing.T) {
	addr, got := fakePeer(t, func(r *bufio.Reader) string {
		r.ReadString('\n')
		return `[{"text":"from peer","completed":true}]` + "\n"
	})

	tasks, err := NewRemoteStore(addr, time.Second).Load(context.Background())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if req := <-got; req != "read\n" {
		t.Errorf("request: got %q, want %q", req, "read\n")
	}
	want := []todo.Task{{Text: "from peer", Completed: true}}
	if !reflect.DeepEqual(tasks, want) {
		t.Errorf("Load: got %+v, want %+v", tasks, want)
	}
}

func TestRemoteMalformedReply(t *testing.T) {
	addr, _ := fakePeer(t, func(r *bufio.Reader) string {
		r.ReadString('\n')
		return "{not json}\n"
	})

	_, err := NewRemoteStore(addr, time.Second).Load(context.Background())
	var perr *todo.PersistenceError
	if !errors.As(err, &perr) || perr.Kind != todo.KindSerialization {
		t.Errorf("got %v, want serialization PersistenceError", err)
	}
}

func TestRemoteDialFailure(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	err = NewRemoteStore(addr, time.Second).Save(context.Background(), nil)
	var perr *todo.PersistenceError
	if !errors.As(err, &perr) || perr.Kind != todo.KindIO {
		t.Errorf("got %v, want io PersistenceError", err)
	}
}

func TestRemoteNoReply(t *testing.T) {
	addr, _ := fakePeer(t, func(r *bufio.Reader) string {
		r.ReadString('\n')
		time.Sleep(300 * time.Millisecond)
		return ""
	})

	start := time.Now()
	_, err := NewRemoteStore(addr, 100*time.Millisecond).Load(context.Background())
	var perr *todo.PersistenceError
	if !errors.As(err, &perr) || perr.Kind != todo.KindIO {
		t.Errorf("got %v, want io PersistenceError", err)
	}
	if time.Since(start) > 2*time.Second {
		t.Errorf("timeout not applied, took %s", time.Since(start))
	}
}

func rawCommand(t *testing.T, addr, req string) string {
	t.Helper()
	conn, err := net.DialTimeout("tcp", addr, time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(2 * time.Second))
	if _, err := io.WriteString(conn, req); err != nil {
		t.Fatalf("write: %v", err)
	}
	line, err := bufio.NewReader(conn).ReadString('\n')
	if err != nil {
		t.Fatalf("read reply: %v", err)
	}
	return line
}

func TestServerRejectsBadInput(t *testing.T) {
	mem := testutil.NewMemStore(todo.Task{Text: "keep"})
	addr := startServer(t, mem)

	tests := []struct {
		name string
		req  string
	}{
		{"unknown command", "delete\n"},
		{"invalid body", "write\n{not json}"},
		{"schema mismatch", "write\n" + `[{"text":true,"completed":false}]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := rawCommand(t, addr, tt.req)
			if !strings.HasPrefix(reply, "error: ") {
				t.Errorf("reply: got %q, want error line", reply)
			}
		})
	}

	want := []todo.Task{{Text: "keep"}}
	if !reflect.DeepEqual(mem.Saved(), want) {
		t.Errorf("peer state changed: %+v", mem.Saved())
	}
}

func TestServerAcksWrite(t *testing.T) {
	mem := testutil.NewMemStore()
	addr := startServer(t, mem)

	reply := rawCommand(t, addr, "write\n"+`[{"text":"a","completed":false}]`)
	if reply != "ok\n" {
		t.Errorf("reply: got %q, want %q", reply, "ok\n")
	}
	if reply := rawCommand(t, addr, "read\n"); reply != `[{"text":"a","completed":false}]`+"\n" {
		t.Errorf("read reply: got %q", reply)
	}
}

func TestServerBackendFailure(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.LoadErr = errors.New("disk gone")
	addr := startServer(t, mem)

	_, err := NewRemoteStore(addr, time.Second).Load(context.Background())
	var perr *todo.PersistenceError
	if !errors.As(err, &perr) || perr.Kind != todo.KindIO {
		t.Fatalf("got %v, want io PersistenceError", err)
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("error should carry the peer message: %v", err)
	}
}

func TestServerRejectedWriteFailsSave(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.SaveErr = errors.New("disk full")
	addr := startServer(t, mem)

	err := NewRemoteStore(addr, time.Second).Save(context.Background(), []todo.Task{{Text: "a"}})
	var perr *todo.PersistenceError
	if !errors.As(err, &perr) || perr.Kind != todo.KindIO {
		t.Fatalf("got %v, want io PersistenceError", err)
	}
	if perr.Op != "write to peer" || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("error: %v", err)
	}
	if len(mem.Saved()) != 0 {
		t.Errorf("peer should hold nothing, got %+v", mem.Saved())
	}
}

func TestRemoteSaveAcceptsLegacyAck(t *testing.T) {
	for _, ack := range []string{"\n", "ok\n", "saved\n"} {
		t.Run(strings.TrimSpace(ack), func(t *testing.T) {
			addr, _ := fakePeer(t, func(r *bufio.Reader) string {
				r.ReadString('\n')
				r.ReadString(']')
				return ack
			})
			if err := NewRemoteStore(addr, time.Second).Save(context.Background(), nil); err != nil {
				t.Errorf("ack %q: Save failed: %v", ack, err)
			}
		})
	}
}

func TestNewSelectsAdapter(t *testing.T) {
	if _, ok := New(&config.Config{ServerAddress: "h:1"}).(*RemoteStore); !ok {
		t.Error("server address should select RemoteStore")
	}
	if _, ok := New(&config.Config{DataDir: t.TempDir()}).(*FileStore); !ok {
		t.Error("no server address should select FileStore")
	}
}

func TestDescribe(t *testing.T) {
	mem := testutil.NewMemStore()
	if got := Describe(mem); got != "memory" {
		t.Errorf("Describe(mem): got %q", got)
	}
	fs := NewFileStore("/data")
	if got := Describe(fs); got != "/data/"+DBFile {
		t.Errorf("Describe(file): got %q", got)
	}
	if got := Describe(NewRemoteStore("h:1", 0)); got != "peer h:1" {
		t.Errorf("Describe(remote): got %q", got)
	}
}
