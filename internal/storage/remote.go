package storage

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net"
	"time"

	"github.com/WillyV3/todot/internal/todo"
)

// Protocol commands. Each connection carries exactly one command.
const (
	cmdRead  = "read"
	cmdWrite = "write"

	// errorPrefix starts a reply line reporting a failure on the peer.
	errorPrefix = "error: "
)

// DefaultDialTimeout bounds a remote call when none is configured.
const DefaultDialTimeout = 5 * time.Second

// RemoteStore exchanges the whole task list with a peer over TCP.
//
// Save sends "write\n" followed directly by the JSON array and waits for a
// one-line acknowledgement. Load sends "read\n" and parses the single line
// that comes back. There is no framing beyond the newline.
type RemoteStore struct {
	addr    string
	timeout time.Duration
	dialer  net.Dialer
}

// NewRemoteStore returns a RemoteStore for the peer at addr.
func NewRemoteStore(addr string, timeout time.Duration) *RemoteStore {
	if timeout <= 0 {
		timeout = DefaultDialTimeout
	}
	return &RemoteStore{addr: addr, timeout: timeout}
}

// Addr returns the peer address.
func (r *RemoteStore) Addr() string {
	return r.addr
}

// Load fetches the task list from the peer.
func (r *RemoteStore) Load(ctx context.Context) ([]todo.Task, error) {
	line, err := r.roundTrip(ctx, []byte(cmdRead+"\n"))
	if err == nil {
		err = peerError(line)
	}
	if err != nil {
		return nil, &todo.PersistenceError{Op: "read from peer", Kind: todo.KindIO, Err: err}
	}
	tasks, err := decodeTasks(line)
	if err != nil {
		return nil, &todo.PersistenceError{Op: "read from peer", Kind: todo.KindSerialization, Err: err}
	}
	return tasks, nil
}

// Save sends the task list to the peer.
func (r *RemoteStore) Save(ctx context.Context, tasks []todo.Task) error {
	body, err := encodeTasks(tasks)
	if err != nil {
		return &todo.PersistenceError{Op: "write to peer", Kind: todo.KindSerialization, Err: err}
	}
	req := append([]byte(cmdWrite+"\n"), body...)
	ack, err := r.roundTrip(ctx, req)
	if err == nil {
		err = peerError(ack)
	}
	if err != nil {
		return &todo.PersistenceError{Op: "write to peer", Kind: todo.KindIO, Err: err}
	}
	return nil
}

// peerError returns the failure reported in a reply line, or nil. Any other
// acknowledgement, including an empty line from older peers, is success.
func peerError(line []byte) error {
	msg, ok := bytes.CutPrefix(line, []byte(errorPrefix))
	if !ok {
		return nil
	}
	return fmt.Errorf("peer: %s", msg)
}

// roundTrip opens a connection, sends req and returns the first line of
// the reply without its terminator.
func (r *RemoteStore) roundTrip(ctx context.Context, req []byte) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	conn, err := r.dialer.DialContext(ctx, "tcp", r.addr)
	if err != nil {
		return nil, fmt.Errorf("dial %s: %w", r.addr, err)
	}
	defer conn.Close()

	if deadline, ok := ctx.Deadline(); ok {
		if err := conn.SetDeadline(deadline); err != nil {
			return nil, fmt.Errorf("set deadline: %w", err)
		}
	}

	if _, err := conn.Write(req); err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	line, err := bufio.NewReader(conn).ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	return line[:len(line)-1], nil
}
