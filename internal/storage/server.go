package storage

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/WillyV3/todot/internal/todo"
)

// DefaultServerAddr is where `todot serve` listens unless told otherwise.
const DefaultServerAddr = "127.0.0.1:7878"

// Server is a peer for RemoteStore clients. It answers one command per
// connection and keeps the list in a backing Persister.
type Server struct {
	backend todo.Persister
	logger  *log.Logger
	timeout time.Duration

	mu sync.Mutex
}

// NewServer creates a server that stores the list in backend.
func NewServer(backend todo.Persister, logger *log.Logger) *Server {
	return &Server{
		backend: backend,
		logger:  logger,
		timeout: DefaultDialTimeout,
	}
}

// ListenAndServe listens on addr and serves until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	var lc net.ListenConfig
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.logger.Info("listening", "addr", ln.Addr().String())
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled. It closes ln and
// waits for in-flight connections before returning.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	stop := context.AfterFunc(ctx, func() {
		ln.Close()
	})
	defer stop()

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		conn, err := ln.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("accept: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			s.handle(ctx, conn)
		}()
	}
}

func (s *Server) handle(ctx context.Context, conn net.Conn) {
	defer conn.Close()
	logger := s.logger.With("conn", uuid.NewString(), "remote", conn.RemoteAddr().String())

	if err := conn.SetDeadline(time.Now().Add(s.timeout)); err != nil {
		logger.Warn("set deadline", "err", err)
	}

	br := bufio.NewReader(conn)
	line, err := br.ReadString('\n')
	if err != nil {
		logger.Warn("read command", "err", err)
		return
	}
	cmd := strings.TrimSpace(line)

	var reply []byte
	switch cmd {
	case cmdRead:
		reply, err = s.read(ctx)
	case cmdWrite:
		reply, err = s.write(ctx, br)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		logger.Error("command failed", "cmd", cmd, "err", err)
		reply = []byte(errorPrefix + strings.ReplaceAll(err.Error(), "\n", " "))
	} else {
		logger.Debug("command served", "cmd", cmd)
	}

	reply = append(reply, '\n')
	if _, err := conn.Write(reply); err != nil {
		logger.Warn("write reply", "err", err)
	}
}

func (s *Server) read(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tasks, err := s.backend.Load(ctx)
	if err != nil {
		return nil, err
	}
	return encodeTasks(tasks)
}

func (s *Server) write(ctx context.Context, br *bufio.Reader) ([]byte, error) {
	var body json.RawMessage
	if err := json.NewDecoder(br).Decode(&body); err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	tasks, err := decodeTasks(body)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.backend.Save(ctx, tasks); err != nil {
		return nil, err
	}
	return []byte("ok"), nil
}
