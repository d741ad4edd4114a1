// Package server runs an http.Handler on a TCP listener until its context is done.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"golang.org/x/net/netutil"
	"golang.org/x/sync/errgroup"

	"github.com/f4ah6o/htmlserve/internal/config"
	"github.com/f4ah6o/htmlserve/internal/log"
)

// Server binds one handler to the address in its config.
type Server struct {
	cfg     config.Config
	name    string
	handler http.Handler

	// Out receives the startup banner.
	Out io.Writer
}

// New returns a Server named name (used in logs) serving h.
func New(cfg config.Config, name string, h http.Handler) *Server {
	return &Server{
		cfg:     cfg,
		name:    name,
		handler: h,
		Out:     os.Stdout,
	}
}

// Run listens on the configured address and serves until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.cfg.Addr(), err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled, then shuts down
// gracefully within the configured timeout. ln is closed on return.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	if s.cfg.MaxConns > 0 {
		ln = netutil.LimitListener(ln, s.cfg.MaxConns)
	}
	srv := &http.Server{
		Handler: s.logRequests(s.handler),
	}

	s.banner(ln.Addr())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("%s: %w", s.name, err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Infof("Shutting down %s", s.name)
		sctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout.Duration)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return fmt.Errorf("failed to shut down %s: %w", s.name, err)
		}
		return nil
	})
	return g.Wait()
}

func (s *Server) banner(addr net.Addr) {
	port := strconv.Itoa(s.cfg.Port)
	if tcp, ok := addr.(*net.TCPAddr); ok {
		port = strconv.Itoa(tcp.Port)
	}
	url := "http://" + net.JoinHostPort(s.cfg.Host, port) + "/"
	color.New(color.FgGreen).Fprint(s.Out, "Server running at ")
	color.New(color.FgCyan, color.Bold).Fprintln(s.Out, url)
	log.Infof("%s listening on %s (root %s)", s.name, addr, s.cfg.Root)
}

type statusWriter struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (w *statusWriter) WriteHeader(code int) {
	if w.status == 0 {
		w.status = code
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(p []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(p)
	w.bytes += int64(n)
	return n, err
}

// logRequests records one debug line per request. The request id only
// appears in logs; responses are left untouched.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r)
		log.Debugf("%s request=%s remote=%s %s %s status=%d bytes=%d took=%s",
			s.name, id, r.RemoteAddr, r.Method, r.RequestURI, sw.status, sw.bytes, time.Since(start))
	})
}
