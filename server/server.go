// Package server serves the query console over SSH, one spoiler log per
// session.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"path/filepath"

	spoilers "github.com/Namelesss1/OOTR-Easy-Spoilers"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/aliases"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/console"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/pemfile"
	"github.com/Namelesss1/OOTR-Easy-Spoilers/render"
	"github.com/gliderlabs/ssh"
	"gopkg.in/natefinch/lumberjack.v2"

	gossh "golang.org/x/crypto/ssh"
)

type Config struct {
	Addr string
	// Dir holds the host key.
	Dir string
	// LogsDir is where sessions may open spoiler logs from. Empty means
	// sessions can only paste.
	LogsDir string
	// LogFile receives the server log, rotated. Empty means stderr only.
	LogFile string
	Format  render.Format
	// KeyBits is the size of a newly generated host key.
	KeyBits int
}

func DefaultConfig() Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return Config{
		Addr:    "127.0.0.1:15000",
		Dir:     filepath.Join(home, ".spoilers"),
		Format:  render.FormatText,
		KeyBits: pemfile.DefaultBits,
	}
}

type Server struct {
	config  Config
	tables  *aliases.Tables
	signer  gossh.Signer
	logFile *lumberjack.Logger
}

// New prepares the server directory, generating a host key the first time.
func New(config Config, tables *aliases.Tables) (*Server, error) {
	if err := os.MkdirAll(config.Dir, 0700); err != nil {
		return nil, spoilers.WithStack(err)
	}
	s := &Server{
		config: config,
		tables: tables,
	}
	if config.LogFile != "" {
		s.logFile = &lumberjack.Logger{
			Filename:   config.LogFile,
			MaxSize:    10,
			MaxBackups: 5,
			MaxAge:     30,
		}
		log.SetOutput(io.MultiWriter(os.Stderr, s.logFile))
	}
	hostKey, generated, err := pemfile.KeyParams{
		KeyPath:       filepath.Join(config.Dir, "host.pem"),
		SSHPubKeyPath: filepath.Join(config.Dir, "host.pub"),
		Bits:          config.KeyBits,
	}.Ensure()
	if err != nil {
		return nil, err
	}
	if generated {
		log.Printf("Generated server key pair in %q", config.Dir)
	}
	if s.signer, err = gossh.ParsePrivateKey(hostKey); err != nil {
		return nil, spoilers.WithStack(err)
	}
	return s, nil
}

func (s *Server) Fingerprint() string {
	return gossh.FingerprintSHA256(s.signer.PublicKey())
}

// HandleSession runs a console with its own spoiler log until the user
// leaves.
func (s *Server) HandleSession(sess ssh.Session) {
	log.Printf("%q connected from %v", sess.User(), sess.RemoteAddr())
	term, interactive := s.terminal(sess)
	opts := []console.Option{
		console.WithColor(interactive),
	}
	if s.config.Format != "" {
		opts = append(opts, console.WithFormat(s.config.Format))
	}
	if s.config.LogsDir != "" {
		opts = append(opts, console.WithRoot(s.config.LogsDir))
	}
	c := console.New(s.tables, term, opts...)
	if err := c.Connect(); err != nil && !errors.Is(err, io.EOF) {
		fmt.Fprintf(term, "Error: %v\n", err)
		if spoilers.KindOf(err) == 0 {
			log.Println(err)
			log.Println(spoilers.StackTrace(err))
		}
	}
	log.Printf("%q disconnected", sess.User())
}

// Serve accepts sessions on ln until ctx is done.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &ssh.Server{
		Handler: s.HandleSession,
	}
	srv.AddHostKey(s.signer)
	go func() {
		<-ctx.Done()
		srv.Close()
	}()
	log.Printf("Listening on %q with public key %q", ln.Addr(), s.Fingerprint())
	if err := srv.Serve(ln); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return spoilers.WithStack(err)
	}
	return nil
}

// Start listens on the configured address until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return spoilers.WithStack(err)
	}
	return s.Serve(ctx, ln)
}

func (s *Server) Close() error {
	if s.logFile == nil {
		return nil
	}
	log.SetOutput(os.Stderr)
	return spoilers.WithStack(s.logFile.Close())
}
