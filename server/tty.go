package server

import (
	"github.com/Namelesss1/OOTR-Easy-Spoilers/termio"
	"github.com/gliderlabs/ssh"
	"golang.org/x/term"
)

// terminal returns a line editing terminal for sessions with a PTY, kept
// at the client's window size, and plain lines for the rest, such as
// `ssh host < queries.txt`.
func (s *Server) terminal(sess ssh.Session) (termio.Terminal, bool) {
	pty, winCh, isPTY := sess.Pty()
	if !isPTY {
		return termio.NewLines(sess, sess), false
	}
	t := term.NewTerminal(sess, "> ")
	t.SetSize(pty.Window.Width, pty.Window.Height)
	go func() {
		for {
			select {
			case win, ok := <-winCh:
				if !ok {
					return
				}
				t.SetSize(win.Width, win.Height)
			case <-sess.Context().Done():
				return
			}
		}
	}()
	return t, true
}
