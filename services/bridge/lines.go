package bridge

import (
	"bufio"
	"io"
	"strings"
	"sync"

	"github.com/google/shlex"
)

// Line protocol, one command per line, fields split shell-style:
//
//	pub homie/bolide/car/direction "left"      device -> peer
//	set homie/bolide/car/direction/set "left"  peer -> device
//	ping | pong | close
//	err <code> <detail>
const (
	cmdPub   = "pub"
	cmdSet   = "set"
	cmdPing  = "ping"
	cmdPong  = "pong"
	cmdClose = "close"
	cmdErr   = "err"
)

type lineError string

func (e lineError) Error() string { return string(e) }

const errBadLine lineError = "invalid_payload"

const maxLine = 512

type lineReader struct{ sc *bufio.Scanner }

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 128), maxLine)
	return &lineReader{sc: sc}
}

// ReadFields returns the next non-blank line split into fields. A line that
// does not split cleanly yields errBadLine; the reader stays usable.
func (lr *lineReader) ReadFields() ([]string, error) {
	for lr.sc.Scan() {
		line := strings.TrimSpace(lr.sc.Text())
		if line == "" {
			continue
		}
		f, err := shlex.Split(line)
		if err != nil || len(f) == 0 {
			return nil, errBadLine
		}
		return f, nil
	}
	if err := lr.sc.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}

type lineWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func newLineWriter(w io.Writer) *lineWriter { return &lineWriter{w: w} }

// WriteFields writes one line. The first field is written bare, the rest
// quoted.
func (lw *lineWriter) WriteFields(cmd string, args ...string) error {
	var b strings.Builder
	b.WriteString(cmd)
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	b.WriteByte('\n')
	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, err := io.WriteString(lw.w, b.String())
	return err
}

// quote wraps s in double quotes so shlex.Split yields it back unchanged.
// Line breaks are flattened to spaces.
func quote(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '"', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n', '\r':
			b.WriteByte(' ')
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('"')
	return b.String()
}
