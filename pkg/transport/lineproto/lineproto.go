// Package lineproto is a plain-text request/response adapter over a stream.
//
// It stands in for the display-server transport: one request per line, one
// response block per request, in order.
//
//	> layout 3 1920 1080
//	< ok 3
//	< 15 15 1890 520
//	< 15 545 940 520
//	< 965 545 940 520
//	> cmd outer-gap 5
//	< ok
//	> cmd split-perc 2
//	< err INVALID_VALUE split-perc must be greater than 0 and less than 1, got 2
//	> config
//	< ok inner=0,0,0,0 outer=5,5,5,5 hsplit=0.5 vsplit=0.5 start=vertical reverse=false
//
// Blank lines and lines starting with '#' are ignored.
package lineproto

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/bsptile/pkg/bsp"
	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// maxLineBytes bounds one request line. A longer line is discarded and
// answered with INVALID_REQUEST; the session continues.
const maxLineBytes = 64 * 1024

// request is one line read from the stream.
type request struct {
	line    string
	tooLong bool
}

// Handler is the subset of the engine the protocol needs.
type Handler interface {
	Layout(ctx context.Context, n int, output bsp.Rect) ([]bsp.Rect, error)
	Command(ctx context.Context, line string) error
	Snapshot(ctx context.Context) (config.Config, error)
}

// Server answers requests read from a stream.
type Server struct {
	Handler Handler
	Logger  *log.Logger
}

// Serve reads requests from r until EOF or ctx is done, writing responses
// to w. Request errors are reported inline and do not stop the loop; only
// read and write failures are returned.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	logger := s.Logger
	if logger == nil {
		logger = log.Default()
	}

	lines := make(chan request)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		readErr <- readRequests(ctx, bufio.NewReaderSize(r, maxLineBytes), lines)
	}()

	bw := bufio.NewWriter(w)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("read request: %w", err)
				}
				return ctx.Err()
			}
			var resp string
			if req.tooLong {
				logger.Warn("discarded oversized request", "limit", maxLineBytes)
				resp = errLine(bsperrors.New(bsperrors.ErrCodeInvalidRequest,
					"request line longer than %d bytes", maxLineBytes))
			} else {
				resp = s.handle(ctx, req.line)
			}
			if resp == "" {
				continue
			}
			if _, err := bw.WriteString(resp); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			if err := bw.Flush(); err != nil {
				return fmt.Errorf("write response: %w", err)
			}
			logger.Debug("handled request", "request", req.line)
		}
	}
}

// readRequests sends every line of br to out until EOF, a read error or ctx
// is done. Lines longer than the reader's buffer are drained and sent with
// tooLong set.
func readRequests(ctx context.Context, br *bufio.Reader, out chan<- request) error {
	for {
		var req request
		b, err := br.ReadSlice('\n')
		switch {
		case err == bufio.ErrBufferFull:
			req.tooLong = true
			for err == bufio.ErrBufferFull {
				_, err = br.ReadSlice('\n')
			}
		default:
			req.line = strings.TrimSuffix(strings.TrimSuffix(string(b), "\n"), "\r")
		}
		if err != nil && err != io.EOF {
			return err
		}
		if req.tooLong || req.line != "" || err == nil {
			select {
			case out <- req:
			case <-ctx.Done():
				return nil
			}
		}
		if err == io.EOF {
			return nil
		}
	}
}

// handle returns the full response for one request line, newline
// terminated, or "" for lines that need no answer.
func (s *Server) handle(ctx context.Context, line string) string {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return ""
	}

	verb, rest, _ := strings.Cut(line, " ")
	switch verb {
	case "layout":
		return s.layout(ctx, strings.Fields(rest))
	case "cmd":
		if err := s.Handler.Command(ctx, strings.TrimSpace(rest)); err != nil {
			return errLine(err)
		}
		return "ok\n"
	case "config":
		cfg, err := s.Handler.Snapshot(ctx)
		if err != nil {
			return errLine(err)
		}
		return "ok " + cfg.String() + "\n"
	}
	return errLine(bsperrors.New(bsperrors.ErrCodeInvalidRequest, "unknown request %q", verb))
}

func (s *Server) layout(ctx context.Context, args []string) string {
	n, output, err := parseLayoutArgs(args)
	if err != nil {
		return errLine(err)
	}
	rects, err := s.Handler.Layout(ctx, n, output)
	if err != nil {
		return errLine(err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "ok %d\n", len(rects))
	for _, r := range rects {
		fmt.Fprintf(&b, "%d %d %d %d\n", r.X, r.Y, r.Width, r.Height)
	}
	return b.String()
}

// parseLayoutArgs reads "<count> <width> <height> [<x> <y>]".
func parseLayoutArgs(args []string) (int, bsp.Rect, error) {
	if len(args) != 3 && len(args) != 5 {
		return 0, bsp.Rect{}, bsperrors.New(bsperrors.ErrCodeInvalidRequest,
			"layout wants <count> <width> <height> [<x> <y>], got %d arguments", len(args))
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, bsp.Rect{}, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "invalid count %q", args[0])
	}
	var out bsp.Rect
	w, err := strconv.ParseUint(args[1], 10, 32)
	if err != nil {
		return 0, bsp.Rect{}, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "invalid width %q", args[1])
	}
	h, err := strconv.ParseUint(args[2], 10, 32)
	if err != nil {
		return 0, bsp.Rect{}, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "invalid height %q", args[2])
	}
	out.Width, out.Height = uint32(w), uint32(h)

	if len(args) == 5 {
		x, err := strconv.ParseInt(args[3], 10, 32)
		if err != nil {
			return 0, bsp.Rect{}, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "invalid x %q", args[3])
		}
		y, err := strconv.ParseInt(args[4], 10, 32)
		if err != nil {
			return 0, bsp.Rect{}, bsperrors.New(bsperrors.ErrCodeInvalidRequest, "invalid y %q", args[4])
		}
		out.X, out.Y = int32(x), int32(y)
	}
	return n, out, nil
}

func errLine(err error) string {
	code := bsperrors.CodeOr(err, bsperrors.ErrCodeInternal)
	msg := strings.ReplaceAll(bsperrors.UserMessage(err), "\n", " ")
	return fmt.Sprintf("err %s %s\n", code, msg)
}
