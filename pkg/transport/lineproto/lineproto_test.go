package lineproto

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/bsptile/pkg/config"
	"github.com/matzehuels/bsptile/pkg/engine"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	store, err := config.NewStore(config.Default())
	if err != nil {
		t.Fatal(err)
	}
	e := engine.New(store, nil)
	ctx, cancel := context.WithCancel(context.Background())
	go e.Run(ctx) //nolint:errcheck
	t.Cleanup(func() {
		cancel()
		<-e.Done()
	})
	return &Server{Handler: e}
}

func transcript(t *testing.T, s *Server, input string) []string {
	t.Helper()
	var out bytes.Buffer
	if err := s.Serve(context.Background(), strings.NewReader(input), &out); err != nil {
		t.Fatalf("Serve() error = %v", err)
	}
	return strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
}

func TestServeTranscript(t *testing.T) {
	s := startServer(t)

	input := strings.Join([]string{
		"# seed gaps",
		"cmd outer-gap 10 inner-gap 5",
		"",
		"layout 3 1920 1080",
		"cmd split-perc 2",
		"config",
		"layout 0 1920 1080",
		"layout 1 100 100 1920 50",
	}, "\n")

	want := []string{
		"ok",
		"ok 3",
		"15 15 1890 520",
		"15 545 940 520",
		"965 545 940 520",
		"err INVALID_VALUE split-perc must be greater than 0 and less than 1, got 2",
		"ok inner=5,5,5,5 outer=10,10,10,10 hsplit=0.5 vsplit=0.5 start=vertical reverse=false",
		"ok 0",
		"ok 1",
		"1935 65 70 70",
	}
	if diff := cmp.Diff(want, transcript(t, s, input)); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestServeRequestErrors(t *testing.T) {
	s := startServer(t)

	tests := []struct {
		request string
		prefix  string
	}{
		{"frobnicate", "err INVALID_REQUEST"},
		{"layout", "err INVALID_REQUEST"},
		{"layout x 100 100", "err INVALID_REQUEST"},
		{"layout 2 -100 100", "err INVALID_REQUEST"},
		{"layout 2 100 100 1", "err INVALID_REQUEST"},
		{"layout -2 100 100", "err INVALID_REQUEST"},
		{"cmd", "err INVALID_COMMAND"},
		{"cmd split-perc abc", "err INVALID_COMMAND"},
		{"cmd split-perc 1", "err INVALID_VALUE"},
		{"cmd start-hsplit start-vsplit", "err INVALID_VALUE"},
	}

	for _, tt := range tests {
		t.Run(tt.request, func(t *testing.T) {
			got := transcript(t, s, tt.request)
			if len(got) != 1 || !strings.HasPrefix(got[0], tt.prefix) {
				t.Errorf("response = %q, want prefix %q", got, tt.prefix)
			}
		})
	}
}

func TestServeOversizedLine(t *testing.T) {
	s := startServer(t)

	input := "cmd outer-gap " + strings.Repeat("9", maxLineBytes+10) + "\r\nconfig\r\n"
	want := []string{
		"err INVALID_REQUEST request line longer than 65536 bytes",
		"ok inner=0,0,0,0 outer=0,0,0,0 hsplit=0.5 vsplit=0.5 start=vertical reverse=false",
	}
	if diff := cmp.Diff(want, transcript(t, s, input)); diff != "" {
		t.Errorf("transcript mismatch (-want +got):\n%s", diff)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	s := startServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, w := io.Pipe()
	defer w.Close()
	if err := s.Serve(ctx, r, &bytes.Buffer{}); err != context.Canceled {
		t.Errorf("Serve() error = %v, want context.Canceled", err)
	}
}
