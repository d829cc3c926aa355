package command

import (
	"errors"
	"io"
	"strings"

	"github.com/spf13/pflag"

	"github.com/matzehuels/bsptile/pkg/config"
	bsperrors "github.com/matzehuels/bsptile/pkg/errors"
)

// Batch is the ordered list of ops produced by one command line.
type Batch []config.Op

// String renders the batch in canonical command syntax.
func (b Batch) String() string {
	parts := make([]string, len(b))
	for i, op := range b {
		parts[i] = op.String()
	}
	return strings.Join(parts, " ")
}

// NewFlagSet returns a flag set with every command flag registered to o.
// Errors are returned, never printed.
func NewFlagSet(o *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet("bsptile", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	o.Register(fs)
	return fs
}

// Parse converts one command line into a Batch. It never mutates state.
func Parse(line string) (Batch, error) {
	if err := bsperrors.ValidateCommandLine(line); err != nil {
		return nil, err
	}

	var opts Options
	fs := NewFlagSet(&opts)

	tokens := normalize(fs, strings.Fields(line))
	if err := fs.Parse(tokens); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil, bsperrors.New(bsperrors.ErrCodeInvalidCommand, "unknown flag: help")
		}
		return nil, bsperrors.Wrap(bsperrors.ErrCodeInvalidCommand, err, "parse command")
	}
	if rest := fs.Args(); len(rest) > 0 {
		return nil, bsperrors.New(bsperrors.ErrCodeInvalidCommand, "unexpected argument %q", rest[0])
	}
	if n := countFlag(tokens, FlagReverse); n > 1 {
		return nil, bsperrors.New(bsperrors.ErrCodeInvalidCommand, "--%s given %d times, toggle at most once per command", FlagReverse, n)
	}

	return opts.Batch(fs)
}

// Apply parses line and commits the resulting batch to store. On any error
// the store keeps its previous configuration.
func Apply(store *config.Store, line string) (Batch, error) {
	b, err := Parse(line)
	if err != nil {
		return nil, err
	}
	if err := store.Apply(b...); err != nil {
		return nil, err
	}
	return b, nil
}

// countFlag reports how many of the normalized tokens set the long flag name.
func countFlag(tokens []string, name string) int {
	n := 0
	for _, tok := range tokens {
		flag, _, _ := strings.Cut(strings.TrimPrefix(tok, "--"), "=")
		if strings.HasPrefix(tok, "--") && flag == name {
			n++
		}
	}
	return n
}

// normalize prefixes bare long flag names with "--" so "outer-gap 5" and
// "--outer-gap 5" parse the same. Values written as name=value are kept
// together.
func normalize(fs *pflag.FlagSet, tokens []string) []string {
	out := make([]string, len(tokens))
	for i, tok := range tokens {
		out[i] = tok
		if strings.HasPrefix(tok, "-") {
			continue
		}
		name, _, _ := strings.Cut(tok, "=")
		if len(name) > 1 && fs.Lookup(name) != nil {
			out[i] = "--" + tok
		}
	}
	return out
}
