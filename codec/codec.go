// Package codec reads and writes statement graphs as N-Quads through cayleygraph/quad.
package codec

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cayleygraph/quad/nquads"
	"github.com/google/uuid"

	"github.com/c360/ontograph/errors"
	"github.com/c360/ontograph/graph"
)

// BlankPolicy decides what happens to blank node labels read from a document
type BlankPolicy string

const (
	// KeepLabels keeps the document's labels. Loading the same document twice yields the
	// same identities.
	KeepLabels BlankPolicy = "keep"

	// FreshLabels replaces every label with a new random one, consistently within the
	// document. Use it when merging documents whose labels may clash.
	FreshLabels BlankPolicy = "fresh"
)

// Validate checks the policy name
func (p BlankPolicy) Validate() error {
	switch p {
	case KeepLabels, FreshLabels:
		return nil
	}
	return errors.WrapInvalid(fmt.Errorf("%w: blank policy %q", errors.ErrInvalidConfig, p),
		"codec", "Validate", "blank policy check")
}

// ctxCheckInterval is how many statements are read between context checks
const ctxCheckInterval = 1024

type options struct {
	policy BlankPolicy
	logger *slog.Logger
}

// Option configures decoding
type Option func(*options)

// WithBlankPolicy sets the blank label policy; the default is KeepLabels
func WithBlankPolicy(p BlankPolicy) Option {
	return func(o *options) {
		if p != "" {
			o.policy = p
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Decode reads an N-Quads (or N-Triples) document. Graph labels are dropped: every
// statement lands in the one graph being loaded.
func Decode(ctx context.Context, r io.Reader, opts ...Option) ([]graph.Statement, error) {
	o := options{policy: KeepLabels, logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	if err := o.policy.Validate(); err != nil {
		return nil, err
	}

	reader := nquads.NewReader(r, true)
	defer reader.Close()

	relabel := newRelabeler(o.policy)
	var out []graph.Statement
	labelled := 0

	for {
		if len(out)%ctxCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return nil, errors.WrapTransient(err, "codec", "Decode", "context check")
			}
		}

		q, err := reader.ReadQuad()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.WrapInvalid(fmt.Errorf("%w: %v", errors.ErrParsingFailed, err),
				"codec", "Decode", fmt.Sprintf("read statement %d", len(out)+1))
		}
		if q.Label != nil {
			labelled++
		}

		st, err := graph.FromQuad(q)
		if err != nil {
			return nil, errors.Wrap(err, "codec", "Decode", fmt.Sprintf("convert statement %d", len(out)+1))
		}
		st.Subject = relabel.term(st.Subject)
		st.Object = relabel.term(st.Object)
		out = append(out, st)
	}

	if labelled > 0 {
		o.logger.Debug("Dropped graph labels while decoding", "component", "codec", "statements", labelled)
	}
	return out, nil
}

// Encode writes statements as N-Quads in the default graph
func Encode(w io.Writer, statements []graph.Statement) error {
	writer := nquads.NewWriter(w)
	for _, st := range statements {
		if err := writer.WriteQuad(graph.ToQuad(st)); err != nil {
			return errors.WrapTransient(err, "codec", "Encode", "write statement")
		}
	}
	if err := writer.Close(); err != nil {
		return errors.WrapTransient(err, "codec", "Encode", "flush writer")
	}
	return nil
}

// FormatLine renders one statement as an N-Quads line without the trailing newline
func FormatLine(st graph.Statement) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, []graph.Statement{st}); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// ParseLine parses a single N-Quads line, keeping blank labels
func ParseLine(line string) (graph.Statement, error) {
	statements, err := Decode(context.Background(), strings.NewReader(line))
	if err != nil {
		return graph.Statement{}, err
	}
	if len(statements) != 1 {
		return graph.Statement{}, errors.WrapInvalid(
			fmt.Errorf("%w: expected one statement, got %d", errors.ErrParsingFailed, len(statements)),
			"codec", "ParseLine", "line parse")
	}
	return statements[0], nil
}

type relabeler struct {
	fresh  bool
	labels map[string]string
}

func newRelabeler(p BlankPolicy) *relabeler {
	return &relabeler{fresh: p == FreshLabels, labels: make(map[string]string)}
}

func (r *relabeler) term(t graph.Term) graph.Term {
	label, ok := t.BlankLabel()
	if !ok || !r.fresh {
		return t
	}
	mapped, seen := r.labels[label]
	if !seen {
		mapped = "u" + strings.ReplaceAll(uuid.NewString(), "-", "")
		r.labels[label] = mapped
	}
	return graph.Blank(mapped)
}
