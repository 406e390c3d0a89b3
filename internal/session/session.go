package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/rbkeys/pkg/observability"
	"github.com/Sumatoshi-tech/rbkeys/pkg/rbtree"
	"github.com/Sumatoshi-tech/rbkeys/pkg/render"
)

// Execution errors.
var (
	// ErrExit is returned by Execute for the exit command.
	ErrExit      = errors.New("exit requested")
	ErrInvariant = errors.New("tree invariant violated")
)

const (
	prompt      = "rbkeys> "
	emptyTree   = "(empty)"
	opParse     = "parse"
	spanPrefix  = "rbkeys."
	attrKeysLen = "keys.count"
)

// Options configure a Session. Zero values are usable: output is discarded,
// logging is off and telemetry is a no-op.
type Options struct {
	Output  io.Writer
	Logger  *slog.Logger
	Tracer  trace.Tracer
	Metrics *observability.REDMetrics

	// Format and Render control the print command.
	Format render.Format
	Render render.Options

	// Interactive writes the menu on start and a prompt before every line.
	Interactive bool
}

// Session owns one tree and executes commands against it.
type Session struct {
	tree        *rbtree.Tree
	out         io.Writer
	logger      *slog.Logger
	tracer      trace.Tracer
	metrics     *observability.REDMetrics
	format      render.Format
	renderOpts  render.Options
	interactive bool
	stats       map[Verb]*opStats

	okColor   *color.Color
	warnColor *color.Color
	errColor  *color.Color
}

type opStats struct {
	count int
	total time.Duration
}

// New creates a session over an empty tree.
func New(opts Options) *Session {
	sess := &Session{
		tree:        rbtree.New(),
		out:         opts.Output,
		logger:      opts.Logger,
		tracer:      opts.Tracer,
		metrics:     opts.Metrics,
		format:      opts.Format,
		renderOpts:  opts.Render,
		interactive: opts.Interactive,
		stats:       make(map[Verb]*opStats),
		okColor:     color.New(color.FgGreen),
		warnColor:   color.New(color.FgYellow),
		errColor:    color.New(color.FgRed, color.Bold),
	}

	if sess.out == nil {
		sess.out = io.Discard
	}

	if sess.logger == nil {
		sess.logger = slog.New(slog.DiscardHandler)
	}

	if sess.tracer == nil {
		sess.tracer = nooptrace.NewTracerProvider().Tracer("rbkeys")
	}

	if sess.format == "" {
		sess.format = render.FormatText
	}

	for _, c := range []*color.Color{sess.okColor, sess.warnColor, sess.errColor} {
		if opts.Render.Color {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return sess
}

// Tree returns the session's tree.
func (s *Session) Tree() *rbtree.Tree {
	return s.tree
}

// Execute runs one command. Key commands are timed per key; every other
// command is timed as a whole.
func (s *Session) Execute(ctx context.Context, cmd Command) error {
	if cmd.IsEmpty() {
		return nil
	}

	if cmd.Verb == VerbExit {
		return ErrExit
	}

	ctx, span := s.tracer.Start(ctx, spanPrefix+string(cmd.Verb),
		trace.WithAttributes(attribute.Int(attrKeysLen, len(cmd.Keys))))
	defer span.End()

	start := time.Now()
	err := s.dispatch(ctx, cmd)
	elapsed := time.Since(start)

	if len(cmd.Keys) == 0 {
		status := observability.StatusOK
		if err != nil {
			status = observability.StatusError
		}

		s.record(ctx, cmd.Verb, status, elapsed)
	}

	if s.metrics != nil {
		s.metrics.RecordTreeSize(ctx, s.tree.Len())
	}

	s.logger.DebugContext(ctx, "command executed",
		"op", cmd.Verb, "keys", len(cmd.Keys), "duration", elapsed, "size", s.tree.Len())

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		return err
	}

	return nil
}

func (s *Session) dispatch(ctx context.Context, cmd Command) error {
	switch cmd.Verb {
	case VerbInsert:
		s.applyKeys(ctx, cmd, s.tree.Insert, "inserted %d", "%d already present", observability.StatusNoop)
	case VerbRemove:
		s.applyKeys(ctx, cmd, s.tree.Remove, "removed %d", "%d not found", observability.StatusNotFound)
	case VerbSearch:
		s.applyKeys(ctx, cmd, s.tree.Contains, "%d found", "%d not found", observability.StatusNotFound)
	case VerbPrint:
		return s.print()
	case VerbKeys:
		s.writeKeys()
	case VerbVerify:
		err := s.tree.Verify()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvariant, err)
		}

		s.okColor.Fprintln(s.out, "ok")
	case VerbStats:
		s.writeStats()
	case VerbClear:
		released := s.tree.Teardown()
		fmt.Fprintf(s.out, "released %s nodes\n", humanize.Comma(int64(released)))
	case VerbHelp:
		s.writeMenu()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownCommand, cmd.Verb)
	}

	return nil
}

func (s *Session) applyKeys(
	ctx context.Context, cmd Command, apply func(int64) bool, hitFormat, missFormat, missStatus string,
) {
	for _, key := range cmd.Keys {
		start := time.Now()
		hit := apply(key)
		elapsed := time.Since(start)

		if hit {
			s.record(ctx, cmd.Verb, observability.StatusOK, elapsed)
			s.okColor.Fprintf(s.out, hitFormat+"\n", key)

			continue
		}

		s.record(ctx, cmd.Verb, missStatus, elapsed)
		s.warnColor.Fprintf(s.out, missFormat+"\n", key)
	}
}

func (s *Session) record(ctx context.Context, verb Verb, status string, elapsed time.Duration) {
	st, ok := s.stats[verb]
	if !ok {
		st = &opStats{}
		s.stats[verb] = st
	}

	st.count++
	st.total += elapsed

	if s.metrics != nil {
		s.metrics.RecordOperation(ctx, string(verb), status, elapsed)
	}
}

func (s *Session) print() error {
	records := s.tree.Traverse()

	if len(records) == 0 && s.format == render.FormatText {
		fmt.Fprintln(s.out, emptyTree)

		return nil
	}

	err := render.Write(s.out, s.format, records, s.renderOpts)
	if err != nil {
		return fmt.Errorf("print tree: %w", err)
	}

	return nil
}

func (s *Session) writeKeys() {
	if s.tree.Len() == 0 {
		fmt.Fprintln(s.out, emptyTree)

		return
	}

	parts := make([]string, 0, s.tree.Len())

	for key := range s.tree.Keys() {
		parts = append(parts, strconv.FormatInt(key, 10))
	}

	fmt.Fprintln(s.out, strings.Join(parts, " "))
}

// Run reads commands line by line until EOF, the exit command or context
// cancellation. Parse and execution errors are written to the output and the
// loop continues.
func (s *Session) Run(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)

	if s.interactive {
		s.writeMenu()
	}

	lineNo := 0

	for {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("session stopped: %w", err)
		}

		if s.interactive {
			fmt.Fprint(s.out, prompt)
		}

		if !scanner.Scan() {
			break
		}

		lineNo++

		cmd, err := ParseCommand(scanner.Text())
		if err != nil {
			if s.metrics != nil {
				s.metrics.RecordOperation(ctx, opParse, observability.StatusError, 0)
			}
		} else {
			err = s.Execute(ctx, cmd)
		}

		if errors.Is(err, ErrExit) {
			return nil
		}

		if err != nil {
			s.reportError(ctx, lineNo, err)
		}
	}

	err := scanner.Err()
	if err != nil {
		return fmt.Errorf("read commands: %w", err)
	}

	return nil
}

func (s *Session) reportError(ctx context.Context, lineNo int, err error) {
	s.logger.DebugContext(ctx, "command failed", "line", lineNo, "error", err)

	if s.interactive {
		s.errColor.Fprintf(s.out, "error: %v\n", err)

		return
	}

	s.errColor.Fprintf(s.out, "error: line %d: %v\n", lineNo, err)
}

// Close releases every node of the tree.
func (s *Session) Close() error {
	released := s.tree.Teardown()
	s.logger.Debug("session closed", "released", released)

	return nil
}
