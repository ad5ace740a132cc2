package parser

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// maxLineSize bounds a single results line. Stress runs write every
// operation of a thread on one line, so lines get long.
const maxLineSize = 16 * 1024 * 1024

// Parse converts benchmark output lines into a ThreadedRun.
// Line 0 is the header. Lines starting with "thread" each become one
// ThreadRecord; any other line is ignored. Returns a *FormatError on
// malformed input.
func Parse(lines []string) (*ThreadedRun, error) {
	b := newBuilder("")
	for _, line := range lines {
		if err := b.add(line); err != nil {
			return nil, err
		}
	}
	return b.finish()
}

// ParseReader parses benchmark output from r. source is recorded on the
// run and used in error messages.
func ParseReader(ctx context.Context, r io.Reader, source string) (*ThreadedRun, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	b := newBuilder(source)
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if err := b.add(scanner.Text()); err != nil {
			return nil, err
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", source, err)
	}

	return b.finish()
}

// ParseFile opens and parses a benchmark results file.
func ParseFile(ctx context.Context, path string) (*ThreadedRun, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided paths are expected
	if err != nil {
		return nil, fmt.Errorf("opening results file %s: %w", path, err)
	}
	defer f.Close()

	return ParseReader(ctx, f, path)
}

// builder accumulates a run one line at a time.
type builder struct {
	run     *ThreadedRun
	lineNum int
}

func newBuilder(source string) *builder {
	return &builder{run: &ThreadedRun{Source: source}}
}

func (b *builder) add(raw string) error {
	b.lineNum++
	line := strings.TrimRight(raw, " \t\r\n")

	// The header is metadata only, even if it happens to start with "thread".
	if b.lineNum == 1 {
		b.run.Title = strings.TrimSpace(line)
		return nil
	}

	if !strings.HasPrefix(line, ThreadPrefix) {
		return nil
	}

	record, err := parseThreadLine(line, b.lineNum)
	if err != nil {
		return err
	}
	b.run.Threads = append(b.run.Threads, record)
	return nil
}

func (b *builder) finish() (*ThreadedRun, error) {
	if b.lineNum == 0 {
		return nil, &FormatError{Reason: "no benchmark header"}
	}
	if len(b.run.Threads) == 0 {
		return nil, &FormatError{Reason: "no thread records"}
	}
	return b.run, nil
}

func parseThreadLine(line string, lineNum int) (ThreadRecord, error) {
	colon := strings.Index(line, ":")
	if colon < 0 {
		return ThreadRecord{}, &FormatError{
			Line:   lineNum,
			Text:   line,
			Reason: "thread line has no ':'",
		}
	}

	record := ThreadRecord{
		Label:   strings.TrimSpace(line[len(ThreadPrefix):colon]),
		LineNum: lineNum,
	}

	list := strings.TrimSpace(line[colon+1:])
	if list == "" {
		return ThreadRecord{}, &FormatError{
			Line:   lineNum,
			Text:   line,
			Reason: "thread line has no operations",
		}
	}

	tuples := splitTuples(list)
	record.Operations = make([]Operation, 0, len(tuples))
	for i, text := range tuples {
		op, err := parseTuple(text, lineNum, i+1)
		if err != nil {
			return ThreadRecord{}, err
		}
		record.Operations = append(record.Operations, op)
	}

	return record, nil
}
