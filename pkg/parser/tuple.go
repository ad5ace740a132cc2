package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// TupleSeparator splits the operation list of a thread line. A bare comma
// cannot be used since ", " also separates the two fields inside a tuple.
const TupleSeparator = "), "

// tuplePattern matches one restored tuple: optional kind word, then
// "(<latency>us, <memory>%)". Field contents are validated separately so
// the error can say which field is wrong.
var tuplePattern = regexp.MustCompile(`^(?:([A-Za-z_][\w-]*)\s*)?\(([^()]*?)us\s*,([^()%]*)%\)$`)

// splitTuples splits an operation list into tuples, giving each piece but
// the last its closing paren back. The final tuple keeps its own paren and
// may carry one trailing comma left behind by the benchmark's ", " suffix.
func splitTuples(list string) []string {
	pieces := strings.Split(list, TupleSeparator)
	for i := range pieces {
		p := strings.TrimSpace(pieces[i])
		if i < len(pieces)-1 {
			p += ")"
		} else {
			p = strings.TrimSuffix(p, ",")
		}
		pieces[i] = p
	}
	return pieces
}

// parseTuple parses a single restored tuple. lineNum and index are only
// used for error reporting.
func parseTuple(text string, lineNum, index int) (Operation, error) {
	m := tuplePattern.FindStringSubmatch(text)
	if m == nil {
		return Operation{}, &FormatError{
			Line:   lineNum,
			Tuple:  index,
			Text:   text,
			Reason: `expected "(<int>us, <float>%)"`,
		}
	}

	latText := strings.TrimSpace(m[2])
	latency, err := strconv.Atoi(latText)
	if err != nil {
		return Operation{}, &FormatError{
			Line:   lineNum,
			Tuple:  index,
			Text:   text,
			Reason: "invalid latency " + strconv.Quote(latText),
			Err:    err,
		}
	}
	if latency < 0 {
		return Operation{}, &FormatError{
			Line:   lineNum,
			Tuple:  index,
			Text:   text,
			Reason: "negative latency",
		}
	}

	memText := strings.TrimSpace(m[3])
	memory, err := strconv.ParseFloat(memText, 64)
	if err != nil {
		return Operation{}, &FormatError{
			Line:   lineNum,
			Tuple:  index,
			Text:   text,
			Reason: "invalid memory usage " + strconv.Quote(memText),
			Err:    err,
		}
	}
	if math.IsNaN(memory) || memory < 0 || memory > 100 {
		return Operation{}, &FormatError{
			Line:   lineNum,
			Tuple:  index,
			Text:   text,
			Reason: "memory usage out of range [0,100]",
		}
	}

	return Operation{
		Kind:      m[1],
		LatencyUS: latency,
		MemoryPct: memory,
	}, nil
}
