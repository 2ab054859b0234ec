package git

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ProgressKind identifies the raw progress event variant.
type ProgressKind int

const (
	// ProgressPacking is emitted while git builds the pack to send.
	ProgressPacking ProgressKind = iota
	// ProgressTransfer is emitted while objects are written to the remote.
	ProgressTransfer
)

// PackStage identifies the pack-building sub-stage.
type PackStage int

const (
	// StageAddingObjects covers object enumeration and counting.
	StageAddingObjects PackStage = iota
	// StageBuildingDeltas covers delta compression.
	StageBuildingDeltas
)

// ProgressEvent is a raw progress value parsed from git's stderr during
// a push. Kind selects the variant; Stage is meaningful only for
// ProgressPacking, Bytes only for ProgressTransfer.
type ProgressEvent struct {
	Kind    ProgressKind
	Stage   PackStage
	Current int
	Total   int
	Bytes   int64
}

// String returns a compact representation for logging.
func (e ProgressEvent) String() string {
	switch e.Kind {
	case ProgressPacking:
		stage := "adding-objects"
		if e.Stage == StageBuildingDeltas {
			stage = "building-deltas"
		}
		return fmt.Sprintf("packing[%s] %d/%d", stage, e.Current, e.Total)
	case ProgressTransfer:
		return fmt.Sprintf("transfer %d/%d (%d bytes)", e.Current, e.Total, e.Bytes)
	default:
		return fmt.Sprintf("progress %d/%d", e.Current, e.Total)
	}
}

// parseProgressLine parses a single stderr line from git push --progress.
// It returns false for lines that carry no counter pair, such as
// "Enumerating objects: 5, done." or "remote: ..." trailers.
//
// Recognized forms:
//
//	Counting objects:  20% (1/5)
//	Compressing objects: 100% (3/3), done.
//	Writing objects:  50% (2/4), 1.21 MiB | 1.20 MiB/s
func parseProgressLine(line string) (ProgressEvent, bool) {
	line = strings.TrimSpace(line)

	var ev ProgressEvent
	switch {
	case strings.HasPrefix(line, "Counting objects:"):
		ev = ProgressEvent{Kind: ProgressPacking, Stage: StageAddingObjects}
	case strings.HasPrefix(line, "Compressing objects:"):
		ev = ProgressEvent{Kind: ProgressPacking, Stage: StageBuildingDeltas}
	case strings.HasPrefix(line, "Writing objects:"):
		ev = ProgressEvent{Kind: ProgressTransfer}
	default:
		return ProgressEvent{}, false
	}

	current, total, rest, ok := parseCounterPair(line)
	if !ok {
		return ProgressEvent{}, false
	}
	ev.Current = current
	ev.Total = total

	if ev.Kind == ProgressTransfer {
		ev.Bytes = parseByteSize(rest)
	}

	return ev, true
}

// parseCounterPair extracts the "(current/total)" pair and returns the
// remainder of the line after the closing parenthesis.
func parseCounterPair(line string) (current, total int, rest string, ok bool) {
	open := strings.IndexByte(line, '(')
	if open < 0 {
		return 0, 0, "", false
	}
	closing := strings.IndexByte(line[open:], ')')
	if closing < 0 {
		return 0, 0, "", false
	}
	closing += open

	pair := line[open+1 : closing]
	slash := strings.IndexByte(pair, '/')
	if slash < 0 {
		return 0, 0, "", false
	}

	current, err := strconv.Atoi(strings.TrimSpace(pair[:slash]))
	if err != nil {
		return 0, 0, "", false
	}
	total, err = strconv.Atoi(strings.TrimSpace(pair[slash+1:]))
	if err != nil {
		return 0, 0, "", false
	}

	return current, total, line[closing+1:], true
}

// parseByteSize extracts a transferred-size value like "1.21 MiB" from
// the tail of a Writing objects line. Returns 0 when absent.
func parseByteSize(rest string) int64 {
	rest = strings.TrimLeft(rest, ", ")
	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return 0
	}

	value, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0
	}

	var unit float64
	switch fields[1] {
	case "bytes", "B":
		unit = 1
	case "KiB":
		unit = 1024
	case "MiB":
		unit = 1024 * 1024
	case "GiB":
		unit = 1024 * 1024 * 1024
	default:
		return 0
	}

	return int64(value * unit)
}

// scanProgressLines is a bufio.SplitFunc that treats both \n and \r as
// line terminators. git rewrites in-place progress updates with \r, so a
// plain line scanner would only see the final state of each phase.
func scanProgressLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}

	if i := bytes.IndexAny(data, "\r\n"); i >= 0 {
		return i + 1, data[:i], nil
	}

	if atEOF {
		return len(data), data, nil
	}

	return 0, nil, nil
}

// newProgressScanner wraps a reader so each token is one progress update.
func newProgressScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Split(scanProgressLines)
	return scanner
}
