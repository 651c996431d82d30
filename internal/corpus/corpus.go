// Package corpus streams text, FASTA, and FASTQ records from disk without
// materializing a whole corpus in memory, optionally throttled to a target
// ingestion rate (spec §6's "input text files" / "input FASTQ files").
package corpus

import (
	"bufio"
	"context"
	"io"
	"os"
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
)

// Format selects how Reader interprets a file's lines.
type Format int

const (
	// Text is line-oriented UTF-8, one document per line.
	Text Format = iota
	// FASTA is header-lines ('>') followed by one or more sequence lines;
	// consecutive sequence lines concatenate into a single record.
	FASTA
	// FASTQ is four lines per record; only the sequence line (index 1 mod
	// 4) is retained.
	FASTQ
)

// Record is one streamed document: an identifier (best-effort, derived
// from a FASTA/FASTQ header, a JSON "id" field, or a line number) and its
// content bytes.
type Record struct {
	ID      string
	Content []byte
}

// Reader streams Records from a single source, optionally rate-limited.
type Reader struct {
	scanner *bufio.Scanner
	format  Format
	limiter *rate.Limiter
	lineNo  int

	// pendingHeader holds a FASTA header line already consumed from the
	// scanner while accumulating the previous record's body, since a
	// header only terminates a record in retrospect.
	pendingHeader string
}

// NewReader wraps r as a streaming corpus reader. ratePerSec <= 0 disables
// throttling (spec §5's "no back-pressure" is the default; throttling is
// an opt-in ingestion control, not a core requirement).
func NewReader(r io.Reader, format Format, ratePerSec float64) *Reader {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var limiter *rate.Limiter
	if ratePerSec > 0 {
		limiter = rate.NewLimiter(rate.Limit(ratePerSec), 1)
	}
	return &Reader{scanner: scanner, format: format, limiter: limiter}
}

// Open opens path and returns a streaming Reader for it, inferring no
// format from the extension -- callers pass the intended Format
// explicitly since corpora are frequently extension-less.
func Open(path string, format Format, ratePerSec float64) (*Reader, func() error, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return NewReader(f, format, ratePerSec), f.Close, nil
}

// Next returns the next record, or io.EOF when the source is exhausted.
func (r *Reader) Next(ctx context.Context) (Record, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return Record{}, err
		}
	}

	switch r.format {
	case Text:
		return r.nextText()
	case FASTA:
		return r.nextFASTA()
	case FASTQ:
		return r.nextFASTQ()
	default:
		return Record{}, lsherr.New(lsherr.InvalidConfiguration, "unknown corpus format %d", r.format)
	}
}

func (r *Reader) nextText() (Record, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return Record{}, err
		}
		return Record{}, io.EOF
	}
	r.lineNo++
	line := strings.TrimRight(r.scanner.Text(), "\r\n")
	return parseTextLine(line, r.lineNo), nil
}

// parseTextLine treats a line beginning with '{' as a JSON-embedded record
// rather than raw content, pulling out its "content" field (and "id" if
// present) with gjson instead of a full json.Unmarshal, since everything
// else in the object is irrelevant to shingling. Lines that aren't a JSON
// object, or that are but have no "content" field, are treated as plain
// text.
func parseTextLine(line string, lineNo int) Record {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "{") && gjson.Valid(trimmed) {
		if content := gjson.Get(trimmed, "content"); content.Exists() {
			id := lineID(lineNo)
			if idField := gjson.Get(trimmed, "id"); idField.Exists() {
				id = idField.String()
			}
			return Record{ID: id, Content: []byte(content.String())}
		}
	}
	return Record{ID: lineID(lineNo), Content: []byte(line)}
}

func (r *Reader) nextFASTA() (Record, error) {
	var id string
	var body strings.Builder
	haveHeader := false

	if r.pendingHeader != "" {
		id = strings.TrimPrefix(r.pendingHeader, ">")
		r.pendingHeader = ""
		haveHeader = true
	}

	for r.scanner.Scan() {
		r.lineNo++
		line := strings.TrimRight(r.scanner.Text(), "\r\n")
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, ">") {
			if haveHeader {
				r.pendingHeader = line
				return Record{ID: id, Content: []byte(body.String())}, nil
			}
			id = strings.TrimPrefix(line, ">")
			haveHeader = true
			continue
		}
		body.WriteString(line)
	}

	if err := r.scanner.Err(); err != nil {
		return Record{}, err
	}
	if !haveHeader {
		return Record{}, io.EOF
	}
	return Record{ID: id, Content: []byte(body.String())}, nil
}

func (r *Reader) nextFASTQ() (Record, error) {
	var lines [4]string
	for i := 0; i < 4; i++ {
		if !r.scanner.Scan() {
			if err := r.scanner.Err(); err != nil {
				return Record{}, err
			}
			if i == 0 {
				return Record{}, io.EOF
			}
			return Record{}, lsherr.New(lsherr.MalformedInput, "fastq record truncated at line %d of 4", i+1)
		}
		r.lineNo++
		lines[i] = strings.TrimRight(r.scanner.Text(), "\r\n")
	}

	id := strings.TrimPrefix(lines[0], "@")
	return Record{ID: id, Content: []byte(lines[1])}, nil
}

func lineID(n int) string {
	return "line:" + itoa(n)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}
