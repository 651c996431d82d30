package corpus

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
)

func TestReader_Text(t *testing.T) {
	r := NewReader(strings.NewReader("first line\nsecond line\n"), Text, 0)
	ctx := context.Background()

	rec1, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(rec1.Content) != "first line" {
		t.Errorf("got %q, want %q", rec1.Content, "first line")
	}

	rec2, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(rec2.Content) != "second line" {
		t.Errorf("got %q, want %q", rec2.Content, "second line")
	}

	if _, err := r.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF after last line, got %v", err)
	}
}

func TestReader_Text_JSONEmbeddedRecord(t *testing.T) {
	input := `{"id":"doc-7","content":"hello world"}` + "\n" + "plain line\n"
	r := NewReader(strings.NewReader(input), Text, 0)
	ctx := context.Background()

	rec1, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec1.ID != "doc-7" || string(rec1.Content) != "hello world" {
		t.Errorf("got %+v, want id=doc-7 content=%q", rec1, "hello world")
	}

	rec2, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(rec2.Content) != "plain line" {
		t.Errorf("got %q, want %q", rec2.Content, "plain line")
	}
}

func TestReader_Text_JSONWithoutContentFieldIsPlainText(t *testing.T) {
	line := `{"foo":"bar"}`
	r := NewReader(strings.NewReader(line+"\n"), Text, 0)
	ctx := context.Background()

	rec, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if string(rec.Content) != line {
		t.Errorf("got %q, want raw line %q", rec.Content, line)
	}
}

func TestReader_FASTA_MultiLineRecords(t *testing.T) {
	input := ">seq1\nACGT\nACGT\n>seq2\nTTTT\n"
	r := NewReader(strings.NewReader(input), FASTA, 0)
	ctx := context.Background()

	rec1, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec1.ID != "seq1" || string(rec1.Content) != "ACGTACGT" {
		t.Errorf("rec1 = %+v, want id=seq1 content=ACGTACGT", rec1)
	}

	rec2, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec2.ID != "seq2" || string(rec2.Content) != "TTTT" {
		t.Errorf("rec2 = %+v, want id=seq2 content=TTTT", rec2)
	}

	if _, err := r.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReader_FASTQ_RetainsSequenceLine(t *testing.T) {
	input := "@read1\nACGTACGT\n+\nIIIIIIII\n"
	r := NewReader(strings.NewReader(input), FASTQ, 0)
	ctx := context.Background()

	rec, err := r.Next(ctx)
	if err != nil {
		t.Fatalf("Next: %v", err)
	}
	if rec.ID != "read1" || string(rec.Content) != "ACGTACGT" {
		t.Errorf("rec = %+v, want id=read1 content=ACGTACGT", rec)
	}

	if _, err := r.Next(ctx); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestReader_FASTQ_TruncatedRecord(t *testing.T) {
	input := "@read1\nACGT\n+\n" // missing quality line
	r := NewReader(strings.NewReader(input), FASTQ, 0)

	_, err := r.Next(context.Background())
	if !lsherr.Of(err, lsherr.MalformedInput) {
		t.Errorf("expected MalformedInput for a truncated fastq record, got %v", err)
	}
}
