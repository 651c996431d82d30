// Package pipeline fans a corpus out across a bounded worker pool to build
// one sketch per document, then serializes the resulting inserts through a
// single goroutine so internal/lshindex never sees concurrent mutation
// (spec §5's "insert is not safe to interleave with query" discipline).
package pipeline

import (
	"context"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/fluxfuzzer/lshkit/internal/analyzer"
	"github.com/fluxfuzzer/lshkit/internal/lshindex"
	"github.com/fluxfuzzer/lshkit/internal/shingle"
	"github.com/fluxfuzzer/lshkit/internal/sketch"
	"github.com/fluxfuzzer/lshkit/internal/wminhash"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Document is one corpus record to sketch and index.
type Document struct {
	Label   types.Label
	Content []byte
}

// Result is a built sketch's lanes, ready for internal/lshindex.Insert.
// SimHash and TLSH are populated only when the Builder was configured with
// WithAnalysis; they are cheap, independent fuzzy-hash cross-checks a
// caller can compare against the MinHash estimate for a surfaced pair
// without re-reading either document.
type Result struct {
	Label   types.Label
	Lanes   []uint64
	SimHash analyzer.SimHash
	TLSH    *analyzer.TLSHHash
	Err     error
}

// Builder builds MinHash sketches for a stream of documents across a
// bounded worker pool, using a shared sketch.Family so every lane vector
// is comparable.
type Builder struct {
	pool   *ants.Pool
	family *sketch.Family
	k      int
	dna    bool
	strict bool

	simHasher  *analyzer.SimHasher
	enableTLSH bool
}

// NewBuilder constructs a Builder with the given worker concurrency,
// sketch family, and text/DNA shingle length.
func NewBuilder(workers int, family *sketch.Family, k int, dna, strict bool) (*Builder, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}
	return &Builder{pool: pool, family: family, k: k, dna: dna, strict: strict}, nil
}

// Release stops the underlying worker pool. Call once after the last Run.
func (b *Builder) Release() {
	b.pool.Release()
}

// WithAnalysis turns on the internal/analyzer fuzzy-hash pre-filters
// alongside sketch building. When simHash is true every Result carries a
// SimHash; when tlsh is true every Result carries a TLSH digest (skip this
// for DNA corpora -- TLSH's sliding window assumes English-text-like byte
// entropy, not 2-bit-packed k-mers). Returns b for chaining onto NewBuilder.
func (b *Builder) WithAnalysis(simHash, tlsh bool) *Builder {
	if simHash {
		b.simHasher = analyzer.NewSimHasher()
	}
	b.enableTLSH = tlsh
	return b
}

// Run builds a sketch for every Document on docs, submitting each build to
// the pool, then drains completed Results into idx sequentially on a
// single goroutine -- the only goroutine ever allowed to call idx.Insert.
// Run blocks until docs is closed and every submitted build has completed
// or ctx is canceled.
func (b *Builder) Run(ctx context.Context, docs <-chan Document, idx *lshindex.Index) error {
	results := make(chan Result, cap(docs)+1)
	var wg sync.WaitGroup

	go func() {
		for doc := range docs {
			doc := doc
			wg.Add(1)
			submitErr := b.pool.Submit(func() {
				defer wg.Done()
				results <- b.build(doc)
			})
			if submitErr != nil {
				wg.Done()
				results <- Result{Label: doc.Label, Err: submitErr}
			}
			select {
			case <-ctx.Done():
				wg.Wait()
				close(results)
				return
			default:
			}
		}
		wg.Wait()
		close(results)
	}()

	var firstErr error
	for res := range results {
		if res.Err != nil {
			if firstErr == nil {
				firstErr = res.Err
			}
			continue
		}
		if err := idx.Insert(res.Lanes, res.Label); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// BuildAll builds a sketch for every Document on docs across the pool and
// returns every Result once docs is closed and all builds have completed,
// without touching any index. Callers that need the built lanes -- to
// score similarity against a query-then-insert's neighbors, say -- use
// this instead of Run.
func (b *Builder) BuildAll(ctx context.Context, docs <-chan Document) ([]Result, error) {
	results := make(chan Result, cap(docs)+1)
	var wg sync.WaitGroup

	go func() {
		for doc := range docs {
			doc := doc
			wg.Add(1)
			submitErr := b.pool.Submit(func() {
				defer wg.Done()
				results <- b.build(doc)
			})
			if submitErr != nil {
				wg.Done()
				results <- Result{Label: doc.Label, Err: submitErr}
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, cap(docs))
	var firstErr error
	for res := range results {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
		out = append(out, res)
	}
	return out, firstErr
}

// WeightedBuilder is Builder's counterpart for types.Absent weighting: it
// builds internal/wminhash sketches (element weights matter, not just
// membership) across the same bounded worker pool pattern, and exposes
// only BuildAll; it has no counterpart of Run that inserts into an index
// as builds complete.
type WeightedBuilder struct {
	pool   *ants.Pool
	family *wminhash.Family
	k      int
	dna    bool
	strict bool
}

// NewWeightedBuilder constructs a WeightedBuilder with the given worker
// concurrency, weighted-MinHash family, and text/DNA shingle length.
func NewWeightedBuilder(workers int, family *wminhash.Family, k int, dna, strict bool) (*WeightedBuilder, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers, ants.WithPreAlloc(true))
	if err != nil {
		return nil, err
	}
	return &WeightedBuilder{pool: pool, family: family, k: k, dna: dna, strict: strict}, nil
}

// Release stops the underlying worker pool. Call once after the last BuildAll.
func (b *WeightedBuilder) Release() {
	b.pool.Release()
}

// BuildAll mirrors Builder.BuildAll: build every Document on docs across
// the pool, returning every Result once docs is closed and all builds have
// completed.
func (b *WeightedBuilder) BuildAll(ctx context.Context, docs <-chan Document) ([]Result, error) {
	results := make(chan Result, cap(docs)+1)
	var wg sync.WaitGroup

	go func() {
		for doc := range docs {
			doc := doc
			wg.Add(1)
			submitErr := b.pool.Submit(func() {
				defer wg.Done()
				results <- b.build(doc)
			})
			if submitErr != nil {
				wg.Done()
				results <- Result{Label: doc.Label, Err: submitErr}
			}
			select {
			case <-ctx.Done():
				return
			default:
			}
		}
		wg.Wait()
		close(results)
	}()

	out := make([]Result, 0, cap(docs))
	var firstErr error
	for res := range results {
		if res.Err != nil && firstErr == nil {
			firstErr = res.Err
		}
		out = append(out, res)
	}
	return out, firstErr
}

func (b *WeightedBuilder) build(doc Document) Result {
	s := b.family.NewSketch()

	if b.dna {
		set, err := shingle.DNA(doc.Content, b.k, b.strict)
		if err != nil {
			return Result{Label: doc.Label, Err: err}
		}
		if err := s.UpdateDNA(set.Weighted()); err != nil {
			return Result{Label: doc.Label, Err: err}
		}
	} else {
		set, err := shingle.Text(doc.Content, b.k)
		if err != nil {
			return Result{Label: doc.Label, Err: err}
		}
		weights := make(map[string]float64, len(set))
		for token, count := range set {
			weights[token] = float64(count)
		}
		if err := s.Update(weights); err != nil {
			return Result{Label: doc.Label, Err: err}
		}
	}

	return Result{Label: doc.Label, Lanes: s.Lanes()}
}

func (b *Builder) build(doc Document) Result {
	s := b.family.NewSketch()

	if b.dna {
		set, err := shingle.DNA(doc.Content, b.k, b.strict)
		if err != nil {
			return Result{Label: doc.Label, Err: err}
		}
		s.UpdateDNASet(set)
	} else {
		set, err := shingle.Text(doc.Content, b.k)
		if err != nil {
			return Result{Label: doc.Label, Err: err}
		}
		s.UpdateMultiset(set)
	}

	res := Result{Label: doc.Label, Lanes: s.Lanes()}
	if b.simHasher != nil {
		res.SimHash = b.simHasher.Compute(string(doc.Content))
	}
	if b.enableTLSH {
		if h, err := analyzer.ComputeTLSH(doc.Content); err == nil {
			res.TLSH = h
		}
	}
	return res
}
