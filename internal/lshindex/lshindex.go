// Package lshindex implements the banded LSH index (spec component H): b
// independent hash maps over row-slice digests, supporting insert, query,
// and an all-or-nothing query-then-insert.
package lshindex

import (
	"bufio"
	"encoding/gob"
	"os"

	"github.com/fluxfuzzer/lshkit/internal/hashutil"
	"github.com/fluxfuzzer/lshkit/internal/lshparam"
	"github.com/fluxfuzzer/lshkit/internal/lsherr"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// Index is b band maps of band-key -> label list, each band owning rows
// [i*r, (i+1)*r) of every inserted sketch (spec §3's "LSH index state").
//
// An Index is not safe for concurrent use: Insert and QueryThenInsert must
// not run alongside Query or each other. Concurrent Query calls against an
// index that nobody is mutating are safe. Callers provide the locking.
type Index struct {
	Bands int
	Rows  int
	N     int

	tables []map[uint64][]types.Label
	seen   map[types.Label]struct{} // optional dedup set
	dedup  bool
}

// New constructs an empty index over sketches of length n, with the given
// band configuration. b*r must not exceed n.
func New(n int, params lshparam.Params, dedup bool) (*Index, error) {
	if _, err := lshparam.Validate(params.Bands, params.Rows, n); err != nil {
		return nil, err
	}

	tables := make([]map[uint64][]types.Label, params.Bands)
	for i := range tables {
		tables[i] = make(map[uint64][]types.Label)
	}

	idx := &Index{
		Bands:  params.Bands,
		Rows:   params.Rows,
		N:      n,
		tables: tables,
		dedup:  dedup,
	}
	if dedup {
		idx.seen = make(map[types.Label]struct{})
	}
	return idx, nil
}

// bandKeys computes the b band-level digests of a sketch's lanes (spec
// §4.H's "key_i = hash(s[i*r .. (i+1)*r])").
func (idx *Index) bandKeys(lanes []uint64) ([]uint64, error) {
	if len(lanes) != idx.N {
		return nil, lsherr.New(lsherr.FamilyMismatch,
			"sketch has %d lanes, index expects %d", len(lanes), idx.N)
	}
	keys := make([]uint64, idx.Bands)
	for i := 0; i < idx.Bands; i++ {
		start := i * idx.Rows
		end := start + idx.Rows
		keys[i] = hashutil.LaneSlice(lanes[start:end])
	}
	return keys, nil
}

// Insert adds label under every band's bucket for sketch's lanes. Per the
// all-or-nothing invariant (spec §8), a rejected dedup insert (the label
// was already present) leaves every band untouched.
func (idx *Index) Insert(lanes []uint64, label types.Label) error {
	keys, err := idx.bandKeys(lanes)
	if err != nil {
		return err
	}

	if idx.dedup {
		if _, already := idx.seen[label]; already {
			return nil
		}
	}

	idx.commit(keys, label)
	return nil
}

func (idx *Index) commit(keys []uint64, label types.Label) {
	for i, key := range keys {
		idx.tables[i][key] = append(idx.tables[i][key], label)
	}
	if idx.dedup {
		idx.seen[label] = struct{}{}
	}
}

// Query returns the set of labels sharing at least one band key with
// sketch's lanes (spec §4.H's "union over matching buckets").
func (idx *Index) Query(lanes []uint64) ([]types.Label, error) {
	keys, err := idx.bandKeys(lanes)
	if err != nil {
		return nil, err
	}
	return idx.union(keys, nil), nil
}

// QueryThenInsert computes the union as Query would, excluding label
// itself, then inserts label. The returned set therefore never contains
// label itself (spec §4.H), regardless of whether label was already
// present in a band from an earlier insert.
func (idx *Index) QueryThenInsert(lanes []uint64, label types.Label) ([]types.Label, error) {
	keys, err := idx.bandKeys(lanes)
	if err != nil {
		return nil, err
	}

	result := idx.union(keys, map[types.Label]struct{}{label: {}})

	if idx.dedup {
		if _, already := idx.seen[label]; already {
			return result, nil
		}
	}
	idx.commit(keys, label)
	return result, nil
}

func (idx *Index) union(keys []uint64, exclude map[types.Label]struct{}) []types.Label {
	seen := make(map[types.Label]struct{})
	var out []types.Label
	for i, key := range keys {
		for _, label := range idx.tables[i][key] {
			if exclude != nil {
				if _, skip := exclude[label]; skip {
					continue
				}
			}
			if _, dup := seen[label]; dup {
				continue
			}
			seen[label] = struct{}{}
			out = append(out, label)
		}
	}
	return out
}

// snapshot is the gob-serializable form of an Index, used for Save/Load.
type snapshot struct {
	Bands  int
	Rows   int
	N      int
	Dedup  bool
	Tables []map[uint64][]types.Label
	Seen   map[types.Label]struct{}
}

// Save persists the index to path via gob encoding.
func (idx *Index) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	snap := snapshot{
		Bands:  idx.Bands,
		Rows:   idx.Rows,
		N:      idx.N,
		Dedup:  idx.dedup,
		Tables: idx.tables,
		Seen:   idx.seen,
	}
	if err := gob.NewEncoder(w).Encode(&snap); err != nil {
		return err
	}
	return w.Flush()
}

// Load restores an index previously written by Save.
func Load(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var snap snapshot
	if err := gob.NewDecoder(bufio.NewReader(f)).Decode(&snap); err != nil {
		return nil, err
	}

	return &Index{
		Bands:  snap.Bands,
		Rows:   snap.Rows,
		N:      snap.N,
		tables: snap.Tables,
		seen:   snap.Seen,
		dedup:  snap.Dedup,
	}, nil
}
