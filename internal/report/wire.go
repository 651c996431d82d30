package report

import (
	"bufio"
	"encoding/binary"
	"io"

	"github.com/fluxfuzzer/lshkit/internal/lsherr"
	"github.com/fluxfuzzer/lshkit/pkg/types"
)

// WireGenerator emits the binary neighbor-record format from spec §4.I:
// one record per distinct query label, each
// [record_label uint16][neighbor_count uint16][neighbor_label uint16 x count],
// host little-endian. Core labels are 64-bit; WireGenerator narrows them to
// uint16 at the boundary, returning lsherr.ResourceExhausted if a label or
// neighbor count would overflow.
type WireGenerator struct{}

// Generate writes report's pairs, grouped by query label, in wire format.
func (WireGenerator) Generate(report *Report, w io.Writer) error {
	grouped := make(map[types.Label][]types.Label)
	var order []types.Label
	for _, p := range report.Pairs {
		if _, ok := grouped[p.Query]; !ok {
			order = append(order, p.Query)
		}
		grouped[p.Query] = append(grouped[p.Query], p.Neighbor)
	}

	bw := bufio.NewWriter(w)
	var header [4]byte
	for _, label := range order {
		neighbors := grouped[label]
		if label > 0xFFFF {
			return lsherr.New(lsherr.ResourceExhausted, "record label %d does not fit in uint16", label)
		}
		if len(neighbors) > 0xFFFF {
			return lsherr.New(lsherr.ResourceExhausted, "neighbor count %d does not fit in uint16", len(neighbors))
		}

		binary.LittleEndian.PutUint16(header[0:2], uint16(label))
		binary.LittleEndian.PutUint16(header[2:4], uint16(len(neighbors)))
		if _, err := bw.Write(header[:]); err != nil {
			return err
		}

		var buf [2]byte
		for _, n := range neighbors {
			if n > 0xFFFF {
				return lsherr.New(lsherr.ResourceExhausted, "neighbor label %d does not fit in uint16", n)
			}
			binary.LittleEndian.PutUint16(buf[:], uint16(n))
			if _, err := bw.Write(buf[:]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// Extension returns the file extension for the binary wire format.
func (WireGenerator) Extension() string {
	return "bin"
}

// WireRecord is one decoded [label][neighbors] record.
type WireRecord struct {
	Label     types.Label
	Neighbors []types.Label
}

// ReadWire decodes a stream written by WireGenerator.
func ReadWire(r io.Reader) ([]WireRecord, error) {
	br := bufio.NewReader(r)
	var records []WireRecord

	for {
		var header [4]byte
		_, err := io.ReadFull(br, header[:])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, lsherr.Wrap(lsherr.MalformedInput, err, "truncated record header")
		}
		label := types.Label(binary.LittleEndian.Uint16(header[0:2]))
		count := binary.LittleEndian.Uint16(header[2:4])

		neighbors := make([]types.Label, count)
		var buf [2]byte
		for i := uint16(0); i < count; i++ {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return nil, lsherr.Wrap(lsherr.MalformedInput, err, "truncated neighbor list")
			}
			neighbors[i] = types.Label(binary.LittleEndian.Uint16(buf[:]))
		}
		records = append(records, WireRecord{Label: label, Neighbors: neighbors})
	}
	return records, nil
}
