package trace

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/OneOfOne/xxhash"
	"github.com/pierrec/lz4/v3"
	"github.com/tinylib/msgp/msgp"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
	"github.com/nagacharan-tangirala/disolv/sim"
)

// mobilityRow and linkRow are the on-disk row shapes; trace shards never
// hold a mix of the two. A shard file's layout is:
//
//	[4-byte footer length][msgpack footer][lz4-compressed msgpack row array]
//
// The footer carries row-group statistics (min/max time_step, row count)
// so that Stream can prune whole shards without decompressing them, per
// spec.md §4.2's "row-group pruning uses min/max statistics" contract.
type (
	mobilityRow struct {
		TimeStep uint64
		AgentID  uint64
		X, Y     float64
		HasZ     bool
		Z        float64
		HasVel   bool
		Vel      float64
		HasRoad  bool
		RoadID   uint64
	}
	linkRow struct {
		TimeStep   uint64
		AgentID    uint64
		TargetID   uint64
		HasDist    bool
		Distance   float64
		HasLoad    bool
		LoadFactor float64
	}

	footer struct {
		MinTime  uint64
		MaxTime  uint64
		RowCount uint32
		Checksum uint64
	}
)

func (f footer) overlaps(lo, hi sim.T) bool {
	return uint64(lo) <= f.MaxTime && f.MinTime < uint64(hi)
}

func writeFooter(w io.Writer, f footer) error {
	mw := msgp.NewWriter(w)
	if err := mw.WriteMapHeader(4); err != nil {
		return err
	}
	for _, kv := range []struct {
		k string
		v uint64
	}{{"min", f.MinTime}, {"max", f.MaxTime}, {"n", uint64(f.RowCount)}, {"cksum", f.Checksum}} {
		if err := mw.WriteString(kv.k); err != nil {
			return err
		}
		if err := mw.WriteUint64(kv.v); err != nil {
			return err
		}
	}
	return mw.Flush()
}

func readFooter(r io.Reader) (footer, error) {
	mr := msgp.NewReader(r)
	n, err := mr.ReadMapHeader()
	if err != nil {
		return footer{}, err
	}
	var f footer
	for i := uint32(0); i < n; i++ {
		key, err := mr.ReadString()
		if err != nil {
			return footer{}, err
		}
		val, err := mr.ReadUint64()
		if err != nil {
			return footer{}, err
		}
		switch key {
		case "min":
			f.MinTime = val
		case "max":
			f.MaxTime = val
		case "n":
			f.RowCount = uint32(val)
		case "cksum":
			f.Checksum = val
		}
	}
	return f, nil
}

func writeMobilityRows(w io.Writer, rows []mobilityRow) error {
	mw := msgp.NewWriter(w)
	if err := mw.WriteArrayHeader(uint32(len(rows))); err != nil {
		return err
	}
	for _, r := range rows {
		if err := mw.WriteArrayHeader(10); err != nil {
			return err
		}
		fields := []any{r.TimeStep, r.AgentID, r.X, r.Y, r.HasZ, r.Z, r.HasVel, r.Vel, r.HasRoad, r.RoadID}
		for _, f := range fields {
			if err := writeAny(mw, f); err != nil {
				return err
			}
		}
	}
	return mw.Flush()
}

func writeAny(mw *msgp.Writer, v any) error {
	switch x := v.(type) {
	case uint64:
		return mw.WriteUint64(x)
	case float64:
		return mw.WriteFloat64(x)
	case bool:
		return mw.WriteBool(x)
	default:
		return fmt.Errorf("trace: unsupported field type %T", v)
	}
}

func readMobilityRows(r io.Reader) ([]mobilityRow, error) {
	mr := msgp.NewReader(r)
	n, err := mr.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	rows := make([]mobilityRow, 0, n)
	for i := uint32(0); i < n; i++ {
		if _, err := mr.ReadArrayHeader(); err != nil {
			return nil, err
		}
		var row mobilityRow
		if row.TimeStep, err = mr.ReadUint64(); err != nil {
			return nil, err
		}
		if row.AgentID, err = mr.ReadUint64(); err != nil {
			return nil, err
		}
		if row.X, err = mr.ReadFloat64(); err != nil {
			return nil, err
		}
		if row.Y, err = mr.ReadFloat64(); err != nil {
			return nil, err
		}
		if row.HasZ, err = mr.ReadBool(); err != nil {
			return nil, err
		}
		if row.Z, err = mr.ReadFloat64(); err != nil {
			return nil, err
		}
		if row.HasVel, err = mr.ReadBool(); err != nil {
			return nil, err
		}
		if row.Vel, err = mr.ReadFloat64(); err != nil {
			return nil, err
		}
		if row.HasRoad, err = mr.ReadBool(); err != nil {
			return nil, err
		}
		if row.RoadID, err = mr.ReadUint64(); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// writeMobilityShard compresses rows with lz4, computes the footer (min/max time,
// row count, xxhash checksum of the compressed block), and writes the
// framed shard to path.
func writeMobilityShard(path string, rows []mobilityRow) error {
	var raw bytes.Buffer
	if err := writeMobilityRows(&raw, rows); err != nil {
		return cos.NewTraceIOError(path, err)
	}
	var compressed bytes.Buffer
	zw := lz4.NewWriter(&compressed)
	if _, err := zw.Write(raw.Bytes()); err != nil {
		return cos.NewTraceIOError(path, err)
	}
	if err := zw.Close(); err != nil {
		return cos.NewTraceIOError(path, err)
	}

	f := footer{RowCount: uint32(len(rows)), Checksum: xxhash.Checksum64(compressed.Bytes())}
	if len(rows) > 0 {
		f.MinTime, f.MaxTime = rows[0].TimeStep, rows[0].TimeStep
		for _, r := range rows {
			if r.TimeStep < f.MinTime {
				f.MinTime = r.TimeStep
			}
			if r.TimeStep > f.MaxTime {
				f.MaxTime = r.TimeStep
			}
		}
	}

	var footerBuf bytes.Buffer
	if err := writeFooter(&footerBuf, f); err != nil {
		return cos.NewTraceIOError(path, err)
	}

	out, err := os.Create(path)
	if err != nil {
		return cos.NewTraceIOError(path, err)
	}
	defer out.Close()

	var lenBuf [4]byte
	binary.BigEndian.PutUint32(lenBuf[:], uint32(footerBuf.Len()))
	if _, err := out.Write(lenBuf[:]); err != nil {
		return cos.NewTraceIOError(path, err)
	}
	if _, err := out.Write(footerBuf.Bytes()); err != nil {
		return cos.NewTraceIOError(path, err)
	}
	if _, err := out.Write(compressed.Bytes()); err != nil {
		return cos.NewTraceIOError(path, err)
	}
	return nil
}

// readMobilityShardFooter reads just the length-prefixed footer, without
// decompressing the row block — the min/max pruning fast path.
func readMobilityShardFooter(path string) (footer, error) {
	f, err := os.Open(path)
	if err != nil {
		return footer{}, cos.NewTraceIOError(path, err)
	}
	defer f.Close()

	var lenBuf [4]byte
	if _, err := io.ReadFull(f, lenBuf[:]); err != nil {
		return footer{}, cos.NewTraceIOError(path, err)
	}
	flen := binary.BigEndian.Uint32(lenBuf[:])
	return readFooter(io.LimitReader(f, int64(flen)))
}

func readMobilityShard(path string) ([]mobilityRow, footer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, footer{}, cos.NewTraceIOError(path, err)
	}
	defer f.Close()

	var lenBuf [4]byte
	if _, err := io.ReadFull(f, lenBuf[:]); err != nil {
		return nil, footer{}, cos.NewTraceIOError(path, err)
	}
	flen := binary.BigEndian.Uint32(lenBuf[:])
	ft, err := readFooter(io.LimitReader(f, int64(flen)))
	if err != nil {
		return nil, footer{}, cos.NewTraceIOError(path, err)
	}
	zr := lz4.NewReader(f)
	rows, err := readMobilityRows(zr)
	if err != nil {
		return nil, footer{}, cos.NewTraceIOError(path, err)
	}
	return rows, ft, nil
}
