package trace

import (
	"bytes"
	"encoding/binary"
	"io"
	"os"

	"github.com/OneOfOne/xxhash"
	"github.com/pierrec/lz4/v3"
	"github.com/tinylib/msgp/msgp"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
)

func writeLinkRows(w io.Writer, rows []linkRow) error {
	mw := msgp.NewWriter(w)
	if err := mw.WriteArrayHeader(uint32(len(rows))); err != nil {
		return err
	}
	for _, r := range rows {
		if err := mw.WriteArrayHeader(7); err != nil {
			return err
		}
		if err := mw.WriteUint64(r.TimeStep); err != nil {
			return err
		}
		if err := mw.WriteUint64(r.AgentID); err != nil {
			return err
		}
		if err := mw.WriteUint64(r.TargetID); err != nil {
			return err
		}
		if err := mw.WriteBool(r.HasDist); err != nil {
			return err
		}
		if err := mw.WriteFloat64(r.Distance); err != nil {
			return err
		}
		if err := mw.WriteBool(r.HasLoad); err != nil {
			return err
		}
		if err := mw.WriteFloat64(r.LoadFactor); err != nil {
			return err
		}
	}
	return mw.Flush()
}

func readLinkRows(r io.Reader) ([]linkRow, error) {
	mr := msgp.NewReader(r)
	n, err := mr.ReadArrayHeader()
	if err != nil {
		return nil, err
	}
	rows := make([]linkRow, 0, n)
	for i := uint32(0); i < n; i++ {
		if _, err := mr.ReadArrayHeader(); err != nil {
			return nil, err
		}
		var row linkRow
		if row.TimeStep, err = mr.ReadUint64(); err != nil {
			return nil, err
		}
		if row.AgentID, err = mr.ReadUint64(); err != nil {
			return nil, err
		}
		if row.TargetID, err = mr.ReadUint64(); err != nil {
			return nil, err
		}
		if row.HasDist, err = mr.ReadBool(); err != nil {
			return nil, err
		}
		if row.Distance, err = mr.ReadFloat64(); err != nil {
			return nil, err
		}
		if row.HasLoad, err = mr.ReadBool(); err != nil {
			return nil, err
		}
		if row.LoadFactor, err = mr.ReadFloat64(); err != nil {
			return nil, err
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func writeLinkShard(path string, rows []linkRow) error {
	var raw bytes.Buffer
	if err := writeLinkRows(&raw, rows); err != nil {
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

func readLinkShardFooter(path string) (footer, error) {
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

func readLinkShard(path string) ([]linkRow, footer, error) {
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
	rows, err := readLinkRows(zr)
	if err != nil {
		return nil, footer{}, cos.NewTraceIOError(path, err)
	}
	return rows, ft, nil
}
