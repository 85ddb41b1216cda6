package stats

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/tinylib/msgp/msgp"

	"github.com/nagacharan-tangirala/disolv/cmn/cos"
)

// FileType selects a result sink's on-disk encoding, per
// output_settings.file_type (spec.md §6).
type FileType uint8

const (
	FileTypeMsgpack FileType = iota
	FileTypeCSV
	FileTypeJSON
)

func ParseFileType(s string) (FileType, error) {
	switch s {
	case "msgpack", "mpk", "":
		return FileTypeMsgpack, nil
	case "csv":
		return FileTypeCSV, nil
	case "json":
		return FileTypeJSON, nil
	default:
		return 0, fmt.Errorf("stats: unknown file_type %q", s)
	}
}

var jsonAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// row is a single output row in both of the shapes a writer backend
// needs: ordered msgpack-encodable values, and their string form for
// CSV. Record* callers build one of these per row; there is no
// reflection-based row-to-wire conversion, matching the hand-written
// codec style the trace package already established.
type row struct {
	header []string
	fields []any
	csv    []string
}

// batchWriter accumulates rows and flushes a full batch — either to a
// framed msgpack array or to a CSV writer — at batchRows rows or on an
// explicit Flush, per spec.md §6's output_settings.batch_rows (default
// 10000).
type batchWriter struct {
	path      string
	format    FileType
	batchRows int

	f   *os.File
	buf *bufio.Writer
	cw  *csv.Writer

	headerWritten bool
	pending       []row
}

func newBatchWriter(path string, format FileType, batchRows int) (*batchWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, cos.NewOutputIOError(path, err)
	}
	buf := bufio.NewWriter(f)
	w := &batchWriter{path: path, format: format, batchRows: batchRows, f: f, buf: buf}
	if format == FileTypeCSV {
		w.cw = csv.NewWriter(buf)
	}
	if batchRows <= 0 {
		w.batchRows = 10_000
	}
	return w, nil
}

func (w *batchWriter) add(r row) error {
	w.pending = append(w.pending, r)
	if len(w.pending) >= w.batchRows {
		return w.Flush()
	}
	return nil
}

// Flush writes every pending row as one batch and resets the buffer.
func (w *batchWriter) Flush() error {
	if len(w.pending) == 0 {
		return nil
	}
	switch w.format {
	case FileTypeCSV:
		if err := w.flushCSV(); err != nil {
			return err
		}
	case FileTypeJSON:
		if err := w.flushJSON(); err != nil {
			return err
		}
	default:
		if err := w.flushMsgpack(); err != nil {
			return err
		}
	}
	w.pending = w.pending[:0]
	return w.wrapErr(w.buf.Flush())
}

func (w *batchWriter) wrapErr(err error) error {
	if err == nil {
		return nil
	}
	return cos.NewOutputIOError(w.path, err)
}

func (w *batchWriter) flushCSV() error {
	if !w.headerWritten && len(w.pending) > 0 {
		if err := w.cw.Write(w.pending[0].header); err != nil {
			return cos.NewOutputIOError(w.path, err)
		}
		w.headerWritten = true
	}
	for _, r := range w.pending {
		if err := w.cw.Write(r.csv); err != nil {
			return cos.NewOutputIOError(w.path, err)
		}
	}
	w.cw.Flush()
	return w.wrapErr(w.cw.Error())
}

// flushMsgpack appends one framed batch: an array header followed by
// each row encoded as its own fixed-length array, matching the row
// codec style in trace/shard.go (hand-written, no codegen).
func (w *batchWriter) flushMsgpack() error {
	mw := msgp.NewWriter(w.buf)
	if err := mw.WriteArrayHeader(uint32(len(w.pending))); err != nil {
		return cos.NewOutputIOError(w.path, err)
	}
	for _, r := range w.pending {
		if err := mw.WriteArrayHeader(uint32(len(r.fields))); err != nil {
			return cos.NewOutputIOError(w.path, err)
		}
		for _, f := range r.fields {
			if err := writeField(mw, f); err != nil {
				return cos.NewOutputIOError(w.path, err)
			}
		}
	}
	return w.wrapErr(mw.Flush())
}

// flushJSON writes one JSON object per row (JSON Lines), keyed by the
// row's header — the JSON analogue of flushCSV, using jsoniter instead
// of encoding/json since this is already the ecosystem's JSON codec
// of choice in SPEC_FULL.md's output_settings.file_type variants.
func (w *batchWriter) flushJSON() error {
	enc := jsonAPI.NewEncoder(w.buf)
	for _, r := range w.pending {
		obj := make(map[string]any, len(r.header))
		for i, h := range r.header {
			if i < len(r.fields) {
				obj[h] = r.fields[i]
			}
		}
		if err := enc.Encode(obj); err != nil {
			return cos.NewOutputIOError(w.path, err)
		}
	}
	return nil
}

func writeField(mw *msgp.Writer, v any) error {
	switch x := v.(type) {
	case uint64:
		return mw.WriteUint64(x)
	case uint32:
		return mw.WriteUint32(x)
	case float64:
		return mw.WriteFloat64(x)
	case bool:
		return mw.WriteBool(x)
	case string:
		return mw.WriteString(x)
	default:
		return fmt.Errorf("stats: unsupported field type %T", v)
	}
}

func (w *batchWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	return w.wrapErr(w.f.Close())
}
