package stats

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/tinylib/msgp/msgp"
)

func TestParseFileType(t *testing.T) {
	cases := map[string]FileType{
		"":        FileTypeMsgpack,
		"msgpack": FileTypeMsgpack,
		"mpk":     FileTypeMsgpack,
		"csv":     FileTypeCSV,
		"json":    FileTypeJSON,
	}
	for in, want := range cases {
		got, err := ParseFileType(in)
		if err != nil {
			t.Fatalf("ParseFileType(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseFileType(%q) = %v, want %v", in, got, want)
		}
	}
	if _, err := ParseFileType("xml"); err == nil {
		t.Fatalf("expected an error for an unknown file_type")
	}
}

func TestBatchWriterCSVFlushesHeaderThenRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := newBatchWriter(path, FileTypeCSV, 10)
	if err != nil {
		t.Fatalf("newBatchWriter: %v", err)
	}
	rows := []row{
		{header: []string{"a", "b"}, csv: []string{"1", "x"}},
		{header: []string{"a", "b"}, csv: []string{"2", "y"}},
	}
	for _, r := range rows {
		if err := w.add(r); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines: %q", len(lines), content)
	}
	if lines[0] != "a,b" {
		t.Fatalf("expected header row first, got %q", lines[0])
	}
	if lines[1] != "1,x" || lines[2] != "2,y" {
		t.Fatalf("unexpected data rows: %v", lines[1:])
	}
}

func TestBatchWriterFlushesAtBatchRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	w, err := newBatchWriter(path, FileTypeCSV, 2)
	if err != nil {
		t.Fatalf("newBatchWriter: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := w.add(row{header: []string{"a"}, csv: []string{"x"}}); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	// the batch of 2 should already have been flushed to disk without an
	// explicit Flush/Close call
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(strings.Split(strings.TrimSpace(string(content)), "\n")) != 3 {
		t.Fatalf("expected the batch to auto-flush at batchRows, got %q", content)
	}
	w.Close()
}

func TestBatchWriterMsgpackRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.mpk")
	w, err := newBatchWriter(path, FileTypeMsgpack, 10)
	if err != nil {
		t.Fatalf("newBatchWriter: %v", err)
	}
	if err := w.add(row{fields: []any{uint64(7), "hello", true}}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	mr := msgp.NewReader(bufio.NewReader(f))
	n, err := mr.ReadArrayHeader()
	if err != nil {
		t.Fatalf("read batch header: %v", err)
	}
	if n != 1 {
		t.Fatalf("expected 1 row in the batch, got %d", n)
	}
	if _, err := mr.ReadArrayHeader(); err != nil {
		t.Fatalf("read row header: %v", err)
	}
	gotN, err := mr.ReadUint64()
	if err != nil || gotN != 7 {
		t.Fatalf("expected first field 7, got %d (err %v)", gotN, err)
	}
	gotS, err := mr.ReadString()
	if err != nil || gotS != "hello" {
		t.Fatalf("expected second field %q, got %q (err %v)", "hello", gotS, err)
	}
	gotB, err := mr.ReadBool()
	if err != nil || !gotB {
		t.Fatalf("expected third field true, got %v (err %v)", gotB, err)
	}
}

func TestBatchWriterJSONLinesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	w, err := newBatchWriter(path, FileTypeJSON, 10)
	if err != nil {
		t.Fatalf("newBatchWriter: %v", err)
	}
	r := row{header: []string{"id", "name", "ok"}, fields: []any{uint64(7), "hello", true}}
	if err := w.add(r); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected exactly one JSON line, got %d: %q", len(lines), content)
	}
	var got map[string]any
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(lines[0], &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got["name"] != "hello" || got["ok"] != true {
		t.Fatalf("unexpected decoded row: %+v", got)
	}
}
