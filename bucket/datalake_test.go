package bucket

import "testing"

func TestDataLakeTakePayloadsIsDrain(t *testing.T) {
	dl := NewDataLake()
	p1 := Payload{Metadata: Metadata{TotalSize: 1, TotalCount: 0}}
	p2 := Payload{Metadata: Metadata{TotalSize: 2, TotalCount: 0}}
	dl.PublishPayload(1, p1)
	dl.PublishPayload(1, p2)

	got := dl.TakePayloads(1)
	if len(got) != 2 || got[0].Metadata.TotalSize != 1 || got[1].Metadata.TotalSize != 2 {
		t.Fatalf("unexpected payload order/content: %+v", got)
	}
	if again := dl.TakePayloads(1); len(again) != 0 {
		t.Fatalf("expected empty on second take, got %d", len(again))
	}
}

func TestDataLakeTakeResponseIsFIFO(t *testing.T) {
	dl := NewDataLake()
	dl.PublishResponse(1, Response{Origin: 1, Report: TransferReport{TxOrder: 1}})
	dl.PublishResponse(1, Response{Origin: 1, Report: TransferReport{TxOrder: 2}})

	r1, ok := dl.TakeResponse(1)
	if !ok || r1.Report.TxOrder != 1 {
		t.Fatalf("expected first response first, got %+v ok=%v", r1, ok)
	}
	r2, ok := dl.TakeResponse(1)
	if !ok || r2.Report.TxOrder != 2 {
		t.Fatalf("expected second response second, got %+v ok=%v", r2, ok)
	}
	if _, ok := dl.TakeResponse(1); ok {
		t.Fatalf("expected no more responses")
	}
}

// TestDataLakeExpireBoundsLifetime exercises spec.md §3's "persists from
// the sender's uplink to the target's downlink of the same or next step"
// rule: a payload survives one Expire() call (one step boundary) but not
// two, if never taken.
func TestDataLakeExpireBoundsLifetime(t *testing.T) {
	dl := NewDataLake()
	dl.PublishPayload(1, Payload{Metadata: Metadata{TotalSize: 5}})

	dl.Expire() // step boundary after publish: still alive
	if got := dl.payloadsByTarget[1]; len(got) != 1 {
		t.Fatalf("expected payload to survive one Expire, got %d entries", len(got))
	}

	dl.Expire() // second boundary without being taken: now stale
	if got := dl.payloadsByTarget[1]; len(got) != 0 {
		t.Fatalf("expected payload to expire after two Expire calls, got %d entries", len(got))
	}
}

func TestDataLakeMissingAgentYieldsEmptyOrFalse(t *testing.T) {
	dl := NewDataLake()
	if got := dl.TakePayloads(99); got != nil {
		t.Fatalf("expected nil for missing agent, got %v", got)
	}
	if _, ok := dl.TakeResponse(99); ok {
		t.Fatalf("expected false for missing agent")
	}
}
