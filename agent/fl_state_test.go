package agent

import "testing"

func TestClientMachineFullRound(t *testing.T) {
	var m ClientMachine
	if m.State != Sensing {
		t.Fatalf("expected initial state Sensing, got %v", m.State)
	}
	steps := []struct {
		sig  ControlSignal
		want FLClientState
	}{
		{SignalSelected, Informing},
		{SignalNone, Preparing},
		{SignalGlobalModel, ReadyToTrain},
		{SignalNone, Training},
		{SignalAggregationDone, Sensing},
	}
	for i, st := range steps {
		if !m.OnSignal(st.sig) {
			t.Fatalf("step %d: expected a transition", i)
		}
		if m.State != st.want {
			t.Fatalf("step %d: expected state %v, got %v", i, st.want, m.State)
		}
	}
}

func TestClientMachineIgnoresUnexpectedSignal(t *testing.T) {
	m := ClientMachine{State: Sensing}
	if m.OnSignal(SignalGlobalModel) {
		t.Fatalf("expected Sensing to ignore a GlobalModel signal while waiting for Selected")
	}
	if m.State != Sensing {
		t.Fatalf("expected state unchanged, got %v", m.State)
	}
}

func TestServerMachineFullRound(t *testing.T) {
	var m ServerMachine
	transitions := []struct {
		sig        ControlSignal
		ready      int
		want       FLServerState
	}{
		{SignalNone, 0, Selecting},
		{SignalNone, 5, Broadcasting},
		{SignalNone, 5, Waiting},
		{SignalTrainingDone, 5, Aggregating},
		{SignalAggregationDone, 0, Sampling},
	}
	for i, tr := range transitions {
		if !m.OnSignal(tr.sig, tr.ready) {
			t.Fatalf("step %d: expected a transition", i)
		}
		if m.State != tr.want {
			t.Fatalf("step %d: expected state %v, got %v", i, tr.want, m.State)
		}
	}
}

func TestServerMachineWaitsForAllClients(t *testing.T) {
	m := ServerMachine{State: Waiting, RoundClients: 5}
	if m.OnSignal(SignalTrainingDone, 3) {
		t.Fatalf("expected server to keep waiting until all clients report")
	}
	if m.State != Waiting {
		t.Fatalf("expected state unchanged while waiting, got %v", m.State)
	}
}
