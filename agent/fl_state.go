package agent

// FLClientState is a federation client's place in the training round,
// per spec.md §4.4: {Sensing, Informing, Preparing, ReadyToTrain,
// Training}.
type FLClientState uint8

const (
	Sensing FLClientState = iota
	Informing
	Preparing
	ReadyToTrain
	Training
)

func (s FLClientState) String() string {
	switch s {
	case Sensing:
		return "sensing"
	case Informing:
		return "informing"
	case Preparing:
		return "preparing"
	case ReadyToTrain:
		return "ready_to_train"
	case Training:
		return "training"
	default:
		return "unknown"
	}
}

// FLServerState is the federation server's place in the round:
// {Sampling, Selecting, Broadcasting, Waiting, Aggregating}.
type FLServerState uint8

const (
	Sampling FLServerState = iota
	Selecting
	Broadcasting
	Waiting
	Aggregating
)

func (s FLServerState) String() string {
	switch s {
	case Sampling:
		return "sampling"
	case Selecting:
		return "selecting"
	case Broadcasting:
		return "broadcasting"
	case Waiting:
		return "waiting"
	case Aggregating:
		return "aggregating"
	default:
		return "unknown"
	}
}

// ControlSignal is the discriminator carried by an FL control message's
// response content — spec.md §4.4: "transitions are driven by received
// control messages and elapsed-step counters".
type ControlSignal uint8

const (
	SignalNone ControlSignal = iota
	SignalSelected
	SignalGlobalModel
	SignalTrainingDone
	SignalAggregationDone
)

func (s ControlSignal) String() string {
	switch s {
	case SignalSelected:
		return "selected"
	case SignalGlobalModel:
		return "global_model"
	case SignalTrainingDone:
		return "training_done"
	case SignalAggregationDone:
		return "aggregation_done"
	default:
		return "none"
	}
}

// ClientMachine steps a federation client's state on each received
// control signal or elapsed-step tick: OnSignal applies the state
// transitions, and StepsInState counts how many steps the current state
// has been held.
type ClientMachine struct {
	State        FLClientState
	StepsInState int
}

func (m *ClientMachine) Tick() { m.StepsInState++ }

func (m *ClientMachine) transition(to FLClientState) {
	m.State, m.StepsInState = to, 0
}

// OnSignal applies one control signal, returning whether it caused a
// transition.
func (m *ClientMachine) OnSignal(sig ControlSignal) bool {
	switch {
	case m.State == Sensing && sig == SignalSelected:
		m.transition(Informing)
	case m.State == Informing:
		m.transition(Preparing)
	case m.State == Preparing && sig == SignalGlobalModel:
		m.transition(ReadyToTrain)
	case m.State == ReadyToTrain:
		m.transition(Training)
	case m.State == Training && sig == SignalAggregationDone:
		m.transition(Sensing)
	default:
		return false
	}
	return true
}

// ServerMachine is the federation server's counterpart.
type ServerMachine struct {
	State        FLServerState
	StepsInState int
	RoundClients int
}

func (m *ServerMachine) Tick() { m.StepsInState++ }

func (m *ServerMachine) transition(to FLServerState) {
	m.State, m.StepsInState = to, 0
}

func (m *ServerMachine) OnSignal(sig ControlSignal, respondersReady int) bool {
	switch {
	case m.State == Sampling:
		m.transition(Selecting)
	case m.State == Selecting:
		m.RoundClients = respondersReady
		m.transition(Broadcasting)
	case m.State == Broadcasting:
		m.transition(Waiting)
	case m.State == Waiting && sig == SignalTrainingDone && respondersReady >= m.RoundClients:
		m.transition(Aggregating)
	case m.State == Aggregating && sig == SignalAggregationDone:
		m.transition(Sampling)
	default:
		return false
	}
	return true
}
