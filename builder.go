package stately

// MachineBuilder provides the main entry point for building configurations
type MachineBuilder interface {
	State(name string) StateBuilder
	Build() Config
}

// StateBuilder handles the configuration of one state
type StateBuilder interface {
	On(transition string) TransitionBuilder
	Next(label string) StateBuilder
	Initial() StateBuilder
	Final() StateBuilder

	State(name string) StateBuilder
	Build() Config
}

// TransitionBuilder completes a named transition
type TransitionBuilder interface {
	To(target string) StateBuilder
	Do(procedure Procedure) StateBuilder
}

type machineBuilder struct {
	name    string
	initial string
	states  []*StateDef
	index   map[string]*StateDef
}

// Define starts a configuration with the given name
func Define(name string) MachineBuilder {
	return &machineBuilder{
		name:  name,
		index: make(map[string]*StateDef),
	}
}

// State starts or resumes the definition of a state. The first declared
// state becomes the initial state unless Initial is called elsewhere.
func (b *machineBuilder) State(name string) StateBuilder {
	def, ok := b.index[name]
	if !ok {
		def = &StateDef{Name: name}
		b.states = append(b.states, def)
		b.index[name] = def
	}
	if b.initial == "" {
		b.initial = name
	}
	return &stateBuilder{machine: b, def: def}
}

// Build returns the configuration
func (b *machineBuilder) Build() Config {
	cfg := Config{
		Name:    b.name,
		Initial: b.initial,
		States:  make([]StateDef, 0, len(b.states)),
	}
	for _, def := range b.states {
		s := *def
		if def.Transitions != nil {
			s.Transitions = append([]TransitionDef{}, def.Transitions...)
		}
		cfg.States = append(cfg.States, s)
	}
	return cfg
}

type stateBuilder struct {
	machine *machineBuilder
	def     *StateDef
}

func (sb *stateBuilder) On(transition string) TransitionBuilder {
	return &transitionBuilder{state: sb, name: transition}
}

// Next makes the state a bare next-state label. It drops transitions
// declared on the state so far.
func (sb *stateBuilder) Next(label string) StateBuilder {
	sb.def.Next = label
	sb.def.Transitions = nil
	return sb
}

func (sb *stateBuilder) Initial() StateBuilder {
	sb.machine.initial = sb.def.Name
	return sb
}

// Final clears anything declared on the state, leaving it terminal
func (sb *stateBuilder) Final() StateBuilder {
	sb.def.Next = ""
	sb.def.Transitions = nil
	return sb
}

func (sb *stateBuilder) State(name string) StateBuilder {
	return sb.machine.State(name)
}

func (sb *stateBuilder) Build() Config {
	return sb.machine.Build()
}

func (sb *stateBuilder) add(name string, value Transition) StateBuilder {
	sb.def.Next = ""
	for i, t := range sb.def.Transitions {
		if t.Name == name {
			sb.def.Transitions[i].Value = value
			return sb
		}
	}
	sb.def.Transitions = append(sb.def.Transitions, On(name, value))
	return sb
}

type transitionBuilder struct {
	state *stateBuilder
	name  string
}

func (tb *transitionBuilder) To(target string) StateBuilder {
	return tb.state.add(tb.name, Literal(target))
}

func (tb *transitionBuilder) Do(procedure Procedure) StateBuilder {
	return tb.state.add(tb.name, Computed(procedure))
}
