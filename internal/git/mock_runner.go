package git

// Call records one invocation made through a MockRunner.
type Call struct {
	Dir      string
	Args     []string
	Consumer []string
}

// Command returns the git subcommand of the call, e.g. "log" or "stash".
func (c Call) Command() string {
	if len(c.Args) == 0 {
		return ""
	}
	return c.Args[0]
}

// MockRunner is a test double for ExecRunner.
// It records every call and answers through Handler, so tests can script git
// output without a real repository.
type MockRunner struct {
	Handler func(call Call) (string, error)
	Calls   []Call
}

// NewMockRunner creates a MockRunner answering with handler.
func NewMockRunner(handler func(call Call) (string, error)) *MockRunner {
	return &MockRunner{Handler: handler}
}

// Run records the call and returns the handler's answer.
func (m *MockRunner) Run(dir string, args ...string) (string, error) {
	return m.record(Call{Dir: dir, Args: args})
}

// Pipe records the call and returns the handler's answer.
func (m *MockRunner) Pipe(dir string, args []string, consumer []string) (string, error) {
	return m.record(Call{Dir: dir, Args: args, Consumer: consumer})
}

// CallCount returns how many recorded calls ran the given git subcommand.
func (m *MockRunner) CallCount(command string) int {
	n := 0
	for _, c := range m.Calls {
		if c.Command() == command {
			n++
		}
	}
	return n
}

func (m *MockRunner) record(call Call) (string, error) {
	m.Calls = append(m.Calls, call)
	if m.Handler == nil {
		return "", nil
	}
	return m.Handler(call)
}

// Compile-time interface conformance check.
var _ Runner = (*MockRunner)(nil)
