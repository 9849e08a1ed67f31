package git

import (
	"bytes"
	"io"
	"log/slog"
	"os/exec"

	"github.com/cockroachdb/errors"
)

// Runner executes git in a working directory and returns captured stdout.
// Failures are reported as *CommandError.
type Runner interface {
	// Run executes git with args in dir.
	Run(dir string, args ...string) (string, error)
	// Pipe executes git with args in dir and feeds its stdout to consumer,
	// returning the consumer's stdout.
	Pipe(dir string, args []string, consumer []string) (string, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct {
	GitBin string
	logger *slog.Logger
}

// NewExecRunner creates a runner for the given git binary
func NewExecRunner(gitBin string, logger *slog.Logger) *ExecRunner {
	if gitBin == "" {
		gitBin = "git"
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ExecRunner{GitBin: gitBin, logger: logger}
}

// Run executes git and captures stdout. On a nonzero exit the error carries the
// exit code together with stdout and stderr.
func (r *ExecRunner) Run(dir string, args ...string) (string, error) {
	argv := append([]string{r.GitBin}, args...)
	r.logger.Debug("executing", "dir", dir, "argv", argv)

	cmd := exec.Command(r.GitBin, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdErr := commandError(argv, err, stdout.String()+stderr.String())
		r.logger.Debug("command failed", "argv", argv, "code", cmdErr.ExitCode, "output", cmdErr.Output)
		return "", cmdErr
	}

	r.logger.Debug("command succeeded", "argv", argv, "bytes", stdout.Len())
	return stdout.String(), nil
}

// Pipe executes git and streams its stdout into consumer. The copy completes
// before either process is waited on; stderr of both processes is captured.
func (r *ExecRunner) Pipe(dir string, args []string, consumer []string) (string, error) {
	argv := append([]string{r.GitBin}, args...)
	if len(consumer) == 0 {
		return "", errors.Newf("pipe %v: empty consumer command", argv)
	}
	r.logger.Debug("piping", "dir", dir, "argv", argv, "consumer", consumer)

	producer := exec.Command(r.GitBin, args...)
	producer.Dir = dir
	var producerErr bytes.Buffer
	producer.Stderr = &producerErr

	producerOut, err := producer.StdoutPipe()
	if err != nil {
		return "", commandError(argv, err, "")
	}

	sink := exec.Command(consumer[0], consumer[1:]...)
	sink.Dir = dir
	var sinkOut, sinkErr bytes.Buffer
	sink.Stdout = &sinkOut
	sink.Stderr = &sinkErr

	if err := producer.Start(); err != nil {
		return "", commandError(argv, err, "")
	}

	// The consumer's stdin pipe is only opened once the producer runs, so a
	// failed producer start leaves no descriptors behind. A failed Start
	// closes both ends of the pipe itself.
	sinkIn, err := sink.StdinPipe()
	if err != nil {
		stopProcess(producer)
		return "", commandError(consumer, err, "")
	}
	if err := sink.Start(); err != nil {
		stopProcess(producer)
		return "", commandError(consumer, err, "")
	}

	_, copyErr := io.Copy(sinkIn, producerOut)
	_ = sinkIn.Close()

	producerWait := producer.Wait()
	sinkWait := sink.Wait()

	if producerWait != nil {
		cmdErr := commandError(argv, producerWait, producerErr.String())
		r.logger.Debug("pipe producer failed", "argv", argv, "code", cmdErr.ExitCode, "output", cmdErr.Output)
		return "", cmdErr
	}
	if sinkWait != nil {
		cmdErr := commandError(consumer, sinkWait, sinkOut.String()+sinkErr.String())
		r.logger.Debug("pipe consumer failed", "consumer", consumer, "code", cmdErr.ExitCode, "output", cmdErr.Output)
		return "", cmdErr
	}
	if copyErr != nil {
		return "", errors.Wrapf(copyErr, "copy %v output into %v", argv, consumer)
	}

	r.logger.Debug("pipe succeeded", "argv", argv, "output", sinkOut.String())
	return sinkOut.String(), nil
}

func stopProcess(cmd *exec.Cmd) {
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}

// commandError classifies an exec failure as a launch or exit failure.
func commandError(argv []string, err error, output string) *CommandError {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return &CommandError{
			Args:     argv,
			ExitCode: exitErr.ExitCode(),
			Output:   output,
			Cause:    err,
		}
	}
	return &CommandError{
		Args:     argv,
		ExitCode: -1,
		Output:   output,
		Launch:   true,
		Cause:    err,
	}
}

// Compile-time interface conformance check.
var _ Runner = (*ExecRunner)(nil)
