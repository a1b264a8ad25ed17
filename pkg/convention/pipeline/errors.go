package pipeline

import (
	"errors"
	"fmt"
	"os/exec"
)

type Kind string

const (
	KindAuth   Kind = "auth"
	KindBuild  Kind = "build"
	KindPush   Kind = "push"
	KindDeploy Kind = "deploy"
)

// StepError is the first failure of a run. Steps after it never started.
type StepError struct {
	Step string
	Kind Kind
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s failed (%s): %v", e.Step, e.Kind, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// ExitCode maps a run error to a process exit status, preferring the status of a failed external command.
func ExitCode(err error) int {
	var exitErr *exec.ExitError

	if err == nil {
		return 0
	}

	if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
		return exitErr.ExitCode()
	}

	return 1
}
