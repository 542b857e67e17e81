package bootstrap

import (
	"errors"
	"fmt"

	"pybootstrap/internal/provision"
)

// VersionTooLowError reports an interpreter older than the required minimum.
type VersionTooLowError struct {
	Required string
	Actual   string
}

func (e *VersionTooLowError) Error() string {
	return fmt.Sprintf("Python %s or higher is required (found %s)", e.Required, e.Actual)
}

// InterpreterError reports an interpreter that could not be found or did not
// report a usable version.
type InterpreterError struct {
	Err error
}

func (e *InterpreterError) Error() string {
	return fmt.Sprintf("cannot determine Python version: %v", e.Err)
}

func (e *InterpreterError) Unwrap() error { return e.Err }

// ProvisioningError reports a failed dependency synchronization.
// Code is the external tool's exit code.
type ProvisioningError struct {
	Code int
	Err  error
}

func (e *ProvisioningError) Error() string {
	return fmt.Sprintf("environment provisioning failed: %v", e.Err)
}

func (e *ProvisioningError) Unwrap() error { return e.Err }

// InstallError reports a failed editable install.
// Code is the external tool's exit code.
type InstallError struct {
	Code int
	Err  error
}

func (e *InstallError) Error() string {
	return fmt.Sprintf("editable install failed: %v", e.Err)
}

func (e *InstallError) Unwrap() error { return e.Err }

// FilesystemError reports a directory that could not be created or written.
type FilesystemError struct {
	Path string
	Err  error
}

func (e *FilesystemError) Error() string {
	return fmt.Sprintf("cannot prepare %s: %v", e.Path, e.Err)
}

func (e *FilesystemError) Unwrap() error { return e.Err }

// ExitCode maps a bootstrap error to a process exit status.
// External tool failures keep the tool's own code; every other failure is 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var provErr *ProvisioningError
	if errors.As(err, &provErr) {
		return nonZero(provErr.Code)
	}
	var installErr *InstallError
	if errors.As(err, &installErr) {
		return nonZero(installErr.Code)
	}
	return 1
}

func nonZero(code int) int {
	if code == 0 {
		return 1
	}
	return code
}

// toolExitCode extracts the exit code carried by a provisioner error.
func toolExitCode(err error) int {
	var exitErr *provision.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
