package errors

import (
	"context"
	"errors"
)

// Process exit codes, one per failure kind
const (
	ExitSuccess                   = 0
	ExitGeneral                   = 1
	ExitConfig                    = 2
	ExitManifestLoad              = 3
	ExitMissingRepository         = 4
	ExitUnsupportedRepositoryType = 5
	ExitInvalidRepository         = 6
	ExitClone                     = 7
	ExitProcess                   = 8
	ExitTimeout                   = 9
	ExitInterrupted               = 130 // shell convention for SIGINT
)

var exitCodes = map[ErrorCode]int{
	ErrConfigLoad:                ExitConfig,
	ErrConfigValid:               ExitConfig,
	ErrInvalidInput:              ExitConfig,
	ErrManifestLoad:              ExitManifestLoad,
	ErrMissingRepository:         ExitMissingRepository,
	ErrUnsupportedRepositoryType: ExitUnsupportedRepositoryType,
	ErrInvalidRepository:         ExitInvalidRepository,
	ErrClone:                     ExitClone,
	ErrProcessExit:               ExitProcess,
	ErrWorkingDir:                ExitProcess,
	ErrProcessTimeout:            ExitTimeout,
}

// ExitCode maps an error to the process exit code the CLI should use
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	if code, ok := exitCodes[GetErrorCode(err)]; ok {
		return code
	}
	return ExitGeneral
}
