package main

import (
	"errors"
	"fmt"
	"io"
)

// exitErr carries the process exit status out of the command body. A nil
// cause means the message was already printed.
type exitErr struct {
	code  int
	cause error
}

func (e exitErr) Error() string {
	if e.cause == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.cause.Error()
}

func (e exitErr) Unwrap() error { return e.cause }

// exitCode prints err to stderr and returns the status to exit with. Errors
// that are not an exitErr exit with 1.
func exitCode(err error, stderr io.Writer) int {
	if err == nil {
		return 0
	}
	e := exitErr{code: 1, cause: err}
	errors.As(err, &e)
	if e.cause != nil {
		fmt.Fprintf(stderr, "gen_config_env_file: %v\n", e.cause)
	}
	return e.code
}
