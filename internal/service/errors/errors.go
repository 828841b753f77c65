// Package errors provides custom errors for types implementing the invoicer Processor interface.
package errors

import (
	"fmt"
	"strings"
)

type (
	ServiceFoundNilStorage struct {
		Msg string
	}
	ServiceInitHashError struct {
		Msg string
	}
	ServiceEncodingHashError struct {
		Msg string
	}
	// ServiceValidationError carries the EN 16931 rule violations which made an
	// invoice unfit for generation.
	ServiceValidationError struct {
		Errors []string
	}
)

func (e *ServiceFoundNilStorage) Error() string {
	return e.Msg
}

func (e *ServiceInitHashError) Error() string {
	return e.Msg
}

func (e *ServiceEncodingHashError) Error() string {
	return e.Msg
}

func (e *ServiceValidationError) Error() string {
	return fmt.Sprintf("invoice is not EN 16931 conformant: %s", strings.Join(e.Errors, "; "))
}
