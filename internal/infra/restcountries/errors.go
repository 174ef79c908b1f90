package restcountries

import (
	"errors"
	"fmt"
)

// ErrDataSource is matched by every DataSourceError via errors.Is.
var ErrDataSource = errors.New("country data source error")

// Failure kinds reported by DataSourceError.
const (
	KindUnreachable = "unreachable" // transport failure, timeout or unreadable file
	KindStatus      = "status"      // non-2xx HTTP status
	KindPayload     = "payload"     // body could not be parsed into country records
)

// DataSourceError describes a failed attempt to load country records.
type DataSourceError struct {
	Kind       string
	Source     string // url or file path
	StatusCode int    // set for KindStatus
	Status     string // HTTP status text for KindStatus
	Underlying error
}

// Error implements the error interface.
func (e *DataSourceError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("country source %s [%s]: %d %s", e.Source, e.Kind, e.StatusCode, e.Status)
	case e.Underlying != nil:
		return fmt.Sprintf("country source %s [%s]: %v", e.Source, e.Kind, e.Underlying)
	default:
		return fmt.Sprintf("country source %s [%s]", e.Source, e.Kind)
	}
}

// Unwrap supports error unwrapping.
func (e *DataSourceError) Unwrap() error {
	return e.Underlying
}

// Is makes errors.Is(err, ErrDataSource) hold for any DataSourceError.
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

func newUnreachableError(source string, err error) *DataSourceError {
	return &DataSourceError{Kind: KindUnreachable, Source: source, Underlying: err}
}

func newStatusError(source string, code int, status string) *DataSourceError {
	return &DataSourceError{Kind: KindStatus, Source: source, StatusCode: code, Status: status}
}

func newPayloadError(source string, err error) *DataSourceError {
	return &DataSourceError{Kind: KindPayload, Source: source, Underlying: err}
}
