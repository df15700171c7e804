package translator

import "fmt"

// ServiceError reports a failed model invocation. The pipeline stops at the
// first failure, so a translation that surfaces a ServiceError produced no
// partial result.
type ServiceError struct {
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("translation service failed: %v", e.Err)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}
