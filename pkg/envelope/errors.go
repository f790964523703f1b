package envelope

import "fmt"

// PayloadError means the payload failed to serialize, or decrypted and
// authenticated correctly but did not decode as vault data. It is a data
// error, never an authentication error.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return fmt.Sprintf("vault payload is invalid: %v", e.Err)
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}
