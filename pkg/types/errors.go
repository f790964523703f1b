package types

import "fmt"

type MissingFieldError struct {
	Field string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("envelope is missing field %q", e.Field)
}

type EncodingError struct {
	Field string
	Err   error
}

func (e EncodingError) Error() string {
	return fmt.Sprintf("envelope field %q is not valid base64: %v", e.Field, e.Err)
}

func (e EncodingError) Unwrap() error {
	return e.Err
}

type LengthError struct {
	Field string
	Want  int
	Got   int
}

func (e LengthError) Error() string {
	return fmt.Sprintf("envelope field %q must be %d bytes, got %d", e.Field, e.Want, e.Got)
}

type InvalidFieldError struct {
	Field  string
	Reason string
}

func (e InvalidFieldError) Error() string {
	return fmt.Sprintf("envelope field %q is invalid: %s", e.Field, e.Reason)
}

type UnsupportedKDFError struct {
	Name string
}

func (e UnsupportedKDFError) Error() string {
	return fmt.Sprintf("unsupported KDF %q", e.Name)
}

type UnsupportedHashError struct {
	Hash string
}

func (e UnsupportedHashError) Error() string {
	return fmt.Sprintf("unsupported KDF hash %q", e.Hash)
}
