package srcset

import (
	"errors"
	"fmt"
)

// ErrorCode identifies why a srcset value was rejected. The names are stable
// because validators report them to users.
type ErrorCode int

const (
	None ErrorCode = iota
	DuplicateDimension
	InvalidAttrValue
)

var errorCodeNames = [...]string{
	None:               "NONE",
	DuplicateDimension: "DUPLICATE_DIMENSION",
	InvalidAttrValue:   "INVALID_ATTR_VALUE",
}

func (c ErrorCode) String() string {
	if c < 0 || int(c) >= len(errorCodeNames) {
		return fmt.Sprintf("ErrorCode(%d)", int(c))
	}
	return errorCodeNames[c]
}

func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ErrorCode) UnmarshalText(text []byte) error {
	for i, name := range errorCodeNames {
		if name == string(text) {
			*c = ErrorCode(i)
			return nil
		}
	}
	return fmt.Errorf("unknown srcset error code %q", text)
}

var (
	ErrDuplicateDimension = errors.New("duplicate width or pixel density")
	ErrInvalidAttrValue   = errors.New("invalid srcset value")
)

// ParseError is returned by [Result.Err]. It wraps ErrDuplicateDimension or
// ErrInvalidAttrValue.
type ParseError struct {
	Code ErrorCode
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Unwrap())
}

func (e *ParseError) Unwrap() error {
	if e.Code == DuplicateDimension {
		return ErrDuplicateDimension
	}
	return ErrInvalidAttrValue
}
