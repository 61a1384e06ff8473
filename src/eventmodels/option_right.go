package eventmodels

import (
	"fmt"
	"strings"
)

type OptionRight string

const (
	Call OptionRight = "call"
	Put  OptionRight = "put"
)

func (r OptionRight) Validate() error {
	if r != Call && r != Put {
		return fmt.Errorf("OptionRight: Validate: invalid option right: %s", r)
	}

	return nil
}

// NewOptionRightFromBackend accepts the backend's upper-case CALL/PUT tokens.
func NewOptionRightFromBackend(s string) (OptionRight, error) {
	r := OptionRight(strings.ToLower(s))
	if err := r.Validate(); err != nil {
		return "", err
	}

	return r, nil
}

func (r OptionRight) BackendToken() string {
	return strings.ToUpper(string(r))
}
