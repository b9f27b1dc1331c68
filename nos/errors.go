package nos

import "fmt"

// ArgumentError reports a required argument that was not supplied.
type ArgumentError struct {
	Op  string
	Arg string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s: required argument %s not found", e.Op, e.Arg)
}

// ValidationError reports an argument whose value is not acceptable.
type ValidationError struct {
	Op     string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid value %q: %s", e.Op, e.Value, e.Reason)
}

// Required returns an ArgumentError for op when value is empty.
func Required(op, arg, value string) error {
	if value == "" {
		return &ArgumentError{Op: op, Arg: arg}
	}
	return nil
}

// RequiredID returns an ArgumentError for op when id is not a positive identifier.
func RequiredID(op, arg string, id int) error {
	if id <= 0 {
		return &ArgumentError{Op: op, Arg: arg}
	}
	return nil
}
