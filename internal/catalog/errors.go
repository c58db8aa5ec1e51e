package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// NetworkError reports a failed round trip: transport failure, a non-success
// status the server did not attribute to the payload, or an unreadable body.
type NetworkError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	switch {
	case e.StatusCode > 0 && e.Err != nil:
		return fmt.Sprintf("%s %s: status %d: %v", e.Op, e.URL, e.StatusCode, e.Err)
	case e.StatusCode > 0:
		return fmt.Sprintf("%s %s: returned status %d", e.Op, e.URL, e.StatusCode)
	default:
		return fmt.Sprintf("%s %s: %v", e.Op, e.URL, e.Err)
	}
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ValidationError reports a payload rejected by the server or by the local
// well-formedness checks run before a request is sent.
type ValidationError struct {
	Op         string
	StatusCode int // zero when rejected locally
	Messages   []string
}

func (e *ValidationError) Error() string {
	msg := "invalid input"
	if len(e.Messages) > 0 {
		msg = strings.Join(e.Messages, "; ")
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s rejected (status %d): %s", e.Op, e.StatusCode, msg)
	}
	return fmt.Sprintf("%s rejected: %s", e.Op, msg)
}

// IsNetworkError reports whether err wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var target *NetworkError
	return errors.As(err, &target)
}

// IsValidationError reports whether err wraps a *ValidationError.
func IsValidationError(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// errorBody matches the API's error envelope, where message is either a
// string or a list of strings.
type errorBody struct {
	Message json.RawMessage `json:"message"`
	Error   string          `json:"error"`
}

func parseErrorMessages(body []byte) []string {
	var payload errorBody
	if err := json.Unmarshal(body, &payload); err != nil {
		if text := strings.TrimSpace(string(body)); text != "" {
			return []string{text}
		}
		return nil
	}
	var list []string
	if err := json.Unmarshal(payload.Message, &list); err == nil && len(list) > 0 {
		return list
	}
	var single string
	if err := json.Unmarshal(payload.Message, &single); err == nil && single != "" {
		return []string{single}
	}
	if payload.Error != "" {
		return []string{payload.Error}
	}
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// checkInput runs struct tag validation and converts failures into a
// *ValidationError naming each offending field.
func checkInput(op string, input any) error {
	err := validate.Struct(input)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &ValidationError{Op: op, Messages: []string{err.Error()}}
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		messages = append(messages, describeFieldError(fe))
	}
	return &ValidationError{Op: op, Messages: messages}
}

func describeFieldError(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s needs at least %s", field, fe.Param())
	case "url":
		return fmt.Sprintf("%s must be a URL", field)
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}
