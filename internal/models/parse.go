package models

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// ErrInvalidEntity is returned when a payload does not describe a valid entity.
var ErrInvalidEntity = errors.New("invalid entity")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags of v.
func Validate(v any) error {
	if err := validate.Struct(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	return nil
}

func parseOne[T any](raw json.RawMessage) (T, error) {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	if err := Validate(&v); err != nil {
		var zero T
		return zero, err
	}
	return v, nil
}

// parseList decodes a JSON array and validates every element. A null body
// is an empty list.
func parseList[T any](raw json.RawMessage) ([]T, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidEntity, err)
	}
	out := make([]T, 0, len(items))
	for i, item := range items {
		v, err := parseOne[T](item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func ParseUser(raw json.RawMessage) (User, error)           { return parseOne[User](raw) }
func ParseUserList(raw json.RawMessage) ([]User, error)     { return parseList[User](raw) }
func ParseComplaint(raw json.RawMessage) (Complaint, error) { return parseOne[Complaint](raw) }
func ParseNotice(raw json.RawMessage) (Notice, error)       { return parseOne[Notice](raw) }
func ParseNoticeList(raw json.RawMessage) ([]Notice, error) { return parseList[Notice](raw) }
func ParseVisitor(raw json.RawMessage) (Visitor, error)     { return parseOne[Visitor](raw) }
func ParsePayment(raw json.RawMessage) (Payment, error)     { return parseOne[Payment](raw) }

func ParseComplaintList(raw json.RawMessage) ([]Complaint, error) {
	return parseList[Complaint](raw)
}

func ParseVisitorList(raw json.RawMessage) ([]Visitor, error) {
	return parseList[Visitor](raw)
}

func ParsePaymentList(raw json.RawMessage) ([]Payment, error) {
	return parseList[Payment](raw)
}
