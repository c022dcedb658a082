package graph

import (
	"encoding/json"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"

	"staffdir/internal/employee"
)

// Argument values arrive either from gqlparser literals (int64, float64,
// string, bool, []any, map[string]any) or from JSON-decoded variables
// (float64, json.Number). The helpers below normalize both shapes.

func errBadArgument(name string) error {
	return errors.New("invalid value for argument "+name, errors.CategoryBadInput).
		WithTextCode("INVALID_ARGUMENT")
}

func stringArg(args map[string]any, name string) (string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return "", errBadArgument(name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", errBadArgument(name)
	}
	return s, nil
}

func uuidArg(args map[string]any, name string) (uuid.UUID, error) {
	s, err := stringArg(args, name)
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, errors.New("malformed id", errors.CategoryBadInput).
			WithTextCode("INVALID_ID")
	}
	return id, nil
}

func toInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != float64(int(v)) {
			return 0, false
		}
		return int(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func optionalIntArg(args map[string]any, name string) (*int, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	n, ok := toInt(raw)
	if !ok {
		return nil, errBadArgument(name)
	}
	return &n, nil
}

func optionalStringArg(args map[string]any, name string) (*string, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return nil, nil
	}
	s, ok := raw.(string)
	if !ok {
		return nil, errBadArgument(name)
	}
	return &s, nil
}

func decodeFilter(raw any) (employee.Filter, error) {
	filter := employee.Filter{}
	if raw == nil {
		return filter, nil
	}
	obj, ok := raw.(map[string]any)
	if !ok {
		return filter, errBadArgument("filter")
	}

	var err error
	if filter.Class, err = optionalStringArg(obj, "class"); err != nil {
		return filter, err
	}
	if filter.MinAge, err = optionalIntArg(obj, "minAge"); err != nil {
		return filter, err
	}
	if filter.MaxAge, err = optionalIntArg(obj, "maxAge"); err != nil {
		return filter, err
	}
	return filter, nil
}

func decodeEmployeeInput(raw any) (employee.Input, error) {
	input := employee.Input{}
	obj, ok := raw.(map[string]any)
	if !ok {
		return input, errBadArgument("input")
	}

	var err error
	if input.Name, err = stringArg(obj, "name"); err != nil {
		return input, err
	}

	age, ok := toInt(obj["age"])
	if !ok {
		return input, errBadArgument("age")
	}
	input.Age = age

	if input.Class, err = optionalStringArg(obj, "class"); err != nil {
		return input, err
	}

	if rawSubjects, ok := obj["subjects"]; ok && rawSubjects != nil {
		items, ok := rawSubjects.([]any)
		if !ok {
			return input, errBadArgument("subjects")
		}
		input.Subjects = make([]string, 0, len(items))
		for _, item := range items {
			s, ok := item.(string)
			if !ok {
				return input, errBadArgument("subjects")
			}
			input.Subjects = append(input.Subjects, s)
		}
	}

	if rawAttendance, ok := obj["attendance"]; ok && rawAttendance != nil {
		f, ok := toFloat(rawAttendance)
		if !ok {
			return input, errBadArgument("attendance")
		}
		input.Attendance = &f
	}

	return input, nil
}
