package graph

import (
	"time"

	"github.com/vektah/gqlparser/v2/ast"

	"staffdir/internal/auth"
	"staffdir/internal/employee"
)

// projectValue shapes a resolved value through the request's selection set.
// Scalars pass through untouched; object types expose only the requested
// fields.
func projectValue(value any, sel ast.SelectionSet) any {
	switch v := value.(type) {
	case nil:
		return nil
	case *employee.Employee:
		if v == nil {
			return nil
		}
		return projectFields(sel, "Employee", employeeField(v))
	case []*employee.Employee:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, projectValue(item, sel))
		}
		return out
	case *auth.Account:
		if v == nil {
			return nil
		}
		return projectFields(sel, "User", accountField(v))
	case []*auth.Account:
		out := make([]any, 0, len(v))
		for _, item := range v {
			out = append(out, projectValue(item, sel))
		}
		return out
	default:
		return value
	}
}

// projectFields walks a selection set against a field getter. Unknown fields
// cannot occur: the query was validated against the schema before dispatch.
func projectFields(sel ast.SelectionSet, typename string, get func(name string) any) map[string]any {
	out := make(map[string]any, len(sel))
	for _, s := range sel {
		field, ok := s.(*ast.Field)
		if !ok {
			continue
		}
		if field.Name == "__typename" {
			out[field.Alias] = typename
			continue
		}
		out[field.Alias] = get(field.Name)
	}
	return out
}

func employeeField(e *employee.Employee) func(name string) any {
	return func(name string) any {
		switch name {
		case "id":
			return e.ID.String()
		case "name":
			return e.Name
		case "age":
			return e.Age
		case "class":
			return strOrNil(e.Class)
		case "subjects":
			if e.Subjects == nil {
				return []string{}
			}
			return e.Subjects
		case "attendance":
			return floatOrNil(e.Attendance)
		case "createdAt":
			return timeOrNil(e.CreatedAt)
		case "updatedAt":
			return timeOrNil(e.UpdatedAt)
		default:
			return nil
		}
	}
}

func accountField(a *auth.Account) func(name string) any {
	return func(name string) any {
		switch name {
		case "id":
			return a.ID.String()
		case "email":
			return a.Email
		case "role":
			return a.Role
		case "createdAt":
			return timeOrNil(a.CreatedAt)
		case "updatedAt":
			return timeOrNil(a.UpdatedAt)
		default:
			return nil
		}
	}
}

func strOrNil(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func floatOrNil(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC().Format(time.RFC3339)
}
