package graph_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"golang.org/x/crypto/bcrypt"

	"staffdir/internal/auth"
	"staffdir/internal/employee"
	"staffdir/internal/graph"
	"staffdir/internal/store"
)

type fixture struct {
	exec      *graph.Executor
	tokens    auth.TokenService
	accounts  auth.Accounts
	employees employee.Repository

	adminToken    string
	employeeToken string
}

func setupFixture(t *testing.T) *fixture {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	require.NoError(t, store.EnsureSchema(context.Background(), db))
	t.Cleanup(func() { _ = db.Close() })

	hasher := auth.NewBcryptHasher(bcrypt.MinCost)
	tokens := auth.NewTokenService([]byte("test-key"), 1, "staffdir-test", jwt.ClaimStrings(nil), nil)
	accounts := auth.NewAccountsRepository(db)
	provider := auth.NewAccountProvider(accounts, hasher)
	auther := auth.NewAuthenticator(provider, tokens)
	employees := employee.NewRepository(db)

	ctx := context.Background()
	for _, seed := range []struct {
		email string
		role  auth.UserRole
	}{
		{"admin@demo.com", auth.RoleAdmin},
		{"worker@demo.com", auth.RoleEmployee},
	} {
		hash, err := hasher.HashPassword("password123")
		require.NoError(t, err)
		_, err = accounts.Create(ctx, &auth.Account{Email: seed.email, PasswordHash: hash, Role: seed.role})
		require.NoError(t, err)
	}

	adminToken, err := auther.Login(ctx, "admin@demo.com", "password123")
	require.NoError(t, err)
	employeeToken, err := auther.Login(ctx, "worker@demo.com", "password123")
	require.NoError(t, err)

	resolver := graph.NewResolver(auther, accounts, hasher, employees)

	return &fixture{
		exec:          graph.NewExecutor(resolver, nil),
		tokens:        tokens,
		accounts:      accounts,
		employees:     employees,
		adminToken:    adminToken,
		employeeToken: employeeToken,
	}
}

// ctxFor builds a request context the way the HTTP middleware would.
func (f *fixture) ctxFor(t *testing.T, token string) context.Context {
	t.Helper()

	if token == "" {
		return context.Background()
	}
	claims, err := f.tokens.Validate(token)
	require.NoError(t, err)
	return auth.WithClaimsContext(context.Background(), claims)
}

func (f *fixture) seedEmployees(t *testing.T, n int) {
	t.Helper()

	class := [2]string{"A", "B"}
	for i := 0; i < n; i++ {
		c := class[i%2]
		_, err := f.employees.Create(context.Background(), employee.Input{
			Name:     fmt.Sprintf("Employee %02d", i+1),
			Age:      20 + i,
			Class:    &c,
			Subjects: []string{"Maths"},
		})
		require.NoError(t, err)
	}
}

func errorCode(t *testing.T, resp graph.Response) string {
	t.Helper()

	require.NotEmpty(t, resp.Errors)
	code, _ := resp.Errors[0].Extensions["code"].(string)
	return code
}

func TestLoginMutation(t *testing.T) {
	f := setupFixture(t)
	ctx := context.Background()

	t.Run("valid credentials mint a verifiable token", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `mutation { login(email: "admin@demo.com", password: "password123") }`,
		})
		require.Empty(t, resp.Errors)

		token, ok := resp.Data["login"].(string)
		require.True(t, ok)

		claims, err := f.tokens.Validate(token)
		require.NoError(t, err)
		assert.Equal(t, "admin@demo.com", claims.Email())
		assert.Equal(t, auth.RoleAdmin, claims.Role())
	})

	t.Run("wrong password and unknown email fail alike", func(t *testing.T) {
		wrongPassword := f.exec.Execute(ctx, graph.Request{
			Query: `mutation { login(email: "admin@demo.com", password: "nope") }`,
		})
		unknownEmail := f.exec.Execute(ctx, graph.Request{
			Query: `mutation { login(email: "ghost@demo.com", password: "password123") }`,
		})

		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, wrongPassword))
		assert.Equal(t, "INVALID_CREDENTIALS", errorCode(t, unknownEmail))
		assert.Equal(t, wrongPassword.Errors[0].Message, unknownEmail.Errors[0].Message)
	})
}

func TestEmployeesQueryRequiresAuthentication(t *testing.T) {
	f := setupFixture(t)
	f.seedEmployees(t, 3)

	resp := f.exec.Execute(context.Background(), graph.Request{
		Query: `{ employees { id name } }`,
	})
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))

	resp = f.exec.Execute(f.ctxFor(t, f.employeeToken), graph.Request{
		Query: `{ employees { id name age } }`,
	})
	require.Empty(t, resp.Errors)

	records, ok := resp.Data["employees"].([]any)
	require.True(t, ok)
	assert.Len(t, records, 3)
}

func TestEmployeesQueryFilterAndPagination(t *testing.T) {
	f := setupFixture(t)
	f.seedEmployees(t, 25) // ages 20..44
	ctx := f.ctxFor(t, f.employeeToken)

	t.Run("filter via variables", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `query List($filter: EmployeeFilter) {
				employees(filter: $filter, pageSize: 50) { age class }
			}`,
			Variables: map[string]any{
				"filter": map[string]any{"class": "A", "minAge": float64(20), "maxAge": float64(30)},
			},
		})
		require.Empty(t, resp.Errors)

		records := resp.Data["employees"].([]any)
		require.NotEmpty(t, records)
		for _, raw := range records {
			record := raw.(map[string]any)
			assert.Equal(t, "A", record["class"])
			age := record["age"].(int)
			assert.GreaterOrEqual(t, age, 20)
			assert.LessOrEqual(t, age, 30)
		}
	})

	t.Run("third page of ten", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `{ employees(page: 3, pageSize: 10, sortBy: "age") { age } }`,
		})
		require.Empty(t, resp.Errors)

		records := resp.Data["employees"].([]any)
		require.Len(t, records, 5)
		assert.Equal(t, 40, records[0].(map[string]any)["age"])
	})

	t.Run("page past the end is empty", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `{ employees(page: 10, pageSize: 10) { id } }`,
		})
		require.Empty(t, resp.Errors)
		assert.Empty(t, resp.Data["employees"].([]any))
	})

	t.Run("inverted bounds are rejected", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `{ employees(filter: { minAge: 30, maxAge: 20 }) { id } }`,
		})
		assert.Equal(t, "BAD_USER_INPUT", errorCode(t, resp))
	})
}

func TestEmployeePointLookup(t *testing.T) {
	f := setupFixture(t)
	f.seedEmployees(t, 1)
	ctx := context.Background()

	records, err := f.employees.List(ctx, employee.Filter{}, employee.DefaultListOptions())
	require.NoError(t, err)
	id := records[0].ID

	t.Run("existing record", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: fmt.Sprintf(`{ employee(id: %q) { id name subjects } }`, id.String()),
		})
		require.Empty(t, resp.Errors)

		record := resp.Data["employee"].(map[string]any)
		assert.Equal(t, id.String(), record["id"])
		assert.Equal(t, []string{"Maths"}, record["subjects"])
	})

	t.Run("absent record is null, not an error", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `{ employee(id: "6a6f7a9e-0000-4000-8000-000000000000") { id } }`,
		})
		require.Empty(t, resp.Errors)
		assert.Nil(t, resp.Data["employee"])
	})
}

func TestAddEmployeeAuthorization(t *testing.T) {
	f := setupFixture(t)

	mutation := `mutation {
		addEmployee(input: { name: "Ada", age: 34, class: "A", subjects: ["Maths"], attendance: 0.9 }) {
			id name age class subjects attendance
		}
	}`

	t.Run("no credential", func(t *testing.T) {
		resp := f.exec.Execute(context.Background(), graph.Request{Query: mutation})
		assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	})

	t.Run("employee role is forbidden", func(t *testing.T) {
		resp := f.exec.Execute(f.ctxFor(t, f.employeeToken), graph.Request{Query: mutation})
		assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
	})

	t.Run("admin creates the record", func(t *testing.T) {
		resp := f.exec.Execute(f.ctxFor(t, f.adminToken), graph.Request{Query: mutation})
		require.Empty(t, resp.Errors)

		record := resp.Data["addEmployee"].(map[string]any)
		assert.Equal(t, "Ada", record["name"])
		assert.Equal(t, 34, record["age"])
		assert.Equal(t, "A", record["class"])
		assert.InDelta(t, 0.9, record["attendance"].(float64), 1e-9)
		assert.NotEmpty(t, record["id"])
	})
}

func TestUpdateEmployee(t *testing.T) {
	f := setupFixture(t)
	f.seedEmployees(t, 1)
	adminCtx := f.ctxFor(t, f.adminToken)

	records, err := f.employees.List(context.Background(), employee.Filter{}, employee.DefaultListOptions())
	require.NoError(t, err)
	id := records[0].ID

	t.Run("admin updates in place", func(t *testing.T) {
		resp := f.exec.Execute(adminCtx, graph.Request{
			Query: fmt.Sprintf(`mutation {
				updateEmployee(id: %q, input: { name: "Renamed", age: 50, subjects: [] }) { id name age }
			}`, id.String()),
		})
		require.Empty(t, resp.Errors)

		record := resp.Data["updateEmployee"].(map[string]any)
		assert.Equal(t, id.String(), record["id"])
		assert.Equal(t, "Renamed", record["name"])
		assert.Equal(t, 50, record["age"])
	})

	t.Run("missing id is NOT_FOUND even for admins", func(t *testing.T) {
		resp := f.exec.Execute(adminCtx, graph.Request{
			Query: `mutation {
				updateEmployee(id: "6a6f7a9e-0000-4000-8000-000000000000", input: { name: "Ghost", age: 1, subjects: [] }) { id }
			}`,
		})
		assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
	})
}

func TestMeQuery(t *testing.T) {
	f := setupFixture(t)

	t.Run("anonymous viewer is null", func(t *testing.T) {
		resp := f.exec.Execute(context.Background(), graph.Request{Query: `{ me { id email role } }`})
		require.Empty(t, resp.Errors)
		assert.Nil(t, resp.Data["me"])
	})

	t.Run("authenticated viewer sees their account", func(t *testing.T) {
		resp := f.exec.Execute(f.ctxFor(t, f.employeeToken), graph.Request{Query: `{ me { email role } }`})
		require.Empty(t, resp.Errors)

		me := resp.Data["me"].(map[string]any)
		assert.Equal(t, "worker@demo.com", me["email"])
		assert.Equal(t, auth.RoleEmployee, me["role"])
	})
}

func TestUserAdministration(t *testing.T) {
	f := setupFixture(t)
	adminCtx := f.ctxFor(t, f.adminToken)

	t.Run("listing accounts requires admin", func(t *testing.T) {
		resp := f.exec.Execute(f.ctxFor(t, f.employeeToken), graph.Request{Query: `{ users { email } }`})
		assert.Equal(t, "FORBIDDEN", errorCode(t, resp))
	})

	t.Run("admin lists accounts", func(t *testing.T) {
		resp := f.exec.Execute(adminCtx, graph.Request{Query: `{ users { email role } }`})
		require.Empty(t, resp.Errors)
		assert.Len(t, resp.Data["users"].([]any), 2)
	})

	t.Run("admin creates an account that can log in", func(t *testing.T) {
		resp := f.exec.Execute(adminCtx, graph.Request{
			Query: `mutation { createUser(email: "new@demo.com", password: "secret99", role: EMPLOYEE) { email role } }`,
		})
		require.Empty(t, resp.Errors)

		created := resp.Data["createUser"].(map[string]any)
		assert.Equal(t, "new@demo.com", created["email"])
		assert.Equal(t, auth.RoleEmployee, created["role"])

		login := f.exec.Execute(context.Background(), graph.Request{
			Query: `mutation { login(email: "new@demo.com", password: "secret99") }`,
		})
		require.Empty(t, login.Errors)
		assert.NotEmpty(t, login.Data["login"])
	})
}

func TestExecutorRequestShapes(t *testing.T) {
	f := setupFixture(t)
	ctx := f.ctxFor(t, f.employeeToken)

	t.Run("empty query", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{})
		require.NotEmpty(t, resp.Errors)
	})

	t.Run("unknown field fails validation", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{Query: `{ salaries { id } }`})
		require.NotEmpty(t, resp.Errors)
	})

	t.Run("multiple operations need a name", func(t *testing.T) {
		query := `query A { me { id } } query B { me { email } }`

		resp := f.exec.Execute(ctx, graph.Request{Query: query})
		require.NotEmpty(t, resp.Errors)

		resp = f.exec.Execute(ctx, graph.Request{Query: query, OperationName: "B"})
		require.Empty(t, resp.Errors)
	})

	t.Run("aliases and __typename", func(t *testing.T) {
		resp := f.exec.Execute(ctx, graph.Request{
			Query: `{ viewer: me { __typename email } __typename }`,
		})
		require.Empty(t, resp.Errors)

		assert.Equal(t, "Query", resp.Data["__typename"])
		viewer := resp.Data["viewer"].(map[string]any)
		assert.Equal(t, "User", viewer["__typename"])
	})
}

func TestExpiredTokenSurfacesCause(t *testing.T) {
	f := setupFixture(t)

	ctx := auth.WithTokenError(context.Background(), auth.ErrTokenExpired)
	resp := f.exec.Execute(ctx, graph.Request{Query: `{ employees { id } }`})

	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, resp))
	assert.Equal(t, "token is expired", resp.Errors[0].Message)
}
