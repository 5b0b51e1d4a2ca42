package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/resourcehub/resource-api/internal/core/domain"
	"github.com/resourcehub/resource-api/internal/core/ports"
	"github.com/resourcehub/resource-api/internal/core/service"
)

// ---------------------------------------------------------------------------
// In-memory backends wired under the real router
// ---------------------------------------------------------------------------

type memUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUserExists
	}
	r.nextID++
	created := *user
	created.ID = "u" + strconv.Itoa(r.nextID)
	clone := created
	r.users[created.Username] = &clone
	return &created, nil
}

func (r *memUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[username]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memUserRepo) setRole(username string, role domain.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[username].Role = role
}

type memResourceRepo struct {
	mu     sync.Mutex
	byID   map[string]*domain.Resource
	nextID int
}

func newMemResourceRepo() *memResourceRepo {
	return &memResourceRepo{byID: make(map[string]*domain.Resource)}
}

func (r *memResourceRepo) Create(_ context.Context, resource *domain.Resource) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	created := *resource
	created.ID = "r" + strconv.Itoa(r.nextID)
	clone := created
	r.byID[created.ID] = &clone
	return &created, nil
}

func (r *memResourceRepo) FindByID(_ context.Context, id string) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	clone := *resource
	return &clone, nil
}

func (r *memResourceRepo) List(_ context.Context) ([]*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*domain.Resource, 0, len(r.byID))
	for _, resource := range r.byID {
		clone := *resource
		out = append(out, &clone)
	}
	return out, nil
}

func (r *memResourceRepo) Update(_ context.Context, id string, update ports.ResourceUpdate) (*domain.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	resource, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrResourceNotFound
	}
	if update.Name != nil {
		resource.Name = *update.Name
	}
	if update.Description != nil {
		resource.Description = *update.Description
	}
	resource.UpdatedAt = time.Now().UTC()
	clone := *resource
	return &clone, nil
}

func (r *memResourceRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return domain.ErrResourceNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *memResourceRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.byID)
}

type memRevocations struct {
	mu      sync.Mutex
	revoked map[string]bool
}

func newMemRevocations() *memRevocations {
	return &memRevocations{revoked: make(map[string]bool)}
}

func (s *memRevocations) IsRevoked(_ context.Context, jti string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.revoked[jti], nil
}

func (s *memRevocations) Revoke(_ context.Context, jti string, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.revoked[jti] = true
	return nil
}

// ---------------------------------------------------------------------------
// Harness
// ---------------------------------------------------------------------------

type apiHarness struct {
	e         *echo.Echo
	userRepo  *memUserRepo
	resources *memResourceRepo
}

func newAPIHarness(t *testing.T) *apiHarness {
	t.Helper()
	userRepo := newMemUserRepo()
	resourceRepo := newMemResourceRepo()

	authService := service.NewAuthService(userRepo, newMemRevocations(), "test-secret", time.Hour, 24*time.Hour)
	resourceService := service.NewResourceService(resourceRepo, nil, zerolog.Nop())

	e := NewRouter(Deps{
		AuthService:     authService,
		ResourceService: resourceService,
		JWTSecret:       "test-secret",
		Logger:          zerolog.Nop(),
		Registry:        prometheus.NewRegistry(),
	})
	return &apiHarness{e: e, userRepo: userRepo, resources: resourceRepo}
}

func (h *apiHarness) do(method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.e.ServeHTTP(rec, req)
	return rec
}

// register creates an account, optionally promotes it, and returns an access
// token obtained through a real login.
func (h *apiHarness) registerAndLogin(t *testing.T, username string, role domain.Role) string {
	t.Helper()
	rec := h.do(http.MethodPost, "/auth/register", "",
		`{"username":"`+username+`","password":"pass12345"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", username, rec.Code, rec.Body.String())
	}
	if role != domain.RoleUser {
		h.userRepo.setRole(username, role)
	}

	rec = h.do(http.MethodPost, "/auth/login", "",
		`{"username":"`+username+`","password":"pass12345"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login %s: expected 200, got %d: %s", username, rec.Code, rec.Body.String())
	}
	var resp struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.Access
}

// ---------------------------------------------------------------------------
// Scenarios
// ---------------------------------------------------------------------------

func TestAPI_RegisterIgnoresRoleField(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodPost, "/auth/register", "",
		`{"username":"mallory","password":"pass12345","role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Role != domain.RoleUser {
		t.Fatalf("role injection succeeded: %q", user.Role)
	}
}

func TestAPI_UnauthenticatedRequestsRejected(t *testing.T) {
	h := newAPIHarness(t)

	for _, tc := range []struct{ method, path string }{
		{http.MethodGet, "/v1/resources"},
		{http.MethodPost, "/v1/resources"},
		{http.MethodGet, "/v1/resources/r1"},
		{http.MethodDelete, "/v1/resources/r1"},
		{http.MethodGet, "/me"},
	} {
		rec := h.do(tc.method, tc.path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: expected 401, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestAPI_ResourceLifecycleAcrossRoles(t *testing.T) {
	h := newAPIHarness(t)
	adminToken := h.registerAndLogin(t, "admin1", domain.RoleAdmin)
	managerToken := h.registerAndLogin(t, "manager1", domain.RoleManager)
	userToken := h.registerAndLogin(t, "user1", domain.RoleUser)

	// Admin creates.
	rec := h.do(http.MethodPost, "/v1/resources", adminToken,
		`{"name":"Shared Plan","description":"initial"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("admin create: expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var created domain.Resource
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created resource: %v", err)
	}
	if created.CreatedBy == "" {
		t.Fatal("created_by must be stamped")
	}

	// Everyone can read.
	for name, token := range map[string]string{"admin": adminToken, "manager": managerToken, "user": userToken} {
		rec = h.do(http.MethodGet, "/v1/resources/"+created.ID, token, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s retrieve: expected 200, got %d", name, rec.Code)
		}
		rec = h.do(http.MethodGet, "/v1/resources", token, "")
		if rec.Code != http.StatusOK {
			t.Errorf("%s list: expected 200, got %d", name, rec.Code)
		}
	}

	// Manager may patch.
	rec = h.do(http.MethodPatch, "/v1/resources/"+created.ID, managerToken,
		`{"name":"Manager Renamed"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("manager patch: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// A plain user may not patch, and the denial must leave no trace.
	rec = h.do(http.MethodPatch, "/v1/resources/"+created.ID, userToken,
		`{"name":"User Attempted"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("user patch: expected 403, got %d", rec.Code)
	}
	rec = h.do(http.MethodGet, "/v1/resources/"+created.ID, userToken, "")
	var after domain.Resource
	_ = json.Unmarshal(rec.Body.Bytes(), &after)
	if after.Name != "Manager Renamed" {
		t.Fatalf("denied write mutated state: %q", after.Name)
	}

	// Manager may not create.
	before := h.resources.count()
	rec = h.do(http.MethodPost, "/v1/resources", managerToken, `{"name":"x","description":"y"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("manager create: expected 403, got %d", rec.Code)
	}
	if h.resources.count() != before {
		t.Fatal("denied create must not touch the store")
	}

	// Manager may not delete; admin may.
	rec = h.do(http.MethodDelete, "/v1/resources/"+created.ID, managerToken, "")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("manager delete: expected 403, got %d", rec.Code)
	}
	rec = h.do(http.MethodDelete, "/v1/resources/"+created.ID, adminToken, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("admin delete: expected 204, got %d", rec.Code)
	}
	rec = h.do(http.MethodGet, "/v1/resources/"+created.ID, adminToken, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestAPI_FullUpdateRequiresAllFields(t *testing.T) {
	h := newAPIHarness(t)
	adminToken := h.registerAndLogin(t, "admin2", domain.RoleAdmin)

	rec := h.do(http.MethodPost, "/v1/resources", adminToken, `{"name":"a","description":"b"}`)
	var created domain.Resource
	_ = json.Unmarshal(rec.Body.Bytes(), &created)

	// PUT with a missing field is a validation error, not a partial write.
	rec = h.do(http.MethodPut, "/v1/resources/"+created.ID, adminToken, `{"name":"only-name"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(http.MethodPut, "/v1/resources/"+created.ID, adminToken,
		`{"name":"full","description":"replace"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAPI_RefreshRotationAndReplay(t *testing.T) {
	h := newAPIHarness(t)
	_ = h.registerAndLogin(t, "rotator", domain.RoleUser)

	rec := h.do(http.MethodPost, "/auth/login", "",
		`{"username":"rotator","password":"pass12345"}`)
	var login struct {
		Refresh string `json:"refresh"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}

	rec = h.do(http.MethodPost, "/auth/refresh", "", `{"refresh":"`+login.Refresh+`"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("first refresh: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = h.do(http.MethodPost, "/auth/refresh", "", `{"refresh":"`+login.Refresh+`"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("replayed refresh: expected 401, got %d", rec.Code)
	}
}

func TestAPI_MeReflectsCaller(t *testing.T) {
	h := newAPIHarness(t)
	token := h.registerAndLogin(t, "selfie", domain.RoleManager)

	rec := h.do(http.MethodGet, "/me", token, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var user domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &user); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if user.Username != "selfie" || user.Role != domain.RoleManager {
		t.Fatalf("unexpected identity: %+v", user)
	}
}

func TestAPI_HealthAndMetricsExposed(t *testing.T) {
	h := newAPIHarness(t)

	rec := h.do(http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", rec.Code)
	}

	rec = h.do(http.MethodGet, "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("metrics: expected 200, got %d", rec.Code)
	}
}
