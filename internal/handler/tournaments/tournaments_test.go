package tournaments

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"poker-log/internal/middleware"
	"poker-log/internal/model"
	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

type call struct {
	op    string
	actor service.Identity
	id    string
	in    service.TournamentInput
}

type fakeWorkflow struct {
	calls []call
	res   service.Result
	list  []model.Tournament
	item  *model.Tournament
}

func (f *fakeWorkflow) Create(_ context.Context, actor service.Identity, in service.TournamentInput) service.Result {
	f.calls = append(f.calls, call{op: "create", actor: actor, in: in})
	return f.res
}

func (f *fakeWorkflow) Update(_ context.Context, actor service.Identity, id string, in service.TournamentInput) service.Result {
	f.calls = append(f.calls, call{op: "update", actor: actor, id: id, in: in})
	return f.res
}

func (f *fakeWorkflow) Delete(_ context.Context, actor service.Identity, id string) service.Result {
	f.calls = append(f.calls, call{op: "delete", actor: actor, id: id})
	return f.res
}

func (f *fakeWorkflow) List(_ context.Context, actor service.Identity) ([]model.Tournament, service.Result) {
	f.calls = append(f.calls, call{op: "list", actor: actor})
	return f.list, f.res
}

func (f *fakeWorkflow) Get(_ context.Context, actor service.Identity, id string) (*model.Tournament, service.Result) {
	f.calls = append(f.calls, call{op: "get", actor: actor, id: id})
	return f.item, f.res
}

var alice = service.Identity{UserID: "u-1", Email: "alice@example.com"}

var okResult = service.Result{Success: true, Code: service.CodeOK}

func newCtx(method, contentType, body string, identity service.Identity, id string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextIdentityKey, identity)
	if id != "" {
		c.SetParamNames("id")
		c.SetParamValues(id)
	}
	return c, rec
}

func TestCreateHandler(t *testing.T) {
	t.Run("form", func(t *testing.T) {
		w := &fakeWorkflow{res: service.Result{Success: true, ID: "t-1", Code: service.CodeOK}}
		c, rec := newCtx(http.MethodPost, echo.MIMEApplicationForm, "name=Weekend&date=2024-01-01T10%3A00&buyIn=5000", alice, "")
		require.NoError(t, CreateHandler(w)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, service.TournamentInput{Name: "Weekend", Date: "2024-01-01T10:00", BuyIn: "5000"}, w.calls[0].in)
		require.Equal(t, alice, w.calls[0].actor)
	})

	t.Run("json with numeric buy-in", func(t *testing.T) {
		w := &fakeWorkflow{res: okResult}
		c, rec := newCtx(http.MethodPost, echo.MIMEApplicationJSON, `{"name":"Weekend","date":"2024-01-01T10:00","buyIn":5000}`, alice, "")
		require.NoError(t, CreateHandler(w)(c))
		require.Equal(t, http.StatusCreated, rec.Code)
		require.Equal(t, "5000", w.calls[0].in.BuyIn)
	})

	t.Run("validation failure", func(t *testing.T) {
		w := &fakeWorkflow{res: service.Result{Error: "please enter a tournament name", Code: service.CodeValidation}}
		c, rec := newCtx(http.MethodPost, echo.MIMEApplicationForm, "name=", alice, "")
		require.NoError(t, CreateHandler(w)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Contains(t, rec.Body.String(), "please enter a tournament name")
	})

	t.Run("malformed body when signed in", func(t *testing.T) {
		w := &fakeWorkflow{res: okResult}
		c, rec := newCtx(http.MethodPost, echo.MIMEApplicationJSON, `{"name":`, alice, "")
		require.NoError(t, CreateHandler(w)(c))
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Empty(t, w.calls)
	})

	t.Run("malformed body when signed out", func(t *testing.T) {
		w := &fakeWorkflow{res: service.Result{Error: "login required", Redirect: service.LoginPath, Code: service.CodeAuthentication}}
		c, rec := newCtx(http.MethodPost, echo.MIMEApplicationJSON, `{"name":`, service.Identity{}, "")
		require.NoError(t, CreateHandler(w)(c))
		require.Equal(t, http.StatusUnauthorized, rec.Code)
		require.Len(t, w.calls, 1)
		require.Contains(t, rec.Body.String(), `"redirect":"/login"`)
	})
}

func TestUpdateHandler(t *testing.T) {
	w := &fakeWorkflow{res: service.Result{Success: true, ID: "t-1", Redirect: "/mypage/tournaments/t-1", Code: service.CodeOK}}
	c, rec := newCtx(http.MethodPut, echo.MIMEApplicationForm, "name=New&date=2024-06-01&buyIn=1", alice, "t-1")
	require.NoError(t, UpdateHandler(w)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "t-1", w.calls[0].id)
	require.Equal(t, "New", w.calls[0].in.Name)
	require.Contains(t, rec.Body.String(), `"redirect":"/mypage/tournaments/t-1"`)

	w = &fakeWorkflow{res: service.Result{Error: "you do not have permission to update this tournament", Code: service.CodeAuthorization}}
	c, rec = newCtx(http.MethodPut, echo.MIMEApplicationForm, "name=New&date=2024-06-01", alice, "t-2")
	require.NoError(t, UpdateHandler(w)(c))
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteHandler(t *testing.T) {
	w := &fakeWorkflow{res: service.Result{Success: true, Redirect: service.ListPath, Code: service.CodeOK}}
	c, rec := newCtx(http.MethodDelete, "", "", alice, "t-1")
	require.NoError(t, DeleteHandler(w)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, call{op: "delete", actor: alice, id: "t-1"}, w.calls[0])

	w = &fakeWorkflow{res: service.Result{Error: "tournament not found", Code: service.CodeNotFound}}
	c, rec = newCtx(http.MethodDelete, "", "", alice, "missing")
	require.NoError(t, DeleteHandler(w)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListHandler(t *testing.T) {
	date := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	w := &fakeWorkflow{res: okResult, list: []model.Tournament{{ID: "t-1", UserID: "u-1", Name: "Weekend", Date: date, BuyIn: 5000}}}
	c, rec := newCtx(http.MethodGet, "", "", alice, "")
	require.NoError(t, ListHandler(w)(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var body []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body, 1)
	require.Equal(t, "Weekend", body[0]["name"])
	require.Equal(t, 5000.0, body[0]["buyIn"])
	require.Equal(t, "2024-01-01T10:00:00Z", body[0]["date"])

	w = &fakeWorkflow{res: service.Result{Error: "failed to load tournaments", Code: service.CodePersistence}}
	c, rec = newCtx(http.MethodGet, "", "", alice, "")
	require.NoError(t, ListHandler(w)(c))
	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetHandler(t *testing.T) {
	w := &fakeWorkflow{res: okResult, item: &model.Tournament{ID: "t-1", Name: "Weekend"}}
	c, rec := newCtx(http.MethodGet, "", "", alice, "t-1")
	require.NoError(t, GetHandler(w)(c))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"name":"Weekend"`)

	w = &fakeWorkflow{res: service.Result{Error: "tournament not found", Redirect: service.ListPath, Code: service.CodeNotFound}}
	c, rec = newCtx(http.MethodGet, "", "", alice, "t-9")
	require.NoError(t, GetHandler(w)(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), `"redirect":"/mypage"`)
}
