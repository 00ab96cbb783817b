package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"poker-log/internal/model"
	"poker-log/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

func TestStatusFor(t *testing.T) {
	cases := map[string]int{
		service.CodeOK:             http.StatusOK,
		service.CodeValidation:     http.StatusBadRequest,
		service.CodeAuthentication: http.StatusUnauthorized,
		service.CodeAuthorization:  http.StatusForbidden,
		service.CodeNotFound:       http.StatusNotFound,
		service.CodeConflict:       http.StatusConflict,
		service.CodePersistence:    http.StatusInternalServerError,
		"WHATEVER":                 http.StatusInternalServerError,
	}
	for code, want := range cases {
		require.Equal(t, want, StatusFor(code), code)
	}
}

func TestRespond(t *testing.T) {
	e := echo.New()

	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	require.NoError(t, Respond(c, service.Result{Success: true, ID: "t-1", Code: service.CodeOK}, http.StatusCreated))
	require.Equal(t, http.StatusCreated, rec.Code)
	require.JSONEq(t, `{"success":true,"id":"t-1","code":"OK"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	c = e.NewContext(httptest.NewRequest(http.MethodPost, "/", nil), rec)
	res := service.Result{Error: "login required", Redirect: "/login", Code: service.CodeAuthentication}
	require.NoError(t, Respond(c, res, http.StatusCreated))
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.JSONEq(t, `{"error":"login required","redirect":"/login","code":"AUTHENTICATION"}`, rec.Body.String())
}

func TestFormValueJSON(t *testing.T) {
	var req TournamentRequest
	require.NoError(t, json.Unmarshal([]byte(`{"name":"Weekend","date":"2024-01-01T10:00","buyIn":5000}`), &req))
	require.Equal(t, service.TournamentInput{Name: "Weekend", Date: "2024-01-01T10:00", BuyIn: "5000"}, req.Input())

	require.NoError(t, json.Unmarshal([]byte(`{"name":null,"buyIn":"12.0"}`), &req))
	require.Equal(t, FormValue(""), req.Name)
	require.Equal(t, FormValue("12.0"), req.BuyIn)

	require.Error(t, json.Unmarshal([]byte(`{"buyIn":true}`), &req))
}

func TestNewTournamentList(t *testing.T) {
	list := NewTournamentList([]model.Tournament{{ID: "a", BuyIn: 1}, {ID: "b", BuyIn: 2}})
	require.Len(t, list, 2)
	require.Equal(t, "b", list[1].ID)
	require.Equal(t, int64(2), list[1].BuyIn)

	empty := NewTournamentList(nil)
	require.NotNil(t, empty)
	body, err := json.Marshal(empty)
	require.NoError(t, err)
	require.Equal(t, "[]", string(body))
}
