package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Income *float64 `json:"annual_inc" validate:"required,gte=1000"`
	Term   int      `json:"term_numeric" default:"36" validate:"oneof=36 60"`
	Name   string   `json:"name" validate:"required"`
}

func TestValidateReportsWireNames(t *testing.T) {
	req := &sample{}
	errs, ok := Validate(req).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 2)

	fields := []string{errs[0].Field, errs[1].Field}
	assert.ElementsMatch(t, []string{"annual_inc", "name"}, fields)
	assert.Equal(t, "ERR_REQUIRED", errs[0].Code)
	assert.Equal(t, 36, req.Term, "defaults applied before validation")
}

func TestValidateZeroPointerIsPresent(t *testing.T) {
	zero := 0.0
	req := &sample{Income: &zero, Name: "x"}
	errs, ok := Validate(req).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "annual_inc", errs[0].Field)
	assert.Equal(t, "ERR_GTE", errs[0].Code)
	assert.Equal(t, "1000", errs[0].Params["min"])
}

func TestReadAndValidateRequest(t *testing.T) {
	e := echo.New()
	body := `{"annual_inc": 50000, "name": "a", "term_numeric": 48}`
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	var s sample
	errs, ok := ReadAndValidateRequest(c, &s).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "term_numeric", errs[0].Field)
	assert.Equal(t, []string{"36", "60"}, errs[0].Params["options"])
}

func TestReadAndValidateRequestMalformedBody(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"annual_inc": "lots"`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	errs, ok := ReadAndValidateRequest(c, &sample{}).([]ValidationError)
	require.True(t, ok)
	require.Len(t, errs, 1)
	assert.Equal(t, "ERR_UNKNOWN", errs[0].Code)
}

func TestAppErrorResponseUsesStatus(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	cause := errors.New("no such category")
	appErr := UnprocessableError("ERR_UNSEEN_CATEGORY", "purpose", "purpose not seen in training").
		WithParam("value", "space_travel").
		WithError(cause)
	require.NoError(t, AppErrorResponse(c, appErr))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var body APIResponseAppErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, http.StatusUnprocessableEntity, body.Status)
	require.Len(t, body.Data, 1)
	assert.Equal(t, "purpose", body.Data[0].Field)
	assert.Equal(t, "space_travel", body.Data[0].Params["value"])
	assert.ErrorIs(t, appErr, cause)
}

func TestAppErrorResponsePlainError(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	require.NoError(t, AppErrorResponse(c, errors.New("boom")))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.NotContains(t, rec.Body.String(), "boom")
}

func TestClientSendAndParse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "test-agent", r.Header.Get("User-Agent"))
		assert.Equal(t, http.MethodPost, r.Method)
		b, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(b)
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("test-agent"))
	var out map[string]float64
	err := c.SendAndParse(context.Background(), &RequestOptions{
		Method: http.MethodPost,
		URL:    srv.URL,
		Body:   map[string]float64{"x": 1.5},
	}, &out)
	require.NoError(t, err)
	assert.Equal(t, 1.5, out["x"])
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model warming up", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	err := NewClient().SendAndParse(context.Background(), &RequestOptions{Method: http.MethodGet, URL: srv.URL}, &struct{}{})
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusServiceUnavailable, se.Code)
	assert.Equal(t, "model warming up", se.Body)
}

func TestClientGetSendsNoContentType(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Type"))
		assert.Equal(t, "creditlens", r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer srv.Close()

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, NewClient().SendAndParse(context.Background(), &RequestOptions{Method: http.MethodGet, URL: srv.URL}, &out))
	assert.True(t, out.OK)
}

type routes struct{ called *bool }

func (r routes) RegisterRoutes(e *echo.Echo) {
	e.GET("/ping", func(c echo.Context) error {
		*r.called = true
		return SuccessResponse(c, "pong")
	})
}

func TestServerRoutesAndMetrics(t *testing.T) {
	called := false
	srv := NewServer(Handlers{routes{&called}, nil}, WithMetrics("/metrics", 0))

	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)

	rec = httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `http_requests_total{method="GET",path="/ping",status="200"}`)
}
