package api

import (
	"net/http"
	"strconv"
	"time"

	"CreditLens/internal/domain/models"
	"CreditLens/internal/service/metrics"
	"CreditLens/internal/services/grading"
	"CreditLens/internal/usecase"
	xhttp "CreditLens/pkg/http"
	xlogger "CreditLens/pkg/logger"

	"github.com/labstack/echo/v4"
)

// ScoringEchoHandler serves loan scoring, banknote authentication and grade lookups.
type ScoringEchoHandler struct {
	logger  *xlogger.Logger
	loans   *usecase.LoanScoringUseCase
	notes   *usecase.BanknoteUseCase
	catalog *usecase.Catalog
}

func NewScoringEchoHandler(logger *xlogger.Logger, loans *usecase.LoanScoringUseCase, notes *usecase.BanknoteUseCase, catalog *usecase.Catalog) *ScoringEchoHandler {
	if logger == nil {
		logger = xlogger.Nop()
	}
	metrics.Register()
	return &ScoringEchoHandler{logger: logger, loans: loans, notes: notes, catalog: catalog}
}

func (h *ScoringEchoHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/loan/score", h.ScoreLoan)
	g.POST("/banknote/authenticate", h.AuthenticateBanknote)
	g.GET("/grade", h.Grade)
	g.GET("/models", h.Models)
}

// ScoreLoan scores the JSON application in the body.
// Query: model selects the variant, include_vector=true echoes the assembled row.
func (h *ScoringEchoHandler) ScoreLoan(c echo.Context) error {
	const endpoint = "loan_score"
	defer observe(endpoint, time.Now())

	q := models.ScoreQuery{Model: c.QueryParam("model")}
	var flagErr []xhttp.ValidationError
	if q.IncludeVector, flagErr = includeVector(c); flagErr != nil {
		return h.badRequest(c, endpoint, flagErr)
	}

	app := &models.LoanApplication{}
	if verr := xhttp.ReadAndValidateRequest(c, app); verr != nil {
		return h.badRequest(c, endpoint, verr)
	}

	res, err := h.loans.Score(c.Request().Context(), *app, q.Model)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	if !q.IncludeVector {
		res.Features = nil
	}
	return xhttp.SuccessResponse(c, res)
}

func (h *ScoringEchoHandler) AuthenticateBanknote(c echo.Context) error {
	const endpoint = "banknote_authenticate"
	defer observe(endpoint, time.Now())

	withVector, flagErr := includeVector(c)
	if flagErr != nil {
		return h.badRequest(c, endpoint, flagErr)
	}
	note := &models.Banknote{}
	if verr := xhttp.ReadAndValidateRequest(c, note); verr != nil {
		return h.badRequest(c, endpoint, verr)
	}
	res, err := h.notes.Authenticate(c.Request().Context(), *note)
	if err != nil {
		return h.fail(c, endpoint, err)
	}
	if !withVector {
		res.Features = nil
	}
	return xhttp.SuccessResponse(c, res)
}

// Grade derives the grade band from dti, or from annual_income and monthly_debt.
func (h *ScoringEchoHandler) Grade(c echo.Context) error {
	const endpoint = "grade"
	defer observe(endpoint, time.Now())

	req := &models.GradeRequest{}
	var verrs []xhttp.ValidationError
	for _, p := range []struct {
		name string
		dst  **float64
	}{
		{"dti", &req.DTI},
		{"annual_income", &req.AnnualIncome},
		{"monthly_debt", &req.MonthlyDebt},
	} {
		name := p.name
		raw := c.QueryParam(name)
		if raw == "" {
			continue
		}
		v, ok := xhttp.ParseFloat(raw)
		if !ok {
			verrs = append(verrs, xhttp.ValidationError{Code: "ERR_NUMBER", Field: name, Message: name + " must be a number"})
			continue
		}
		*p.dst = &v
	}
	if len(verrs) > 0 {
		return h.badRequest(c, endpoint, verrs)
	}
	if verr := xhttp.Validate(req); verr != nil {
		return h.badRequest(c, endpoint, verr)
	}

	var dti float64
	switch {
	case req.DTI != nil:
		dti = *req.DTI
	case req.AnnualIncome != nil && req.MonthlyDebt != nil:
		dti = grading.ComputeDTI(*req.MonthlyDebt, *req.AnnualIncome)
	default:
		return h.badRequest(c, endpoint, []xhttp.ValidationError{{
			Code:    "ERR_REQUIRED",
			Field:   "dti",
			Message: "dti, or annual_income together with monthly_debt, is required",
		}})
	}
	return xhttp.SuccessResponse(c, grading.Result(dti, grading.DeriveFromDTI(dti)))
}

// includeVector reads the include_vector flag. Absent means false.
func includeVector(c echo.Context) (bool, []xhttp.ValidationError) {
	raw := c.QueryParam("include_vector")
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, []xhttp.ValidationError{{
			Code:    "ERR_BOOLEAN",
			Field:   "include_vector",
			Message: "include_vector must be true or false",
		}}
	}
	return v, nil
}

type modelsResponse struct {
	Default  string             `json:"default"`
	Models   []models.ModelInfo `json:"models"`
	Banknote *models.ModelInfo  `json:"banknote,omitempty"`
}

func (h *ScoringEchoHandler) Models(c echo.Context) error {
	resp := modelsResponse{Default: h.catalog.DefaultModel(), Models: h.catalog.Models()}
	if info, ok := h.catalog.BanknoteInfo(); ok {
		resp.Banknote = &info
	}
	return xhttp.SuccessResponse(c, resp)
}

// Health reports ready when the default loan variant can serve.
func (h *ScoringEchoHandler) Health(c echo.Context) error {
	if _, err := h.catalog.Variant(""); err != nil {
		return xhttp.DataResponse(c, http.StatusServiceUnavailable, map[string]string{
			"status": "degraded",
			"error":  err.Error(),
		})
	}
	return xhttp.SuccessResponse(c, map[string]string{"status": "ok"})
}

func (h *ScoringEchoHandler) badRequest(c echo.Context, endpoint string, verr interface{}) error {
	metrics.EndpointErrors.WithLabelValues(endpoint, strconv.Itoa(http.StatusBadRequest)).Inc()
	return xhttp.BadRequestResponse(c, verr)
}

func (h *ScoringEchoHandler) fail(c echo.Context, endpoint string, err error) error {
	appErr := toAppError(err)
	metrics.EndpointErrors.WithLabelValues(endpoint, strconv.Itoa(appErr.Status)).Inc()
	fields := []xlogger.Field{
		xlogger.String("endpoint", endpoint),
		xlogger.Int("status", appErr.Status),
		xlogger.Error(err),
	}
	if appErr.Status >= http.StatusInternalServerError {
		h.logger.Error("scoring request failed", fields...)
	} else {
		h.logger.Warn("scoring request rejected", fields...)
	}
	return xhttp.AppErrorResponse(c, appErr)
}

func observe(endpoint string, start time.Time) {
	metrics.EndpointLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
