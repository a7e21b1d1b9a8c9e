package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ims-backend/internal/application/dto"
	"github.com/jhoicas/ims-backend/internal/domain"
)

// errorResponseFor pasa el error por writeError y devuelve status y body.
func errorResponseFor(t *testing.T, err error) (int, dto.ErrorResponse) {
	t.Helper()
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error {
		return writeError(c, err)
	})

	resp, reqErr := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, reqErr)
	defer resp.Body.Close()

	var body dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestWriteError_MapeoDeDominio(t *testing.T) {
	cases := []struct {
		err        error
		wantStatus int
		wantCode   string
	}{
		{domain.ErrMissingFields, http.StatusBadRequest, "MISSING_FIELDS"},
		{domain.ErrInvalidType, http.StatusBadRequest, "INVALID_TYPE"},
		{domain.ErrInsufficientStock, http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION"},
		{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
		{domain.ErrDuplicate, http.StatusConflict, "DUPLICATE"},
		{domain.ErrUnauthorized, http.StatusUnauthorized, "UNAUTHORIZED"},
		{domain.ErrForbidden, http.StatusForbidden, "FORBIDDEN"},
	}
	for _, tc := range cases {
		status, body := errorResponseFor(t, tc.err)
		assert.Equal(t, tc.wantStatus, status, "error=%v", tc.err)
		assert.Equal(t, tc.wantCode, body.Code, "error=%v", tc.err)
	}
}

func TestWriteError_ValidationErrorNombraElParametro(t *testing.T) {
	status, body := errorResponseFor(t,
		domain.NewValidationError("start_date", "fecha inválida %q", "ayer"))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.Contains(t, body.Message, "start_date")
}

func TestWriteError_InesperadoExponeElMensaje(t *testing.T) {
	status, body := errorResponseFor(t, errors.New("fallo subyacente de prueba"))

	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.Contains(t, body.Message, "fallo subyacente de prueba",
		"el 500 debe exponer el mensaje del error subyacente")
}

func TestWriteError_EnvueltoConservaElMapeo(t *testing.T) {
	// Los repos envuelven con fmt.Errorf + %w; errors.Is debe seguir mapeando.
	status, body := errorResponseFor(t,
		errors.Join(errors.New("contexto"), domain.ErrNotFound))

	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
