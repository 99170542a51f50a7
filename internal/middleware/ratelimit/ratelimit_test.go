package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestNew_RejectsWhenBucketExhausted(t *testing.T) {
	t.Parallel()

	e := echo.New()
	limited := New(rate.Limit(0), 2)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})

	do := func() error {
		req := httptest.NewRequest(http.MethodPost, "/Auth/Login", nil)
		rec := httptest.NewRecorder()
		return limited(e.NewContext(req, rec))
	}

	require.NoError(t, do())
	require.NoError(t, do())

	err := do()
	require.Error(t, err)
	httpErr, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)
}
