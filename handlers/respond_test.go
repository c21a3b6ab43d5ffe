package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"infostore/services"
)

func TestRespondErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		err    error
		status int
		body   string
	}{
		{fmt.Errorf("cart not found: %w", services.ErrNotFound), http.StatusNotFound, "cart not found"},
		{fmt.Errorf("bad quantity: %w", services.ErrInvalidArgument), http.StatusBadRequest, "bad quantity"},
		{fmt.Errorf("not yours: %w", services.ErrForbidden), http.StatusForbidden, "not yours"},
		{fmt.Errorf("cart is empty: %w", services.ErrInvalidState), http.StatusBadRequest, "cart is empty"},
		{fmt.Errorf("taken: %w", services.ErrAlreadyExists), http.StatusConflict, "taken"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

		respondError(c, tc.err)

		assert.Equal(t, tc.status, w.Code, "error %v", tc.err)
		assert.Contains(t, w.Body.String(), tc.body)
	}
}

func TestRespondErrorHidesInternals(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/v1/products", nil)

	respondError(c, errors.New("dial tcp 127.0.0.1:3306: connection refused"))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
	assert.NotContains(t, w.Body.String(), "3306")
}
