package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"github.com/state244/hub/internal/interfaces/http/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	if err := middleware.SetupValidator(); err != nil {
		panic(err)
	}
}

// newRouter returns an engine that acts as if profile were authenticated.
// A nil profile gives an anonymous caller.
func newRouter(profile *membership.Profile) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID(), func(c *gin.Context) {
		if profile != nil {
			c.Set(middleware.ProfileKey, profile)
		}
		c.Next()
	})
	return r
}

func as(role membership.Role, allianceID *uuid.UUID) *membership.Profile {
	p := membership.NewProfile(uuid.New(), fmt.Sprintf("%s@example.com", role))
	p.Role = role
	p.AllianceID = allianceID
	return p
}

func perform(r http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp), rec.Body.String())
	return resp
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	resp := decodeBody(t, rec)
	data, ok := resp.Data.(map[string]any)
	require.True(t, ok, "data is %T", resp.Data)
	return data
}

func TestBaseHandler_HandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"not found", shared.NewNotFoundError("alliance"), http.StatusNotFound, dto.ErrCodeNotFound, "alliance not found"},
		{"wrapped conflict", fmt.Errorf("vote: %w", shared.NewConflictError("already voted")), http.StatusConflict, dto.ErrCodeAlreadyExists, "already voted"},
		{"invalid state", shared.NewInvalidStateError("application is %s", "rejected"), http.StatusUnprocessableEntity, dto.ErrCodeInvalidState, "application is rejected"},
		{"rate limited", shared.NewRateLimitError("quota exhausted"), http.StatusTooManyRequests, dto.ErrCodeRateLimited, "quota exhausted"},
		{"unavailable", shared.ErrUnavailable, http.StatusServiceUnavailable, dto.ErrCodeUnavailable, "Service is not configured"},
		{"forbidden", shared.NewForbiddenError("officers only"), http.StatusForbidden, dto.ErrCodeForbidden, "officers only"},
		{"plain error hides details", errors.New("pq: connection reset"), http.StatusInternalServerError, dto.ErrCodeInternal, "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &BaseHandler{}
			r := newRouter(nil)
			r.GET("/x", func(c *gin.Context) { h.HandleError(c, tt.err) })

			rec := perform(r, http.MethodGet, "/x", nil)
			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decodeBody(t, rec)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Error)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestBaseHandler_Bind(t *testing.T) {
	type req struct {
		Name string `json:"player_name" binding:"required,max=5"`
	}
	h := &BaseHandler{}
	r := newRouter(nil)
	r.POST("/x", func(c *gin.Context) {
		var body req
		if !h.bindJSON(c, &body) {
			return
		}
		h.Created(c, body)
	})

	rec := perform(r, http.MethodPost, "/x", `{"player_name":"toolongname"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, dto.ErrCodeValidation, body.Code)
	require.Len(t, body.Details, 1)
	assert.Equal(t, "player_name", body.Details[0].Field)

	rec = perform(r, http.MethodPost, "/x", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, dto.ErrCodeInvalidJSON, decodeBody(t, rec).Code)

	rec = perform(r, http.MethodPost, "/x", `{"player_name":"ok"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
}
