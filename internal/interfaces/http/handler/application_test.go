package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	recruitmentapp "github.com/state244/hub/internal/application/recruitment"
	"github.com/state244/hub/internal/domain/membership"
	"github.com/state244/hub/internal/domain/shared"
	"github.com/state244/hub/internal/interfaces/http/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newApplicationRouter(actor *membership.Profile, apps *MockApplicationUseCases) http.Handler {
	h := NewApplicationHandler(apps)
	h.now = func() time.Time { return time.Date(2026, 10, 1, 8, 0, 0, 0, time.UTC) }
	r := newRouter(actor)
	r.POST("/applications", h.Submit)
	r.GET("/applications", h.List)
	r.GET("/applications/export", h.Export)
	r.GET("/applications/:id", h.Get)
	r.GET("/applications/:id/status", h.Status)
	r.POST("/applications/:id/withdraw", h.Withdraw)
	r.POST("/applications/:id/alliance-review", h.AllianceReview)
	r.POST("/applications/:id/president-review", h.PresidentReview)
	return r
}

func validSubmission(target uuid.UUID) map[string]any {
	return map[string]any{
		"player_name":        "FrostBite",
		"game_player_id":     "123456789",
		"current_state":      611,
		"furnace_level":      30,
		"power":              85000000,
		"target_alliance_id": target.String(),
		"message":            "Looking for an active SvS alliance",
	}
}

func TestApplicationHandler_Submit(t *testing.T) {
	target := uuid.New()

	t.Run("anonymous submission returns the tracking code once", func(t *testing.T) {
		apps := new(MockApplicationUseCases)
		apps.On("Submit", mock.Anything, mock.MatchedBy(func(id *uuid.UUID) bool { return id == nil }),
			mock.MatchedBy(func(in recruitmentapp.SubmitInput) bool {
				return in.PlayerName == "FrostBite" && in.TargetAllianceID == target && in.FurnaceLevel == 30 && in.Power == 85000000
			})).
			Return(&recruitmentapp.SubmitResponse{
				Application:  recruitmentapp.ApplicationResponse{ID: uuid.New(), Status: "pending"},
				TrackingCode: "k3Jx9",
			}, nil)

		rec := perform(newApplicationRouter(nil, apps), http.MethodPost, "/applications", validSubmission(target))

		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		data := decodeData(t, rec)
		assert.Equal(t, "k3Jx9", data["tracking_code"])
		apps.AssertExpectations(t)
	})

	t.Run("signed in applicant is linked", func(t *testing.T) {
		actor := as(membership.RoleUser, nil)
		apps := new(MockApplicationUseCases)
		apps.On("Submit", mock.Anything, &actor.ID, mock.Anything).
			Return(&recruitmentapp.SubmitResponse{TrackingCode: "abc"}, nil)

		rec := perform(newApplicationRouter(actor, apps), http.MethodPost, "/applications", validSubmission(target))
		assert.Equal(t, http.StatusCreated, rec.Code)
		apps.AssertExpectations(t)
	})

	t.Run("furnace level out of range", func(t *testing.T) {
		body := validSubmission(target)
		body["furnace_level"] = 40
		rec := perform(newApplicationRouter(nil, new(MockApplicationUseCases)), http.MethodPost, "/applications", body)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeBody(t, rec)
		require.Len(t, resp.Details, 1)
		assert.Equal(t, "furnace_level", resp.Details[0].Field)
	})

	t.Run("closed alliance", func(t *testing.T) {
		apps := new(MockApplicationUseCases)
		apps.On("Submit", mock.Anything, mock.Anything, mock.Anything).
			Return(nil, shared.NewInvalidStateError("alliance is not recruiting"))

		rec := perform(newApplicationRouter(nil, apps), http.MethodPost, "/applications", validSubmission(target))
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		assert.Equal(t, dto.ErrCodeInvalidState, decodeBody(t, rec).Code)
	})
}

func TestApplicationHandler_StatusAndWithdraw(t *testing.T) {
	id := uuid.New()
	apps := new(MockApplicationUseCases)
	apps.On("Status", mock.Anything, id, "good").Return(&recruitmentapp.StatusResponse{ID: id, Status: "pending"}, nil)
	apps.On("Status", mock.Anything, id, "bad").Return(nil, shared.NewNotFoundError("application"))
	apps.On("Withdraw", mock.Anything, id, "good").Return(&recruitmentapp.StatusResponse{ID: id, Status: "withdrawn"}, nil)

	r := newApplicationRouter(nil, apps)

	rec := perform(r, http.MethodGet, "/applications/"+id.String()+"/status?code=good", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "pending", decodeData(t, rec)["status"])

	rec = perform(r, http.MethodGet, "/applications/"+id.String()+"/status?code=bad", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = perform(r, http.MethodGet, "/applications/"+id.String()+"/status", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = perform(r, http.MethodPost, "/applications/"+id.String()+"/withdraw", map[string]any{"code": "good"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "withdrawn", decodeData(t, rec)["status"])
	apps.AssertExpectations(t)
}

func TestApplicationHandler_List(t *testing.T) {
	allianceID := uuid.New()
	r4 := as(membership.RoleR4, &allianceID)

	apps := new(MockApplicationUseCases)
	apps.On("List", mock.Anything, r4, recruitmentapp.ListInput{Page: 1, PageSize: 20, Status: "pending"}).
		Return(shared.Paginated[recruitmentapp.ApplicationResponse]{
			Items:    []recruitmentapp.ApplicationResponse{{ID: uuid.New()}, {ID: uuid.New()}},
			Total:    2,
			Page:     1,
			PageSize: 20,
		}, nil)

	rec := perform(newApplicationRouter(r4, apps), http.MethodGet, "/applications?status=pending&page=1&page_size=20", nil)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	body := decodeBody(t, rec)
	assert.Len(t, body.Data, 2)
	assert.Equal(t, int64(2), body.Meta.Total)
	apps.AssertExpectations(t)

	rec = perform(newApplicationRouter(r4, apps), http.MethodGet, "/applications?status=lost", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestApplicationHandler_Review(t *testing.T) {
	id := uuid.New()
	allianceID := uuid.New()

	t.Run("alliance approval", func(t *testing.T) {
		r5 := as(membership.RoleR5, &allianceID)
		apps := new(MockApplicationUseCases)
		apps.On("AllianceReview", mock.Anything, r5, id, recruitmentapp.ReviewInput{Decision: "approve"}).
			Return(&recruitmentapp.ApplicationResponse{ID: id, Status: "alliance_approved"}, nil)

		rec := perform(newApplicationRouter(r5, apps), http.MethodPost, "/applications/"+id.String()+"/alliance-review",
			map[string]any{"decision": "approve"})

		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, "alliance_approved", decodeData(t, rec)["status"])
	})

	t.Run("president rejection with reason", func(t *testing.T) {
		president := as(membership.RolePresident, nil)
		apps := new(MockApplicationUseCases)
		apps.On("PresidentReview", mock.Anything, president, id, recruitmentapp.ReviewInput{Decision: "reject", Reason: "state is full"}).
			Return(&recruitmentapp.ApplicationResponse{ID: id, Status: "rejected", RejectionReason: "state is full"}, nil)

		rec := perform(newApplicationRouter(president, apps), http.MethodPost, "/applications/"+id.String()+"/president-review",
			map[string]any{"decision": "reject", "reason": "state is full"})

		assert.Equal(t, http.StatusOK, rec.Code)
		apps.AssertExpectations(t)
	})

	t.Run("president before alliance", func(t *testing.T) {
		president := as(membership.RolePresident, nil)
		apps := new(MockApplicationUseCases)
		apps.On("PresidentReview", mock.Anything, president, id, mock.Anything).
			Return(nil, shared.NewInvalidStateError("application is pending"))

		rec := perform(newApplicationRouter(president, apps), http.MethodPost, "/applications/"+id.String()+"/president-review",
			map[string]any{"decision": "approve"})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("unknown decision", func(t *testing.T) {
		r4 := as(membership.RoleR4, &allianceID)
		rec := perform(newApplicationRouter(r4, new(MockApplicationUseCases)), http.MethodPost,
			"/applications/"+id.String()+"/alliance-review", map[string]any{"decision": "maybe"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestApplicationHandler_Export(t *testing.T) {
	president := as(membership.RolePresident, nil)
	apps := new(MockApplicationUseCases)
	apps.On("Export", mock.Anything, president, "president_approved").Return([]byte("xlsx"), nil)

	rec := perform(newApplicationRouter(president, apps), http.MethodGet, "/applications/export?status=president_approved", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, `attachment; filename="applications-20261001.xlsx"`, rec.Header().Get("Content-Disposition"))
	apps.AssertExpectations(t)
}
