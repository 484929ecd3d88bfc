package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"example.com/activities/internal/domain"
)

func newTestMux(t *testing.T) *http.ServeMux {
	t.Helper()
	handler := NewHandler(domain.NewRegistry(domain.Seed()))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)
	return mux
}

func do(mux *http.ServeMux, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return body
}

func listActivities(t *testing.T, mux *http.ServeMux) map[string]ActivityView {
	t.Helper()
	rr := do(mux, http.MethodGet, "/activities")
	require.Equal(t, http.StatusOK, rr.Code)
	var listed map[string]ActivityView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &listed))
	return listed
}

func TestRootRedirectsToIndex(t *testing.T) {
	rr := do(newTestMux(t), http.MethodGet, "/")

	require.Equal(t, http.StatusTemporaryRedirect, rr.Code)
	assert.Equal(t, "/static/index.html", rr.Header().Get("Location"))
}

func TestListActivities(t *testing.T) {
	mux := newTestMux(t)

	listed := listActivities(t, mux)

	require.Len(t, listed, 9)
	for name, activity := range listed {
		assert.NotEmpty(t, activity.Description, "activity %q", name)
		assert.NotEmpty(t, activity.Schedule, "activity %q", name)
		assert.Positive(t, activity.MaxParticipants, "activity %q", name)
		require.NotNil(t, activity.Participants, "activity %q", name)
		for _, participant := range activity.Participants {
			assert.Contains(t, participant, "@mergington.edu")
		}
	}
}

func TestSignupAddsParticipant(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["message"], "Signed up")

	listed := listActivities(t, mux)
	assert.Contains(t, listed["Chess Club"].Participants, "newstudent@mergington.edu")
}

func TestSignupRejectsDuplicate(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=michael@mergington.edu")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["detail"], "already signed up")
}

func TestSignupUnknownActivity(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Nonexistent%20Activity/signup?email=student@mergington.edu")

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["detail"], "not found")
}

func TestSignupIsCaseSensitive(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/chess%20club/signup?email=player@mergington.edu")

	require.Equal(t, http.StatusNotFound, rr.Code)
}

func TestSignupRequiresEmail(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup")

	require.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestSignupDecreasesAvailableSpots(t *testing.T) {
	mux := newTestMux(t)

	before := listActivities(t, mux)["Basketball Team"]
	spotsBefore := before.MaxParticipants - len(before.Participants)

	rr := do(mux, http.MethodPost, "/activities/Basketball%20Team/signup?email=newplayer@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	after := listActivities(t, mux)["Basketball Team"]
	spotsAfter := after.MaxParticipants - len(after.Participants)
	assert.Equal(t, spotsBefore-1, spotsAfter)
}

func TestRemoveParticipant(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/participants?email=michael@mergington.edu")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["message"], "Removed")

	listed := listActivities(t, mux)
	assert.NotContains(t, listed["Chess Club"].Participants, "michael@mergington.edu")
}

func TestRemoveUnregisteredParticipant(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/participants?email=notregistered@mergington.edu")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["detail"], "not signed up")
}

func TestRemoveRequiresEmail(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/participants")

	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["detail"], "email is required")

	listed := listActivities(t, mux)
	assert.Len(t, listed["Chess Club"].Participants, 2)
}

func TestRemoveFromUnknownActivity(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodDelete, "/activities/Nonexistent%20Activity/participants?email=student@mergington.edu")

	require.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["detail"], "not found")
}

func TestRemovalIncreasesAvailableSpots(t *testing.T) {
	mux := newTestMux(t)

	before := listActivities(t, mux)["Chess Club"]
	spotsBefore := before.MaxParticipants - len(before.Participants)

	rr := do(mux, http.MethodDelete, "/activities/Chess%20Club/participants?email=michael@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	after := listActivities(t, mux)["Chess Club"]
	spotsAfter := after.MaxParticipants - len(after.Participants)
	assert.Equal(t, spotsBefore+1, spotsAfter)
}

func TestSignupThenRemoveSequence(t *testing.T) {
	mux := newTestMux(t)

	rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["detail"], "already signed up")

	rr = do(mux, http.MethodDelete, "/activities/Chess%20Club/participants?email=newstudent@mergington.edu")
	require.Equal(t, http.StatusOK, rr.Code)

	listed := listActivities(t, mux)
	assert.NotContains(t, listed["Chess Club"].Participants, "newstudent@mergington.edu")
}

func TestSignupAcceptsVariedEmailFormats(t *testing.T) {
	mux := newTestMux(t)

	for _, email := range []string{
		"student1@mergington.edu",
		"student.name@mergington.edu",
		"student%2Btag@mergington.edu",
	} {
		rr := do(mux, http.MethodPost, "/activities/Chess%20Club/signup?email="+email)
		require.Equal(t, http.StatusOK, rr.Code, "email %q", email)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	mux := newTestMux(t)

	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodDelete, "/activities/Chess%20Club/signup?email=a@mergington.edu").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodPost, "/activities/Chess%20Club/participants?email=a@mergington.edu").Code)
	assert.Equal(t, http.StatusMethodNotAllowed, do(mux, http.MethodPost, "/activities").Code)
}

func TestUnknownPaths(t *testing.T) {
	mux := newTestMux(t)

	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/activities/Chess%20Club").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodPost, "/activities/Chess%20Club/register?email=a@mergington.edu").Code)
	assert.Equal(t, http.StatusNotFound, do(mux, http.MethodGet, "/nope").Code)
}

func TestHealthz(t *testing.T) {
	rr := do(newTestMux(t), http.MethodGet, "/healthz")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())
}
