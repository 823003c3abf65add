package sprints

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store"
	"github.com/sprinthub/sprinthub/internal/app/store/jsonfile"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	"github.com/sprinthub/sprinthub/internal/testutil"
)

type testEnv struct {
	router chi.Router
	teams  store.TeamStore
	h      *Handler
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := jsonfile.Open(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	h := NewHandler(db.Sprints(), db.SprintBugs(), zap.NewNop())
	r := chi.NewRouter()
	r.Mount("/teams/{teamID}/sprints", Routes(h))
	return &testEnv{router: r, teams: db.Teams(), h: h}
}

func (e *testEnv) do(r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	return body["message"]
}

func TestListEmpty(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")

	w := env.do(httptest.NewRequest(http.MethodGet, "/teams/"+team.ID+"/sprints/", nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	if got := message(t, w); got != "No sprints found" {
		t.Errorf("message = %q", got)
	}
}

func TestCreateSprint(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	base := "/teams/" + team.ID + "/sprints/"

	w := env.do(testutil.JSONRequest(http.MethodPost, base, `{"name": "Sprint 12"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var sprint models.Sprint
	testutil.DecodeJSON(t, w, &sprint)
	if sprint.Name != "Sprint 12" || sprint.TeamID != team.ID || sprint.ID == "" {
		t.Errorf("sprint = %+v", sprint)
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, base, `{"name": ""}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "Sprint name is required" {
		t.Errorf("empty name: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, base, `{"name": "sprint 12"}`))
	if w.Code != http.StatusConflict {
		t.Errorf("duplicate: status = %d, want 409", w.Code)
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, "/teams/missing/sprints/", `{"name": "Sprint 12"}`))
	if w.Code != http.StatusNotFound || message(t, w) != "Team not found" {
		t.Errorf("missing team: status = %d, message = %s", w.Code, w.Body.String())
	}
}

func TestGetAndDelete(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	path := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/"

	w := env.do(httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d: %s", w.Code, w.Body.String())
	}

	w = env.do(httptest.NewRequest(http.MethodDelete, path, nil))
	if w.Code != http.StatusOK || message(t, w) != "Sprint deleted successfully" {
		t.Errorf("delete: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(httptest.NewRequest(http.MethodGet, path, nil))
	if w.Code != http.StatusNotFound || message(t, w) != "Sprint not found" {
		t.Errorf("get after delete: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(httptest.NewRequest(http.MethodDelete, path, nil))
	if w.Code != http.StatusNotFound {
		t.Errorf("second delete status = %d, want 404", w.Code)
	}
}

func TestAddBugAcceptsNumbersAndStrings(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	path := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/"

	w := env.do(testutil.JSONRequest(http.MethodPost, path, `{"bugId": 1900101}`))
	if w.Code != http.StatusOK {
		t.Fatalf("numeric id: status = %d: %s", w.Code, w.Body.String())
	}
	var got models.Sprint
	testutil.DecodeJSON(t, w, &got)
	if got.NumberOfBugs != 1 {
		t.Errorf("NumberOfBugs = %d, want 1", got.NumberOfBugs)
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path, `{"bugId": "1900102"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("string id: status = %d: %s", w.Code, w.Body.String())
	}
	testutil.DecodeJSON(t, w, &got)
	if got.NumberOfBugs != 2 {
		t.Errorf("NumberOfBugs = %d, want 2", got.NumberOfBugs)
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path, `{"bugId": ""}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "Bug ID is required" {
		t.Errorf("empty id: status = %d, message = %s", w.Code, w.Body.String())
	}
}

func TestClose(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	path := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/close"

	w := env.do(testutil.JSONRequest(http.MethodPost, path, `{"endTime": "2026-08-01T12:00:00Z"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got models.Sprint
	testutil.DecodeJSON(t, w, &got)
	if !got.Closed() {
		t.Error("sprint not closed")
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path, `{"endTime": "yesterday"}`))
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad timestamp: status = %d, want 400", w.Code)
	}
}

func TestAddBugsBatch(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	path := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/addbugs"

	w := env.do(testutil.JSONRequest(http.MethodPost, path, `{"bugIds": ["101", 102, " 103 "]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got models.Sprint
	testutil.DecodeJSON(t, w, &got)
	if got.NumberOfBugs != 3 {
		t.Errorf("NumberOfBugs = %d, want 3", got.NumberOfBugs)
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path, `{"bugIds": ["101", "102"]}`))
	if w.Code != http.StatusOK || message(t, w) != "No new bugs to add." {
		t.Errorf("all duplicates: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path, `{}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "An array of bug IDs is required" {
		t.Errorf("missing array: status = %d, message = %s", w.Code, w.Body.String())
	}
}

func TestRemoveBugs(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	testutil.AddBugs(t, env.h.Bugs, team.ID, sprint.ID, "101", "102", "103")
	path := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/removebugs"

	w := env.do(testutil.JSONRequest(http.MethodDelete, path, `{"bugIds": ["102", "  "]}`))
	if w.Code != http.StatusOK || message(t, w) != "Bugs deleted successfully" {
		t.Fatalf("status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(httptest.NewRequest(http.MethodGet, "/teams/"+team.ID+"/sprints/"+sprint.ID+"/bugs", nil))
	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	if body["bugIds"] != "101,103" {
		t.Errorf("bugIds = %q, want %q", body["bugIds"], "101,103")
	}

	w = env.do(testutil.JSONRequest(http.MethodDelete, path, `{"bugIds": ["  ", ""]}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "No valid bug IDs provided" {
		t.Errorf("all blank: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(testutil.JSONRequest(http.MethodDelete, path, `{"bugIds": "101"}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "Invalid request data" {
		t.Errorf("non-array: status = %d, message = %s", w.Code, w.Body.String())
	}
}

func TestRollover(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	source := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 11")
	target := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	testutil.AddBugs(t, env.h.Bugs, team.ID, source.ID, "101", "102")
	path := "/teams/" + team.ID + "/sprints/" + target.ID + "/rollover"

	w := env.do(testutil.JSONRequest(http.MethodPost, path,
		`{"sourceSprintId": "`+source.ID+`", "bugIds": ["101", "102"]}`))
	if w.Code != http.StatusOK || message(t, w) != "Bugs rolled over successfully" {
		t.Fatalf("status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path, `{"bugIds": ["101"]}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "sourceSprintId and an array of bug IDs are required" {
		t.Errorf("missing source: status = %d, message = %s", w.Code, w.Body.String())
	}

	missing := "/teams/" + team.ID + "/sprints/no-such-sprint/rollover"
	w = env.do(testutil.JSONRequest(http.MethodPost, missing,
		`{"sourceSprintId": "`+source.ID+`", "bugIds": ["101"]}`))
	if w.Code != http.StatusNotFound || message(t, w) != "Target sprint not found" {
		t.Errorf("missing target: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(testutil.JSONRequest(http.MethodPost, path,
		`{"sourceSprintId": "`+source.ID+`", "bugIds": ["999"]}`))
	if w.Code != http.StatusNotFound || message(t, w) != "No valid bugs found for rollover" {
		t.Errorf("absent ids: status = %d, message = %s", w.Code, w.Body.String())
	}
}

func TestUpdateCategory(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	testutil.AddBugs(t, env.h.Bugs, team.ID, sprint.ID, "101")
	base := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/bugs/"

	w := env.do(testutil.JSONRequest(http.MethodPut, base+"101", `{"newCategory": "carryover"}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var resp struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	testutil.DecodeJSON(t, w, &resp)
	if !resp.Success || resp.Message != "Bug category updated successfully" {
		t.Errorf("resp = %+v", resp)
	}

	w = env.do(testutil.JSONRequest(http.MethodPut, base+"101", `{"newCategory": ""}`))
	if w.Code != http.StatusBadRequest || message(t, w) != "teamId, sprintId, bugId, and newCategory are required" {
		t.Errorf("empty category: status = %d, message = %s", w.Code, w.Body.String())
	}

	w = env.do(testutil.JSONRequest(http.MethodPut, base+"999", `{"newCategory": "carryover"}`))
	if w.Code != http.StatusNotFound || message(t, w) != "Bug not found" {
		t.Errorf("absent bug: status = %d, message = %s", w.Code, w.Body.String())
	}
}

func TestReplaceBugs(t *testing.T) {
	env := newTestEnv(t)
	team := testutil.CreateTeam(t, env.teams, "Autofill")
	sprint := testutil.CreateSprint(t, env.h.Sprints, team.ID, "Sprint 12")
	testutil.AddBugs(t, env.h.Bugs, team.ID, sprint.ID, "101")
	path := "/teams/" + team.ID + "/sprints/" + sprint.ID + "/bugs"

	w := env.do(testutil.JSONRequest(http.MethodPut, path, `{"bugs": [
		{"bugId": "201", "resolvedOrVerified": true},
		{"bugId": 202, "category": "carryover"},
		{"bugId": "202"},
		{"bugId": "  "}
	]}`))
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", w.Code, w.Body.String())
	}
	var got models.Sprint
	testutil.DecodeJSON(t, w, &got)
	if got.NumberOfBugs != 2 {
		t.Errorf("NumberOfBugs = %d, want 2", got.NumberOfBugs)
	}
	if got.ResolvedOrVerified != 1 {
		t.Errorf("ResolvedOrVerified = %d, want 1", got.ResolvedOrVerified)
	}
}
