package teams

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/sprinthub/sprinthub/internal/app/store/jsonfile"
	"github.com/sprinthub/sprinthub/internal/domain/models"
	"github.com/sprinthub/sprinthub/internal/testutil"
)

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	db, err := jsonfile.Open(t.TempDir(), zap.NewNop())
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	return NewHandler(db.Teams(), zap.NewNop())
}

func TestListEmpty(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/teams", nil))

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	if body["message"] != "No teams found" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestCreateAndList(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.Create(w, testutil.JSONRequest(http.MethodPost, "/teams", `{"name": "Autofill"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", w.Code, w.Body.String())
	}
	var created models.Team
	testutil.DecodeJSON(t, w, &created)
	if created.Name != "Autofill" || created.ID == "" {
		t.Errorf("created = %+v", created)
	}

	w = httptest.NewRecorder()
	h.List(w, httptest.NewRequest(http.MethodGet, "/teams", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", w.Code)
	}
	var teams []models.Team
	testutil.DecodeJSON(t, w, &teams)
	if len(teams) != 1 {
		t.Errorf("got %d teams, want 1", len(teams))
	}
}

func TestCreateValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty name", `{"name": ""}`, "Team name is required"},
		{"whitespace name", `{"name": "   "}`, "Team name is required"},
		{"missing name", `{}`, "Team name is required"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.Create(w, testutil.JSONRequest(http.MethodPost, "/teams", tc.body))
			if w.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", w.Code)
			}
			var body map[string]string
			testutil.DecodeJSON(t, w, &body)
			if body["message"] != tc.want {
				t.Errorf("message = %q, want %q", body["message"], tc.want)
			}
		})
	}
}

func TestCreateDuplicate(t *testing.T) {
	h := newTestHandler(t)

	w := httptest.NewRecorder()
	h.Create(w, testutil.JSONRequest(http.MethodPost, "/teams", `{"name": "Autofill"}`))
	if w.Code != http.StatusCreated {
		t.Fatalf("first create status = %d", w.Code)
	}

	w = httptest.NewRecorder()
	h.Create(w, testutil.JSONRequest(http.MethodPost, "/teams", `{"name": "autofill"}`))
	if w.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409", w.Code)
	}
	var body map[string]string
	testutil.DecodeJSON(t, w, &body)
	if body["message"] != "A team with this name already exists" {
		t.Errorf("message = %q", body["message"])
	}
}

func TestGetTeam(t *testing.T) {
	h := newTestHandler(t)
	team := testutil.CreateTeam(t, h.Teams, "Autofill")

	r := httptest.NewRequest(http.MethodGet, "/teams/"+team.ID, nil)
	r = testutil.WithChiURLParam(r, map[string]string{"teamID": team.ID})
	w := httptest.NewRecorder()
	h.Get(w, r)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	var got models.Team
	testutil.DecodeJSON(t, w, &got)
	if got.ID != team.ID {
		t.Errorf("id = %q, want %q", got.ID, team.ID)
	}

	r = httptest.NewRequest(http.MethodGet, "/teams/missing", nil)
	r = testutil.WithChiURLParam(r, map[string]string{"teamID": "missing"})
	w = httptest.NewRecorder()
	h.Get(w, r)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing team status = %d, want 404", w.Code)
	}
}
