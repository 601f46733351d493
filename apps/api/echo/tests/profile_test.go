package tests

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/trezcool/sanaa/core/profile"
	testutil "github.com/trezcool/sanaa/tests"
)

func TestProfileAPI(t *testing.T) {
	amani := testutil.CreateProfile(
		t, profileRepo, "Amani", "Joto", "amani.admin@test.test",
		[]string{profile.GoalPortfolio}, profile.ExperienceBeginner,
	)
	neema := testutil.CreateProfile(
		t, profileRepo, "Neema", "Baraka", "neema.admin@test.test",
		[]string{profile.GoalHobby}, profile.ExperienceAdvanced,
	)

	t.Run("query with filter", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/profiles?search=neema.admin")
		app.ServeHTTP(rec, req)

		tt := httpTest{
			wantCode: http.StatusOK,
			wantData: marchallObj(t, []profile.Profile{neema}),
		}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("query no match", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/profiles?search=nobody-here")
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: []byte("[]")}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("query by experience level", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/profiles?experience_level="+profile.ExperienceAdvanced)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("code = %d; want 200", rec.Code)
		}
		var got []profile.Profile
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decoding profiles: %v", err)
		}
		for _, p := range got {
			if p.ExperienceLevel != profile.ExperienceAdvanced {
				t.Errorf("unexpected profile in result: %+v", p)
			}
		}
	})

	t.Run("retrieve", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/profiles/"+amani.ID)
		app.ServeHTTP(rec, req)

		tt := httpTest{wantCode: http.StatusOK, wantData: marchallObj(t, amani)}
		checkCodeAndData(t, tt, rec)
	})

	t.Run("retrieve unknown", func(t *testing.T) {
		req, rec := newRequest(http.MethodGet, "/v1/profiles/00000000-0000-0000-0000-000000000000")
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404", rec.Code)
		}
	})

	t.Run("destroy multiple", func(t *testing.T) {
		body := fmt.Sprintf(`{"ids": [%q, %q]}`, amani.ID, neema.ID)
		req, rec := newRequest(http.MethodDelete, "/v1/profiles", []byte(body))
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("code = %d; want 204", rec.Code)
		}

		req, rec = newRequest(http.MethodGet, "/v1/profiles/"+amani.ID)
		app.ServeHTTP(rec, req)
		if rec.Code != http.StatusNotFound {
			t.Errorf("code = %d; want 404 after delete", rec.Code)
		}
	})
}
