//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"clergy-registry-go/internal/config"
	"clergy-registry-go/internal/db"
	familydomain "clergy-registry-go/internal/domain/family"
	pastordomain "clergy-registry-go/internal/domain/pastor"
	relationshipdomain "clergy-registry-go/internal/domain/relationship"
	statsdomain "clergy-registry-go/internal/domain/stats"
	familyrepo "clergy-registry-go/internal/repository/postgres/family"
	pastorrepo "clergy-registry-go/internal/repository/postgres/pastor"
	relationshiprepo "clergy-registry-go/internal/repository/postgres/relationship"
	statsrepo "clergy-registry-go/internal/repository/postgres/stats"
	"clergy-registry-go/internal/transport/httpserver"
	"clergy-registry-go/internal/transport/httpserver/handler"
	"clergy-registry-go/pkg/logger"
	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, slog.LevelError, "text")

	cfg := config.Config{
		DB: config.DBConfig{DSN: dsn},
		Auth: config.AuthConfig{
			SkipAuth:        true,
			MockUserID:      "00000000-0000-0000-0000-000000000001",
			MockPermissions: "*",
		},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	relationshipService := relationshipdomain.NewService(relationshiprepo.NewPostgres(dbConn))
	familyService := familydomain.NewService(familyrepo.NewPostgres(dbConn), relationshipService)
	relationshipService.OnChange(familyService.InvalidateDetailForMember)
	pastorService := pastordomain.NewService(pastorrepo.NewPostgres(dbConn))
	statsService := statsdomain.NewService(statsrepo.NewPostgres(dbConn))
	handlers := handler.New(familyService, relationshipService, pastorService, statsService, log)

	router := httpserver.NewRouter(cfg, handlers, log)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	for _, table := range []string{"relationships", "family_members", "families", "pastors"} {
		if err := dbConn.Exec("DELETE FROM " + table).Error; err != nil {
			return err
		}
	}
	return nil
}

func (e *testEnv) postJSON(t *testing.T, path string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := http.Post(e.server.URL+path, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) postForm(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.Post(e.server.URL+path, "application/x-www-form-urlencoded", strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatalf("post %s: %v", path, err)
	}
	return resp
}

func (e *testEnv) getJSON(t *testing.T, path string, dst any) int {
	t.Helper()
	resp, err := http.Get(e.server.URL + path)
	if err != nil {
		t.Fatalf("get %s: %v", path, err)
	}
	defer resp.Body.Close()
	if dst != nil {
		if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
			t.Fatalf("decode %s: %v", path, err)
		}
	}
	return resp.StatusCode
}

func decodeBody(t *testing.T, resp *http.Response, dst any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

type treeNode struct {
	UUID      string     `json:"uuid"`
	Name      string     `json:"name"`
	Relation  string     `json:"relation"`
	BirthDate *string    `json:"birth_date"`
	IsPrimary bool       `json:"is_primary"`
	Children  []treeNode `json:"children"`
}

func TestFamilyGenealogyFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	// Create the family.
	var family struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	resp := env.postJSON(t, "/api/families", map[string]string{"name": "Kovács"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create family: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &family)

	// Tree before any primary member exists.
	if status := env.getJSON(t, "/api/families/"+family.ID+"/tree", nil); status != http.StatusNotFound {
		t.Fatalf("expected 404 for tree without primary, got %d", status)
	}

	saveMember := func(form url.Values) string {
		form.Set("family_uuid", family.ID)
		resp := env.postForm(t, "/api/members", form)
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("save member: status %d", resp.StatusCode)
		}
		var member struct {
			ID string `json:"id"`
		}
		decodeBody(t, resp, &member)
		return member.ID
	}

	husbandID := saveMember(url.Values{
		"name":          {"Kovács István"},
		"relation_code": {"ferj"},
		"birth_date":    {"1950-03-01"},
		"is_primary":    {"true"},
	})
	saveMember(url.Values{
		"name":          {"Kovács Mária"},
		"relation_code": {"feleseg"},
		"birth_date":    {"1952-07-12"},
	})
	childID := saveMember(url.Values{
		"name":          {"Kovács Péter"},
		"relation_code": {"gyermek"},
		"birth_date":    {"1975-01-20"},
		"parent_uuid":   {husbandID},
	})

	// Detail: classification and counts.
	var detail struct {
		Members  []json.RawMessage `json:"members"`
		Husbands []json.RawMessage `json:"husbands"`
		Wives    []json.RawMessage `json:"wives"`
		Children []json.RawMessage `json:"children"`
		HasWife  bool              `json:"has_wife"`
	}
	if status := env.getJSON(t, "/api/families/"+family.ID, &detail); status != http.StatusOK {
		t.Fatalf("family detail: status %d", status)
	}
	if len(detail.Members) != 3 || len(detail.Husbands) != 1 || len(detail.Wives) != 1 || len(detail.Children) != 1 || !detail.HasWife {
		t.Fatalf("unexpected detail partition: %+v", detail)
	}

	// Tree anchored at the primary member.
	var tree struct {
		Status     string   `json:"status"`
		FamilyName string   `json:"family_name"`
		RootMember treeNode `json:"root_member"`
	}
	if status := env.getJSON(t, "/api/families/"+family.ID+"/tree", &tree); status != http.StatusOK {
		t.Fatalf("family tree: status %d", status)
	}
	if tree.Status != "success" || tree.FamilyName != "Kovács" {
		t.Fatalf("unexpected tree envelope: %+v", tree)
	}
	if tree.RootMember.UUID != husbandID || !tree.RootMember.IsPrimary {
		t.Fatalf("unexpected root: %+v", tree.RootMember)
	}
	if len(tree.RootMember.Children) != 1 || tree.RootMember.Children[0].UUID != childID {
		t.Fatalf("unexpected children: %+v", tree.RootMember.Children)
	}

	// Parent resolution against the live schema: linked, unlinked, and a
	// dangling parent_id left behind by an edit.
	orphanID := saveMember(url.Values{
		"name":          {"Kovács Árva"},
		"relation_code": {"gyermek"},
		"parent_uuid":   {"20000000-0000-0000-0000-000000000009"},
	})

	repo := familyrepo.NewPostgres(env.db)
	parent, err := repo.GetParent(context.Background(), childID)
	if err != nil {
		t.Fatalf("get parent: %v", err)
	}
	if parent == nil || parent.ID != husbandID {
		t.Fatalf("expected parent %s, got %+v", husbandID, parent)
	}
	if parent, err = repo.GetParent(context.Background(), husbandID); err != nil || parent != nil {
		t.Fatalf("expected nil parent for member without link, got %+v, %v", parent, err)
	}
	if parent, err = repo.GetParent(context.Background(), orphanID); err != nil || parent != nil {
		t.Fatalf("expected nil parent for dangling link, got %+v, %v", parent, err)
	}
}

func TestRelationshipCloseOpenFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	var pastor struct {
		ID string `json:"id"`
	}
	resp := env.postJSON(t, "/api/pastors", map[string]string{
		"name":        "Nagy Gábor",
		"ordained_on": "1985-06-30",
		"ordained_at": "Budapest",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save pastor: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &pastor)

	record := func(spouseID, startedOn string) {
		resp := env.postJSON(t, "/api/pastors/"+pastor.ID+"/relationships", map[string]string{
			"spouse_id":  spouseID,
			"started_on": startedOn,
		})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("record relationship: status %d", resp.StatusCode)
		}
		resp.Body.Close()
	}

	// Spouse with a real member record backing the display-name join;
	// the first marriage predates the registry and has no member row.
	var family struct {
		ID string `json:"id"`
	}
	resp = env.postJSON(t, "/api/families", map[string]string{"name": "Nagy"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create family: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &family)

	var spouse struct {
		ID string `json:"id"`
	}
	resp = env.postForm(t, "/api/members", url.Values{
		"name":          {"Nagy Ilona"},
		"relation_code": {"feleseg"},
		"family_uuid":   {family.ID},
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("save spouse member: status %d", resp.StatusCode)
	}
	decodeBody(t, resp, &spouse)

	record("10000000-0000-0000-0000-000000000001", "1990-06-01")
	record(spouse.ID, "2001-09-08")

	var history []struct {
		SpouseID   string  `json:"spouse_id"`
		SpouseName string  `json:"spouse_name"`
		EndedOn    *string `json:"ended_on"`
		IsCurrent  bool    `json:"is_current"`
	}
	if status := env.getJSON(t, "/api/pastors/"+pastor.ID+"/relationships", &history); status != http.StatusOK {
		t.Fatalf("relationship history: status %d", status)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 relationships, got %d", len(history))
	}
	if history[0].IsCurrent || history[0].EndedOn == nil {
		t.Fatalf("expected first relationship closed, got %+v", history[0])
	}
	if !history[1].IsCurrent {
		t.Fatalf("expected second relationship current, got %+v", history[1])
	}
	if history[1].SpouseName != "Nagy Ilona" {
		t.Fatalf("expected spouse name joined from member record, got %q", history[1].SpouseName)
	}
	if history[0].SpouseName != "" {
		t.Fatalf("expected empty spouse name without member record, got %q", history[0].SpouseName)
	}

	closeResp, err := http.Post(env.server.URL+"/api/pastors/"+pastor.ID+"/relationships/close", "application/json", nil)
	if err != nil {
		t.Fatalf("close relationship: %v", err)
	}
	closeResp.Body.Close()
	if closeResp.StatusCode != http.StatusNoContent {
		t.Fatalf("close relationship: status %d", closeResp.StatusCode)
	}

	var stats struct {
		CurrentRelationships int64 `json:"current_relationships"`
	}
	if status := env.getJSON(t, "/api/stats/summary", &stats); status != http.StatusOK {
		t.Fatalf("stats summary: status %d", status)
	}
	if stats.CurrentRelationships != 0 {
		t.Fatalf("expected no current relationships, got %d", stats.CurrentRelationships)
	}
}
