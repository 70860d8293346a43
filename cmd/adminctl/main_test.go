package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"adminhub/internal/config"
	"adminhub/internal/domain"
	"adminhub/internal/domain/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeServer struct {
	mux  *http.ServeMux
	url  string
	mu   sync.Mutex
	hits map[string]int
}

func newFakeServer(t *testing.T, role domain.UserRole) *fakeServer {
	t.Helper()
	f := &fakeServer{mux: http.NewServeMux(), hits: map[string]int{}}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.hits[r.Method+" "+r.URL.Path]++
		f.mu.Unlock()
		f.mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	f.url = srv.URL
	f.json("GET /api/auth/me", http.StatusOK, models.User{ID: 1, Username: "admin", FirstName: "Sistem", LastName: "Yönetici", Role: role})
	return f
}

func (f *fakeServer) json(pattern string, status int, v any) {
	f.mux.HandleFunc(pattern, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if v != nil {
			_ = json.NewEncoder(w).Encode(v)
		}
	})
}

func (f *fakeServer) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hits[key]
}

// run executes adminctl with args against f and returns stdout.
func run(t *testing.T, f *fakeServer, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := rootCmd(config.Console{APIURL: f.url, Token: "tok", LogLevel: "error"})
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func sampleAssets() []models.Asset {
	return []models.Asset{
		{ID: 1, Name: "Laptop", AssetCode: "IT-1", Status: domain.AssetAvailable, PurchasePrice: 1000},
		{ID: 2, Name: "Monitor", AssetCode: "IT-2", Status: domain.AssetAssigned, PurchasePrice: 250},
		{ID: 3, Name: "Yazıcı", AssetCode: "IT-3", Status: domain.AssetMaintenance},
	}
}

func TestAssetsListFiltersAndStats(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	f.json("GET /api/assets", http.StatusOK, sampleAssets())
	f.json("GET /api/categories", http.StatusOK, []models.Category{})

	out, err := run(t, f, "", "assets", "list", "--filter", "status=1", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "Laptop")
	assert.NotContains(t, out, "Monitor")
	assert.Contains(t, out, "Toplam değer:")
	assert.Contains(t, out, "1000.00 ₺")
}

func TestAssetsListAcceptsStatusName(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	f.json("GET /api/assets", http.StatusOK, sampleAssets())
	f.json("GET /api/categories", http.StatusOK, []models.Category{})

	out, err := run(t, f, "", "assets", "list", "-f", "status=Available")
	require.NoError(t, err)
	assert.Contains(t, out, "Laptop")
	assert.NotContains(t, out, "Monitor")
	assert.NotContains(t, out, "kayıt yok")
}

func TestUnknownFilterIsRejected(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	_, err := run(t, f, "", "venues", "list", "--filter", "color=red")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "böyle bir filtre yok")
	assert.Zero(t, f.count("GET /api/venues"))
}

func TestCommandsNeedToken(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	cmd := rootCmd(config.Console{APIURL: f.url, LogLevel: "error"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"assets", "list"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "adminctl login")
	assert.Zero(t, f.count("GET /api/auth/me"))
}

func TestLoginPrintsToken(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	f.json("POST /api/auth/login", http.StatusOK, models.AuthResponse{
		Token:     "jwt-123",
		ExpiresAt: time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC),
		User:      models.User{ID: 1, FirstName: "Ayşe", LastName: "Demir", Role: domain.RoleAdmin},
	})
	out, err := run(t, f, "", "login", "ayse", "-p", "gizli123")
	require.NoError(t, err)
	assert.Contains(t, out, "Ayşe Demir")
	assert.Contains(t, out, "export ADMINHUB_TOKEN=jwt-123")
	assert.Zero(t, f.count("GET /api/auth/me"))
}

func TestCategoryDeleteGuardAndPrompt(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	f.json("GET /api/categories", http.StatusOK, []models.Category{
		{ID: 4, Name: "Bilgisayar", Code: "PC", AssetCount: 3},
		{ID: 5, Name: "Mobilya", Code: "MB"},
	})
	f.json("DELETE /api/categories/5", http.StatusNoContent, nil)

	_, err := run(t, f, "", "categories", "delete", "4", "--yes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "3 demirbaş")
	assert.Zero(t, f.count("DELETE /api/categories/4"))

	out, err := run(t, f, "h\n", "categories", "delete", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "iptal")
	assert.Zero(t, f.count("DELETE /api/categories/5"))

	out, err = run(t, f, "evet\n", "categories", "delete", "5")
	require.NoError(t, err)
	assert.Contains(t, out, "İşlem başarıyla tamamlandı")
	assert.Equal(t, 1, f.count("DELETE /api/categories/5"))
}

func TestIllegalStatusListsOptions(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	f.json("GET /api/assets", http.StatusOK, sampleAssets())
	f.json("GET /api/categories", http.StatusOK, []models.Category{})

	_, err := run(t, f, "", "assets", "status", "1", "assigned")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geçilebilecek durumlar")
	assert.Zero(t, f.count("PATCH /api/assets/1/status"))

	_, err = run(t, f, "", "assets", "status", "abc", "1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geçersiz kimlik")
}

func TestRefereeEntersScore(t *testing.T) {
	f := newFakeServer(t, domain.RoleReferee)
	f.json("GET /api/matches", http.StatusOK, []models.Match{{ID: 2, Status: domain.MatchInProgress}})
	f.json("GET /api/competitions", http.StatusOK, []models.Competition{})
	f.json("GET /api/participants", http.StatusOK, []models.Participant{})
	f.json("PATCH /api/matches/2/score", http.StatusOK, models.Match{ID: 2})

	out, err := run(t, f, "", "matches", "score", "2", "3", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "İşlem başarıyla tamamlandı")
	assert.Equal(t, 1, f.count("PATCH /api/matches/2/score"))

	_, err = run(t, f, "", "matches", "delete", "2", "-y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "yetkiniz yok")
}

func TestReservationBookAndAvailability(t *testing.T) {
	f := newFakeServer(t, domain.RoleParticipant)
	start := time.Date(2031, 3, 4, 18, 0, 0, 0, time.UTC)
	f.json("GET /api/reservations", http.StatusOK, []models.Reservation{
		{ID: 1, VenueID: 3, VenueName: "Kapalı Salon", UserID: 1, StartTime: start, EndTime: start.Add(2 * time.Hour),
			Status: domain.ReservationConfirmed, TotalPrice: 300},
	})
	f.json("GET /api/venues", http.StatusOK, []models.Venue{{ID: 3, Name: "Kapalı Salon", Status: domain.VenueActive}})
	f.json("POST /api/reservations", http.StatusCreated, models.Reservation{ID: 2})
	f.json("GET /api/reservations/availability", http.StatusOK, models.Availability{VenueID: 3, Available: false,
		Conflicts: []models.Reservation{{ID: 1, VenueName: "Kapalı Salon", Status: domain.ReservationConfirmed}}})

	_, err := run(t, f, "", "reservations", "book", "--venue", "3",
		"--start", "2031-03-04T19:00:00Z", "--end", "2031-03-04T21:00:00Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "müsait değil")
	assert.Zero(t, f.count("POST /api/reservations"))

	_, err = run(t, f, "", "reservations", "book", "--venue", "3", "--start", "yarın", "--end", "2031-03-04T21:00:00Z")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "geçersiz zaman")

	out, err := run(t, f, "", "reservations", "book", "--venue", "3",
		"--start", "2031-03-04T20:00:00Z", "--end", "2031-03-04T21:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "İşlem başarıyla tamamlandı")
	assert.Equal(t, 1, f.count("POST /api/reservations"))

	out, err = run(t, f, "", "reservations", "availability", "--venue", "3",
		"--start", "2031-03-04T19:00:00Z", "--end", "2031-03-04T20:00:00Z")
	require.NoError(t, err)
	assert.Contains(t, out, "dolu")
	assert.Contains(t, out, "Kapalı Salon")

	out, err = run(t, f, "", "reservations", "list", "--stats")
	require.NoError(t, err)
	assert.Contains(t, out, "300.00 ₺")
}

func TestReceiptIsSaved(t *testing.T) {
	f := newFakeServer(t, domain.RoleAdmin)
	f.mux.HandleFunc("GET /api/assignments/7/receipt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", `attachment; filename="zimmet-7.pdf"`)
		_, _ = w.Write([]byte("%PDF-1.3 test"))
	})

	path := filepath.Join(t.TempDir(), "tutanak.pdf")
	out, err := run(t, f, "", "assignments", "receipt", "7", "-o", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Tutanak kaydedildi")
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.3 test", string(raw))
}

func TestMeListsCapabilities(t *testing.T) {
	f := newFakeServer(t, domain.RolePersonnel)
	out, err := run(t, f, "", "me")
	require.NoError(t, err)
	assert.Contains(t, out, "Sistem Yönetici")
	assert.Contains(t, out, string(domain.ActViewInventoryReports))
}
