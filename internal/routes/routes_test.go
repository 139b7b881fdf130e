package routes_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"precinct-backend/config"
	"precinct-backend/internal/model"
	"precinct-backend/internal/notify"
	"precinct-backend/internal/routes"
	"precinct-backend/internal/storage"
	"precinct-backend/internal/testutil"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	app     *fiber.App
	db      *gorm.DB
	admin   *model.User
	officer *model.User
}

func newTestApp(t *testing.T) *testApp {
	db := testutil.NewDB(t)
	cfg := &config.Config{JWTSecret: testutil.Secret, JWTTTLHours: 1, MaxUploadMB: 5}
	svc := routes.NewServices(db, cfg, notify.NopMailer{}, notify.NopAlerter{}, storage.NewLocalStore(t.TempDir()))

	app := fiber.New()
	routes.Setup(app, svc)

	return &testApp{
		app:     app,
		db:      db,
		admin:   testutil.CreateUser(t, db, "9000", "Sgt. Reyes", model.RoleAdmin),
		officer: testutil.CreateUser(t, db, "1001", "Alvarez", model.RoleEmployee),
	}
}

func (a *testApp) do(t *testing.T, method, path string, user *model.User, body interface{}) (int, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return a.send(t, req, user)
}

func (a *testApp) send(t *testing.T, req *http.Request, user *model.User) (int, map[string]interface{}) {
	t.Helper()

	if user != nil {
		req.Header.Set("Authorization", "Bearer "+testutil.Token(t, user))
	}
	resp, err := a.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]interface{}{}
	raw, _ := io.ReadAll(resp.Body)
	if strings.HasPrefix(resp.Header.Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else {
		out["raw"] = string(raw)
	}
	return resp.StatusCode, out
}

func multipartRequest(t *testing.T, path string, fields map[string]string, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("attachment", filename)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func dataID(t *testing.T, body map[string]interface{}) uint {
	t.Helper()
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok, "response has no data object: %v", body)
	return uint(data["ID"].(float64))
}

func TestLogin(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"badge_number": "1001", "password": testutil.Password})
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])

	status, _ = a.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"badge_number": "1001", "password": "nope"})
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body = a.do(t, http.MethodPost, "/api/auth/login", nil, map[string]string{"badge_number": "1001"})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "password")
}

func TestAccessControl(t *testing.T) {
	a := newTestApp(t)

	status, _ := a.do(t, http.MethodGet, "/api/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := a.do(t, http.MethodGet, "/api/me", a.officer, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "1001", body["data"].(map[string]interface{})["badge_number"])

	status, _ = a.do(t, http.MethodGet, "/api/admin/users", a.officer, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status, _ = a.do(t, http.MethodGet, "/api/admin/users", a.admin, nil)
	assert.Equal(t, http.StatusOK, status)

	// Admins cannot lock themselves out
	status, _ = a.do(t, http.MethodDelete, fmt.Sprintf("/api/admin/users/%d", a.admin.ID), a.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestLeaveWorkflow(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, http.MethodPost, "/api/requests/leave", a.officer, map[string]string{
		"leave_type": "vacation",
		"start_date": "2024-07-01",
		"end_date":   "2024-07-02",
	})
	require.Equal(t, http.StatusCreated, status, body)
	id := dataID(t, body)

	status, _ = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/requests/leave/%d/respond", id), a.admin, map[string]string{"decision": "maybe"})
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/requests/leave/%d/respond", id), a.admin, map[string]string{"decision": "accepted"})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, model.RequestAccepted, body["data"].(map[string]interface{})["status"])

	status, _ = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/requests/leave/%d/respond", id), a.admin, map[string]string{"decision": "declined"})
	assert.Equal(t, http.StatusConflict, status)

	// Accepted requests can no longer be cancelled
	status, _ = a.do(t, http.MethodDelete, fmt.Sprintf("/api/requests/leave/%d", id), a.officer, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = a.do(t, http.MethodGet, "/api/schedules/me?start=2024-07-01&end=2024-07-31", a.officer, nil)
	require.Equal(t, http.StatusOK, status)
	rows := body["data"].([]interface{})
	require.Len(t, rows, 2)
	assert.Equal(t, model.StatusLeave, rows[0].(map[string]interface{})["status"])

	status, body = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/requests/leave/%d/complete", id), a.admin, nil)
	require.Equal(t, http.StatusOK, status, body)
	status, _ = a.do(t, http.MethodPost, fmt.Sprintf("/api/admin/requests/leave/%d/complete", id), a.admin, nil)
	assert.Equal(t, http.StatusConflict, status)

	status, body = a.do(t, http.MethodGet, "/api/admin/requests/leave/export", a.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["raw"], "Alvarez")

	status, body = a.do(t, http.MethodGet, "/api/notifications/unread-count", a.officer, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 2, body["data"])
}

func TestAttachments(t *testing.T) {
	a := newTestApp(t)
	other := testutil.CreateUser(t, a.db, "1002", "Brooks", model.RoleEmployee)

	req := multipartRequest(t, "/api/requests/court", map[string]string{
		"case_number":     "CR-2024-118",
		"court_name":      "District Court",
		"appearance_date": "2024-07-11",
	}, "subpoena.pdf", []byte("%PDF-1.4 subpoena"))
	status, body := a.send(t, req, a.officer)
	require.Equal(t, http.StatusCreated, status, body)
	id := dataID(t, body)

	path := fmt.Sprintf("/api/requests/court/%d/attachment", id)
	status, body = a.do(t, http.MethodGet, path, a.officer, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "%PDF-1.4 subpoena", body["raw"])

	status, _ = a.do(t, http.MethodGet, path, other, nil)
	assert.Equal(t, http.StatusForbidden, status)
	status, _ = a.do(t, http.MethodGet, path, a.admin, nil)
	assert.Equal(t, http.StatusOK, status)

	req = multipartRequest(t, "/api/requests/court", map[string]string{
		"case_number":     "CR-2024-119",
		"appearance_date": "2024-07-12",
	}, "photo.png", []byte("png"))
	status, _ = a.send(t, req, a.officer)
	assert.Equal(t, http.StatusUnsupportedMediaType, status)

	req = multipartRequest(t, "/api/requests/overtime", map[string]string{
		"date":       "2024-07-12",
		"start_time": "18:00",
		"end_time":   "22:00",
	}, "timesheet.pdf", []byte("%PDF"))
	status, _ = a.send(t, req, a.officer)
	assert.Equal(t, http.StatusBadRequest, status)
}

func TestScheduleAdminRoutes(t *testing.T) {
	a := newTestApp(t)

	status, body := a.do(t, http.MethodPost, "/api/admin/schedules/generate", a.admin, map[string]interface{}{
		"user_ids": []uint{a.officer.ID},
		"year":     2024,
		"month":    2,
		"time_in":  "07:00",
		"weekdays": []int{1, 2, 3, 4, 5},
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.EqualValues(t, 29, body["data"].(map[string]interface{})["written"])

	status, body = a.do(t, http.MethodGet, "/api/admin/schedules/export?start=2024-02-01&end=2024-02-29&format=csv", a.admin, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body["raw"], "1001")

	status, _ = a.do(t, http.MethodGet, "/api/admin/schedules/export?format=pdf", a.admin, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	status, body = a.do(t, http.MethodPost, "/api/admin/schedules/copy-week", a.admin, map[string]interface{}{
		"source_date": "2024-02-05",
		"target_date": "2024-03-04",
	})
	require.Equal(t, http.StatusOK, status, body)

	status, body = a.do(t, http.MethodGet, "/api/dashboard", a.officer, nil)
	require.Equal(t, http.StatusOK, status, body)

	status, body = a.do(t, http.MethodGet, "/api/admin/dashboard", a.admin, nil)
	require.Equal(t, http.StatusOK, status, body)
}
