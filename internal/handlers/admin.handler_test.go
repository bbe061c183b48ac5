package handlers

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	adminController "server/internal/controllers/admin"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func adminGet(t *testing.T, server *fiber.App, path string, authorized bool) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authorized {
		credentials := base64.StdEncoding.EncodeToString([]byte("admin:secret"))
		req.Header.Set(fiber.HeaderAuthorization, "Basic "+credentials)
	}

	resp, err := server.Test(req)
	require.NoError(t, err)
	return resp
}

func TestAdmin_RequiresCredentials(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	for _, path := range []string{
		"/admin/", "/admin/parents", "/admin/caregivers",
		"/admin/newsletter", "/admin/export.csv",
	} {
		resp := adminGet(t, server, path, false)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode, path)
		assert.Equal(t, `Basic realm="Admin Area"`,
			resp.Header.Get(fiber.HeaderWWWAuthenticate), path)

		body, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.Equal(t, "Access denied", string(body))
	}
}

func TestAdmin_RejectsWrongPassword(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	req := httptest.NewRequest(http.MethodGet, "/admin/", nil)
	credentials := base64.StdEncoding.EncodeToString([]byte("admin:wrong"))
	req.Header.Set(fiber.HeaderAuthorization, "Basic "+credentials)

	resp, err := server.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestAdmin_Dashboard(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	resp := postForm(t, server, "/api/parents", validParentValues())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	resp = postForm(t, server, "/api/caregivers", validCaregiverValues())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	dashResp := adminGet(t, server, "/admin/", true)
	assert.Equal(t, fiber.StatusOK, dashResp.StatusCode)

	var dashboard adminController.Dashboard
	decodeJSON(t, dashResp, &dashboard)

	require.NotNil(t, dashboard.Stats)
	assert.EqualValues(t, 1, dashboard.Stats.TotalParents)
	assert.EqualValues(t, 1, dashboard.Stats.TotalCaregivers)
	require.Len(t, dashboard.RecentParents, 1)
	assert.False(t, dashboard.RecentParents[0].HasDuplicates)
}

func TestAdmin_ListParents_AnnotatesDuplicates(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	for i := 0; i < 2; i++ {
		resp := postForm(t, server, "/api/parents", validParentValues())
		require.Equal(t, fiber.StatusFound, resp.StatusCode)
	}

	listResp := adminGet(t, server, "/admin/parents", true)
	assert.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var body struct {
		Parents []struct {
			Email         string `json:"email"`
			HasDuplicates bool   `json:"hasDuplicates"`
		} `json:"parents"`
		TotalParents int64 `json:"totalParents"`
	}
	decodeJSON(t, listResp, &body)

	assert.EqualValues(t, 2, body.TotalParents)
	require.Len(t, body.Parents, 2)
	for _, parent := range body.Parents {
		assert.True(t, parent.HasDuplicates,
			"both rows of a repeated email should be marked")
	}
}

func TestAdmin_ListParents_LocationFilter(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	resp := postForm(t, server, "/api/parents", validParentValues())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	elsewhere := validParentValues()
	elsewhere.Set("email", "other@example.com")
	elsewhere.Set("location", "South Lake Tahoe")
	resp = postForm(t, server, "/api/parents", elsewhere)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	listResp := adminGet(t, server, "/admin/parents?location=Truckee", true)
	assert.Equal(t, fiber.StatusOK, listResp.StatusCode)

	var body struct {
		Parents []struct {
			Location string `json:"location"`
		} `json:"parents"`
	}
	decodeJSON(t, listResp, &body)

	require.Len(t, body.Parents, 1)
	assert.Equal(t, "Truckee", body.Parents[0].Location)
}

func TestAdmin_ExportParents(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	resp := postForm(t, server, "/api/parents", validParentValues())
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	exportResp := adminGet(t, server, "/admin/export/parents", true)
	assert.Equal(t, fiber.StatusOK, exportResp.StatusCode)
	assert.Equal(t, "text/csv", exportResp.Header.Get(fiber.HeaderContentType))
	assert.Contains(t, exportResp.Header.Get(fiber.HeaderContentDisposition),
		"tahoe_night_nurse_parents_")

	data, err := io.ReadAll(exportResp.Body)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Email", records[0][3])
	assert.Equal(t, "jane@example.com", records[1][3])
}

func TestAdmin_LegacyExport(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	resp := postForm(t, server, "/api/newsletter", url.Values{
		"email": {"sub@example.com"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	t.Run("typed exports redirect", func(t *testing.T) {
		resp := adminGet(t, server, "/admin/export.csv?type=parents", true)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/admin/export/parents", resp.Header.Get(fiber.HeaderLocation))

		resp = adminGet(t, server, "/admin/export.csv?type=caregivers", true)
		assert.Equal(t, fiber.StatusFound, resp.StatusCode)
		assert.Equal(t, "/admin/export/caregivers", resp.Header.Get(fiber.HeaderLocation))
	})

	t.Run("newsletter streams inline", func(t *testing.T) {
		resp := adminGet(t, server, "/admin/export.csv?type=newsletter", true)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "newsletter.csv")

		data, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(string(data), "ID,Email,Created At"))
		assert.Contains(t, string(data), "sub@example.com")
	})

	t.Run("unknown type rejected", func(t *testing.T) {
		resp := adminGet(t, server, "/admin/export.csv?type=everything", true)
		assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	})
}

func TestAdmin_NewsletterReport(t *testing.T) {
	server, _ := newTestServer(t, testConfig())

	resp := postForm(t, server, "/api/newsletter", url.Values{
		"email": {"sub@example.com"},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	reportResp := adminGet(t, server, "/admin/newsletter", true)
	assert.Equal(t, fiber.StatusOK, reportResp.StatusCode)

	var report adminController.NewsletterReport
	decodeJSON(t, reportResp, &report)

	assert.EqualValues(t, 1, report.Total)
	assert.EqualValues(t, 1, report.ThisWeek)
	require.Len(t, report.Subscribers, 1)
	assert.Equal(t, "sub@example.com", report.Subscribers[0].Email)
}
