package checkout

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"yachtdrop-backend/lib/echoutil"
	"yachtdrop-backend/services/auth"
	authdb "yachtdrop-backend/services/auth/db"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupServer(t *testing.T) *echo.Echo {
	t.Helper()
	sqlite, err := sql.Open("sqlite", ":memory:")
	require.Nil(t, err)
	t.Cleanup(func() { sqlite.Close() })
	_, err = sqlite.Exec(authdb.Schema)
	require.Nil(t, err)

	authService := auth.NewService(sqlite)

	e := echo.New()
	e.Validator = echoutil.NewValidator()
	api := e.Group("/api")
	authService.RegisterRoutes(api)
	NewHandler(authService).RegisterRoutes(api)
	return e
}

func login(t *testing.T, e *echo.Echo) *http.Cookie {
	t.Helper()
	register := httptest.NewRequest(http.MethodPost, "/api/auth/register",
		strings.NewReader(`{"username":"skipper","firstName":"Sam","lastName":"Mast","password":"hunter22"}`))
	register.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, register)
	require.Equal(t, http.StatusOK, rec.Code)

	loginReq := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"username":"skipper","password":"hunter22"}`))
	loginReq.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, loginReq)
	require.Equal(t, http.StatusOK, rec.Code)

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.SessionCookie && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatal("no session cookie issued on login")
	return nil
}

const orderBody = `{
	"items": [{"productId": "nh_abc12345", "qty": 1, "unitPrice": 29.9}],
	"method": "PICKUP",
	"pickup": {"pickupPoint": "Quai des Milliardaires"}
}`

func TestCheckoutRequiresSession(t *testing.T) {
	e := setupServer(t)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(orderBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Contains(t, rec.Body.String(), "AUTH_REQUIRED")
}

func TestCheckoutHappyPath(t *testing.T) {
	e := setupServer(t)
	cookie := login(t, e)

	req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(orderBody))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.Nil(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Regexp(t, `^YD-[0-9A-F]{6}$`, body["confirmationId"])
}

func TestCheckoutValidation(t *testing.T) {
	e := setupServer(t)
	cookie := login(t, e)

	badBodies := []string{
		`{"items": [], "method": "PICKUP", "pickup": {"pickupPoint": "x"}}`,
		`{"items": [{"productId": "p", "qty": 0, "unitPrice": 1}], "method": "PICKUP", "pickup": {"pickupPoint": "x"}}`,
		`{"items": [{"productId": "p", "qty": 1, "unitPrice": 1}], "method": "TELEPORT"}`,
		`{"items": [{"productId": "p", "qty": 1, "unitPrice": 1}], "method": "DELIVERY", "delivery": {"marina": "m"}}`,
		`not json`,
	}

	for _, body := range badBodies {
		req := httptest.NewRequest(http.MethodPost, "/api/checkout", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		req.AddCookie(cookie)
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code, "body: %s", body)
	}
}
