package authController_test

import (
	"bytes"
	"database/sql/driver"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"vendorhub/config"
	authController "vendorhub/controllers/auth"
	"vendorhub/middleware"
	"vendorhub/models"
	"vendorhub/otp"
	authRoutes "vendorhub/routers/authRoutes"
	"vendorhub/utils"
)

type envelope struct {
	Status  bool                   `json:"status"`
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupApp(t *testing.T, ttl time.Duration) (*fiber.App, sqlmock.Sqlmock, *otp.Store, *config.Config) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	dialector := postgres.New(postgres.Config{Conn: sqlDB, PreferSimpleProtocol: true})
	db, err := gorm.Open(dialector, &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:    "test-secret",
		JWTAlgorithm: "HS256",
	}
	store := otp.NewStore(ttl)

	app := fiber.New()
	authRoutes.SetupAuthRoutes(app, authController.New(db, cfg, store))

	return app, mock, store, cfg
}

func postJSON(t *testing.T, app *fiber.App, path string, payload interface{}) (int, envelope) {
	t.Helper()

	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env
}

func registerPayload(otpCode string) map[string]interface{} {
	return map[string]interface{}{
		"full_name": "Asha Verma",
		"mobile_no": "9876543210",
		"password":  "strong-password",
		"category":  models.CategoryVendor,
		"otp_code":  otpCode,
	}
}

func TestSendOTP(t *testing.T) {
	app, _, _, _ := setupApp(t, 5*time.Minute)

	status, env := postJSON(t, app, "/auth/send-otp", map[string]interface{}{"mobile_no": "9876543210"})

	assert.Equal(t, fiber.StatusOK, status)
	assert.True(t, env.Status)
	assert.Equal(t, true, env.Data["sent"])
}

func TestSendOTPInvalidMobile(t *testing.T) {
	app, _, _, _ := setupApp(t, 5*time.Minute)

	status, env := postJSON(t, app, "/auth/send-otp", map[string]interface{}{"mobile_no": "not-a-number"})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_error", env.Code)
}

func TestRegisterWithoutOTPFails(t *testing.T) {
	app, mock, _, _ := setupApp(t, 5*time.Minute)

	status, env := postJSON(t, app, "/auth/register", registerPayload("123456"))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "otp_required", env.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterWithWrongCodeFails(t *testing.T) {
	app, mock, store, _ := setupApp(t, 5*time.Minute)

	code, _ := store.Issue("9876543210")
	wrong := "000000"
	if wrong == code {
		wrong = "000001"
	}

	status, env := postJSON(t, app, "/auth/register", registerPayload(wrong))

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "otp_invalid", env.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterWithExpiredCodeFails(t *testing.T) {
	// Negative lifetime: every issued code is already past its expiry.
	app, mock, store, _ := setupApp(t, -time.Second)

	code, _ := store.Issue("9876543210")

	status, env := postJSON(t, app, "/auth/register", registerPayload(code))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "otp_expired", env.Code)

	// The stale record was removed; the next attempt needs a fresh code.
	status, env = postJSON(t, app, "/auth/register", registerPayload(code))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "otp_required", env.Code)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterMobileExistsWritesNothing(t *testing.T) {
	app, mock, store, _ := setupApp(t, 5*time.Minute)

	code, _ := store.Issue("9876543210")

	rows := sqlmock.NewRows([]string{"id", "full_name", "mobile_no", "password", "category"}).
		AddRow("7b7e9db5-6bb1-4f18-9d0e-2f4b8c1f7a11", "Asha Verma", "9876543210", "x", models.CategoryVendor)
	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).WillReturnRows(rows)

	status, env := postJSON(t, app, "/auth/register", registerPayload(code))

	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "mobile_exists", env.Code)
	// No insert was attempted.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterInvalidCategoryRejected(t *testing.T) {
	app, _, store, _ := setupApp(t, 5*time.Minute)

	code, _ := store.Issue("9876543210")
	payload := registerPayload(code)
	payload["category"] = "Admin"

	status, env := postJSON(t, app, "/auth/register", payload)

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "validation_error", env.Code)
}

func TestRegisterSuccessConsumesOTP(t *testing.T) {
	app, mock, store, _ := setupApp(t, 5*time.Minute)

	code, _ := store.Issue("9876543210")

	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "user_profiles"`).WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	status, env := postJSON(t, app, "/auth/register", registerPayload(code))

	assert.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Status)
	assert.Equal(t, "9876543210", env.Data["mobile_no"])
	assert.NotEmpty(t, env.Data["id"])
	assert.NoError(t, mock.ExpectationsWereMet())

	// The code is single-use: replaying the registration needs a new OTP.
	status, env = postJSON(t, app, "/auth/register", registerPayload(code))
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "otp_required", env.Code)
}

// argRecorder matches any statement argument and records its value, so
// assertions can check what was written without depending on column order.
type argRecorder struct {
	seen *[]driver.Value
}

func (r argRecorder) Match(v driver.Value) bool {
	*r.seen = append(*r.seen, v)
	return true
}

// userProfileArgCount is the number of UserProfile columns in an insert.
const userProfileArgCount = 18

func recordInsertArgs(mock sqlmock.Sqlmock) *[]driver.Value {
	seen := &[]driver.Value{}
	args := make([]driver.Value, userProfileArgCount)
	for i := range args {
		args[i] = argRecorder{seen: seen}
	}
	mock.ExpectExec(`INSERT INTO "user_profiles"`).
		WithArgs(args...).
		WillReturnResult(sqlmock.NewResult(1, 1))
	return seen
}

func insertedStrings(seen *[]driver.Value) []string {
	var values []string
	for _, v := range *seen {
		if s, ok := v.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func TestRegisterWithPhotoStoresDataURI(t *testing.T) {
	app, mock, store, _ := setupApp(t, 5*time.Minute)

	code, _ := store.Issue("9876543210")

	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	seen := recordInsertArgs(mock)
	mock.ExpectCommit()

	imageData := []byte{0x89, 'P', 'N', 'G', 1, 2, 3}
	encoded := base64.StdEncoding.EncodeToString(imageData)
	payload := registerPayload(code)
	payload["profile_photo_data"] = encoded
	payload["profile_photo_mime_type"] = "image/png"

	status, env := postJSON(t, app, "/auth/register", payload)

	require.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Status)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The photo triple is persisted together: re-encoded bytes, MIME type
	// and the derived data-URI display URL.
	values := insertedStrings(seen)
	assert.Contains(t, values, encoded)
	assert.Contains(t, values, "image/png")
	assert.Contains(t, values, "data:image/png;base64,"+encoded)
}

func TestRegisterUndecodablePhotoDoesNotAbort(t *testing.T) {
	app, mock, store, _ := setupApp(t, 5*time.Minute)

	code, _ := store.Issue("9876543210")

	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	seen := recordInsertArgs(mock)
	mock.ExpectCommit()

	payload := registerPayload(code)
	payload["profile_photo_data"] = "!!!not-base64!!!"
	payload["profile_photo_mime_type"] = "image/png"

	status, env := postJSON(t, app, "/auth/register", payload)

	// The decode failure is an operational warning only; the profile is
	// still created, just without photo data.
	require.Equal(t, fiber.StatusCreated, status)
	assert.True(t, env.Status)
	assert.Equal(t, "9876543210", env.Data["mobile_no"])
	assert.NoError(t, mock.ExpectationsWereMet())

	for _, v := range insertedStrings(seen) {
		assert.False(t, strings.HasPrefix(v, "data:"), v)
	}
}

func TestLoginUnknownAndWrongPasswordAreIdentical(t *testing.T) {
	app, mock, _, _ := setupApp(t, 5*time.Minute)

	// Unknown mobile number.
	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	unknownStatus, unknownEnv := postJSON(t, app, "/auth/login", map[string]interface{}{
		"mobile_no": "9876543210",
		"password":  "whatever-password",
	})

	// Known mobile number, wrong password.
	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "full_name", "mobile_no", "password", "category"}).
		AddRow("7b7e9db5-6bb1-4f18-9d0e-2f4b8c1f7a11", "Asha Verma", "9876543210", hash, models.CategoryVendor)
	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).WillReturnRows(rows)
	wrongStatus, wrongEnv := postJSON(t, app, "/auth/login", map[string]interface{}{
		"mobile_no": "9876543210",
		"password":  "whatever-password",
	})

	assert.Equal(t, fiber.StatusUnauthorized, unknownStatus)
	assert.Equal(t, unknownStatus, wrongStatus)
	assert.Equal(t, unknownEnv, wrongEnv)
	assert.Equal(t, "invalid_credentials", unknownEnv.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginSuccessIssuesToken(t *testing.T) {
	app, mock, _, cfg := setupApp(t, 5*time.Minute)

	hash, err := utils.HashPassword("correct-password")
	require.NoError(t, err)
	rows := sqlmock.NewRows([]string{"id", "full_name", "mobile_no", "password", "category"}).
		AddRow("7b7e9db5-6bb1-4f18-9d0e-2f4b8c1f7a11", "Asha Verma", "9876543210", hash, models.CategoryWomenMerchant)
	mock.ExpectQuery(`SELECT (.+) FROM "user_profiles" WHERE mobile_no`).WillReturnRows(rows)

	status, env := postJSON(t, app, "/auth/login", map[string]interface{}{
		"mobile_no": "9876543210",
		"password":  "correct-password",
	})

	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "bearer", env.Data["token_type"])
	assert.Equal(t, models.CategoryWomenMerchant, env.Data["category"])

	token, _ := env.Data["access_token"].(string)
	require.NotEmpty(t, token)

	sub, err := middleware.DecodeToken(cfg, token)
	require.NoError(t, err)
	assert.Equal(t, "7b7e9db5-6bb1-4f18-9d0e-2f4b8c1f7a11", sub)
	assert.NoError(t, mock.ExpectationsWereMet())
}
