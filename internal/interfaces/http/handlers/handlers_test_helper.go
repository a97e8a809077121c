package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"customer-onboarding.backend/internal/config"
	"customer-onboarding.backend/internal/infrastructure/repositories"
	"customer-onboarding.backend/internal/interfaces/http/middleware"
	"customer-onboarding.backend/internal/usecases"
	"customer-onboarding.backend/pkg/jwt"
)

// testEnv wires the full stack on an in-memory database so handler tests
// exercise real routing, binding, usecases and persistence.
type testEnv struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")

	for _, q := range []string{
		`CREATE TABLE users (
			id TEXT PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL DEFAULT 'broker',
			created_at DATETIME,
			updated_at DATETIME
		);`,
		`CREATE TABLE customers (
			id TEXT PRIMARY KEY,
			user_id TEXT NOT NULL UNIQUE,
			first_name TEXT NOT NULL,
			last_name TEXT NOT NULL,
			gstin TEXT UNIQUE,
			phone TEXT,
			date_of_birth DATETIME,
			address TEXT,
			city TEXT,
			state TEXT,
			zip_code TEXT,
			country TEXT,
			onboarding_status TEXT NOT NULL DEFAULT 'pending',
			onboarding_step INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME
		);`,
		`CREATE TABLE documents (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			document_type TEXT NOT NULL,
			document_name TEXT NOT NULL,
			file_content BLOB,
			file_size INTEGER NOT NULL,
			mime_type TEXT NOT NULL,
			verification_status TEXT NOT NULL DEFAULT 'pending',
			uploaded_at DATETIME,
			verified_at DATETIME,
			notes TEXT
		);`,
		`CREATE TABLE onboarding_activities (
			id TEXT PRIMARY KEY,
			customer_id TEXT NOT NULL,
			activity_type TEXT NOT NULL,
			activity_description TEXT NOT NULL,
			created_at DATETIME
		);`,
	} {
		require.NoError(t, db.Exec(q).Error)
	}

	jwtService := jwt.NewJWTService("test-secret", time.Hour)

	userRepo := repositories.NewUserRepository(db)
	customerRepo := repositories.NewCustomerRepository(db)
	documentRepo := repositories.NewDocumentRepository(db)
	activityRepo := repositories.NewActivityRepository(db)
	uow := repositories.NewUnitOfWork(db)

	authUsecase := usecases.NewAuthUsecase(userRepo, customerRepo, activityRepo, jwtService)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo, activityRepo, uow)
	documentUsecase := usecases.NewDocumentUsecase(documentRepo, customerRepo, activityRepo, uow)
	adminUsecase := usecases.NewAdminUsecase(userRepo, customerRepo, documentRepo, activityRepo)

	authHandler := NewAuthHandler(authUsecase)
	customerHandler := NewCustomerHandler(customerUsecase)
	documentHandler := NewDocumentHandler(documentUsecase, config.UploadConfig{
		MaxFileSize: 1024,
		AllowedMimeTypes: []string{
			"image/jpeg",
			"image/png",
			"application/pdf",
		},
	})
	adminHandler := NewAdminHandler(adminUsecase)

	authMW := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	v1 := r.Group("/api/v1")
	auth := v1.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.GET("/profile", authMW, authHandler.GetProfile)

	customers := v1.Group("/customers", authMW, middleware.RequireBrokerOrAdmin())
	customers.GET("/profile", customerHandler.GetProfile)
	customers.PUT("/profile", customerHandler.UpdateProfile)
	customers.GET("/status", customerHandler.GetStatus)
	customers.PUT("/status", customerHandler.UpdateStatus)
	customers.GET("/activities", customerHandler.GetActivities)

	documents := v1.Group("/documents", authMW, middleware.RequireBrokerOrAdmin())
	documents.POST("/upload", documentHandler.Upload)
	documents.GET("", documentHandler.List)
	documents.GET("/:id", documentHandler.Get)
	documents.GET("/:id/download", documentHandler.Download)
	documents.DELETE("/:id", documentHandler.Delete)

	admin := v1.Group("/admin", authMW, middleware.RequireAdmin())
	admin.GET("/overview", adminHandler.GetOverview)
	admin.GET("/users", adminHandler.ListUsers)
	admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
	admin.GET("/customers", adminHandler.ListCustomers)
	admin.GET("/customers/:id", adminHandler.GetCustomer)

	return &testEnv{router: r, db: db}
}

func (e *testEnv) do(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func (e *testEnv) upload(t *testing.T, token, docType, filename, mimeType string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("document_type", docType))

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="document"; filename=%q`, filename))
	header.Set("Content-Type", mimeType)
	part, err := mw.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

// register creates a user through the API and returns its token.
func (e *testEnv) register(t *testing.T, email, firstName, lastName, gstin string) string {
	t.Helper()
	payload := gin.H{
		"email":      email,
		"password":   "Password123!",
		"first_name": firstName,
		"last_name":  lastName,
	}
	if gstin != "" {
		payload["gstin"] = gstin
	}
	w := e.do(t, http.MethodPost, "/api/v1/auth/register", "", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}

// promoteToAdmin flips the role in the database directly, then logs in
// again so the new role lands in the token.
func (e *testEnv) registerAdmin(t *testing.T, email string) string {
	t.Helper()
	e.register(t, email, "Admin", "User", "")
	require.NoError(t, e.db.Exec(`UPDATE users SET role = 'admin' WHERE email = ?`, email).Error)

	w := e.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{
		"email":    email,
		"password": "Password123!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)["token"].(string)
}
