package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL DEFAULT 'broker',
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createCustomerTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE customers (
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
	);`)
}

func createDocumentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE documents (
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
	);`)
}

func createActivityTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE onboarding_activities (
		id TEXT PRIMARY KEY,
		customer_id TEXT NOT NULL,
		activity_type TEXT NOT NULL,
		activity_description TEXT NOT NULL,
		created_at DATETIME
	);`)
}

func createAllTables(t *testing.T, db *gorm.DB) {
	createUserTable(t, db)
	createCustomerTable(t, db)
	createDocumentTable(t, db)
	createActivityTable(t, db)
}
