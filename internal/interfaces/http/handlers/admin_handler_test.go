package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesAreRoleGated(t *testing.T) {
	env := newTestEnv(t)
	brokerToken := env.register(t, "gated@example.com", "Bro", "Ker", "")

	w := env.do(t, http.MethodGet, "/api/v1/admin/overview", brokerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Forbidden - Insufficient permissions", decodeBody(t, w)["error"])

	w = env.do(t, http.MethodGet, "/api/v1/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAdminOverviewAndListings(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "first@example.com", "First", "Broker", "")
	env.register(t, "second@example.com", "Second", "Broker", "")
	adminToken := env.registerAdmin(t, "root@example.com")

	w := env.do(t, http.MethodGet, "/api/v1/admin/overview", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	stats := body["stats"].(map[string]interface{})
	assert.Equal(t, float64(2), stats["total_brokers"])
	assert.Equal(t, float64(1), stats["total_admins"])
	assert.Equal(t, float64(3), stats["total_customers"])
	assert.NotEmpty(t, body["recent_users"])

	// role filter
	w = env.do(t, http.MethodGet, "/api/v1/admin/users?role=admin", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])
	only := body["users"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "root@example.com", only["email"])

	w = env.do(t, http.MethodGet, "/api/v1/admin/users?role=superuser", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `Invalid role. Must be "broker" or "admin"`, decodeBody(t, w)["error"])

	// customers listing carries joined user fields
	w = env.do(t, http.MethodGet, "/api/v1/admin/customers?limit=2", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(2), decodeBody(t, w)["count"])
}

func TestAdminRoleUpdate(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "promote-me@example.com", "Pro", "Mote", "")
	adminToken := env.registerAdmin(t, "chief@example.com")

	// find the target's id through the admin listing
	w := env.do(t, http.MethodGet, "/api/v1/admin/users?role=broker", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	users := decodeBody(t, w)["users"].([]interface{})
	require.Len(t, users, 1)
	targetID := users[0].(map[string]interface{})["id"].(string)

	w = env.do(t, http.MethodPut, "/api/v1/admin/users/"+targetID+"/role", adminToken, gin.H{"role": "admin"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "User role updated to admin successfully", body["message"])
	assert.Equal(t, "admin", body["user"].(map[string]interface{})["role"])

	// demote back
	w = env.do(t, http.MethodPut, "/api/v1/admin/users/"+targetID+"/role", adminToken, gin.H{"role": "broker"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "broker", decodeBody(t, w)["user"].(map[string]interface{})["role"])

	// self-demotion is blocked before any mutation
	w = env.do(t, http.MethodGet, "/api/v1/admin/users?role=admin", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	selfID := decodeBody(t, w)["users"].([]interface{})[0].(map[string]interface{})["id"].(string)

	w = env.do(t, http.MethodPut, "/api/v1/admin/users/"+selfID+"/role", adminToken, gin.H{"role": "broker"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Cannot demote yourself from admin", decodeBody(t, w)["error"])

	// invalid inputs
	w = env.do(t, http.MethodPut, "/api/v1/admin/users/not-a-uuid/role", adminToken, gin.H{"role": "admin"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid user id", decodeBody(t, w)["error"])

	w = env.do(t, http.MethodPut, "/api/v1/admin/users/"+targetID+"/role", adminToken, gin.H{"role": "owner"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, `Invalid role. Must be "broker" or "admin"`, decodeBody(t, w)["error"])

	w = env.do(t, http.MethodPut, "/api/v1/admin/users/11111111-2222-3333-4444-555555555555/role", adminToken, gin.H{"role": "admin"})
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "User not found", decodeBody(t, w)["error"])
}

func TestAdminCustomerDetail(t *testing.T) {
	env := newTestEnv(t)
	brokerToken := env.register(t, "subject@example.com", "Sub", "Ject", "33CCCCC2222C3Z7")
	adminToken := env.registerAdmin(t, "auditor@example.com")

	w := env.upload(t, brokerToken, "photo", "face.jpeg", "image/jpeg", []byte("jpeg-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/customers/profile", brokerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	customerID := decodeBody(t, w)["customer"].(map[string]interface{})["id"].(string)

	// admin can inspect a customer it does not own
	w = env.do(t, http.MethodGet, "/api/v1/admin/customers/"+customerID, adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decodeBody(t, w)
	assert.Equal(t, "subject@example.com", body["email"])
	assert.Equal(t, "broker", body["role"])
	assert.Len(t, body["documents"].([]interface{}), 1)
	assert.NotEmpty(t, body["activities"])

	w = env.do(t, http.MethodGet, "/api/v1/admin/customers/not-a-uuid", adminToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid customer id", decodeBody(t, w)["error"])

	w = env.do(t, http.MethodGet, "/api/v1/admin/customers/11111111-2222-3333-4444-555555555555", adminToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Customer not found", decodeBody(t, w)["error"])
}
