package handlers

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUploadAndRetrieval(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "docs@example.com", "Ravi", "Kumar", "")

	content := []byte("%PDF-1.4 fake pdf body")
	w := env.upload(t, token, "id_proof", "passport.pdf", "application/pdf", content)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.Equal(t, "Document uploaded successfully", body["message"])
	doc := body["document"].(map[string]interface{})
	assert.Equal(t, "id_proof", doc["document_type"])
	assert.Equal(t, "passport.pdf", doc["document_name"])
	assert.Equal(t, float64(len(content)), doc["file_size"])
	assert.Equal(t, "pending", doc["verification_status"])
	docID := doc["id"].(string)

	// list is metadata only
	w = env.do(t, http.MethodGet, "/api/v1/documents", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, float64(1), body["count"])

	// single fetch
	w = env.do(t, http.MethodGet, "/api/v1/documents/"+docID, token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	fetched := decodeBody(t, w)["document"].(map[string]interface{})
	assert.Equal(t, docID, fetched["id"])

	// download returns the original bytes with attachment headers
	w = env.do(t, http.MethodGet, "/api/v1/documents/"+docID+"/download", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf("attachment; filename=%q", "passport.pdf"), w.Header().Get("Content-Disposition"))
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.Equal(content, w.Body.Bytes()))

	// upload is recorded in the activity log
	w = env.do(t, http.MethodGet, "/api/v1/customers/activities", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	activities := decodeBody(t, w)["activities"].([]interface{})
	latest := activities[0].(map[string]interface{})
	assert.Equal(t, "DOCUMENT_UPLOAD", latest["activity_type"])
	assert.Equal(t, "Uploaded document: id_proof", latest["activity_description"])
}

func TestDocumentUploadRejections(t *testing.T) {
	env := newTestEnv(t)
	token := env.register(t, "reject@example.com", "Tara", "Nair", "")

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		require.NoError(t, mw.WriteField("document_type", "id_proof"))
		require.NoError(t, mw.Close())

		req := httptest.NewRequest(http.MethodPost, "/api/v1/documents/upload", &buf)
		req.Header.Set("Content-Type", mw.FormDataContentType())
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No file uploaded", decodeBody(t, w)["error"])
	})

	t.Run("invalid document type", func(t *testing.T) {
		w := env.upload(t, token, "passport_scan", "a.pdf", "application/pdf", []byte("x"))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("disallowed mime type", func(t *testing.T) {
		w := env.upload(t, token, "id_proof", "run.sh", "application/x-sh", []byte("#!/bin/sh"))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Invalid file type. Only JPEG, PNG, PDF, and DOC files are allowed.", decodeBody(t, w)["error"])
	})

	t.Run("oversize file", func(t *testing.T) {
		// test env caps uploads at 1024 bytes
		w := env.upload(t, token, "id_proof", "big.pdf", "application/pdf", bytes.Repeat([]byte("a"), 2048))
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["error"], "maximum size")
	})
}

func TestDocumentOwnershipBoundary(t *testing.T) {
	env := newTestEnv(t)
	ownerToken := env.register(t, "owner@example.com", "Own", "Er", "")
	otherToken := env.register(t, "other@example.com", "Oth", "Er", "")

	w := env.upload(t, ownerToken, "address_proof", "bill.png", "image/png", []byte("png-bytes"))
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	docID := decodeBody(t, w)["document"].(map[string]interface{})["id"].(string)

	// another customer cannot see, download or delete it
	w = env.do(t, http.MethodGet, "/api/v1/documents/"+docID, otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Access denied", decodeBody(t, w)["error"])

	w = env.do(t, http.MethodGet, "/api/v1/documents/"+docID+"/download", otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/documents/"+docID, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// the foreign document never shows up in the other customer's list
	w = env.do(t, http.MethodGet, "/api/v1/documents", otherToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(0), decodeBody(t, w)["count"])

	// malformed and unknown ids
	w = env.do(t, http.MethodGet, "/api/v1/documents/not-a-uuid", ownerToken, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid document id", decodeBody(t, w)["error"])

	w = env.do(t, http.MethodGet, "/api/v1/documents/11111111-2222-3333-4444-555555555555", ownerToken, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Document not found", decodeBody(t, w)["error"])

	// owner deletes, document and content are gone
	w = env.do(t, http.MethodDelete, "/api/v1/documents/"+docID, ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = env.do(t, http.MethodGet, "/api/v1/documents/"+docID, ownerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
