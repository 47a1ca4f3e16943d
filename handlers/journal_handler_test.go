package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bdl-cms/helper"
)

// brokenWriter accepts headers but fails every body write.
type brokenWriter struct {
	*httptest.ResponseRecorder
}

func (w brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("connection reset")
}

func TestErrorPage(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(nil, helper.NewHTTPHelper())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	h.errorPage(c, http.StatusNotFound, "Texte introuvable")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, w.Body.String(), "<p>Texte introuvable</p>")
	assert.Empty(t, c.Errors)
}

func TestErrorPageRecordsWriteFailure(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := NewJournalHandler(nil, helper.NewHTTPHelper())

	c, _ := gin.CreateTestContext(brokenWriter{httptest.NewRecorder()})
	h.errorPage(c, http.StatusNotFound, "Texte introuvable")

	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors.Last().Error(), "connection reset")
}
