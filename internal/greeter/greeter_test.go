package greeter

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	h := Handler()

	tests := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/"},
		{http.MethodGet, "/index.html"},
		{http.MethodPost, "/submit"},
		{http.MethodPut, "/a/b/c?x=1"},
		{http.MethodDelete, "/style.css"},
		{"BREW", "/coffee"},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.target, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "text/html", rec.Header().Get("Content-Type"))
			assert.Equal(t, Body, rec.Body.String())
		})
	}
}

func TestBodyMarkup(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(Body))
	require.NoError(t, err)

	h1 := doc.Find("body > h1")
	require.Equal(t, 1, h1.Length())
	assert.Equal(t, "Hello World!", h1.Text())
}
