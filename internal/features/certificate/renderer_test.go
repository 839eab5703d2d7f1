package certificate

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPRendererStreamsArtifact(t *testing.T) {
	payload := Payload{
		StudentName:    "Ada Lovelace",
		CourseTitle:    "Intro to Go",
		MentorName:     "Rob",
		CompletionDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var got Payload
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, payload.StudentName, got.StudentName)
		assert.Equal(t, payload.CourseTitle, got.CourseTitle)

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("%PDF-1.7 fake"))
	}))
	defer server.Close()

	renderer := NewHTTPRenderer(server.URL, 5*time.Second)

	var buf bytes.Buffer
	err := renderer.Render(context.Background(), payload, &buf)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.7 fake", buf.String())
}

func TestHTTPRendererFailsBeforeWriting(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "renderer exploded", http.StatusInternalServerError)
	}))
	defer server.Close()

	renderer := NewHTTPRenderer(server.URL, 5*time.Second)

	var buf bytes.Buffer
	err := renderer.Render(context.Background(), Payload{}, &buf)
	assert.ErrorIs(t, err, ErrRenderFailed)
	assert.Zero(t, buf.Len())
}

func TestHTTPRendererUnreachable(t *testing.T) {
	renderer := NewHTTPRenderer("http://127.0.0.1:1", time.Second)

	var buf bytes.Buffer
	err := renderer.Render(context.Background(), Payload{}, &buf)
	assert.ErrorIs(t, err, ErrRenderFailed)
}
