package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/tasklist-app/tasklist/internal/views"
)

const (
	maxFormBytes = 1 << 20

	urlParamUser   = "user"
	urlParamTaskID = "taskID"

	formFieldUsername = "username"
	formFieldTaskName = "task_name"
	formFieldTaskDesc = "task_description"
)

// responder renders pages with any pending flash messages attached.
type responder struct {
	renderer *views.Renderer
	flasher  *Flasher
}

func (p responder) render(w http.ResponseWriter, r *http.Request, status int, name string, page views.Page) {
	page.Flashes = append(p.flasher.Pop(w, r), page.Flashes...)
	if err := p.renderer.Render(w, status, name, page); err != nil {
		serverError(w, r, err)
	}
}

func (p responder) flash(w http.ResponseWriter, r *http.Request, category, message string) {
	if err := p.flasher.Add(w, r, category, message); err != nil {
		slog.Error("set flash message", "error", err, "request_id", middleware.GetReqID(r.Context()))
	}
}

func serverError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("request failed",
		"method", r.Method,
		"path", r.URL.Path,
		"request_id", middleware.GetReqID(r.Context()),
		"error", err,
	)
	writeError(w, http.StatusInternalServerError, "internal server error")
}

func writeError(w http.ResponseWriter, status int, message string) {
	http.Error(w, message, status)
}

func parseForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		return fmt.Errorf("invalid form: %w", err)
	}
	return nil
}

// requiredFormValue rejects fields that are absent or blank.
func requiredFormValue(r *http.Request, field string) (string, error) {
	values, ok := r.PostForm[field]
	if !ok || len(values) == 0 {
		return "", fmt.Errorf("%s is required", field)
	}
	value := strings.TrimSpace(values[0])
	if value == "" {
		return "", fmt.Errorf("%s is required", field)
	}
	return value, nil
}

// usernameParam returns the decoded {user} segment. chi matches against the
// escaped path whenever RawPath is set, so the segment may still carry
// escapes such as %2F.
func usernameParam(r *http.Request) string {
	username := chi.URLParam(r, urlParamUser)
	if r.URL.RawPath == "" {
		return username
	}
	if decoded, err := url.PathUnescape(username); err == nil {
		return decoded
	}
	return username
}

func parseTaskID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, urlParamTaskID), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func userPath(username string) string {
	return "/" + url.PathEscape(username)
}

func taskListPath(username string) string {
	return userPath(username) + "/tasks"
}
