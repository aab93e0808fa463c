// Package handler is the thin HTTP layer over the registration service.
// It owns the JSON contract and page rendering; business rules stay in the
// service.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"troywings/internal/platform/metrics"
	"troywings/internal/platform/middleware"
	"troywings/internal/registration/models"
	dErrors "troywings/pkg/domain-errors"
)

// Service defines the registration operations the handler delegates to.
type Service interface {
	Register(ctx context.Context, user *models.User) error
	List(ctx context.Context) ([]models.User, error)
	Update(ctx context.Context, user models.User) error
}

// Handler handles the registration endpoints and pages.
type Handler struct {
	logger    *slog.Logger
	users     Service
	metrics   *metrics.Metrics
	templates *template.Template
}

// New creates a registration Handler.
func New(users Service, logger *slog.Logger, m *metrics.Metrics, templates *template.Template) *Handler {
	return &Handler{
		logger:    logger,
		users:     users,
		metrics:   m,
		templates: templates,
	}
}

// Register mounts the registration routes onto the chi router.
func (h *Handler) Register(r chi.Router) {
	router := chi.NewRouter()
	router.Use(middleware.Recovery(h.logger))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(h.logger))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.LatencyMiddleware(h.metrics))

	router.Get("/", h.handleFormPage)
	router.Get("/users", h.handleUserListPage)
	router.Get("/api/users", h.handleListUsers)
	router.With(middleware.ContentTypeJSON).Post("/register", h.handleRegister)
	router.With(middleware.ContentTypeJSON).Post("/users/{id}", h.handleUpdate)

	r.Mount("/", router)
}

func (h *Handler) handleFormPage(w http.ResponseWriter, r *http.Request) {
	h.renderPage(w, r, "register.html", nil)
}

// handleRegister accepts a registration submission and answers with the
// {success, message} envelope at HTTP 200 for both outcomes; the message is
// what the form surfaces to the visitor.
func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// A literal null body decodes into a nil pointer; reject it the same
	// way as an undecodable one.
	var req *models.RegisterRequest
	if err := decodeBody(r.Body, &req); err != nil || req == nil {
		h.logger.WarnContext(ctx, "invalid register payload",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		writeResult(w, models.SubmitResult{Success: false, Message: "No data received"})
		return
	}

	user := req.ToUser()
	if err := h.users.Register(ctx, &user); err != nil {
		writeResult(w, models.SubmitResult{Success: false, Message: "Error: " + dErrors.Message(err)})
		return
	}

	writeResult(w, models.SubmitResult{Success: true, Message: "Account created successfully!"})
}

// handleUserListPage renders the admin table. The page never fails: a read
// error is logged and the table renders empty. The JSON API at /api/users
// is the surface that reports read failures.
func (h *Handler) handleUserListPage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.users.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "user list page falling back to empty table",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		users = nil
	}

	rows := make([]userRow, 0, len(users))
	for _, u := range users {
		rows = append(rows, toUserRow(u))
	}
	h.renderPage(w, r, "users.html", rows)
}

func (h *Handler) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		writeResult(w, models.SubmitResult{Success: false, Message: "Invalid data."})
		return
	}

	var req *models.UpdateRequest
	if err := decodeBody(r.Body, &req); err != nil || req == nil {
		h.logger.WarnContext(ctx, "invalid update payload",
			"error", err,
			"request_id", middleware.GetRequestID(ctx),
		)
		writeResult(w, models.SubmitResult{Success: false, Message: "Invalid data."})
		return
	}
	if req.ID == 0 {
		req.ID = id
	}
	if req.ID != id {
		writeResult(w, models.SubmitResult{Success: false, Message: "Invalid data."})
		return
	}

	if err := h.users.Update(ctx, req.ToUser()); err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidID) {
			writeResult(w, models.SubmitResult{Success: false, Message: "Invalid data."})
			return
		}
		writeResult(w, models.SubmitResult{Success: false, Message: "Update failed: " + dErrors.Message(err)})
		return
	}

	writeResult(w, models.SubmitResult{Success: true, Message: "User updated successfully!"})
}

// userRow is the template view of a record.
type userRow struct {
	ID          int64
	FullName    string
	FatherName  string
	DateOfBirth string
	Email       string
	Address     string
	Phone       string
}

func toUserRow(u models.User) userRow {
	phone := ""
	if u.Phone != nil {
		phone = *u.Phone
	}
	return userRow{
		ID:          u.ID,
		FullName:    u.FullName,
		FatherName:  u.FatherName,
		DateOfBirth: u.DateOfBirth.Format(models.DateLayout),
		Email:       u.Email,
		Address:     u.Address,
		Phone:       phone,
	}
}

func (h *Handler) renderPage(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		h.logger.ErrorContext(r.Context(), "template render failed",
			"template", name,
			"error", err,
		)
	}
}

func decodeBody(body io.Reader, v any) error {
	if err := json.NewDecoder(body).Decode(v); err != nil {
		return err
	}
	return nil
}

func writeResult(w http.ResponseWriter, result models.SubmitResult) {
	writeJSON(w, http.StatusOK, result)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError translates domain errors into the JSON error envelope used by
// the API-style endpoints.
func writeError(w http.ResponseWriter, err error) {
	var de *dErrors.DomainError
	status := http.StatusInternalServerError
	code := string(dErrors.CodeInternal)
	if errors.As(err, &de) {
		status = dErrors.ToHTTPStatus(de.Code)
		code = string(de.Code)
	}
	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": dErrors.Message(err),
	})
}
