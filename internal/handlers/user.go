package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tasklist-app/tasklist/internal/services"
	"github.com/tasklist-app/tasklist/internal/store"
	"github.com/tasklist-app/tasklist/internal/views"
)

// UserHandler serves registration, the user directory and dashboards.
type UserHandler struct {
	responder
	userService *services.UserService
}

// NewUserHandler constructs a UserHandler with the provided dependencies.
func NewUserHandler(userService *services.UserService, renderer *views.Renderer, flasher *Flasher) *UserHandler {
	return &UserHandler{
		responder:   responder{renderer: renderer, flasher: flasher},
		userService: userService,
	}
}

// UserRouter registers user routes on the given router.
func UserRouter(r chi.Router, userService *services.UserService, renderer *views.Renderer, flasher *Flasher) {
	handler := NewUserHandler(userService, renderer, flasher)

	r.Get("/", handler.RegisterForm)
	r.Post("/", handler.Register)
	r.Get("/users", handler.ListUsers)
	r.Get("/{user}", handler.Home)
}

func (h *UserHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, views.PageRegister, views.Page{Title: "Register"})
}

// Register creates the user and redirects to their dashboard. A taken
// username re-renders the form with an error instead.
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(w, r); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	username, err := requiredFormValue(r, formFieldUsername)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.userService.Register(r.Context(), username); err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			h.render(w, r, http.StatusConflict, views.PageRegister, views.Page{
				Title: "Register",
				Flashes: []views.Flash{{
					Category: flashError,
					Message:  fmt.Sprintf("User '%s' already exists. Please choose a different username.", username),
				}},
				Form: views.Form{Username: username},
			})
			return
		}
		serverError(w, r, err)
		return
	}

	h.flash(w, r, flashSuccess, fmt.Sprintf("User %s created successfully!", username))
	http.Redirect(w, r, userPath(username), http.StatusSeeOther)
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List(r.Context())
	if err != nil {
		serverError(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, views.PageUsers, views.Page{Title: "Users", Users: users})
}

func (h *UserHandler) Home(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	h.render(w, r, http.StatusOK, views.PageHome, views.Page{Title: username, User: username})
}
