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

// TaskHandler serves a user's task pages. Every route is scoped by the
// {user} path segment.
type TaskHandler struct {
	responder
	taskService *services.TaskService
}

// NewTaskHandler constructs a TaskHandler with the provided dependencies.
func NewTaskHandler(taskService *services.TaskService, renderer *views.Renderer, flasher *Flasher) *TaskHandler {
	return &TaskHandler{
		responder:   responder{renderer: renderer, flasher: flasher},
		taskService: taskService,
	}
}

// TaskRouter registers task routes. It expects to be mounted below a
// pattern that defines the {user} parameter.
func TaskRouter(r chi.Router, taskService *services.TaskService, renderer *views.Renderer, flasher *Flasher) {
	handler := NewTaskHandler(taskService, renderer, flasher)

	r.Get("/", handler.ListTasks)
	r.Get("/new", handler.NewTaskForm)
	r.Post("/new", handler.CreateTask)
	r.Route("/{taskID:[0-9]+}", func(r chi.Router) {
		r.Get("/", handler.GetTask)
		r.Get("/edit", handler.EditTaskForm)
		r.Post("/edit", handler.UpdateTask)
		r.Post("/delete", handler.DeleteTask)
	})
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)

	tasks, err := h.taskService.List(r.Context(), username)
	if err != nil {
		serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageTasks, views.Page{
		Title: "Tasks",
		User:  username,
		Tasks: tasks,
	})
}

func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	id, ok := parseTaskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := h.taskService.Get(r.Context(), id, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.render(w, r, http.StatusNotFound, views.PageTask, views.Page{Title: "Task not found", User: username})
			return
		}
		serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageTask, views.Page{
		Title: task.Name,
		User:  username,
		Task:  &task,
	})
}

func (h *TaskHandler) NewTaskForm(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	h.render(w, r, http.StatusOK, views.PageNewTask, views.Page{Title: "New task", User: username})
}

// CreateTask inserts the task and redirects to the list. When the username
// was never registered nothing is written and the form comes back with an
// error.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	name, description, err := parseTaskForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.taskService.CreateForUser(r.Context(), username, name, description); err != nil {
		if errors.Is(err, services.ErrUnknownUser) {
			h.render(w, r, http.StatusNotFound, views.PageNewTask, views.Page{
				Title: "New task",
				User:  username,
				Flashes: []views.Flash{{
					Category: flashError,
					Message:  fmt.Sprintf("User '%s' does not exist.", username),
				}},
				Form: views.Form{TaskName: name, TaskDescription: description},
			})
			return
		}
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, taskListPath(username), http.StatusSeeOther)
}

// EditTaskForm shows the prefilled form, or sends the user back to their
// list when the task is missing or not theirs.
func (h *TaskHandler) EditTaskForm(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	id, ok := parseTaskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	task, err := h.taskService.Get(r.Context(), id, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Redirect(w, r, taskListPath(username), http.StatusFound)
			return
		}
		serverError(w, r, err)
		return
	}

	h.render(w, r, http.StatusOK, views.PageEditTask, views.Page{
		Title: "Edit task",
		User:  username,
		Task:  &task,
	})
}

// UpdateTask applies the edit and always redirects to the list, whether or
// not a row matched.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	id, ok := parseTaskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	name, description, err := parseTaskForm(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.taskService.Update(r.Context(), id, username, name, description); err != nil {
		serverError(w, r, err)
		return
	}

	http.Redirect(w, r, taskListPath(username), http.StatusSeeOther)
}

// DeleteTask removes the task if it belongs to the user and redirects to
// the list either way.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	username := usernameParam(r)
	id, ok := parseTaskID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}

	if _, err := h.taskService.Delete(r.Context(), id, username); err != nil {
		serverError(w, r, err)
		return
	}

	h.flash(w, r, flashSuccess, "Task deleted successfully!")
	http.Redirect(w, r, taskListPath(username), http.StatusSeeOther)
}

func parseTaskForm(w http.ResponseWriter, r *http.Request) (name, description string, err error) {
	if err := parseForm(w, r); err != nil {
		return "", "", err
	}
	name, err = requiredFormValue(r, formFieldTaskName)
	if err != nil {
		return "", "", err
	}
	description, err = requiredFormValue(r, formFieldTaskDesc)
	if err != nil {
		return "", "", err
	}
	return name, description, nil
}
