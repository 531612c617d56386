package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"sync"

	"github.com/tasklist-app/tasklist/types"
)

// Page names accepted by Render.
const (
	PageRegister = "user.html"
	PageHome     = "home.html"
	PageUsers    = "users.html"
	PageTasks    = "list_tasks.html"
	PageTask     = "view_task.html"
	PageNewTask  = "new_task.html"
	PageEditTask = "edit_task.html"
)

const layoutFile = "layout.html"

//go:embed templates/*.html
var embedded embed.FS

var pageNames = []string{
	PageRegister,
	PageHome,
	PageUsers,
	PageTasks,
	PageTask,
	PageNewTask,
	PageEditTask,
}

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Form echoes submitted values back into a re-rendered form.
type Form struct {
	Username        string
	TaskName        string
	TaskDescription string
}

// Page is the data handed to every template.
type Page struct {
	Title   string
	User    string
	Flashes []Flash
	Form    Form
	Users   []types.User
	Tasks   []types.Task
	Task    *types.Task
}

// Renderer executes the page templates.
type Renderer struct {
	fsys   fs.FS
	reload bool

	mu    sync.RWMutex
	pages map[string]*template.Template
}

// Templates returns the templates compiled into the binary.
func Templates() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// New parses every page from fsys. With reload set, pages are parsed again
// on each Render so edits on disk show up without a restart.
func New(fsys fs.FS, reload bool) (*Renderer, error) {
	r := &Renderer{fsys: fsys, reload: reload}
	pages, err := parsePages(fsys)
	if err != nil {
		return nil, err
	}
	r.pages = pages
	return r, nil
}

func parsePages(fsys fs.FS) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"path": url.PathEscape,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, layoutFile, name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.reload {
		pages, err := parsePages(r.fsys)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.pages = pages
		r.mu.Unlock()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown template %q", name)
	}
	return tmpl, nil
}

// Render writes the named page with the given status. Output is buffered so
// a failing template never leaves a partial page behind.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, page Page) error {
	tmpl, err := r.lookup(name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
