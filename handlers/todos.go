package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"gotodo/forms"
	"gotodo/logger"
	"gotodo/models"
	"gotodo/service"
	"gotodo/store"
)

func (app *App) TodoList(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	todos, err := app.Todos.List(r.Context(), identity)
	if err != nil {
		app.serverError(w, err)
		return
	}
	logger.Log.Debugw("rendering todo list", "count", len(todos))

	page := models.ListPage{Todos: todos, Flash: popFlash(w, r)}
	if identity != nil {
		page.IsLoggedIn = true
		page.Username = identity.Username
	}
	app.render(w, "todo_list.html", page)
}

func (app *App) AddTodoForm(w http.ResponseWriter, r *http.Request) {
	app.render(w, "todo_edit.html", models.FormPage{
		Title:      "新規ToDo追加",
		Flash:      popFlash(w, r),
		IsLoggedIn: identityFrom(r) != nil,
	})
}

func (app *App) AddTodo(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)
	owner := app.GuestID
	if identity != nil {
		owner = identity.UserID
	}

	form := forms.TodoForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	if _, err := app.Todos.Create(r.Context(), form, owner); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			app.render(w, "todo_edit.html", models.FormPage{
				Title:      "新規ToDo追加",
				Values:     map[string]string{"Title": form.Title, "Description": form.Description},
				Errors:     verr.Fields,
				IsLoggedIn: identity != nil,
			})
			return
		}
		app.serverError(w, err)
		return
	}

	setFlash(w, "ToDoが追加されました。")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// todoID parses the {id} path parameter. Anything non-integer is treated
// the same as a missing row.
func todoID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}

func (app *App) EditTodoForm(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	todo, err := app.Todos.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		app.serverError(w, err)
		return
	}

	identity := identityFrom(r)
	if !app.Todos.CanModify(identity, todo) {
		setFlash(w, "このToDoを編集する権限がありません。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	app.render(w, "todo_edit.html", models.FormPage{
		Title:      "ToDo編集",
		Values:     map[string]string{"Title": todo.Title, "Description": todo.Description},
		Flash:      popFlash(w, r),
		IsLoggedIn: identity != nil,
	})
}

func (app *App) EditTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	identity := identityFrom(r)
	form := forms.TodoForm{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	err = app.Todos.Update(r.Context(), id, form, identity)
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrForbidden):
		setFlash(w, "このToDoを編集する権限がありません。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case err != nil:
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			app.render(w, "todo_edit.html", models.FormPage{
				Title:      "ToDo編集",
				Values:     map[string]string{"Title": form.Title, "Description": form.Description},
				Errors:     verr.Fields,
				IsLoggedIn: identity != nil,
			})
			return
		}
		app.serverError(w, err)
	default:
		setFlash(w, "ToDoが更新されました。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}

func (app *App) DeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, err := todoID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = app.Todos.Delete(r.Context(), id, identityFrom(r))
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.NotFound(w, r)
	case errors.Is(err, service.ErrForbidden):
		setFlash(w, "このToDoを削除する権限がありません。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	case err != nil:
		app.serverError(w, err)
	default:
		setFlash(w, "ToDoが削除されました。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
}
