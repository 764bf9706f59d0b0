package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"gotodo/logger"
)

func Router(app *App) http.Handler {
	r := chi.NewRouter()
	r.Use(logger.RequestLogger)
	r.Use(app.authenticate)

	r.Get("/login", app.LoginForm)
	r.Post("/login", app.Login)
	r.Get("/logout", app.Logout)
	r.Get("/register", app.RegisterForm)
	r.Post("/register", app.Register)

	r.Group(func(r chi.Router) {
		r.Use(app.requireLogin)
		r.Get("/", app.TodoList)
		r.Get("/add_todo", app.AddTodoForm)
		r.Post("/add_todo", app.AddTodo)
		r.Get("/edit_todo/{id}", app.EditTodoForm)
		r.Post("/edit_todo/{id}", app.EditTodo)
		r.Get("/delete_todo/{id}", app.DeleteTodo)
		r.Get("/admin", app.Admin)
	})

	return r
}
