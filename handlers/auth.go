package handlers

import (
	"errors"
	"net/http"

	"gotodo/auth"
	"gotodo/config"
	"gotodo/forms"
	"gotodo/logger"
	"gotodo/models"
)

func (app *App) LoginForm(w http.ResponseWriter, r *http.Request) {
	if identityFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.render(w, "login.html", models.FormPage{Flash: popFlash(w, r)})
}

func (app *App) Login(w http.ResponseWriter, r *http.Request) {
	form := forms.LoginForm{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
	}

	if err := forms.Validate(form); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			app.render(w, "login.html", models.FormPage{
				Values: map[string]string{"Username": form.Username},
				Errors: verr.Fields,
			})
			return
		}
		app.serverError(w, err)
		return
	}

	session, err := app.Auth.Login(r.Context(), form.Username, form.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		app.render(w, "login.html", models.FormPage{
			Values: map[string]string{"Username": form.Username},
			Flash:  "ユーザー名またはパスワードが間違っています。",
		})
		return
	}
	if err != nil {
		app.serverError(w, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   int(app.Cfg.SessionTTL.Seconds()),
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (app *App) Logout(w http.ResponseWriter, r *http.Request) {
	if st, err := r.Cookie(sessionCookie); err == nil && st.Value != "" {
		if err := app.Auth.Logout(r.Context(), st.Value); err != nil {
			logger.Log.Errorw("destroying session", "error", err)
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   -1,
	})

	if app.Cfg.Mode == config.ModeOpen {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (app *App) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if identityFrom(r) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	app.render(w, "register.html", models.FormPage{Flash: popFlash(w, r)})
}

func (app *App) Register(w http.ResponseWriter, r *http.Request) {
	form := forms.RegisterForm{
		Username:        r.FormValue("username"),
		Password:        r.FormValue("password"),
		ConfirmPassword: r.FormValue("confirm_password"),
	}

	if _, err := app.Auth.Register(r.Context(), form); err != nil {
		var verr *forms.ValidationError
		if errors.As(err, &verr) {
			app.render(w, "register.html", models.FormPage{
				Values: map[string]string{"Username": form.Username},
				Errors: verr.Fields,
			})
			return
		}
		app.serverError(w, err)
		return
	}

	setFlash(w, "アカウントが作成されました。ログインしてください。")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
