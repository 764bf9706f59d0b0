package handlers

import (
	"net/http"

	"gotodo/config"
	"gotodo/models"
)

// Admin lists every user. Gated mode requires the is_admin flag; open
// mode leaves the page reachable by anyone, as deployed.
func (app *App) Admin(w http.ResponseWriter, r *http.Request) {
	identity := identityFrom(r)

	if app.Cfg.Mode == config.ModeGated && (identity == nil || !identity.IsAdmin) {
		setFlash(w, "管理者ページにアクセスする権限がありません。")
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	users, err := app.Users.ListUsers(r.Context())
	if err != nil {
		app.serverError(w, err)
		return
	}

	app.render(w, "admin_panel.html", models.AdminPage{
		Users:      users,
		Flash:      popFlash(w, r),
		IsLoggedIn: identity != nil,
	})
}
