package models

type ListPage struct {
	Todos      []Todo
	Flash      string
	IsLoggedIn bool
	Username   string
}

// FormPage backs the login, register and todo edit views. Values holds
// the submitted input so a failed form re-renders filled in; Errors maps
// field name to message.
type FormPage struct {
	Title      string
	Values     map[string]string
	Errors     map[string]string
	Flash      string
	IsLoggedIn bool
}

type AdminPage struct {
	Users      []User
	Flash      string
	IsLoggedIn bool
}
