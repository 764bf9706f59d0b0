package models

type Todo struct {
	ID          int64  `db:"id"`
	Title       string `db:"title"`
	Description string `db:"description"`
	OwnerID     int64  `db:"owner_id"`
}
