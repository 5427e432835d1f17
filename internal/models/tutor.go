package models

// Tutor is the public profile of someone offering classes.
type Tutor struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	Avatar   string `db:"avatar" json:"avatar"`
	Whatsapp string `db:"whatsapp" json:"whatsapp"`
	Bio      string `db:"bio" json:"bio"`
}
