package entity

// Member identity is issued by the membership subsystem; only the
// fields the reservation flow reads are mapped here.
type Member struct {
	Base
	Nickname string `db:"nickname"`
	Email    string `db:"email"`
}
