package entity

type Accommodation struct {
	Base
	Name           string `db:"name"`
	Description    string `db:"description"`
	CostPerNight   int    `db:"cost_per_night"`
	RoomsAvailable int    `db:"rooms_available"`
}
