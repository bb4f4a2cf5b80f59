package entity

type PassCategory string

const (
	PassCategoryTech     PassCategory = "tech"
	PassCategoryWorkshop PassCategory = "workshop"
	PassCategoryGlobal   PassCategory = "global"
)

type Pass struct {
	Base
	Name        string       `db:"name"`
	Description string       `db:"description"`
	Category    PassCategory `db:"category"`
	Cost        int          `db:"cost"`
}
