package model

// CommonCode is one row of the shared enumeration lookup table. Statuses,
// priorities, channels and campaign types are operationally configurable, so
// they live in the database rather than compiled constants.
type CommonCode struct {
	ID          int    `db:"id" json:"id"`
	Category    string `db:"category" json:"category"`
	SubCategory string `db:"sub_category" json:"sub_category"`
	Code        string `db:"code" json:"code"`
	Name        string `db:"name" json:"name"`
	SortOrder   int    `db:"sort_order" json:"sort_order"`
	UseYn       string `db:"use_yn" json:"use_yn"`
}
