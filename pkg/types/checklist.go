package types

// ChecklistSet is a named checklist. Names are unique.
type ChecklistSet struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ChecklistItem belongs to one set. Item names are unique within a set.
type ChecklistItem struct {
	ID        int64  `json:"id"`
	ListID    int64  `json:"list_id"`
	Name      string `json:"name"`
	IsChecked bool   `json:"is_checked"`
}
