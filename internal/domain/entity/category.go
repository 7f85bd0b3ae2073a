package entity

// Category is read-only reference data served by the backend.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryName resolves a category id against a list, returning "" when absent.
func CategoryName(categories []Category, id *int64) string {
	if id == nil {
		return ""
	}
	for _, c := range categories {
		if c.ID == *id {
			return c.Name
		}
	}
	return ""
}
