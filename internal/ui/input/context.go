package input

// ModelContext implements types.Context from plain values snapshotted by the model
type ModelContext struct {
	Cursor    int
	Total     int
	Selected  int
	Removable bool
	Query     string
}

// CurrentIndex returns the cursor row
func (c *ModelContext) CurrentIndex() int { return c.Cursor }

// TotalItems returns the number of visible rows
func (c *ModelContext) TotalItems() int { return c.Total }

// HasSelection reports whether anything is selected
func (c *ModelContext) HasSelection() bool { return c.Selected > 0 }

// SelectedCount returns the number of selected nodes
func (c *ModelContext) SelectedCount() int { return c.Selected }

// CanRemoveSelection reports whether the selection is made only of atlases
func (c *ModelContext) CanRemoveSelection() bool { return c.Removable }

// SearchQuery returns the active search query
func (c *ModelContext) SearchQuery() string { return c.Query }
