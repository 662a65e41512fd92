package models

// ListQuery holds the optional filters accepted by the listing endpoints.
type ListQuery struct {
	// Tier keeps only raid bosses of the given tier (raids only).
	Tier string `form:"tier"`

	// Label keeps only events with the given label (events only).
	Label string `form:"label" binding:"omitempty,oneof=current upcoming"`

	// Category keeps only research tasks or egg entries in the category.
	Category string `form:"category"`

	// Merge controls cross-listing reconciliation of events.
	// Default: true.
	Merge *bool `form:"merge"`
}

// Defaults applies default values to unset fields.
func (q *ListQuery) Defaults() {
	if q.Merge == nil {
		t := true
		q.Merge = &t
	}
}
