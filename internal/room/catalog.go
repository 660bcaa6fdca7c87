package room

// DefaultCatalog returns the rooms a fresh deployment starts with.
func DefaultCatalog() []*Room {
	return []*Room{
		{ID: 1, Name: "Conference Room A", Capacity: 12, Equipment: []string{"Projector", "Whiteboard", "Video conferencing"}},
		{ID: 2, Name: "Meeting Room 1", Capacity: 6, Equipment: []string{"TV Screen", "Whiteboard"}},
		{ID: 3, Name: "Board Room", Capacity: 20, Equipment: []string{"Projector", "Whiteboard", "Video conferencing", "Audio system"}},
		{ID: 4, Name: "Huddle Space 1", Capacity: 4, Equipment: []string{"TV Screen"}},
		{ID: 5, Name: "Huddle Space 2", Capacity: 4, Equipment: []string{"TV Screen"}},
	}
}
