package domain

// Document is the aggregate root persisted by the document store: every
// account plus the full drink history, read and written as a whole.
type Document struct {
	Users   []User                  `json:"users"`
	History map[string][]DrinkEntry `json:"history"`
}

// NewDocument returns an empty document, the first-run shape the store
// initializes before any read.
func NewDocument() Document {
	return Document{
		Users:   []User{},
		History: map[string][]DrinkEntry{},
	}
}

// Clone returns a deep copy so callers can mutate freely without touching
// store-internal state.
func (d Document) Clone() Document {
	out := Document{
		Users:   make([]User, len(d.Users)),
		History: make(map[string][]DrinkEntry, len(d.History)),
	}
	copy(out.Users, d.Users)
	for i, u := range d.Users {
		if u.TumblerVolumeMl != nil {
			v := *u.TumblerVolumeMl
			out.Users[i].TumblerVolumeMl = &v
		}
	}
	for id, entries := range d.History {
		cp := make([]DrinkEntry, len(entries))
		copy(cp, entries)
		out.History[id] = cp
	}
	return out
}

// FindUser returns a pointer into Users for the given id, or nil.
func (d *Document) FindUser(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// FindUserByName returns a pointer into Users for the given username, or nil.
func (d *Document) FindUserByName(username string) *User {
	for i := range d.Users {
		if d.Users[i].Username == username {
			return &d.Users[i]
		}
	}
	return nil
}
