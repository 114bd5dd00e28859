package domain

import "github.com/google/uuid"

// MinContacts is the floor for emergency and inheritance contact lists
const MinContacts = 2

// MinPeople is the floor for the contract signer list
const MinPeople = 1

// ContactList is an ordered contact form list
type ContactList []Contact

// NewContactList returns n blank contacts with fresh keys
func NewContactList(n int) ContactList {
	l := make(ContactList, 0, n)
	for i := 0; i < n; i++ {
		l = l.Add()
	}
	return l
}

// Add appends a blank contact whose key is not already in use
func (l ContactList) Add() ContactList {
	id := uuid.NewString()
	for l.has(id) {
		id = uuid.NewString()
	}
	out := append(ContactList{}, l...)
	return append(out, Contact{ID: id})
}

// Remove drops the contact with id. Lists at the floor are returned unchanged.
func (l ContactList) Remove(id string) ContactList {
	if len(l) <= MinContacts {
		return l
	}
	out := make(ContactList, 0, len(l))
	for _, c := range l {
		if c.ID != id {
			out = append(out, c)
		}
	}
	return out
}

func (l ContactList) has(id string) bool {
	for _, c := range l {
		if c.ID == id {
			return true
		}
	}
	return false
}

// RemovePerson drops the signer at index unless only MinPeople remain
func RemovePerson(people []Person, index int) []Person {
	if len(people) <= MinPeople || index < 0 || index >= len(people) {
		return people
	}
	return append(people[:index:index], people[index+1:]...)
}

// WithIDs returns a copy in which every contact has its own key
func (l ContactList) WithIDs() ContactList {
	out := make(ContactList, len(l))
	seen := make(map[string]bool, len(l))
	for i, c := range l {
		for c.ID == "" || seen[c.ID] {
			c.ID = uuid.NewString()
		}
		seen[c.ID] = true
		out[i] = c
	}
	return out
}
