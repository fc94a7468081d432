package model

import "github.com/jacentio/booking/store"

// User is a person who books tickets. Email is used for exact-match lookups
// but is not required to be unique.
type User struct {
	ID    int64  `dynamodbav:"id" json:"id"`
	Name  string `dynamodbav:"name" json:"name"`
	Email string `dynamodbav:"email" json:"email"`
}

// NewUser creates a user that has not been saved yet.
func NewUser(name, email string) *User {
	return &User{ID: NotAssigned, Name: name, Email: email}
}

func (u *User) Namespace() store.Namespace { return store.UserNamespace }
func (u *User) EntityID() int64            { return u.ID }

// WithID returns a copy of u carrying id.
func (u *User) WithID(id int64) *User {
	c := *u
	c.ID = id
	return &c
}

// Record encodes u for the store.
func (u *User) Record() (store.Record, error) {
	return marshalRecord(store.UserNamespace, u)
}

// UserFromItem decodes a stored user.
func UserFromItem(item *store.Item) (*User, error) {
	var u User
	if err := unmarshalItem(item, store.UserNamespace, &u); err != nil {
		return nil, err
	}
	return &u, nil
}
