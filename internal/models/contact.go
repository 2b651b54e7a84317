// Package models defines the client-side data types of the rolodex.
package models

import "time"

// Contact is one record in the collection.
//
// ID is unique and immutable; CreatedAt is assigned once at creation and
// orders the collection on read. All other fields are optional and mutated
// in place by partial updates.
type Contact struct {
	ID        string    `json:"id"`
	First     string    `json:"first,omitempty"`
	Last      string    `json:"last,omitempty"`
	Avatar    string    `json:"avatar,omitempty"`
	Twitter   string    `json:"twitter,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	Favorite  bool      `json:"favorite,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName joins the name fields for presentation and matching.
// A contact with neither name set yields "".
func (c Contact) DisplayName() string {
	switch {
	case c.First != "" && c.Last != "":
		return c.First + " " + c.Last
	case c.First != "":
		return c.First
	default:
		return c.Last
	}
}

// ContactPatch carries a partial update. Nil fields are left untouched by
// Apply; ID and CreatedAt cannot be patched.
type ContactPatch struct {
	First    *string `json:"first,omitempty"`
	Last     *string `json:"last,omitempty"`
	Avatar   *string `json:"avatar,omitempty"`
	Twitter  *string `json:"twitter,omitempty"`
	Notes    *string `json:"notes,omitempty"`
	Favorite *bool   `json:"favorite,omitempty"`
}

// Apply merges the non-nil fields of p over c.
func (c *Contact) Apply(p ContactPatch) {
	if p.First != nil {
		c.First = *p.First
	}
	if p.Last != nil {
		c.Last = *p.Last
	}
	if p.Avatar != nil {
		c.Avatar = *p.Avatar
	}
	if p.Twitter != nil {
		c.Twitter = *p.Twitter
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Favorite != nil {
		c.Favorite = *p.Favorite
	}
}
