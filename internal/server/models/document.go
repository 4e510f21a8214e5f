// Package models holds the persisted data model: the Document aggregate and
// the records it contains.
package models

// Collection names as they appear in the persisted document.
const (
	UsersCollection       = "users"
	InvestmentsCollection = "investments"
)

// Document is the single persisted aggregate. It is loaded in full and
// rewritten in full; there is no partial persistence of one collection.
type Document struct {
	Users       []User       `json:"users"`
	Investments []Investment `json:"investments"`

	// Sequences records the last id issued per collection so that ids are
	// never reused after a delete. It is absent from hand-written documents.
	Sequences map[string]int `json:"sequences,omitempty"`
}

// NewDocument returns an empty Document.
func NewDocument() *Document {
	d := &Document{}
	d.Normalize()
	return d
}

// Normalize replaces nil collections with empty ones so that they are
// written as [] rather than null.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = []User{}
	}
	if d.Investments == nil {
		d.Investments = []Investment{}
	}
}

// LastIssued returns the last id issued for collection, or 0.
func (d *Document) LastIssued(collection string) int {
	return d.Sequences[collection]
}

// SetLastIssued records id as the last id issued for collection.
func (d *Document) SetLastIssued(collection string, id int) {
	if d.Sequences == nil {
		d.Sequences = make(map[string]int)
	}
	d.Sequences[collection] = id
}
