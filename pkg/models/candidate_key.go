package models

// KeyKind is the kind of a candidate key
type KeyKind string

const (
	KeyKindPhone   KeyKind = "phone"
	KeyKindAddress KeyKind = "address"
)

// CandidateKey is a normalized value used to find records that may refer to
// the same customer. Empty values never match anything.
type CandidateKey struct {
	Kind  KeyKind `json:"kind"`
	Value string  `json:"value"`
}

// IsEmpty reports whether the key can't be used for matching
func (k CandidateKey) IsEmpty() bool {
	return k.Value == ""
}
