package matching

import (
	"github.com/Ramsey-B/fern/pkg/extractor"
	"github.com/Ramsey-B/fern/pkg/models"
	"github.com/Ramsey-B/fern/pkg/normalizers"
)

const (
	// PrimaryPhone refers to ExternalRecord.RawPhone in a KeySpec path list
	PrimaryPhone = "@phone"
	// PrimaryAddress refers to ExternalRecord.RawAddress in a KeySpec path list
	PrimaryAddress = "@address"
)

// KeySpec describes where a source keeps the values its candidate keys are built from
type KeySpec struct {
	Phones            []string // every path is used
	Addresses         []string // ordered fallback, first non-empty wins
	PhoneNormalizer   string
	AddressNormalizer string
}

// JobKeys reads job phones from the primary and second phone and the job address
var JobKeys = KeySpec{
	Phones:            []string{PrimaryPhone, "second_phone"},
	Addresses:         []string{PrimaryAddress},
	PhoneNormalizer:   "nphone",
	AddressNormalizer: "naddress",
}

// QuoteKeys reads quote phones from the phone_number column and the form's
// phone fields, and prefers the form's pickup address
var QuoteKeys = KeySpec{
	Phones:            []string{PrimaryPhone, "phone", "phones[*].number"},
	Addresses:         []string{"pickupAddress", PrimaryAddress, "deliveryAddress"},
	PhoneNormalizer:   "nphone",
	AddressNormalizer: "naddress",
}

var ex = extractor.New()

// values returns the raw values for a key path
func values(r models.ExternalRecord, path string) []string {
	switch path {
	case PrimaryPhone:
		return []string{r.RawPhone}
	case PrimaryAddress:
		return []string{r.RawAddress}
	}
	if r.Payload == nil {
		return nil
	}
	return ex.ExtractStrings(r.Payload, path)
}

// PhoneKeys returns the distinct non-empty normalized phones of a record, in path order
func (s KeySpec) PhoneKeys(r models.ExternalRecord) []string {
	seen := map[string]bool{}
	var keys []string
	for _, path := range s.Phones {
		for _, raw := range values(r, path) {
			phone := normalizers.Apply(raw, s.PhoneNormalizer)
			if phone == "" || seen[phone] {
				continue
			}
			seen[phone] = true
			keys = append(keys, phone)
		}
	}
	return keys
}

// AddressKey returns the normalized first non-empty address of a record
func (s KeySpec) AddressKey(r models.ExternalRecord) string {
	for _, path := range s.Addresses {
		for _, raw := range values(r, path) {
			if address := normalizers.Apply(raw, s.AddressNormalizer); address != "" {
				return address
			}
		}
	}
	return ""
}

// CandidateKeys returns every non-empty candidate key of a record
func (s KeySpec) CandidateKeys(r models.ExternalRecord) []models.CandidateKey {
	var keys []models.CandidateKey
	for _, phone := range s.PhoneKeys(r) {
		keys = append(keys, models.CandidateKey{Kind: models.KeyKindPhone, Value: phone})
	}
	if address := s.AddressKey(r); address != "" {
		keys = append(keys, models.CandidateKey{Kind: models.KeyKindAddress, Value: address})
	}
	return keys
}
