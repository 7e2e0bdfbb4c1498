// Package matching finds records from different sources that refer to the same customer
package matching

import (
	"sort"
	"strings"

	"github.com/Ramsey-B/fern/pkg/models"
)

// Match is an indexed record matched by a target
type Match struct {
	Record     models.ExternalRecord `json:"record"`
	MatchedBy  []models.CandidateKey `json:"matched_by"`  // the target's keys that hit this record
	AddressKey string                `json:"address_key"` // the record's normalized address
}

// PhonesMatch reports whether two normalized phones refer to the same line.
// Phones match when equal or when one is a suffix of the other, which covers
// a missing leading country code. Empty phones never match.
func PhonesMatch(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	return a == b || strings.HasSuffix(a, b) || strings.HasSuffix(b, a)
}

// FindMatches returns every indexed record directly matched by target, in index
// order, deduplicated by natural key. spec describes the target's keys.
// Matching is pairwise only; records related through a third record are not grouped.
func (i *Index) FindMatches(target models.ExternalRecord, spec KeySpec) []Match {
	found := map[int]*Match{}
	byKey := map[string]int{}

	add := func(pos int, key models.CandidateKey) {
		record := i.records[pos]
		// duplicate natural keys in the index collapse into the first occurrence
		if first, ok := byKey[record.NaturalKey]; ok && first != pos {
			pos = first
		}
		byKey[record.NaturalKey] = pos

		m, ok := found[pos]
		if !ok {
			m = &Match{Record: record, AddressKey: i.addressKey[pos]}
			found[pos] = m
		}
		for _, existing := range m.MatchedBy {
			if existing == key {
				return
			}
		}
		m.MatchedBy = append(m.MatchedBy, key)
	}

	for _, phone := range spec.PhoneKeys(target) {
		key := models.CandidateKey{Kind: models.KeyKindPhone, Value: phone}
		for _, indexed := range i.phoneOrder {
			if !PhonesMatch(phone, indexed) {
				continue
			}
			for _, pos := range i.phones[indexed] {
				add(pos, key)
			}
		}
	}

	if address := spec.AddressKey(target); address != "" {
		key := models.CandidateKey{Kind: models.KeyKindAddress, Value: address}
		for _, pos := range i.addresses[address] {
			add(pos, key)
		}
	}

	positions := make([]int, 0, len(found))
	for pos := range found {
		positions = append(positions, pos)
	}
	sort.Ints(positions)

	matches := make([]Match, 0, len(positions))
	for _, pos := range positions {
		matches = append(matches, *found[pos])
	}
	return matches
}
