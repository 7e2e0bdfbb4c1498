package matching

import (
	"github.com/Ramsey-B/fern/pkg/models"
)

// Index maps normalized candidate keys to the records carrying them.
// Records with an empty key are never indexed under it.
type Index struct {
	spec       KeySpec
	records    []models.ExternalRecord
	addressKey []string // normalized address per record

	phones     map[string][]int
	phoneOrder []string // first-seen order of phone keys
	addresses  map[string][]int
}

// BuildIndex indexes records by their phone and address keys. Record order is
// preserved within every key.
func BuildIndex(records []models.ExternalRecord, spec KeySpec) *Index {
	idx := &Index{
		spec:       spec,
		records:    records,
		addressKey: make([]string, len(records)),
		phones:     make(map[string][]int),
		addresses:  make(map[string][]int),
	}

	for i, r := range records {
		for _, phone := range spec.PhoneKeys(r) {
			if _, ok := idx.phones[phone]; !ok {
				idx.phoneOrder = append(idx.phoneOrder, phone)
			}
			idx.phones[phone] = append(idx.phones[phone], i)
		}

		address := spec.AddressKey(r)
		idx.addressKey[i] = address
		if address != "" {
			idx.addresses[address] = append(idx.addresses[address], i)
		}
	}

	return idx
}

// Len returns the number of indexed records
func (i *Index) Len() int {
	return len(i.records)
}

// Records returns the indexed records in input order
func (i *Index) Records() []models.ExternalRecord {
	return i.records
}

// ByPhone returns the records indexed under exactly this phone key
func (i *Index) ByPhone(phone string) []models.ExternalRecord {
	return i.collect(i.phones[phone])
}

// ByAddress returns the records indexed under exactly this address key
func (i *Index) ByAddress(address string) []models.ExternalRecord {
	return i.collect(i.addresses[address])
}

func (i *Index) collect(positions []int) []models.ExternalRecord {
	result := make([]models.ExternalRecord, 0, len(positions))
	for _, p := range positions {
		result = append(result, i.records[p])
	}
	return result
}
