package format

import "github.com/correlator-io/curies"

// LoadInto adds every record to conv in order, using opts for each
// AddRecord call (e.g. curies.WithMerge() when loading a document whose
// entries may legitimately collide with records already in conv). It stops
// at the first failure.
func LoadInto(conv *curies.Converter, records []curies.Record, opts ...curies.AddRecordOption) error {
	for _, r := range records {
		if err := conv.AddRecord(r, opts...); err != nil {
			return err
		}
	}

	return nil
}
