package consulta

// =============================================================================
// FIELD DESCRIPTORS - Alias resolution, once per record
// =============================================================================
// Record collections arrive with several historical spellings per logical
// field (productName / product_name / product). Each executor declares a
// Schema; normalization runs once per record at query start and produces a
// canonical intermediate record, so predicates never see alias fallbacks.

// Kind is the value type of a logical field.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindDate
	KindList
)

// Field describes one logical field: its canonical name, the historical
// spellings it may arrive under, and its kind.
type Field struct {
	Name    string
	Aliases []string
	Kind    Kind
}

// Schema is the ordered field-descriptor table of one record category.
type Schema []Field

// Normalize produces a fresh record keyed by canonical field names. Number
// fields are coerced to decimal where parseable (the raw value is kept when
// not, so guard-and-skip predicates can still decline it); the source record
// is never modified.
func (s Schema) Normalize(r Record) Record {
	out := make(Record, len(s))
	for _, f := range s {
		aliases := f.Aliases
		if len(aliases) == 0 {
			aliases = []string{f.Name}
		}
		v, ok := r.Get(aliases...)
		if !ok {
			continue
		}
		switch f.Kind {
		case KindNumber:
			if d, ok := AsNumber(v); ok {
				out[f.Name] = d
			} else {
				out[f.Name] = v
			}
		case KindList:
			if items := r.List(aliases...); items != nil {
				out[f.Name] = items
			} else {
				out[f.Name] = v
			}
		default:
			out[f.Name] = v
		}
	}
	return out
}

// NormalizeAll applies the schema across a collection.
func (s Schema) NormalizeAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = s.Normalize(r)
	}
	return out
}
