package replacements

// Kind names the type of one bulletin change.
type Kind string

const (
	KindPairRemove    Kind = "pair_remove"
	KindPairAdd       Kind = "pair_add"
	KindCabinetChange Kind = "cabinet_change"
	KindPairChange    Kind = "pair_change"
)

// Change is one classified bulletin row. The concrete type carries only
// the fields meaningful to that kind of change, so callers have to
// type-switch instead of reading a room number out of a teacher column.
type Change interface {
	Kind() Kind
	Pair() string
}

// PairRemove — a lesson was cancelled outright.
type PairRemove struct {
	PairNumber string
	Subject    string
}

// PairAdd — a lesson was inserted where none existed.
type PairAdd struct {
	PairNumber string
	Subject    string
	Teacher    string
	Cabinet    string
}

// CabinetChange — a room move. The bulletin reuses the subject and
// teacher columns for the old and new room numbers.
type CabinetChange struct {
	PairNumber string
	OldCabinet string
	NewCabinet string
}

// PairChange — a normal substitution: subject and/or teacher and/or
// room changed.
type PairChange struct {
	PairNumber string
	OldSubject string
	NewSubject string
	Teacher    string
	Cabinet    string
}

func (c PairRemove) Kind() Kind    { return KindPairRemove }
func (c PairAdd) Kind() Kind       { return KindPairAdd }
func (c CabinetChange) Kind() Kind { return KindCabinetChange }
func (c PairChange) Kind() Kind    { return KindPairChange }

func (c PairRemove) Pair() string    { return c.PairNumber }
func (c PairAdd) Pair() string       { return c.PairNumber }
func (c CabinetChange) Pair() string { return c.PairNumber }
func (c PairChange) Pair() string    { return c.PairNumber }

// Record is one change attributed to a class group.
type Record struct {
	Group  string
	Change Change
}

// Classify converts one six-cell bulletin row into a Record. The second
// return value is false for a blank spacer row. Rule order matters:
// several conditions overlap, the first match wins.
func Classify(group, pairNumber, oldSubject, newSubject, teacher, cabinet string) (Record, bool) {
	if group == "" && pairNumber == "" && oldSubject == "" &&
		newSubject == "" && teacher == "" && cabinet == "" {
		return Record{}, false
	}

	switch {
	case newSubject == "-" && teacher == "-" && cabinet == "-":
		return Record{Group: group, Change: PairRemove{
			PairNumber: pairNumber,
			Subject:    oldSubject,
		}}, true

	case oldSubject == "-":
		return Record{Group: group, Change: PairAdd{
			PairNumber: pairNumber,
			Subject:    newSubject,
			Teacher:    teacher,
			Cabinet:    cabinet,
		}}, true

	case newSubject == "→" && cabinet == "":
		return Record{Group: group, Change: CabinetChange{
			PairNumber: pairNumber,
			OldCabinet: oldSubject,
			NewCabinet: teacher,
		}}, true

	default:
		return Record{Group: group, Change: PairChange{
			PairNumber: pairNumber,
			OldSubject: oldSubject,
			NewSubject: newSubject,
			Teacher:    teacher,
			Cabinet:    cabinet,
		}}, true
	}
}
