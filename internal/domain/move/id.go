package move

import "fmt"

// ID identifies a move. The set is closed: every ID below None..count is
// defined by the catalog, which is checked when the catalog is built.
type ID uint8

const (
	None ID = iota
	SwingLeft
	SwingRight
	Stub
	Parry
	HeavySlam

	count
)

// Count is the number of real move IDs (None excluded).
const Count = int(count) - 1

var names = [count]string{
	None:       "None",
	SwingLeft:  "SwingLeft",
	SwingRight: "SwingRight",
	Stub:       "Stub",
	Parry:      "Parry",
	HeavySlam:  "HeavySlam",
}

func (id ID) String() string {
	if id < count {
		return names[id]
	}
	return fmt.Sprintf("ID(%d)", uint8(id))
}

// Valid reports whether id names a real move.
func (id ID) Valid() bool { return id > None && id < count }

// ParseID resolves a move name as written in config files.
func ParseID(name string) (ID, error) {
	for id := SwingLeft; id < count; id++ {
		if names[id] == name {
			return id, nil
		}
	}
	return None, fmt.Errorf("%q: %w", name, ErrMoveNotFound)
}

// All returns every real move ID in declaration order.
func All() []ID {
	ids := make([]ID, 0, Count)
	for id := SwingLeft; id < count; id++ {
		ids = append(ids, id)
	}
	return ids
}
