package ofp

import (
	"fmt"
	"io"

	"github.com/doytsujin/of-protocol/internal/encoding"
)

// Table identifies a flow table within a switch. Lower numbers are
// consulted first when a packet is matched.
type Table uint8

func (t Table) String() string {
	return fmt.Sprintf("Table(%d)", t)
}

const (
	// TableMax is the last usable table number.
	TableMax Table = 0xfe

	// TableAll is the wildcard table used for table config, flow
	// stats, and flow deletes.
	TableAll Table = 0xff
)

// TableConfig is reserved for future table configuration bits; every
// defined value today is deprecated.
type TableConfig uint32

const TableConfigDeprecatedMask TableConfig = 3

// TableMod reconfigures a single table, or every table when Table is
// TableAll.
type TableMod struct {
	Table  Table
	Config TableConfig
}

func (t *TableMod) WriteTo(w io.Writer) (int64, error) {
	return encoding.WriteTo(w, t.Table, pad3{}, t.Config)
}

func (t *TableMod) ReadFrom(r io.Reader) (int64, error) {
	return encoding.ReadFrom(r, &t.Table, &defaultPad3, &t.Config)
}

// TableStats is one entry of a MultipartTypeTable reply: per-table
// occupancy and lookup counters.
type TableStats struct {
	Table        Table
	ActiveCount  uint32
	LookupCount  uint64
	MatchedCount uint64
}

func (t *TableStats) WriteTo(w io.Writer) (int64, error) {
	return encoding.WriteTo(w, t.Table, pad3{},
		t.ActiveCount, t.LookupCount, t.MatchedCount)
}

func (t *TableStats) ReadFrom(r io.Reader) (int64, error) {
	return encoding.ReadFrom(r, &t.Table, &defaultPad3,
		&t.ActiveCount, &t.LookupCount, &t.MatchedCount)
}
