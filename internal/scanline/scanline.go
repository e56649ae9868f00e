// Package scanline dispatches a mode descriptor to its family-specific
// scheduler. It exists as a neutral package (rather than living in
// internal/schedule) because the family/* packages import internal/schedule
// for the Event types; a dispatcher importing family/* from within
// internal/schedule would create an import cycle. Both internal/encoder and
// internal/decoder depend on this package so the same per-line timing
// sequence drives tone synthesis on encode and sample-window placement on
// decode. The family set is closed, so dispatch is one total switch over
// modes.Family.
package scanline

import (
	"github.com/tonysln/sstv-go/internal/family/martin"
	"github.com/tonysln/sstv-go/internal/family/pasokon"
	"github.com/tonysln/sstv-go/internal/family/robot"
	"github.com/tonysln/sstv-go/internal/family/scottie"
	"github.com/tonysln/sstv-go/internal/family/wrasse"
	"github.com/tonysln/sstv-go/internal/modes"
	"github.com/tonysln/sstv-go/internal/schedule"
)

// Scheduler produces one image row's scan sequence. PD and FAX are excluded
// from this interface: PD schedules row pairs (internal/family/pd.Scheduler.LinePair)
// and FAX additionally has a header and phasing interval with no row
// argument at all (internal/family/fax).
type Scheduler interface {
	Line(row int, pixels []byte) []schedule.Event
}

// New constructs the family scheduler for d. It returns nil for PD and FAX,
// whose callers must use the family package directly.
func New(d modes.Descriptor) Scheduler {
	switch d.Family {
	case modes.Martin:
		return martin.New(d)
	case modes.Scottie:
		return scottie.New(d)
	case modes.Wrasse:
		return wrasse.New(d)
	case modes.Pasokon:
		return pasokon.New(d)
	case modes.Robot:
		return robot.New(d)
	default:
		return nil
	}
}
