/*
PURPOSE:
  Core state machine for the toy robot.
  Holds position, heading and the placed flag, and applies one
  validated command at a time under the table bounds.

REQUIREMENTS:
  User-specified:
  - PLACE succeeds only inside the table with a real heading.
  - MOVE, LEFT, RIGHT, REPORT are ignored until the first PLACE.
  - MOVE never leaves the table.

  Implementation-discovered:
  - Every transition is computed on a copy and committed whole, so a
    rejected command cannot leave a partial write behind.
  - Coordinates are unsigned; a step below 0 is detected before it wraps.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Runner
  - Uses: internal/model

ERROR HANDLING:
  - Apply returns ErrNotPlaced, ErrOutOfBounds or ErrInvalidHeading.
    None of them are fatal; state is unchanged whenever one is returned.

IMPLEMENTATION RULES:
  - Single owner, no locking.
  - Table extents are fixed at construction.

USAGE:
  r := engine.NewRobot(engine.DefaultTable())
  err := r.Apply(cmd)
  report, ok := r.Report()

SELF-HEALING INSTRUCTIONS:
  - If a new Action is added, extend the switch in Apply.

RELATED FILES:
  - internal/model/types.go
  - internal/engine/runner.go

MAINTENANCE:
  - Update if obstacles or multiple robots are ever introduced.
*/

package engine

import (
	"errors"
	"fmt"

	"github.com/daryltucker/toyrobot/internal/model"
)

var (
	// ErrNotPlaced is returned for MOVE, LEFT, RIGHT and REPORT before the first successful PLACE.
	ErrNotPlaced = errors.New("robot has not been placed")
	// ErrOutOfBounds is returned when a PLACE or MOVE would leave the table.
	ErrOutOfBounds = errors.New("position is off the table")
	// ErrInvalidHeading is returned when a PLACE carries an undefined heading.
	ErrInvalidHeading = errors.New("invalid heading")
)

// Table is the inclusive extent of the table top. Valid cells are
// 0..MaxX by 0..MaxY.
type Table struct {
	MaxX uint64
	MaxY uint64
}

// DefaultTable returns the 5x5 table.
func DefaultTable() Table {
	return Table{MaxX: 4, MaxY: 4}
}

// Contains reports whether p lies on the table.
func (t Table) Contains(p model.Position) bool {
	return p.X <= t.MaxX && p.Y <= t.MaxY
}

type state struct {
	pos     model.Position
	heading model.Heading
	placed  bool
}

// Robot is the toy robot state machine.
type Robot struct {
	table Table
	cur   state
}

// NewRobot creates an unplaced robot on the given table.
func NewRobot(table Table) *Robot {
	return &Robot{
		table: table,
		cur:   state{heading: model.Undefined},
	}
}

// Table returns the table the robot is confined to.
func (r *Robot) Table() Table {
	return r.table
}

// Placed reports whether the robot has been successfully placed.
func (r *Robot) Placed() bool {
	return r.cur.placed
}

// Position returns the current position. It is meaningless until Placed.
func (r *Robot) Position() model.Position {
	return r.cur.pos
}

// Heading returns the current heading. It is Undefined until Placed.
func (r *Robot) Heading() model.Heading {
	return r.cur.heading
}

// Apply executes cmd. On error the robot is left exactly as it was.
func (r *Robot) Apply(cmd model.Command) error {
	if cmd.Action != model.Place && !r.cur.placed {
		return ErrNotPlaced
	}

	next := r.cur
	switch cmd.Action {
	case model.Place:
		pos := model.Position{X: cmd.X, Y: cmd.Y}
		if !r.table.Contains(pos) {
			return fmt.Errorf("%w: %d,%d", ErrOutOfBounds, cmd.X, cmd.Y)
		}
		if !cmd.Heading.Valid() {
			return ErrInvalidHeading
		}
		next = state{pos: pos, heading: cmd.Heading, placed: true}
	case model.Move:
		pos, ok := r.step()
		if !ok {
			return fmt.Errorf("%w: moving %s from %d,%d", ErrOutOfBounds, r.cur.heading, r.cur.pos.X, r.cur.pos.Y)
		}
		next.pos = pos
	case model.Left:
		next.heading = r.cur.heading.Left()
	case model.Right:
		next.heading = r.cur.heading.Right()
	case model.Report:
		return nil
	default:
		return fmt.Errorf("unhandled action %v", cmd.Action)
	}

	r.cur = next
	return nil
}

// step computes the cell one unit ahead. ok is false if that cell is off
// the table, including any step below zero.
func (r *Robot) step() (model.Position, bool) {
	p := r.cur.pos
	switch r.cur.heading {
	case model.North:
		if p.Y >= r.table.MaxY {
			return p, false
		}
		p.Y++
	case model.South:
		if p.Y == 0 {
			return p, false
		}
		p.Y--
	case model.East:
		if p.X >= r.table.MaxX {
			return p, false
		}
		p.X++
	case model.West:
		if p.X == 0 {
			return p, false
		}
		p.X--
	default:
		return p, false
	}
	return p, true
}

// Report renders the state as "x,y,HEADING". ok is false before the robot
// has been placed, and the string must not be shown.
func (r *Robot) Report() (string, bool) {
	if !r.cur.placed {
		return "", false
	}
	return fmt.Sprintf("%d,%d,%s", r.cur.pos.X, r.cur.pos.Y, r.cur.heading), true
}
