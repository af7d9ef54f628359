/*
PURPOSE:
  Defines the core data structures used throughout Toy Robot.
  These models represent headings, table positions, parsed commands
  and the per-line trace record.

REQUIREMENTS:
  User-specified:
  - Headings NORTH, EAST, SOUTH, WEST plus an UNDEFINED sentinel.
  - Commands PLACE, MOVE, LEFT, RIGHT, REPORT.

  Implementation-discovered:
  - Need JSON tags on Step for the JSON Lines trace.
  - Rotation is modular arithmetic over the four real headings.

ARCHITECTURE INTEGRATION:
  - Used by: internal/parser, internal/engine, internal/output
  - Shared across boundaries.

ERROR HANDLING:
  - None (pure data types). Unknown names map to UNDEFINED / ok=false.

IMPLEMENTATION RULES:
  - Keep types simple and public.
  - UNDEFINED never takes part in rotation.

USAGE:
  h := model.ParseHeading("NORTH").Right() // EAST

SELF-HEALING INSTRUCTIONS:
  - If new fields are traced, add them to Step and update CSV/JSON writers.

RELATED FILES:
  - internal/output/csv.go
  - internal/output/json.go

MAINTENANCE:
  - Update when adding new commands.
*/

package model

import "fmt"

// Heading is the direction the robot faces.
type Heading int

const (
	North Heading = iota
	East
	South
	West
	Undefined
)

// compass is the rotation cycle, clockwise.
var compass = [...]Heading{North, East, South, West}

var headingNames = map[Heading]string{
	North:     "NORTH",
	East:      "EAST",
	South:     "SOUTH",
	West:      "WEST",
	Undefined: "UNDEFINED",
}

// ParseHeading maps a heading name to a Heading. Matching is exact and
// case-sensitive; anything else, including "UNDEFINED", yields Undefined.
func ParseHeading(s string) Heading {
	for _, h := range compass {
		if headingNames[h] == s {
			return h
		}
	}
	return Undefined
}

// Valid reports whether h is one of the four real headings.
func (h Heading) Valid() bool {
	return h >= North && h <= West
}

// Right returns the heading one step clockwise.
func (h Heading) Right() Heading {
	return h.turn(1)
}

// Left returns the heading one step anti-clockwise.
func (h Heading) Left() Heading {
	return h.turn(len(compass) - 1)
}

func (h Heading) turn(step int) Heading {
	if !h.Valid() {
		return Undefined
	}
	return compass[(int(h)+step)%len(compass)]
}

func (h Heading) String() string {
	if name, ok := headingNames[h]; ok {
		return name
	}
	return headingNames[Undefined]
}

// Position is a cell on the table.
type Position struct {
	X uint64 `json:"x"`
	Y uint64 `json:"y"`
}

// Action is a command keyword.
type Action int

const (
	Move Action = iota
	Left
	Right
	Place
	Report
)

var actionNames = map[string]Action{
	"MOVE":   Move,
	"LEFT":   Left,
	"RIGHT":  Right,
	"PLACE":  Place,
	"REPORT": Report,
}

// ParseAction matches a command keyword exactly.
func ParseAction(s string) (Action, bool) {
	a, ok := actionNames[s]
	return a, ok
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// Command is a validated instruction for the robot. X, Y and Heading are
// only meaningful when Action is Place.
type Command struct {
	Action  Action
	X       uint64
	Y       uint64
	Heading Heading
}

func (c Command) String() string {
	if c.Action == Place {
		return fmt.Sprintf("PLACE %d,%d,%s", c.X, c.Y, c.Heading)
	}
	return c.Action.String()
}

// Outcome classifies what happened to one input line.
type Outcome string

const (
	OutcomeApplied     Outcome = "applied"
	OutcomeSyntaxError Outcome = "syntax_error"
	OutcomeRejected    Outcome = "rejected"
	OutcomeNotPlaced   Outcome = "not_placed"
)

// Step is the trace record of a single processed input line.
type Step struct {
	Index   int     `json:"index"`
	Input   string  `json:"input"`
	Action  string  `json:"action,omitempty"`
	Outcome Outcome `json:"outcome"`
	Error   string  `json:"error,omitempty"`
	Placed  bool    `json:"placed"`
	X       uint64  `json:"x"`
	Y       uint64  `json:"y"`
	Heading string  `json:"heading,omitempty"`
	Report  string  `json:"report,omitempty"`
}
