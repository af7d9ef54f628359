/*
PURPOSE:
  Turns a raw input line into a validated model.Command.

REQUIREMENTS:
  User-specified:
  - Keyword is matched exactly against MOVE, LEFT, RIGHT, PLACE, REPORT.
  - PLACE takes exactly "x,y,heading" with digit-only coordinates.

  Implementation-discovered:
  - The PLACE payload is small enough for a participle grammar over a
    three-rule lexer; whitespace is not elided, so a space inside a
    coordinate is a syntax error.
  - Coordinates that overflow uint64 saturate and are left for the
    bounds check in the engine.

ARCHITECTURE INTEGRATION:
  - Called by: internal/engine.Runner, internal/cli (check)
  - Produces: internal/model.Command

ERROR HANDLING:
  - Never panics. Every malformed line returns an error wrapping
    ErrUnknownAction or ErrMalformedPlace; callers drop the line.

IMPLEMENTATION RULES:
  - Syntax only. Range and heading validity belong to the engine.

USAGE:
  cmd, err := parser.Parse("PLACE 1,2,EAST")

SELF-HEALING INSTRUCTIONS:
  - If a new command takes arguments, give it its own grammar struct.

RELATED FILES:
  - internal/model/types.go
  - internal/engine/robot.go

MAINTENANCE:
  - Update when the command protocol changes.
*/

package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/daryltucker/toyrobot/internal/model"
)

var (
	// ErrUnknownAction is returned when the keyword is not a command.
	ErrUnknownAction = errors.New("unknown action")
	// ErrMalformedPlace is returned when a PLACE payload is not x,y,heading.
	ErrMalformedPlace = errors.New("malformed PLACE arguments")
)

var placeLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Number", Pattern: `[0-9]+`},
	{Name: "Comma", Pattern: `,`},
	{Name: "Text", Pattern: `[^,]+`},
})

// placeArgs is the grammar of the PLACE payload. Heading is captured as raw
// text and resolved by model.ParseHeading so that unknown names survive to
// the engine as Undefined.
type placeArgs struct {
	X       string `parser:"@Number ','"`
	Y       string `parser:"@Number ','"`
	Heading string `parser:"@(Number | Text)*"`
}

var placeParser = participle.MustBuild[placeArgs](participle.Lexer(placeLexer))

// Parse converts one input line into a Command.
func Parse(line string) (model.Command, error) {
	keyword, payload := splitKeyword(line)

	action, ok := model.ParseAction(keyword)
	if !ok {
		return model.Command{}, fmt.Errorf("%w: %q", ErrUnknownAction, keyword)
	}

	if action != model.Place {
		return model.Command{Action: action}, nil
	}
	return parsePlace(payload)
}

// splitKeyword cuts the line at its first whitespace character.
func splitKeyword(line string) (string, string) {
	i := strings.IndexFunc(line, unicode.IsSpace)
	if i < 0 {
		return line, ""
	}
	_, size := utf8.DecodeRuneInString(line[i:])
	return line[:i], line[i+size:]
}

func parsePlace(payload string) (model.Command, error) {
	args, err := placeParser.ParseString("", payload)
	if err != nil {
		return model.Command{}, fmt.Errorf("%w: %v", ErrMalformedPlace, err)
	}

	return model.Command{
		Action:  model.Place,
		X:       parseCoordinate(args.X),
		Y:       parseCoordinate(args.Y),
		Heading: model.ParseHeading(args.Heading),
	}, nil
}

// parseCoordinate reads a digit-only token. The lexer guarantees the syntax,
// so the only possible failure is overflow, where ParseUint already returns
// the saturated maximum.
func parseCoordinate(s string) uint64 {
	v, _ := strconv.ParseUint(s, 10, 64)
	return v
}
