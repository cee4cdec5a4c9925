package config

import (
	"fmt"
	"strings"
)

/*
Direction constrains which hierarchy edges a walk may follow.
*/
type Direction int

const (
	DirectionBoth Direction = iota
	DirectionUp
	DirectionDown
)

/*
Unit is the unit of the corpus size.
*/
type Unit int

const (
	UnitLine Unit = iota
	UnitToken
)

/*
String returns the flag spelling of the direction
*/
func (d Direction) String() string {
	switch d {
	case DirectionBoth:
		return "both"
	case DirectionUp:
		return "up"
	case DirectionDown:
		return "down"
	default:
		return "unknown"
	}
}

/*
ParseDirection converts a string to a Direction
*/
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "both":
		return DirectionBoth, nil
	case "up":
		return DirectionUp, nil
	case "down":
		return DirectionDown, nil
	default:
		return 0, fmt.Errorf("unknown direction %q (want up, down or both)", s)
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

/*
String returns the flag spelling of the unit
*/
func (u Unit) String() string {
	switch u {
	case UnitLine:
		return "line"
	case UnitToken:
		return "token"
	default:
		return "unknown"
	}
}

/*
ParseUnit converts a string to a Unit
*/
func ParseUnit(s string) (Unit, error) {
	switch strings.ToLower(s) {
	case "line":
		return UnitLine, nil
	case "token":
		return UnitToken, nil
	default:
		return 0, fmt.Errorf("unknown unit %q (want line or token)", s)
	}
}

func (u Unit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

func (u *Unit) UnmarshalText(text []byte) error {
	parsed, err := ParseUnit(string(text))
	if err != nil {
		return err
	}
	*u = parsed
	return nil
}

/*
ParseYesNo converts a yes/no flag value to a bool
*/
func ParseYesNo(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes":
		return true, nil
	case "no":
		return false, nil
	default:
		return false, fmt.Errorf("unknown value %q (want yes or no)", s)
	}
}

/*
YesNo is the inverse of ParseYesNo
*/
func YesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
