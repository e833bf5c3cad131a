// Package measure provides measurement units for purchase and recipe quantities.
// Units belong to one of three classes (mass, volume, count); quantities
// convert freely within a class and never across classes.
package measure

import (
	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
)

// Class is the measurement class of a unit.
type Class string

const (
	ClassMass   Class = "mass"
	ClassVolume Class = "volume"
	ClassCount  Class = "count"
)

// Unit identifies a measurement unit.
type Unit string

const (
	Gram      Unit = "g"
	Kilogram  Unit = "kg"
	Milligram Unit = "mg"

	Milliliter Unit = "ml"
	Centiliter Unit = "cl"
	Liter      Unit = "l"

	Piece Unit = "pcs"
	Dozen Unit = "dozen"
)

// unitDef describes a unit: its class and the multiplier to the class base
// unit (g for mass, ml for volume, pcs for count).
type unitDef struct {
	class  Class
	toBase decimal.Decimal
}

var units = map[Unit]unitDef{
	Milligram: {ClassMass, decimal.RequireFromString("0.001")},
	Gram:      {ClassMass, decimal.NewFromInt(1)},
	Kilogram:  {ClassMass, decimal.NewFromInt(1000)},

	Milliliter: {ClassVolume, decimal.NewFromInt(1)},
	Centiliter: {ClassVolume, decimal.NewFromInt(10)},
	Liter:      {ClassVolume, decimal.NewFromInt(1000)},

	Piece: {ClassCount, decimal.NewFromInt(1)},
	Dozen: {ClassCount, decimal.NewFromInt(12)},
}

// IsValid reports whether the unit is known.
func (u Unit) IsValid() bool {
	_, ok := units[u]
	return ok
}

// ClassOf returns the measurement class of a unit.
func ClassOf(u Unit) (Class, error) {
	def, ok := units[u]
	if !ok {
		return "", apperror.NewValidation("unknown unit").WithDetail("unit", string(u))
	}
	return def.class, nil
}

// BaseOf returns the base unit of a unit's class.
func BaseOf(u Unit) (Unit, error) {
	class, err := ClassOf(u)
	if err != nil {
		return "", err
	}
	switch class {
	case ClassMass:
		return Gram, nil
	case ClassVolume:
		return Milliliter, nil
	default:
		return Piece, nil
	}
}

// Convert converts a quantity between two units of the same class.
// Converting across classes fails: there is no implicit mass/volume/count
// coercion anywhere in the cost cascade.
func Convert(qty decimal.Decimal, from, to Unit) (decimal.Decimal, error) {
	fromDef, ok := units[from]
	if !ok {
		return decimal.Zero, apperror.NewValidation("unknown unit").WithDetail("unit", string(from))
	}
	toDef, ok := units[to]
	if !ok {
		return decimal.Zero, apperror.NewValidation("unknown unit").WithDetail("unit", string(to))
	}
	if fromDef.class != toDef.class {
		return decimal.Zero, apperror.NewUnitMismatch(string(from), string(to))
	}
	return qty.Mul(fromDef.toBase).Div(toDef.toBase), nil
}

// ToBase converts a quantity to the base unit of its class.
func ToBase(qty decimal.Decimal, from Unit) (decimal.Decimal, Unit, error) {
	base, err := BaseOf(from)
	if err != nil {
		return decimal.Zero, "", err
	}
	converted, err := Convert(qty, from, base)
	if err != nil {
		return decimal.Zero, "", err
	}
	return converted, base, nil
}

// IsMass reports whether the unit measures mass. Price-per-gram is only
// derivable for mass-class ingredients.
func IsMass(u Unit) bool {
	def, ok := units[u]
	return ok && def.class == ClassMass
}
