// Package overhead provides the Overhead Charges catalog.
// A charges record groups periodic indirect costs (rent, energy, labor, ...)
// and carries the allocation method used to spread them across produced units.
package overhead

import (
	"context"

	"github.com/shopspring/decimal"

	"fournil/internal/core/apperror"
	"fournil/internal/core/entity"
	"fournil/internal/core/types"
)

// Period is the charge accrual period.
type Period string

const (
	PeriodMonthly  Period = "monthly"
	PeriodAnnual   Period = "annual"
	PeriodPerBatch Period = "per_batch"
)

// AllocationMethod is a closed set of ways to spread charges across units.
// Every consumer dispatches on it through a single switch so a new method
// cannot be added without touching each formula branch.
type AllocationMethod string

const (
	// AllocPerUnit divides total charges by units produced in the period.
	AllocPerUnit AllocationMethod = "per_unit_produced"

	// AllocPercentOfCost applies a percentage to the consuming format's
	// base cost at pricing time.
	AllocPercentOfCost AllocationMethod = "percentage_of_cost"

	// AllocPerBatch divides total charges by the consuming recipe's batch size.
	AllocPerBatch AllocationMethod = "per_batch"
)

// ComponentKind names a charge component.
type ComponentKind string

const (
	ComponentEnergy      ComponentKind = "energy"
	ComponentTransport   ComponentKind = "transport"
	ComponentRent        ComponentKind = "rent"
	ComponentWater       ComponentKind = "water"
	ComponentMaintenance ComponentKind = "maintenance"
	ComponentInsurance   ComponentKind = "insurance"
	ComponentLabor       ComponentKind = "labor"
	ComponentOther       ComponentKind = "other"
)

// Component is one named charge amount inside a charges record.
type Component struct {
	Kind   ComponentKind `db:"kind" json:"kind"`
	Amount types.Money   `db:"amount" json:"amount"`
}

// Charges represents a periodic indirect-cost record.
type Charges struct {
	entity.Catalog

	Period Period `db:"period" json:"period"`

	// Components is the named breakdown; total charges is their sum
	Components []Component `db:"-" json:"components"`

	Method AllocationMethod `db:"method" json:"method"`

	// UnitsProduced is the denominator for AllocPerUnit
	UnitsProduced decimal.Decimal `db:"units_produced" json:"unitsProduced"`

	// Percent is the rate for AllocPercentOfCost, in [0,100)
	Percent types.Percent `db:"percent" json:"percent"`
}

// New creates a new Charges record.
func New(code, name string, period Period, method AllocationMethod) *Charges {
	return &Charges{
		Catalog: entity.NewCatalog(code, name),
		Period:  period,
		Method:  method,
	}
}

// TotalCharges sums all components.
func (c *Charges) TotalCharges() types.Money {
	total := decimal.Zero
	for _, comp := range c.Components {
		total = total.Add(comp.Amount)
	}
	return total
}

// Validate implements entity.Validatable interface.
func (c *Charges) Validate(ctx context.Context) error {
	if err := c.Catalog.Validate(ctx); err != nil {
		return err
	}

	switch c.Period {
	case PeriodMonthly, PeriodAnnual, PeriodPerBatch:
	default:
		return apperror.NewValidation("invalid charge period").
			WithDetail("field", "period").
			WithDetail("value", string(c.Period))
	}

	switch c.Method {
	case AllocPerUnit, AllocPercentOfCost, AllocPerBatch:
	default:
		return apperror.NewValidation("invalid allocation method").
			WithDetail("field", "method").
			WithDetail("value", string(c.Method))
	}

	for i, comp := range c.Components {
		if comp.Amount.IsNegative() {
			return apperror.NewValidation("charge component cannot be negative").
				WithDetail("component", i).
				WithDetail("kind", string(comp.Kind))
		}
	}

	if c.UnitsProduced.IsNegative() {
		return apperror.NewValidation("units produced cannot be negative").
			WithDetail("field", "unitsProduced")
	}

	if c.Method == AllocPercentOfCost &&
		(c.Percent.IsNegative() || c.Percent.GreaterThanOrEqual(decimal.NewFromInt(100))) {
		return apperror.NewValidation("allocation percentage must be in [0,100)").
			WithDetail("field", "percent").
			WithDetail("value", c.Percent.String())
	}

	return nil
}
