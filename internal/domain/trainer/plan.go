// Package trainer implements the trainer access core: subscription plans,
// session quota accounting and the single-active-device session lock.
package trainer

import "time"

// PlanID identifies a subscription plan.
type PlanID string

const (
	PlanBasic    PlanID = "basic"
	PlanAdvanced PlanID = "advanced"
	PlanYearly   PlanID = "yearly"
)

// Plan describes a purchasable subscription plan. The plan table is static
// process-wide configuration; plans are never stored or mutated.
type Plan struct {
	ID          PlanID
	PriceRUB    int
	Duration    time.Duration
	AllTrainers bool
	// Sessions is the completed-session quota for single-trainer plans.
	// Zero for all-trainers plans, which are unlimited.
	Sessions int
}

var plans = map[PlanID]Plan{
	PlanBasic:    {ID: PlanBasic, PriceRUB: 990, Duration: 30 * 24 * time.Hour, AllTrainers: false, Sessions: 4},
	PlanAdvanced: {ID: PlanAdvanced, PriceRUB: 2490, Duration: 90 * 24 * time.Hour, AllTrainers: true, Sessions: 0},
	PlanYearly:   {ID: PlanYearly, PriceRUB: 6990, Duration: 365 * 24 * time.Hour, AllTrainers: true, Sessions: 0},
}

// PlanByID looks up a plan by its identifier.
func PlanByID(id PlanID) (Plan, bool) {
	p, ok := plans[id]
	return p, ok
}

// Plans returns all known plans. The returned slice is a copy.
func Plans() []Plan {
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, p)
	}
	return out
}
