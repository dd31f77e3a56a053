package services

import "backend/models"

// Actor is the authenticated principal an operation runs as.
type Actor struct {
	ID   uint
	Role string
}

func (a Actor) IsNutritionist() bool { return a.Role == models.RoleNutritionist }
func (a Actor) IsClient() bool       { return a.Role == models.RoleClient }

// Action names a capability checked by Allowed. Every service performs
// exactly one Allowed call per operation instead of scattering role
// conditionals.
type Action string

const (
	ActionViewContract     Action = "contract.view"
	ActionCancelContract   Action = "contract.cancel"
	ActionPauseContract    Action = "contract.pause"
	ActionResumeContract   Action = "contract.resume"
	ActionCompleteContract Action = "contract.complete"

	ActionEditFood Action = "food.edit"

	ActionManagePlan Action = "plan.manage"
	ActionViewPlan   Action = "plan.view"

	ActionEditProgress       Action = "progress.edit"
	ActionViewClientProgress Action = "progress.view_client"
)

// Allowed is the capability predicate over (actor, action, resource).
func Allowed(actor Actor, action Action, res interface{}) bool {
	switch action {
	case ActionViewContract, ActionCancelContract:
		c, ok := res.(*models.Contract)
		return ok && (c.ClientID == actor.ID || c.NutritionistID == actor.ID)

	case ActionPauseContract, ActionResumeContract, ActionCompleteContract:
		// Only the nutritionist controls pause/resume/complete.
		c, ok := res.(*models.Contract)
		return ok && actor.IsNutritionist() && c.NutritionistID == actor.ID

	case ActionEditFood:
		f, ok := res.(*models.Food)
		return ok && actor.IsNutritionist() && f.CreatedBy == actor.ID

	case ActionManagePlan:
		p, ok := res.(*models.MealPlan)
		return ok && actor.IsNutritionist() && p.NutritionistID == actor.ID

	case ActionViewPlan:
		// The owning nutritionist or the client on the plan's contract.
		switch r := res.(type) {
		case *models.MealPlan:
			return actor.IsNutritionist() && r.NutritionistID == actor.ID
		case *models.Contract:
			return r.ClientID == actor.ID || r.NutritionistID == actor.ID
		}
		return false

	case ActionEditProgress:
		p, ok := res.(*models.ProgressRecord)
		return ok && p.UserID == actor.ID

	case ActionViewClientProgress:
		c, ok := res.(*models.Contract)
		return ok && actor.IsNutritionist() &&
			c.NutritionistID == actor.ID && c.Status == models.ContractActive
	}
	return false
}
