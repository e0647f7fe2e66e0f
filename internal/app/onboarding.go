package app

// GoalForAge derives an initial daily hydration goal in milliliters from
// the user's age, matching the onboarding flow's brackets.
func GoalForAge(age int) int {
	switch {
	case age < 18:
		return 1800
	case age <= 26:
		return 2000
	case age <= 50:
		return 2500
	default:
		return 2200
	}
}
