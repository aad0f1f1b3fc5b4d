package achievements

type Category string

const (
	CategoryStreak      Category = "streak"
	CategoryVolume      Category = "volume"
	CategoryConsistency Category = "consistency"
	CategoryMilestone   Category = "milestone"
	CategorySpecial     Category = "special"
)

type RequirementType string

const (
	RequirementStreak             RequirementType = "streak"
	RequirementTotalWorkouts      RequirementType = "total_workouts"
	RequirementTotalSets          RequirementType = "total_sets"
	RequirementTotalPRs           RequirementType = "total_prs"
	RequirementTotalVolume        RequirementType = "total_volume"
	RequirementEarlyWorkout       RequirementType = "early_workout"
	RequirementLateWorkout        RequirementType = "late_workout"
	RequirementWeekendStreak      RequirementType = "weekend_streak"
	RequirementBodyPartsInWorkout RequirementType = "body_parts_in_workout"
	RequirementWorkoutDuration    RequirementType = "workout_duration"
	RequirementWeeklyWorkouts     RequirementType = "weekly_workouts"
)

// Rarity is cosmetic, it does not affect evaluation.
type Rarity string

const (
	RarityCommon    Rarity = "common"
	RarityUncommon  Rarity = "uncommon"
	RarityRare      Rarity = "rare"
	RarityEpic      Rarity = "epic"
	RarityLegendary Rarity = "legendary"
)

type Requirement struct {
	Type  RequirementType `json:"type"`
	Value float64         `json:"value"`
}

type Definition struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    Category    `json:"category"`
	Requirement Requirement `json:"requirement"`
	Points      int         `json:"points"`
	Rarity      Rarity      `json:"rarity"`
}

// catalog is built once and never mutated, accessors hand out copies.
var (
	catalog     = buildCatalog()
	catalogByID = indexCatalog(catalog)
)

// Catalog returns all achievement definitions in catalog order.
func Catalog() []Definition {
	defs := make([]Definition, len(catalog))
	copy(defs, catalog)
	return defs
}

func Lookup(id string) (Definition, bool) {
	i, ok := catalogByID[id]
	if !ok {
		return Definition{}, false
	}
	return catalog[i], true
}

func indexCatalog(defs []Definition) map[string]int {
	index := make(map[string]int, len(defs))
	for i, def := range defs {
		index[def.ID] = i
	}
	return index
}

func def(id, title, description string, category Category, reqType RequirementType, value float64, points int, rarity Rarity) Definition {
	return Definition{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		Requirement: Requirement{Type: reqType, Value: value},
		Points:      points,
		Rarity:      rarity,
	}
}

func buildCatalog() []Definition {
	return []Definition{
		// streaks
		def("streak_3", "Warming Up", "Train 3 days in a row", CategoryStreak, RequirementStreak, 3, 10, RarityCommon),
		def("streak_7", "Week Warrior", "Train 7 days in a row", CategoryStreak, RequirementStreak, 7, 25, RarityUncommon),
		def("streak_14", "Fortnight Force", "Train 14 days in a row", CategoryStreak, RequirementStreak, 14, 50, RarityRare),
		def("streak_30", "Iron Month", "Train 30 days in a row", CategoryStreak, RequirementStreak, 30, 100, RarityEpic),
		def("streak_100", "Unbreakable", "Train 100 days in a row", CategoryStreak, RequirementStreak, 100, 250, RarityLegendary),

		// workout milestones
		def("workouts_1", "First Step", "Complete your first workout", CategoryMilestone, RequirementTotalWorkouts, 1, 5, RarityCommon),
		def("workouts_10", "Getting Serious", "Complete 10 workouts", CategoryMilestone, RequirementTotalWorkouts, 10, 15, RarityCommon),
		def("workouts_50", "Regular", "Complete 50 workouts", CategoryMilestone, RequirementTotalWorkouts, 50, 40, RarityUncommon),
		def("workouts_100", "Centurion", "Complete 100 workouts", CategoryMilestone, RequirementTotalWorkouts, 100, 75, RarityRare),
		def("workouts_365", "Year of Iron", "Complete 365 workouts", CategoryMilestone, RequirementTotalWorkouts, 365, 200, RarityLegendary),

		// personal records
		def("prs_1", "New Best", "Set your first personal record", CategoryMilestone, RequirementTotalPRs, 1, 10, RarityCommon),
		def("prs_10", "Record Breaker", "Set 10 personal records", CategoryMilestone, RequirementTotalPRs, 10, 30, RarityUncommon),
		def("prs_50", "Limit Pusher", "Set 50 personal records", CategoryMilestone, RequirementTotalPRs, 50, 80, RarityEpic),

		// sets and volume
		def("sets_100", "Set Collector", "Log 100 sets", CategoryVolume, RequirementTotalSets, 100, 15, RarityCommon),
		def("sets_500", "Set Machine", "Log 500 sets", CategoryVolume, RequirementTotalSets, 500, 40, RarityUncommon),
		def("sets_1000", "Thousand Sets", "Log 1000 sets", CategoryVolume, RequirementTotalSets, 1000, 75, RarityRare),
		def("volume_10000", "Ten Tonnes", "Lift 10,000 kg in total", CategoryVolume, RequirementTotalVolume, 10_000, 20, RarityCommon),
		def("volume_100000", "Hundred Tonnes", "Lift 100,000 kg in total", CategoryVolume, RequirementTotalVolume, 100_000, 50, RarityRare),
		def("volume_1000000", "Mountain Mover", "Lift 1,000,000 kg in total", CategoryVolume, RequirementTotalVolume, 1_000_000, 150, RarityLegendary),

		// consistency
		def("weekly_3", "Three a Week", "Train on 3 days within a week", CategoryConsistency, RequirementWeeklyWorkouts, 3, 10, RarityCommon),
		def("weekly_5", "Five a Week", "Train on 5 days within a week", CategoryConsistency, RequirementWeeklyWorkouts, 5, 25, RarityUncommon),
		def("weekly_7", "Every Single Day", "Train on all 7 days of a week", CategoryConsistency, RequirementWeeklyWorkouts, 7, 50, RarityEpic),
		def("weekend_warrior", "Weekend Warrior", "Train on 4 weekends in a row", CategoryConsistency, RequirementWeekendStreak, 4, 30, RarityRare),

		// special
		def("early_bird", "Early Bird", "Start 5 workouts before 6 AM", CategorySpecial, RequirementEarlyWorkout, 5, 15, RarityUncommon),
		def("night_owl", "Night Owl", "Start 5 workouts after 10 PM", CategorySpecial, RequirementLateWorkout, 5, 15, RarityUncommon),
		def("full_body", "Full Body", "Train 5 muscle groups in one workout", CategorySpecial, RequirementBodyPartsInWorkout, 5, 25, RarityUncommon),
		def("marathon", "Marathon Session", "Train for 120 minutes in one session", CategorySpecial, RequirementWorkoutDuration, 120, 30, RarityRare),
	}
}
