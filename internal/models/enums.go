package models

// AccountType is the role of a user account.
type AccountType string

const (
	AccountTypeUser    AccountType = "user"
	AccountTypeAdmin   AccountType = "admin"
	AccountTypeTrainer AccountType = "trainer"
)

// AccountTypes lists every valid AccountType.
var AccountTypes = []AccountType{AccountTypeUser, AccountTypeAdmin, AccountTypeTrainer}

// UnitSystem is the user's preferred measurement system.
type UnitSystem string

const (
	UnitSystemMetric   UnitSystem = "metric"
	UnitSystemImperial UnitSystem = "imperial"
)

var UnitSystems = []UnitSystem{UnitSystemMetric, UnitSystemImperial}

// Gender as recorded on a user profile.
type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

var Genders = []Gender{GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay}

// GoalType categorizes a fitness goal.
type GoalType string

const (
	GoalTypeWeightLoss     GoalType = "weight_loss"
	GoalTypeMuscleGain     GoalType = "muscle_gain"
	GoalTypeEndurance      GoalType = "endurance"
	GoalTypeStrength       GoalType = "strength"
	GoalTypeFlexibility    GoalType = "flexibility"
	GoalTypeGeneralFitness GoalType = "general_fitness"
)

var GoalTypes = []GoalType{
	GoalTypeWeightLoss, GoalTypeMuscleGain, GoalTypeEndurance,
	GoalTypeStrength, GoalTypeFlexibility, GoalTypeGeneralFitness,
}

// WorkoutType categorizes workouts and templates.
type WorkoutType string

const (
	WorkoutTypeStrength    WorkoutType = "strength"
	WorkoutTypeCardio      WorkoutType = "cardio"
	WorkoutTypeFlexibility WorkoutType = "flexibility"
	WorkoutTypeHybrid      WorkoutType = "hybrid"
)

var WorkoutTypes = []WorkoutType{WorkoutTypeStrength, WorkoutTypeCardio, WorkoutTypeFlexibility, WorkoutTypeHybrid}

// ExerciseCategory groups exercises in the library.
type ExerciseCategory string

const (
	ExerciseCategoryUpperBody   ExerciseCategory = "upper_body"
	ExerciseCategoryLowerBody   ExerciseCategory = "lower_body"
	ExerciseCategoryCore        ExerciseCategory = "core"
	ExerciseCategoryFullBody    ExerciseCategory = "full_body"
	ExerciseCategoryCardio      ExerciseCategory = "cardio"
	ExerciseCategoryFlexibility ExerciseCategory = "flexibility"
)

var ExerciseCategories = []ExerciseCategory{
	ExerciseCategoryUpperBody, ExerciseCategoryLowerBody, ExerciseCategoryCore,
	ExerciseCategoryFullBody, ExerciseCategoryCardio, ExerciseCategoryFlexibility,
}

// MealType tags a meal within a nutrition log.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeDinner    MealType = "dinner"
	MealTypeSnack     MealType = "snack"
)

var MealTypes = []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeDinner, MealTypeSnack}

// PhotoCategory is the pose of a progress photo.
type PhotoCategory string

const (
	PhotoCategoryFront PhotoCategory = "front"
	PhotoCategoryBack  PhotoCategory = "back"
	PhotoCategorySide  PhotoCategory = "side"
)

var PhotoCategories = []PhotoCategory{PhotoCategoryFront, PhotoCategoryBack, PhotoCategorySide}

// TokenScope restricts what a token authorizes.
type TokenScope string

const (
	ScopeAuthentication TokenScope = "authentication"
	ScopePasswordReset  TokenScope = "password-reset"
)

var TokenScopes = []TokenScope{ScopeAuthentication, ScopePasswordReset}

// IsOneOf reports whether v is in the permitted set.
func IsOneOf[T ~string](v T, permitted []T) bool {
	for _, p := range permitted {
		if v == p {
			return true
		}
	}
	return false
}
