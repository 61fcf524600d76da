package aireview

import (
	"math/rand"

	"github.com/y-kondo/retento/internal/inference"
)

// QuestionType is one of the pedagogical categories a generated question can
// belong to.
type QuestionType string

const (
	QuestionTypeFactBased           QuestionType = "fact_based"
	QuestionTypeDefinition          QuestionType = "definition"
	QuestionTypeConceptExplanation  QuestionType = "concept_explanation"
	QuestionTypeComparison          QuestionType = "comparison"
	QuestionTypeCauseEffect         QuestionType = "cause_effect"
	QuestionTypeScenario            QuestionType = "scenario"
	QuestionTypeApplication         QuestionType = "application"
	QuestionTypeAnalysis            QuestionType = "analysis"
	QuestionTypeSynthesis           QuestionType = "synthesis"
	QuestionTypeEvaluation          QuestionType = "evaluation"
	QuestionTypeJustifyDefend       QuestionType = "justify_defend"
	QuestionTypeTrueFalse           QuestionType = "true_false"
	QuestionTypeMultipleChoice      QuestionType = "multiple_choice"
	QuestionTypeFillBlank           QuestionType = "fill_blank"
	QuestionTypeSequenceOrder       QuestionType = "sequence_order"
	QuestionTypeClassification      QuestionType = "classification"
	QuestionTypeExampleGeneration   QuestionType = "example_generation"
	QuestionTypeErrorIdentification QuestionType = "error_identification"
	QuestionTypePrediction          QuestionType = "prediction"
	QuestionTypeReflection          QuestionType = "reflection"
)

// questionTypeWeights maps each type to a sampling weight per difficulty.
// Easy sessions lean on recall, hard sessions on application and judgment.
var questionTypeWeights = map[inference.Difficulty]map[QuestionType]float64{
	inference.DifficultyEasy: {
		QuestionTypeFactBased:           3.0,
		QuestionTypeDefinition:          3.0,
		QuestionTypeTrueFalse:           2.5,
		QuestionTypeMultipleChoice:      2.5,
		QuestionTypeFillBlank:           2.0,
		QuestionTypeConceptExplanation:  1.5,
		QuestionTypeComparison:          1.0,
		QuestionTypeClassification:      1.0,
		QuestionTypeSequenceOrder:       0.8,
		QuestionTypeCauseEffect:         0.8,
		QuestionTypeExampleGeneration:   0.5,
		QuestionTypeScenario:            0.4,
		QuestionTypeApplication:         0.4,
		QuestionTypeAnalysis:            0.2,
		QuestionTypeSynthesis:           0.2,
		QuestionTypeEvaluation:          0.2,
		QuestionTypeJustifyDefend:       0.2,
		QuestionTypeErrorIdentification: 0.2,
		QuestionTypePrediction:          0.2,
		QuestionTypeReflection:          0.4,
	},
	inference.DifficultyMedium: {
		QuestionTypeFactBased:           1.5,
		QuestionTypeDefinition:          1.2,
		QuestionTypeTrueFalse:           1.0,
		QuestionTypeMultipleChoice:      1.5,
		QuestionTypeFillBlank:           1.0,
		QuestionTypeConceptExplanation:  2.5,
		QuestionTypeComparison:          2.0,
		QuestionTypeClassification:      1.5,
		QuestionTypeSequenceOrder:       1.0,
		QuestionTypeCauseEffect:         2.0,
		QuestionTypeExampleGeneration:   1.5,
		QuestionTypeScenario:            1.5,
		QuestionTypeApplication:         1.5,
		QuestionTypeAnalysis:            1.0,
		QuestionTypeSynthesis:           0.8,
		QuestionTypeEvaluation:          0.8,
		QuestionTypeJustifyDefend:       0.8,
		QuestionTypeErrorIdentification: 0.8,
		QuestionTypePrediction:          0.8,
		QuestionTypeReflection:          0.8,
	},
	inference.DifficultyHard: {
		QuestionTypeFactBased:           0.4,
		QuestionTypeDefinition:          0.3,
		QuestionTypeTrueFalse:           0.3,
		QuestionTypeMultipleChoice:      0.5,
		QuestionTypeFillBlank:           0.3,
		QuestionTypeConceptExplanation:  1.2,
		QuestionTypeComparison:          1.5,
		QuestionTypeClassification:      1.0,
		QuestionTypeSequenceOrder:       0.8,
		QuestionTypeCauseEffect:         1.5,
		QuestionTypeExampleGeneration:   1.5,
		QuestionTypeScenario:            2.5,
		QuestionTypeApplication:         2.5,
		QuestionTypeAnalysis:            2.5,
		QuestionTypeSynthesis:           2.0,
		QuestionTypeEvaluation:          2.0,
		QuestionTypeJustifyDefend:       2.5,
		QuestionTypeErrorIdentification: 1.5,
		QuestionTypePrediction:          1.5,
		QuestionTypeReflection:          1.0,
	},
}

// PickQuestionTypes samples count question types for the difficulty using
// weighted random sampling with replacement. Weights are scaled by 10 and
// expanded into a flat pool, so higher-weight types are proportionally more
// likely for every slot.
func PickQuestionTypes(rng *rand.Rand, difficulty inference.Difficulty, count int) []QuestionType {
	weights, ok := questionTypeWeights[difficulty]
	if !ok {
		weights = questionTypeWeights[inference.DifficultyMedium]
	}

	var pool []QuestionType
	for _, questionType := range allQuestionTypes {
		repeats := int(weights[questionType] * 10)
		for i := 0; i < repeats; i++ {
			pool = append(pool, questionType)
		}
	}

	picked := make([]QuestionType, 0, count)
	for i := 0; i < count; i++ {
		picked = append(picked, pool[rng.Intn(len(pool))])
	}
	return picked
}

// allQuestionTypes keeps pool expansion deterministic for a seeded source.
var allQuestionTypes = []QuestionType{
	QuestionTypeFactBased,
	QuestionTypeDefinition,
	QuestionTypeConceptExplanation,
	QuestionTypeComparison,
	QuestionTypeCauseEffect,
	QuestionTypeScenario,
	QuestionTypeApplication,
	QuestionTypeAnalysis,
	QuestionTypeSynthesis,
	QuestionTypeEvaluation,
	QuestionTypeJustifyDefend,
	QuestionTypeTrueFalse,
	QuestionTypeMultipleChoice,
	QuestionTypeFillBlank,
	QuestionTypeSequenceOrder,
	QuestionTypeClassification,
	QuestionTypeExampleGeneration,
	QuestionTypeErrorIdentification,
	QuestionTypePrediction,
	QuestionTypeReflection,
}
