package rules

import "github.com/c360studio/semschema/transform"

// NewDefaultPipeline builds a pipeline with the full standard rule set
// registered in its conventional order.
func NewDefaultPipeline() (*transform.Pipeline, error) {
	p := transform.NewPipeline()

	type assignment struct {
		rule  transform.Rule
		phase transform.PhaseKind
	}
	standard := []assignment{
		{NewOntologyHeader(), transform.PhaseClasses},
		{NewDetectSimpleType(), transform.PhaseClasses},
		{NewNamedComplexType(), transform.PhaseClasses},
		{NewForcedClass(), transform.PhaseClasses},
		{NewAnonymousComplexType(), transform.PhaseClasses},

		{NewTopLevelSimpleElement(), transform.PhaseProperties},
		{NewSandwichElement(), transform.PhaseProperties},
		{NewNumericTypeElement(), transform.PhaseProperties},
		{NewChoiceElement(), transform.PhaseProperties},
		{NewElementReference(), transform.PhaseProperties},
		{NewComplexElement(), transform.PhaseProperties},
		{NewChildElement(), transform.PhaseProperties},
		{NewComplexTypeReference(), transform.PhaseProperties},

		{NewNamedEnumType(), transform.PhaseVocabularies},
		{NewAnonymousEnumType(), transform.PhaseVocabularies},

		{NewReferenceTracking(), transform.PhaseRelationships},

		{NewOntologyAnnotation(), transform.PhaseCleanup},
		{NewPropertyTypeFixer(), transform.PhaseCleanup},
	}

	for _, a := range standard {
		if err := p.Register(a.rule, a.phase); err != nil {
			return nil, err
		}
	}
	return p, nil
}
