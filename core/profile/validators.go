package profile

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/sanaa/core"
)

var (
	// custom validation tags & texts
	allGoalsTag  = "allgoals"
	allGoalsText = "invalid goals"

	allArtFormsTag  = "allartforms"
	allArtFormsText = "invalid art forms"

	expLevelTag  = "explevel"
	expLevelText = "invalid experience level"
)

func init() {
	_ = core.Validate.RegisterValidation(allGoalsTag, allGoalsValidation)
	core.RegisterCustomTranslation(allGoalsTag, allGoalsText)

	_ = core.Validate.RegisterValidation(allArtFormsTag, allArtFormsValidation)
	core.RegisterCustomTranslation(allArtFormsTag, allArtFormsText)

	_ = core.Validate.RegisterValidation(expLevelTag, expLevelValidation)
	core.RegisterCustomTranslation(expLevelTag, expLevelText)
}

// allGoalsValidation checks that all provided goals are known tags.
func allGoalsValidation(fl validator.FieldLevel) bool {
	goals, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, g := range goals {
		if !contains(Goals, g) {
			return false
		}
	}
	return true
}

// allArtFormsValidation checks that all provided art forms are known tags.
func allArtFormsValidation(fl validator.FieldLevel) bool {
	forms, ok := fl.Field().Interface().([]string)
	if !ok {
		return false
	}
	for _, f := range forms {
		if !contains(ArtForms, f) {
			return false
		}
	}
	return true
}

// expLevelValidation checks that the experience level is a known tag.
func expLevelValidation(fl validator.FieldLevel) bool {
	return contains(ExperienceLevels, fl.Field().String())
}
