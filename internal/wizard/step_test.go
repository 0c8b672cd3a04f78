package wizard

import (
	"testing"

	"github.com/mark3labs/sensei/internal/catalog"
	"github.com/stretchr/testify/assert"
)

func TestStepTable(t *testing.T) {
	assert.Len(t, Steps(), 8)

	for _, step := range Steps() {
		rule := steps[step]
		assert.NotEmpty(t, rule.name, "step %d has no name", step)
		assert.NotNil(t, rule.reachable, "step %s has no reachability rule", rule.name)

		parsed, ok := ParseStep(step.String())
		assert.True(t, ok)
		assert.Equal(t, step, parsed)
	}
}

func TestParseStep(t *testing.T) {
	step, ok := ParseStep(" Feedback ")
	assert.True(t, ok)
	assert.Equal(t, StepFeedback, step)

	for _, name := range []string{"", "progress", "profile", "settings"} {
		_, ok := ParseStep(name)
		assert.False(t, ok, "%q should not parse", name)
	}
}

func TestStepValid(t *testing.T) {
	assert.True(t, StepHome.Valid())
	assert.False(t, Step(-1).Valid())
	assert.False(t, stepCount.Valid())
	assert.Equal(t, "unknown", Step(99).String())
}

func TestParseCategory(t *testing.T) {
	c, ok := ParseCategory("Disability")
	assert.True(t, ok)
	assert.Equal(t, CategoryDisability, c)

	_, ok = ParseCategory("pro")
	assert.False(t, ok)
}

func TestParseDisabilityType(t *testing.T) {
	d, ok := ParseDisabilityType("blind")
	assert.True(t, ok)
	assert.Equal(t, DisabilityBlind, d)

	_, ok = ParseDisabilityType("")
	assert.False(t, ok)
}

func TestSportGroup(t *testing.T) {
	tests := []struct {
		cat  Category
		sub  DisabilityType
		want string
	}{
		{CategoryNormal, "", catalog.GroupNormal},
		{CategoryNormal, DisabilityLeg, catalog.GroupNormal},
		{CategoryDisability, DisabilityLeg, catalog.GroupLeg},
		{CategoryDisability, DisabilityHand, catalog.GroupHand},
		{CategoryDisability, DisabilityBlind, catalog.GroupBlind},
		{CategoryDisability, "", ""},
		{"", "", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SportGroup(tt.cat, tt.sub), "%s/%s", tt.cat, tt.sub)
	}
}
