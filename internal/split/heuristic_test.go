package split

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpd/pdraft/internal/core/domain"
)

func TestIdentifyBasicSections_FullScan(t *testing.T) {
	text := `Department of the Interior
Office of Policy Analysis
GS-0301-12

The incumbent serves as a Program Analyst
and reviews agency policy.

Performs the following duties and responsibilities
for the office.
Factor 1 considerations follow.`

	doc := IdentifyBasicSections(text)

	require.Equal(t, []string{
		domain.TitleHeader,
		domain.TitleIntroduction,
		domain.TitleMajorDuties,
	}, doc.Titles())
	assert.Equal(t, "Department of the Interior\nOffice of Policy Analysis\nGS-0301-12",
		doc.Get(domain.TitleHeader).Content)
	assert.Equal(t, "The incumbent serves as a Program Analyst\nand reviews agency policy.",
		doc.Get(domain.TitleIntroduction).Content)
	assert.Equal(t, "Performs the following duties and responsibilities\nfor the office.",
		doc.Get(domain.TitleMajorDuties).Content)
}

func TestIdentifyBasicSections_HeaderOnly(t *testing.T) {
	text := "Department of Veterans Affairs\nGS-11\n\nUnremarkable trailing text that matches nothing and stretches well past sixty characters."

	doc := IdentifyBasicSections(text)

	require.True(t, doc.Has(domain.TitleHeader))
	assert.False(t, doc.Has(domain.TitleIntroduction))
	assert.False(t, doc.Has(domain.TitleMajorDuties))
}

func TestIdentifyBasicSections_NothingIdentified(t *testing.T) {
	text := "This archival record was scanned without any recognisable markup whatsoever.\nIt contains no classification cues and reads like ordinary correspondence throughout."

	doc := IdentifyBasicSections(text)

	require.Equal(t, []string{domain.TitleFullDocument}, doc.Titles())
	assert.Equal(t, text, doc.Get(domain.TitleFullDocument).Content)
}

func TestIdentifyBasicSections_Empty(t *testing.T) {
	assert.Equal(t, 0, IdentifyBasicSections("").Len())
	assert.Equal(t, 0, IdentifyBasicSections("   \n ").Len())
}

func TestIdentifyBasicSections_DutiesRunToEnd(t *testing.T) {
	text := "Branch of Realty, Division of Natural Resources.\nThe position is located in the Branch of Realty.\nPerforms recurring duties of the unit\nincluding correspondence and tracking."

	doc := IdentifyBasicSections(text)

	require.True(t, doc.Has(domain.TitleMajorDuties), "titles: %v", doc.Titles())
	assert.Equal(t, "Performs recurring duties of the unit\nincluding correspondence and tracking.",
		doc.Get(domain.TitleMajorDuties).Content)
}
