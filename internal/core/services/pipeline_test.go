package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openpd/pdraft/internal/core/domain"
)

func TestRunPipeline_StructuredDocument(t *testing.T) {
	raw := "**HEADER**\nJob Series: GS-0301\n\n**INTRODUCTION**\nThe incumbent serves as\nan analyst.\n\nTotal Points: 1250"

	doc, conflicts := RunPipeline(raw)

	require.Equal(t, []string{"HEADER", "INTRODUCTION", "Total Points: 1250"}, doc.Titles())
	assert.Empty(t, conflicts)

	// Wrapped lines are rejoined by paragraph repair.
	assert.Equal(t, "The incumbent serves as an analyst.", doc.Get("INTRODUCTION").Content)
}

func TestRunPipeline_HeuristicFallback(t *testing.T) {
	raw := "Department of the Interior\nGS-0301-12\n\nThe incumbent serves as a Program Analyst.\n\nPerforms recurring duties of the unit."

	doc, conflicts := RunPipeline(raw)

	assert.Empty(t, conflicts)
	assert.True(t, doc.Has(domain.TitleHeader), "titles: %v", doc.Titles())
	assert.True(t, doc.Has(domain.TitleIntroduction))
	assert.True(t, doc.Has(domain.TitleMajorDuties))
	assert.False(t, doc.Has(domain.TitleFullDocument))
}

func TestRunPipeline_UnstructuredKeepsSentinel(t *testing.T) {
	raw := "Completely unstructured archival text without any recognisable cues at all.\nNothing in this record resembles classification material or headings anywhere."

	doc, _ := RunPipeline(raw)

	require.Equal(t, []string{domain.TitleFullDocument}, doc.Titles())
}

func TestRunPipeline_ReportsFactorConflicts(t *testing.T) {
	raw := "**HEADER**\nJob Series: GS-0301\n\nFactor 3 - Guidelines Level 3-2, 275 Points\nOne wording.\n\nFactor 3 - Guidance Level 3-3, 450 Points\nAnother wording."

	doc, conflicts := RunPipeline(raw)

	require.Len(t, conflicts, 1)
	assert.Equal(t, "3", conflicts[0].FactorKey)
	assert.Len(t, conflicts[0].Titles, 2)
	assert.True(t, doc.Has(conflicts[0].Titles[0]))
	assert.True(t, doc.Has(conflicts[0].Titles[1]))
}

func TestRunPipeline_DeduplicatesDuties(t *testing.T) {
	raw := "**MAJOR DUTY 1**\nFirst version.\n\n**MAJOR DUTY 2**\nSecond duty.\n\n**MAJOR DUTY 1**\nStale regeneration."

	doc, _ := RunPipeline(raw)

	duties := 0
	for _, title := range doc.Titles() {
		if _, ok := domain.MajorDutyNumber(title); ok {
			duties++
		}
	}
	assert.Equal(t, 2, duties)
	assert.Equal(t, "Stale regeneration.", doc.Get("MAJOR DUTY 1").Content)
}

func TestRunPipeline_Empty(t *testing.T) {
	doc, conflicts := RunPipeline("")
	assert.Equal(t, 0, doc.Len())
	assert.Empty(t, conflicts)
}
