package usecase

import (
	"strings"

	"LeadProspector/internal/domain"
	"LeadProspector/internal/ports"
)

// The prompt wording is deliberately rigid: the scorer behaves noticeably
// better when the envelope example is spelled out, and the repair cascade
// expects replies shaped around these instructions.

const reviewPromptTemplate = `Examine the article json information provided. Determine how well the information in the article matches the following criteria:

Criteria:
%s

Create a "compatibility" score of 0 (does not match criteria) to 100 (matches criteria well) based on how well the information in the article matches the criteria. [compatibility]

For each article, determine the fields "company" and "location" if available in the title and/or excerpt. If not available, leave those fields blank.

Output ONLY a valid JSON array containing objects with these fields for each article: articleID, title, excerpt, company, location, url, date, compatibility.

IMPORTANT: Your response MUST be wrapped in square brackets as a valid JSON array like this:
[
  {
    "articleID": "value",
    "title": "value",
    "excerpt": "value",
    "url": "value",
    "date": "value",
    "company": "value",
    "location": "value",
    "compatibility": number
  },
  ...more objects...
]

Article json information:
%s`

const analysisPromptTemplate = `Examine the article contents provided. Determine how well the information in the article matches the following criteria:

Criteria:
%s

Create a criteria compatibility score of 0-100 based on how well the information in the article matches the criteria. [analysis_compatibility]

Create a 1 sentence explanation of your compatibility score based on the criteria. [analysis_explanation]
Determine which company the article is about, if applicable. [analysis_company]
Determine the location or locations the article is about, if applicable. [analysis_location]
Determine any company contacts mentioned by the article, if applicable. [analysis_contact]

Create a brief 1-2 sentence summary of any building, opening, or remodeling projects mentioned in the article. [analysis_summary]

Output only json with the fields listed above. Return your response in JSON format only, with no additional text.

Article content:
%s`

const criteriaPromptTemplate = `You are an expert in generating criteria to match a user's feedback.
You are building a criteria list to help rank data for potential sales prospects.
Examine the criteria listed below and the user's feedback.
Create one or two criteria in a similar format to the ones below that would help rank data for potential sales prospects.
The criteria will be used to calculate a compatibility score between 0 and 100 based on how well the information matches the criteria.
Only use the provided feedback to create new criteria.

Criteria:
%s

User's Feedback:
%s

Output instructions:
Output json format only as follows:
[
    {
        "criteria": "Generated criteria"
    },
    ...
]

Output only json as listed above. Return your response in JSON format only, with no additional text.`

// criteriaBullets renders the rubric for prompt embedding.
func criteriaBullets(criteria []domain.Criterion) string {
	if len(criteria) == 0 {
		return "* No existing criteria found"
	}
	lines := make([]string, 0, len(criteria))
	for _, c := range criteria {
		lines = append(lines, "* "+c.Criteria)
	}
	return strings.Join(lines, "\n")
}

// rubricBullets loads the rubric and renders it; a missing or broken rubric
// reads as the empty placeholder, never an error.
func rubricBullets(store ports.CriteriaStore) string {
	if store == nil {
		return criteriaBullets(nil)
	}
	criteria, err := store.Load()
	if err != nil {
		return criteriaBullets(nil)
	}
	return criteriaBullets(criteria)
}
