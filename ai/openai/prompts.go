package openai

import (
	"fmt"
	"strings"

	"github.com/poiesic/corpfacts/ai"
)

const extractionPrompt = `You are an expert at extracting company information from text.
Analyze the given text and extract company details as JSON.

Output ONLY a valid JSON array. Do not include any preamble, explanation, or
markdown fences. Each element must be an object with exactly these fields:

- "company_name": the name of the company (string, required)
- "founding_date": the founding date in ISO format (YYYY-MM-DD), or null when the text gives no date
- "founders": array of founder names as strings, [] when none are mentioned

Rules:
- If multiple companies are mentioned, emit one object per company.
- If only a year is given for the founding date, use January 1st of that year.
- If a year and month are given, use the 1st day of that month.
- If no company information is found, return [].
- The JSON must parse without errors; no trailing commas and no text outside the array.

Example output:
[
  {"company_name": "Example Corp", "founding_date": "2020-01-01", "founders": ["John Doe", "Jane Smith"]}
]`

const classificationPromptTemplate = `You route user requests for a company database assistant.
The assistant supports exactly these operations: %s.

Classify the user's request into ONE operation and extract its payload.
Output ONLY a valid JSON object with these fields:

- "operation": one of the operation names listed above (required)
- "text": the source text to analyze, for extract_company_data and store_company_data
- "term": the search term, for search_companies
- "name": the company name, for get_company_details
- "limit": maximum number of results as an integer, for list_companies (0 when unspecified)

Leave fields that do not apply as "" or 0. Never invent an operation that is
not listed. Start your response with { and end with }.

Examples:
Request: "search for Apple"
Output: {"operation": "search_companies", "term": "Apple", "text": "", "name": "", "limit": 0}

Request: "get details about Microsoft"
Output: {"operation": "get_company_details", "name": "Microsoft", "text": "", "term": "", "limit": 0}

Request: "get database statistics"
Output: {"operation": "get_database_statistics", "text": "", "term": "", "name": "", "limit": 0}

Request: "list 5 companies"
Output: {"operation": "list_companies", "limit": 5, "text": "", "term": "", "name": ""}

Request: "store the companies in this text: Apple was founded in 1976 by Steve Jobs."
Output: {"operation": "store_company_data", "text": "Apple was founded in 1976 by Steve Jobs.", "term": "", "name": "", "limit": 0}`

// buildClassificationPrompt creates the system prompt with the operation set
// embedded.
func buildClassificationPrompt() string {
	names := make([]string, len(ai.Operations))
	for i, op := range ai.Operations {
		names[i] = string(op)
	}
	return fmt.Sprintf(classificationPromptTemplate, strings.Join(names, ", "))
}
