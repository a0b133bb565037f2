package services

import (
	"fmt"
	"strings"

	"github.com/talenta-labs/matcha-cli/internal/core/domain"
)

// Prompt limits for explanation synthesis.
const (
	// synthPreviewChars bounds how much of each document goes into the
	// explanation prompt.
	synthPreviewChars = 500

	// synthContextDocs bounds how many documents go into the prompt.
	synthContextDocs = 5

	// synthMaxTokens bounds the explanation length.
	synthMaxTokens = 500

	// guidanceMaxTokens bounds the low-confidence guidance length.
	guidanceMaxTokens = 300

	// synthTemperature keeps explanations varied but on-topic.
	synthTemperature = 0.7
)

// recommendSystemPrompt instructs the model for match explanations.
const recommendSystemPrompt = "You are an expert HR consultant specializing in candidate matching " +
	"and recruitment. You adapt your language to match the user's query."

// guidanceSystemPrompt instructs the model for low-confidence guidance.
const guidanceSystemPrompt = "You are a helpful HR assistant that communicates clearly in " +
	"multiple languages, adapting to the user's language."

// lowConfidenceFallback is returned when guidance synthesis itself fails.
const lowConfidenceFallback = `Sorry, we couldn't find any documents that closely match your requirements.

Suggestions to improve your search:
- Try using broader or different keywords
- Focus on core skills rather than specific combinations
- Simplify your search criteria

Please refine your query and try again.`

// emptyStoreMessage is returned when nothing has been ingested yet.
const emptyStoreMessage = "No documents found. Please ingest some documents first."

// buildRecommendPrompt assembles the explanation prompt from the query
// and the hydrated matches. The model sees scores and short previews,
// never raw vectors.
func buildRecommendPrompt(query string, results []domain.MatchResult) string {
	var summaries []string
	for i, result := range results {
		if i >= synthContextDocs {
			break
		}
		preview := result.Preview
		if runes := []rune(preview); len(runes) > synthPreviewChars {
			preview = string(runes[:synthPreviewChars])
		}
		summaries = append(summaries, fmt.Sprintf(
			"Match %d: %s\nSimilarity Score: %.2f\nPreview: %s",
			i+1, result.DocumentID, result.Score, preview,
		))
	}
	context := strings.Join(summaries, "\n\n")

	return fmt.Sprintf(`You are an expert HR consultant helping to find the best candidates based on a search query.

User Query: %q

Top Matching Documents:
%s

Based on the search query and the matching documents above, provide:
1. A brief overview of what was found
2. Why these candidates match the query
3. Key strengths and qualifications of the top matches
4. A recommendation on which candidate(s) to consider first

LANGUAGE INSTRUCTIONS:
- Respond entirely in the language of the user's query
- When presenting document strengths, translate or paraphrase them to match the query language
- Match the tone and formality of the query

Keep your response concise, professional, and actionable (max 300 words).`, query, context)
}

// buildGuidancePrompt assembles the prompt used when no document scored
// above the similarity threshold.
func buildGuidancePrompt(query string) string {
	return fmt.Sprintf(`You are an HR assistant. The user searched for candidates but no documents in the database match their requirements (all similarity scores are below the threshold).

User Query: %q

Generate a polite, helpful message that:
1. Apologizes that no matching documents were found for their specific requirements
2. Suggests they try rephrasing or broadening their search query
3. Provides 2-3 specific tips on how to improve their search

LANGUAGE INSTRUCTIONS:
- Respond entirely in the language of the user's query
- Match the tone and formality of the query

Keep the message concise and actionable (max 150 words).`, query)
}
