package extract

import (
	"fmt"

	"musafir/pkg/ai"
)

const plannerSystem = "You are an expert travel planner. Your task is to generate a structured, well-formatted markdown travel itinerary."

// DocumentPrompt asks for the human readable travel guide.
func DocumentPrompt(text string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: plannerSystem},
		{Role: ai.RoleUser, Content: "Generate a final, markdown-formatted itinerary based on this travel plan:\n\n" +
			ai.WrapNotes(text) + "\n\n" +
			"Use clear headers, bullet points, and markdown elements for easy readability. " +
			"The final itinerary should look like a well-structured travel guide."},
	}
}

// StructuredPrompt asks for the same plan as one machine readable object.
func StructuredPrompt(text string) []ai.Message {
	system := "You convert travel plans into JSON. Reply with exactly one JSON object and nothing else: " +
		"no prose, no explanations, no markdown code fences.\n" +
		"The object must have this shape:\n" + itineraryShape + "\n" +
		"Use 24 hour HH:MM times and YYYY-MM-DD dates. Leave a value empty when the plan does not say."
	return []ai.Message{
		{Role: ai.RoleSystem, Content: system},
		{Role: ai.RoleUser, Content: "Convert this travel plan:\n\n" + ai.WrapNotes(text)},
	}
}

// RefinePrompt asks the model to fold one more user message into the plan.
func RefinePrompt(text string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: "You are a travel assistant helping users plan a structured travel itinerary."},
		{Role: ai.RoleUser, Content: "Refine this trip itinerary based on the following user input:\n\n" +
			ai.WrapNotes(text) + "\n\nEnsure clarity and keep a structured format."},
	}
}

// UploadPrompt asks for a summary of an uploaded itinerary document.
func UploadPrompt(filename, text string) []ai.Message {
	return []ai.Message{
		{Role: ai.RoleSystem, Content: "You are a travel assistant that processes uploaded itinerary documents."},
		{Role: ai.RoleUser, Content: fmt.Sprintf("Extract and summarize the travel itinerary from the uploaded file %q. "+
			"Structure it properly and retain all relevant details.\n\n%s", filename, ai.WrapNotes(text))},
	}
}

const itineraryShape = `{
  "trip": {
    "destination": "string",
    "dates": {"start": "YYYY-MM-DD", "end": "YYYY-MM-DD"},
    "itinerary": [
      {
        "day": 1,
        "date": "YYYY-MM-DD",
        "activities": [
          {
            "time": "HH:MM",
            "place": "string",
            "address": "string",
            "description": "string",
            "expected_time": "string, e.g. 2 hours",
            "highlights": ["string"],
            "category": "string"
          }
        ]
      }
    ]
  }
}`
