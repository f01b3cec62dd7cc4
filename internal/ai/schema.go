// README: Converts the itinerary Field tree into provider-native output schemas.
package ai

import (
	"github.com/google/generative-ai-go/genai"

	"voyage/internal/itinerary"
)

// geminiSchema maps a Field onto genai.Schema. Assigned fields are dropped.
func geminiSchema(f itinerary.Field) *genai.Schema {
	s := &genai.Schema{Description: f.Description}
	switch f.Kind {
	case itinerary.KindString, itinerary.KindTimestamp:
		s.Type = genai.TypeString
	case itinerary.KindInteger:
		s.Type = genai.TypeInteger
	case itinerary.KindArray:
		s.Type = genai.TypeArray
		if f.Elem != nil {
			s.Items = geminiSchema(*f.Elem)
		}
	case itinerary.KindObject:
		s.Type = genai.TypeObject
		s.Properties = make(map[string]*genai.Schema, len(f.Fields))
		for _, child := range f.Fields {
			if child.Assigned {
				continue
			}
			s.Properties[child.Name] = geminiSchema(child)
			if child.Required {
				s.Required = append(s.Required, child.Name)
			}
		}
	}
	return s
}

// jsonSchema maps a Field onto a JSON Schema document for OpenAI's
// json_schema response format.
func jsonSchema(f itinerary.Field) map[string]any {
	s := map[string]any{}
	if f.Description != "" {
		s["description"] = f.Description
	}
	switch f.Kind {
	case itinerary.KindString:
		s["type"] = "string"
	case itinerary.KindTimestamp:
		s["type"] = "string"
		s["format"] = "date-time"
	case itinerary.KindInteger:
		s["type"] = "integer"
		if f.Positive {
			s["minimum"] = 1
		}
	case itinerary.KindArray:
		s["type"] = "array"
		if f.Elem != nil {
			s["items"] = jsonSchema(*f.Elem)
		}
		if f.MinItems > 0 {
			s["minItems"] = f.MinItems
		}
	case itinerary.KindObject:
		s["type"] = "object"
		props := map[string]any{}
		required := []string{}
		for _, child := range f.Fields {
			if child.Assigned {
				continue
			}
			props[child.Name] = jsonSchema(child)
			if child.Required {
				required = append(required, child.Name)
			}
		}
		s["properties"] = props
		s["required"] = required
	}
	return s
}
