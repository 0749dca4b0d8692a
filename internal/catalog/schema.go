package catalog

// catalogSchema describes the static menu artifact. Cross-record rules
// (unique ids, reserved category ids) are checked in checkIntegrity.
const catalogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["categories"],
  "properties": {
    "categories": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["id", "name", "dishes"],
        "properties": {
          "id":   {"type": "string", "minLength": 1},
          "name": {"type": "string", "minLength": 1},
          "dishes": {
            "type": "array",
            "items": {
              "type": "object",
              "required": ["id", "name", "description", "price", "image"],
              "properties": {
                "id":             {"type": "integer"},
                "name":           {"type": "string", "minLength": 1},
                "description":    {"type": "string"},
                "price":          {"type": "number", "minimum": 0},
                "image":          {"type": "string"},
                "rating":         {"type": "number", "minimum": 0, "maximum": 5},
                "reviews":        {"type": "integer", "minimum": 0},
                "spiceLevel":     {"type": "integer", "minimum": 0, "maximum": 5},
                "isPopular":      {"type": "boolean"},
                "isChefsSpecial": {"type": "boolean"},
                "dietary":        {"type": "array", "items": {"type": "string"}},
                "calories":       {"type": "integer", "minimum": 0},
                "prepTime":       {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`
