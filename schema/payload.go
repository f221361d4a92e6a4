// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package schema

// JSON Schemas for the payload shapes returned by the API. Question types are
// free-form strings here: an unknown type renders nothing but is not an error.

const surveySchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": ["string", "null"]},
    "sections": {
      "type": ["array", "null"],
      "items": {"$ref": "#/definitions/section"}
    }
  },
  "definitions": {
    "section": {
      "type": "object",
      "required": ["id", "title"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "title": {"type": "string"},
        "description": {"type": ["string", "null"]},
        "ordering": {"type": "number"},
        "questions": {
          "type": ["array", "null"],
          "items": {"$ref": "#/definitions/question"}
        }
      }
    },
    "question": {
      "type": "object",
      "required": ["id", "text", "type"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "text": {"type": "string"},
        "type": {"type": "string", "minLength": 1},
        "required": {"type": ["boolean", "null"]},
        "ordering": {"type": "number"},
        "options": {
          "type": ["array", "null"],
          "items": {"$ref": "#/definitions/option"}
        }
      }
    },
    "option": {
      "type": "object",
      "required": ["id", "text"],
      "properties": {
        "id": {"type": "string", "minLength": 1},
        "text": {"type": "string"},
        "value": {"type": ["string", "null"]},
        "ordering": {"type": "number"}
      }
    }
  }
}`

const formSchemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title", "fields"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string"},
    "fields": {
      "type": "object",
      "additionalProperties": {
        "type": "object",
        "properties": {
          "label": {"type": "string"},
          "type": {"type": "string"}
        }
      }
    }
  }
}`
