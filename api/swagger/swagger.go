package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Tutoring API",
        "description": "Tutor registration and class availability search",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Classes", "description": "Class offerings and weekly availability"},
        {"name": "Operations", "description": "Health, readiness and metrics"}
    ],
    "paths": {
        "/health": {
            "get": {
                "tags": ["Operations"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "tags": ["Operations"],
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"},
                    "503": {"description": "A dependency is unreachable"}
                }
            }
        },
        "/metrics": {
            "get": {
                "tags": ["Operations"],
                "summary": "Prometheus metrics",
                "produces": ["text/plain"],
                "responses": {
                    "200": {"description": "Metrics in exposition format"}
                }
            }
        },
        "/classes": {
            "get": {
                "tags": ["Classes"],
                "summary": "Search classes by availability",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "week_day", "in": "query", "required": true, "type": "integer", "minimum": 0, "maximum": 6},
                    {"name": "subject", "in": "query", "required": true, "type": "string"},
                    {"name": "time", "in": "query", "required": true, "type": "string", "description": "HH:MM"}
                ],
                "responses": {
                    "200": {"description": "Matching classes", "schema": {"type": "array", "items": {"$ref": "#/definitions/ClassListing"}}},
                    "400": {"description": "Missing or invalid filters", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "500": {"description": "Storage failure", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            },
            "post": {
                "tags": ["Classes"],
                "summary": "Register a tutor with one class and its weekly schedule",
                "consumes": ["application/json"],
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterClassRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "400": {"description": "Invalid payload or failed registration", "schema": {"$ref": "#/definitions/ErrorBody"}},
                    "429": {"description": "Too many registrations", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/export": {
            "get": {
                "tags": ["Classes"],
                "summary": "Export matching classes",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "week_day", "in": "query", "required": true, "type": "integer", "minimum": 0, "maximum": 6},
                    {"name": "subject", "in": "query", "required": true, "type": "string"},
                    {"name": "time", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "Rendered file", "schema": {"type": "file"}},
                    "400": {"description": "Invalid filters or format", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        },
        "/classes/{id}/schedule": {
            "get": {
                "tags": ["Classes"],
                "summary": "Get a class with its weekly availability",
                "produces": ["application/json"],
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ClassSchedule"}},
                    "404": {"description": "Unknown class", "schema": {"$ref": "#/definitions/ErrorBody"}}
                }
            }
        }
    },
    "definitions": {
        "ClassListing": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "subject": {"type": "string"},
                "cost": {"type": "number"},
                "tutor_id": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"}
            }
        },
        "ScheduleItem": {
            "type": "object",
            "required": ["week_day", "from", "to"],
            "properties": {
                "week_day": {"type": "integer", "minimum": 0, "maximum": 6},
                "from": {"type": "string", "example": "08:00"},
                "to": {"type": "string", "example": "12:00"}
            }
        },
        "RegisterClassRequest": {
            "type": "object",
            "required": ["name", "avatar", "whatsapp", "bio", "subject", "cost", "schedule"],
            "properties": {
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"},
                "subject": {"type": "string"},
                "cost": {"type": "number", "minimum": 0},
                "schedule": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/ScheduleItem"}}
            }
        },
        "ClassScheduleWindow": {
            "type": "object",
            "properties": {
                "week_day": {"type": "integer"},
                "from": {"type": "string"},
                "to": {"type": "string"},
                "from_minute": {"type": "integer"},
                "to_minute": {"type": "integer"}
            }
        },
        "ClassSchedule": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "subject": {"type": "string"},
                "cost": {"type": "number"},
                "tutor_id": {"type": "string"},
                "name": {"type": "string"},
                "avatar": {"type": "string"},
                "whatsapp": {"type": "string"},
                "bio": {"type": "string"},
                "schedule": {"type": "array", "items": {"$ref": "#/definitions/ClassScheduleWindow"}}
            }
        },
        "ErrorBody": {
            "type": "object",
            "properties": {
                "error": {"type": "string"}
            }
        }
    }
}`

type swaggerDoc struct{}

// ReadDoc returns the Swagger document.
func (s *swaggerDoc) ReadDoc() string {
	return docTemplate
}

func init() {
	swag.Register(swag.Name, &swaggerDoc{})
}
