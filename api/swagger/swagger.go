package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Campus Scheduling API",
        "description": "Conflict-aware booking of rooms, faculty time and student-group time.",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http"
    ],
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "security": [{"BearerAuth": []}],
    "tags": [
        {"name": "Bookings", "description": "Book resources and request reschedule suggestions"},
        {"name": "Availability", "description": "Busy intervals and the candidate slot grid"},
        {"name": "Conflicts", "description": "Conflict sweeps and exports"},
        {"name": "Observability", "description": "Service counters"}
    ],
    "paths": {
        "/bookings": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Book a room, faculty slot or student-group slot",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateBookingRequest"}}
                ],
                "responses": {
                    "201": {"description": "Confirmed", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Slot occupied; occupants and alternatives in data", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "429": {"description": "Too many booking requests", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/bookings/{id}/reschedule": {
            "post": {
                "tags": ["Bookings"],
                "summary": "Suggest new slots for an existing booking",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "payload", "in": "body", "required": false, "schema": {"$ref": "#/definitions/RescheduleFilter"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Booking not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resources/{type}/{id}/availability": {
            "get": {
                "tags": ["Availability"],
                "summary": "Busy intervals of a resource on a date",
                "parameters": [
                    {"name": "type", "in": "path", "required": true, "type": "string", "enum": ["room", "faculty", "student_group"]},
                    {"name": "id", "in": "path", "required": true, "type": "integer"},
                    {"name": "date", "in": "query", "required": true, "type": "string", "format": "date"},
                    {"name": "start", "in": "query", "type": "string"},
                    {"name": "end", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/scheduling/slots": {
            "get": {
                "tags": ["Availability"],
                "summary": "Preview candidate slots for a duration",
                "parameters": [
                    {"name": "minutes", "in": "query", "required": true, "type": "integer"},
                    {"name": "days", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Detect scheduling conflicts",
                "parameters": [
                    {"name": "cached", "in": "query", "type": "boolean"},
                    {"name": "severity", "in": "query", "type": "string", "enum": ["low", "medium", "high"]}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "403": {"description": "Role may not read conflicts", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/conflicts/export": {
            "get": {
                "tags": ["Conflicts"],
                "summary": "Export detected conflicts",
                "produces": ["text/csv", "application/pdf"],
                "parameters": [
                    {"name": "format", "in": "query", "type": "string", "enum": ["csv", "pdf"]},
                    {"name": "cached", "in": "query", "type": "boolean"}
                ],
                "responses": {
                    "200": {"description": "File download"}
                }
            }
        },
        "/metrics/summary": {
            "get": {
                "tags": ["Observability"],
                "summary": "Scheduling counters",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "CreateBookingRequest": {
            "type": "object",
            "required": ["resource_type", "resource_id", "date", "start_time", "end_time"],
            "properties": {
                "resource_type": {"type": "string", "enum": ["room", "faculty", "student_group"]},
                "resource_id": {"type": "integer"},
                "date": {"type": "string", "format": "date"},
                "start_time": {"type": "string", "example": "10:00"},
                "end_time": {"type": "string", "example": "11:00"},
                "purpose": {"type": "string"},
                "attendees": {"type": "integer"}
            }
        },
        "RescheduleFilter": {
            "type": "object",
            "properties": {
                "room_ids": {"type": "array", "items": {"type": "integer"}},
                "faculty_id": {"type": "integer"},
                "group_id": {"type": "integer"},
                "min_capacity": {"type": "integer"}
            }
        },
        "APIError": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "message": {"type": "string"},
                "status": {"type": "integer"}
            }
        },
        "ResponseEnvelope": {
            "type": "object",
            "properties": {
                "data": {"type": "object"},
                "error": {"$ref": "#/definitions/APIError"},
                "meta": {"type": "object"}
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
