// Package docs holds the OpenAPI description served at /swagger.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Health"],
                "summary": "API Health Check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.HealthCheckResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/handler.HealthCheckResponse"}}
                }
            }
        },
        "/api/gemini": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Insight"],
                "summary": "Gemini relay",
                "parameters": [
                    {"name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/insight.RelayRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/insight.RelayResponse"}},
                    "400": {"description": "Missing prompt", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "405": {"description": "Method not allowed", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "413": {"description": "Prompt too large", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Missing key or upstream failure", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/entries": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "List entries",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json", "multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Save today's check-in",
                "parameters": [
                    {"name": "entry", "in": "body", "schema": {"$ref": "#/definitions/handler.SaveEntryRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/entries/export": {
            "get": {
                "produces": ["text/csv", "application/json"],
                "tags": ["Entries"],
                "summary": "Export entries",
                "parameters": [
                    {"type": "string", "description": "csv (default) or json", "name": "format", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "file"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/entries/{date}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Get the entry of a day",
                "parameters": [
                    {"type": "string", "name": "date", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/entries/{id}": {
            "delete": {
                "produces": ["application/json"],
                "tags": ["Entries"],
                "summary": "Delete an entry",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Streaks and averages",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}
                }
            }
        },
        "/api/v1/heatmap": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Yearly calendar heatmap",
                "parameters": [
                    {"type": "integer", "name": "year", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/trends": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Analytics"],
                "summary": "Energy trend chart",
                "parameters": [
                    {"type": "string", "enum": ["week", "month", "year"], "name": "timeframe", "in": "query"},
                    {"type": "string", "name": "ref", "in": "query"},
                    {"type": "integer", "name": "step", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        },
        "/api/v1/energy-levels": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reference"],
                "summary": "Energy levels",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}
            }
        },
        "/api/v1/themes": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Reference"],
                "summary": "Color themes",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}
            }
        },
        "/api/v1/preferences": {
            "get": {
                "produces": ["application/json"],
                "tags": ["Preferences"],
                "summary": "Get preferences",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}}}
            },
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["Preferences"],
                "summary": "Update preferences",
                "parameters": [
                    {"name": "preferences", "in": "body", "required": true, "schema": {"$ref": "#/definitions/service.PreferenceInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handler.Envelope"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/handler.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handler.Envelope": {
            "type": "object",
            "properties": {
                "data": {},
                "meta": {"type": "object", "properties": {"count": {"type": "integer"}}}
            }
        },
        "handler.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "handler.HealthCheckResponse": {
            "type": "object",
            "properties": {
                "database_status": {"type": "string"},
                "server_status": {"type": "string"},
                "timestamp": {"type": "string"}
            }
        },
        "handler.SaveEntryRequest": {
            "type": "object",
            "properties": {
                "content": {"type": "string", "example": "Chạy bộ 5km"},
                "date": {"type": "string", "example": "2024-05-10"},
                "energy": {"type": "integer", "example": 4}
            }
        },
        "insight.Sections": {
            "type": "object",
            "properties": {
                "note": {"type": "string"},
                "trend": {"type": "string"}
            }
        },
        "insight.RelayRequest": {
            "type": "object",
            "properties": {"prompt": {"type": "string"}}
        },
        "insight.RelayResponse": {
            "type": "object",
            "properties": {"text": {"type": "string"}}
        },
        "service.PreferenceInput": {
            "type": "object",
            "properties": {
                "notificationsEnabled": {"type": "boolean"},
                "themeId": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{"http", "https"},
	Title:            "VibeTrack API",
	Description:      "Daily energy journal: entries, streaks, heatmap, trends and AI comments.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
