// Package swagger registers the OpenAPI document served at /swagger.
// Regenerate with: swag init -g cmd/start.go -o docs/swagger
package swagger

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
        "/live/sync-status": {
            "get": {
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get Sync Status",
                "responses": {
                    "200": {
                        "description": "Sync status rows",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/models.SyncStatus"}
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    }
                }
            }
        },
        "/live/{parkID}": {
            "get": {
                "description": "Get current status, hours and crowd level for a park.",
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get Park",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Internal park ID (e.g. 'magic-kingdom')",
                        "name": "parkID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Park",
                        "schema": {"$ref": "#/definitions/canonical.Park"}
                    },
                    "404": {
                        "description": "Unknown park",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    }
                }
            }
        },
        "/live/{parkID}/wait-times": {
            "get": {
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get Wait Times",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Internal park ID",
                        "name": "parkID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Attractions",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/canonical.Attraction"}
                        }
                    },
                    "404": {
                        "description": "Unknown park",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    }
                }
            }
        },
        "/live/{parkID}/entertainment": {
            "get": {
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get Entertainment",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Internal park ID",
                        "name": "parkID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Shows",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/canonical.Entertainment"}
                        }
                    },
                    "404": {
                        "description": "Unknown park",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    }
                }
            }
        },
        "/live/{parkID}/crowds": {
            "get": {
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get Crowd Predictions",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Internal park ID",
                        "name": "parkID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Start date (YYYY-MM-DD)",
                        "name": "start",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "End date (YYYY-MM-DD)",
                        "name": "end",
                        "in": "query",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Predictions",
                        "schema": {
                            "type": "array",
                            "items": {"$ref": "#/definitions/canonical.CrowdPrediction"}
                        }
                    },
                    "400": {
                        "description": "Bad date range",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    },
                    "404": {
                        "description": "Unknown park",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    },
                    "502": {
                        "description": "Crowd data unavailable",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    }
                }
            }
        },
        "/live/{parkID}/date/{date}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["live"],
                "summary": "Get Park For Date",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Internal park ID",
                        "name": "parkID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "type": "string",
                        "description": "Date (YYYY-MM-DD)",
                        "name": "date",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "Park with prediction",
                        "schema": {"$ref": "#/definitions/livedata.ParkForDate"}
                    },
                    "400": {
                        "description": "Bad date",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    },
                    "404": {
                        "description": "Unknown park",
                        "schema": {"$ref": "#/definitions/livedata.apiError"}
                    }
                }
            }
        }
    },
    "definitions": {
        "canonical.Attraction": {"type": "object"},
        "canonical.CrowdPrediction": {"type": "object"},
        "canonical.Entertainment": {"type": "object"},
        "canonical.Park": {"type": "object"},
        "livedata.ParkForDate": {"type": "object"},
        "livedata.apiError": {"type": "object"},
        "models.SyncStatus": {"type": "object"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Park Pulse API",
	Description:      "Cached read API over live theme park data.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
