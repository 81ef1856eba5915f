// Package docs registers the Swagger template for the cropd API.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {
            "name": "cropd maintainers"
        },
        "license": {
            "name": "MIT",
            "url": "https://opensource.org/licenses/MIT"
        },
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/": {
            "get": {
                "description": "Service identity, available endpoints and model status.",
                "produces": ["application/json"],
                "tags": ["info"],
                "summary": "API information",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.InfoResponse"}
                    }
                }
            }
        },
        "/health": {
            "get": {
                "description": "Always 200 while the process is up; model_loaded tells whether predictions can succeed.",
                "produces": ["application/json"],
                "tags": ["info"],
                "summary": "Health check",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.HealthResponse"}
                    }
                }
            }
        },
        "/predict": {
            "post": {
                "description": "Accepts a base64 image (raw or data-URL) and returns the top class with an integer confidence percentage.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["predict"],
                "summary": "Classify a leaf image",
                "parameters": [
                    {
                        "description": "Encoded image",
                        "name": "request",
                        "in": "body",
                        "required": true,
                        "schema": {"$ref": "#/definitions/types.PredictRequest"}
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {"$ref": "#/definitions/types.PredictResponse"}
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "413": {
                        "description": "Request Entity Too Large",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {"$ref": "#/definitions/types.ErrorResponse"}
                    }
                }
            }
        }
    },
    "definitions": {
        "types.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string", "example": "Model not loaded"}
            }
        },
        "types.HealthResponse": {
            "type": "object",
            "properties": {
                "labels_count": {"type": "integer", "example": 16},
                "model_loaded": {"type": "boolean", "example": true},
                "status": {"type": "string", "example": "healthy"}
            }
        },
        "types.InfoResponse": {
            "type": "object",
            "properties": {
                "endpoints": {
                    "type": "object",
                    "additionalProperties": {"type": "string"}
                },
                "labels_count": {"type": "integer", "example": 16},
                "model_loaded": {"type": "boolean", "example": true},
                "service": {"type": "string", "example": "Crop Disease Detector API"},
                "status": {"type": "string", "example": "running"},
                "version": {"type": "string", "example": "1.0.0"}
            }
        },
        "types.Prediction": {
            "type": "object",
            "properties": {
                "confidence": {"type": "integer", "example": 95},
                "label": {"type": "string", "example": "Tomato_Late_blight"}
            }
        },
        "types.PredictRequest": {
            "type": "object",
            "properties": {
                "image": {"type": "string", "example": "data:image/jpeg;base64,/9j/4AAQSkZJRg..."}
            }
        },
        "types.PredictResponse": {
            "type": "object",
            "properties": {
                "prediction": {"$ref": "#/definitions/types.Prediction"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{"http"},
	Title:            "cropd API",
	Description:      "HTTP API for crop leaf disease classification.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
