// Package docs registers the OpenAPI document served under /swagger.
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
        "/api/auth/signup": {"post": {"tags": ["auth"], "summary": "Register a new guest", "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}},
        "/api/auth/login": {"post": {"tags": ["auth"], "summary": "Login", "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}},
        "/api/auth/me": {"get": {"security": [{"BearerAuth": []}], "tags": ["auth"], "summary": "Current user", "responses": {"200": {"description": "OK"}}}},
        "/api/rooms": {
            "get": {"tags": ["rooms"], "summary": "List rooms", "responses": {"200": {"description": "OK"}}},
            "post": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Create a room", "responses": {"201": {"description": "Created"}}}
        },
        "/api/rooms/{id}": {
            "get": {"tags": ["rooms"], "summary": "Get a room", "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Update a room", "responses": {"200": {"description": "OK"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["rooms"], "summary": "Delete a room", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/api/bookings": {"post": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Book a room", "responses": {"201": {"description": "Created"}, "200": {"description": "Idempotent replay"}, "409": {"description": "Conflict"}}}},
        "/api/bookings/user": {"get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "My bookings", "responses": {"200": {"description": "OK"}}}},
        "/api/bookings/admin": {"get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "All bookings", "responses": {"200": {"description": "OK"}, "403": {"description": "Forbidden"}}}},
        "/api/bookings/{id}": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Get a booking", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Update booking status", "responses": {"200": {"description": "OK"}, "422": {"description": "Unprocessable Entity"}}},
            "delete": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Cancel a booking", "responses": {"200": {"description": "OK"}}}
        },
        "/api/bookings/{id}/payment": {"put": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Update payment status", "responses": {"200": {"description": "OK"}}}},
        "/api/bookings/{id}/history": {"get": {"security": [{"BearerAuth": []}], "tags": ["bookings"], "summary": "Booking audit trail", "responses": {"200": {"description": "OK"}}}},
        "/api/users": {"get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "List users", "responses": {"200": {"description": "OK"}}}},
        "/api/users/profile": {
            "get": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Get my profile", "responses": {"200": {"description": "OK"}}},
            "put": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Update my profile", "responses": {"200": {"description": "OK"}}}
        },
        "/api/users/{id}": {"delete": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Delete a user", "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}},
        "/api/users/{id}/status": {"patch": {"security": [{"BearerAuth": []}], "tags": ["users"], "summary": "Activate or deactivate a user", "responses": {"200": {"description": "OK"}}}}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Hotel Booking API",
	Description:      "Room catalog, bookings and accounts for a single hotel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
