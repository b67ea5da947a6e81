// Package docs holds the OpenAPI description served under /swagger.
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
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    },
    "paths": {
        "/rooms": {
            "get": {"tags": ["rooms"], "summary": "List bookable rooms", "responses": {"200": {"description": "OK"}}}
        },
        "/rooms/{id}": {
            "get": {"tags": ["rooms"], "summary": "Get a room by id or slug", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}}
        },
        "/quotes": {
            "post": {"tags": ["quotes"], "summary": "Price a stay and open a quote", "parameters": [{"name": "X-Device-ID", "in": "header", "type": "string"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}}
        },
        "/quotes/{id}": {
            "get": {"tags": ["quotes"], "summary": "Get a quote", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}},
            "put": {"tags": ["quotes"], "summary": "Change the stay of a quote", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/quotes/{id}/promo": {
            "post": {"tags": ["quotes"], "summary": "Apply a promo code", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Promo validation already in progress"}}},
            "delete": {"tags": ["quotes"], "summary": "Remove the promo code", "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/bookings/confirm": {
            "post": {"tags": ["bookings"], "summary": "Confirm a quote as a booking", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}, "409": {"description": "Conflict"}}}
        },
        "/bookings/{id}": {
            "get": {"tags": ["bookings"], "summary": "Get a booking", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/bookings/{id}/cancel": {
            "post": {"tags": ["bookings"], "summary": "Cancel an own booking", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "409": {"description": "Conflict"}}}
        },
        "/users/bookings": {
            "get": {"tags": ["bookings"], "summary": "List the caller's bookings", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/bookings": {
            "get": {"tags": ["admin"], "summary": "List all bookings", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Create a booking from the front desk", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        },
        "/admin/bookings/occupancy": {
            "get": {"tags": ["admin"], "summary": "Rooms booked per night for one room type", "security": [{"BearerAuth": []}], "parameters": [{"name": "room_id", "in": "query", "required": true, "type": "string"}, {"name": "from", "in": "query", "required": true, "type": "string"}, {"name": "to", "in": "query", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}}
        },
        "/admin/bookings/{id}": {
            "put": {"tags": ["admin"], "summary": "Edit and re-price a booking", "security": [{"BearerAuth": []}], "parameters": [{"name": "id", "in": "path", "required": true, "type": "string"}], "responses": {"200": {"description": "OK"}}}
        },
        "/admin/promos": {
            "get": {"tags": ["admin"], "summary": "List promo codes", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["admin"], "summary": "Create a promo code", "security": [{"BearerAuth": []}], "responses": {"201": {"description": "Created"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "RoyalStay Booking API",
	Description:      "Room quotes, promo codes and bookings for the RoyalStay hotel.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
