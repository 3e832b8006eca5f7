// Package docs holds the swagger document served under /swagger.
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
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    },
    "paths": {
        "/health": {
            "get": {
                "tags": ["health"],
                "summary": "Readiness: pings the BaaS",
                "responses": {"200": {"description": "healthy"}, "503": {"description": "BaaS unreachable", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/healthz": {
            "get": {"tags": ["health"], "summary": "Liveness", "responses": {"200": {"description": "up"}}}
        },
        "/api/auth/login": {
            "post": {
                "tags": ["auth"],
                "summary": "Log in with email and password",
                "parameters": [{"in": "body", "name": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}],
                "responses": {
                    "200": {"description": "session token", "schema": {"$ref": "#/definitions/LoginResult"}},
                    "401": {"description": "invalid credentials", "schema": {"$ref": "#/definitions/Error"}},
                    "403": {"description": "account blocked", "schema": {"$ref": "#/definitions/Error"}}
                }
            }
        },
        "/api/auth/register": {
            "post": {
                "tags": ["auth"],
                "summary": "Create a client account",
                "responses": {"201": {"description": "created", "schema": {"$ref": "#/definitions/LoginResult"}}, "409": {"description": "email taken", "schema": {"$ref": "#/definitions/Error"}}}
            }
        },
        "/api/auth/me": {
            "get": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Current user", "responses": {"200": {"description": "user"}, "401": {"description": "session expired"}}},
            "patch": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Update own profile", "responses": {"200": {"description": "user"}}}
        },
        "/api/auth/logout": {
            "post": {"tags": ["auth"], "security": [{"BearerAuth": []}], "summary": "Revoke the session", "responses": {"204": {"description": "logged out"}}}
        },
        "/api/services": {
            "get": {
                "tags": ["catalog"],
                "summary": "List services",
                "parameters": [
                    {"in": "query", "name": "category", "type": "string"},
                    {"in": "query", "name": "min_price", "type": "number"},
                    {"in": "query", "name": "max_price", "type": "number"},
                    {"in": "query", "name": "min_rating", "type": "number"},
                    {"in": "query", "name": "order", "type": "string", "enum": ["rating_desc", "price_asc", "price_desc"]},
                    {"in": "query", "name": "limit", "type": "integer"}
                ],
                "responses": {"200": {"description": "services"}}
            }
        },
        "/api/services/featured": {
            "get": {"tags": ["catalog"], "summary": "Featured services", "responses": {"200": {"description": "services"}}}
        },
        "/api/services/{id}": {
            "get": {"tags": ["catalog"], "summary": "Service detail", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "service"}, "404": {"description": "not found"}}}
        },
        "/api/services/{id}/slots": {
            "get": {"tags": ["schedule"], "summary": "Available time slots", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}], "responses": {"200": {"description": "slots"}}}
        },
        "/api/services/{id}/slots/{slotId}/reserve": {
            "post": {"tags": ["schedule"], "security": [{"BearerAuth": []}], "summary": "Reserve a slot", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "path", "name": "slotId", "type": "integer", "required": true}], "responses": {"201": {"description": "reservation"}, "409": {"description": "slot unavailable"}}}
        },
        "/api/services/{id}/slots/{slotId}/cart": {
            "post": {"tags": ["schedule"], "security": [{"BearerAuth": []}], "summary": "Reserve a slot and add it to the cart", "parameters": [{"in": "path", "name": "id", "type": "integer", "required": true}, {"in": "path", "name": "slotId", "type": "integer", "required": true}], "responses": {"201": {"description": "reservation and cart line"}, "409": {"description": "slot unavailable"}}}
        },
        "/api/cart": {
            "get": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "View the cart", "responses": {"200": {"description": "cart"}}},
            "delete": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "Clear the cart", "responses": {"204": {"description": "cleared"}}}
        },
        "/api/cart/items": {
            "post": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "Add a service", "responses": {"200": {"description": "cart"}}}
        },
        "/api/cart/checkout": {
            "post": {"tags": ["cart"], "security": [{"BearerAuth": []}], "summary": "Check out", "responses": {"201": {"description": "payment"}, "400": {"description": "empty cart or bad method"}}}
        },
        "/api/blogs": {
            "get": {"tags": ["blog"], "summary": "Active posts", "responses": {"200": {"description": "posts"}}}
        },
        "/api/blogs/{id}": {
            "get": {"tags": ["blog"], "summary": "Post detail", "parameters": [{"in": "path", "name": "id", "type": "string", "required": true}], "responses": {"200": {"description": "post"}, "400": {"description": "invalid id"}}}
        },
        "/api/contact": {
            "post": {"tags": ["contact"], "summary": "Send a contact message", "responses": {"201": {"description": "stored"}}}
        },
        "/api/admin/users": {
            "get": {"tags": ["admin"], "security": [{"BearerAuth": []}], "summary": "List users", "responses": {"200": {"description": "users"}, "403": {"description": "not an admin"}}}
        },
        "/api/admin/images": {
            "post": {"tags": ["admin"], "security": [{"BearerAuth": []}], "consumes": ["multipart/form-data"], "summary": "Upload images", "responses": {"201": {"description": "stored images"}, "413": {"description": "image too large"}}}
        }
    },
    "definitions": {
        "Error": {
            "type": "object",
            "properties": {
                "request_id": {"type": "string"},
                "error": {
                    "type": "object",
                    "properties": {
                        "code": {"type": "string"},
                        "message": {"type": "string"},
                        "details": {"type": "object"}
                    }
                }
            }
        },
        "LoginRequest": {
            "type": "object",
            "properties": {"email": {"type": "string"}, "password": {"type": "string"}}
        },
        "LoginResult": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "expires_at": {"type": "string"},
                "user": {"type": "object"},
                "blocked": {"type": "boolean"},
                "can_interact": {"type": "boolean"},
                "redirect_path": {"type": "string"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "AmbienteFest API",
	Description:      "Marketplace gateway in front of the Xano backend.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
