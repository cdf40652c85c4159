// Package swagger registers the generated OpenAPI document with the swag
// runtime so the UI route can serve /swagger/doc.json.
// Regenerate with: swag init -g cmd/api/main.go -o docs/swagger
package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/hero": {
            "get": {
                "produces": ["application/json"],
                "tags": ["hero"],
                "summary": "Get hero section",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"AdminSecret": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["hero"],
                "summary": "Update hero section",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/about": {
            "get": {
                "produces": ["application/json"],
                "tags": ["about"],
                "summary": "Get about page",
                "responses": {"200": {"description": "OK"}}
            },
            "put": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["about"],
                "summary": "Update about page",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/projects": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "List or fetch projects",
                "parameters": [
                    {"type": "string", "name": "slug", "in": "query"},
                    {"type": "string", "name": "id", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"AdminSecret": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Create project",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            },
            "delete": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Delete project",
                "parameters": [{"type": "string", "name": "id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/projects/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Fetch one project",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"AdminSecret": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["projects"],
                "summary": "Update project",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/posts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "List or fetch posts",
                "parameters": [
                    {"type": "string", "name": "q", "in": "query"},
                    {"type": "string", "name": "slug", "in": "query"},
                    {"type": "string", "name": "id", "in": "query"},
                    {"type": "string", "name": "format", "in": "query"}
                ],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "post": {
                "security": [{"AdminSecret": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Create post",
                "responses": {"201": {"description": "Created"}, "400": {"description": "Bad Request"}}
            },
            "delete": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Delete post",
                "parameters": [{"type": "string", "name": "id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/posts/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Fetch one post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "put": {
                "security": [{"AdminSecret": []}],
                "consumes": ["multipart/form-data"],
                "produces": ["application/json"],
                "tags": ["posts"],
                "summary": "Update post",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/contact": {
            "get": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "List messages",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Send a message",
                "responses": {"200": {"description": "OK"}, "400": {"description": "Bad Request"}}
            },
            "patch": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Mark a message read",
                "parameters": [{"type": "string", "name": "id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            },
            "delete": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["contact"],
                "summary": "Delete a message",
                "parameters": [{"type": "string", "name": "id", "in": "query", "required": true}],
                "responses": {"200": {"description": "OK"}, "404": {"description": "Not Found"}}
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Admin login",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        },
        "/auth/check": {
            "get": {
                "security": [{"AdminSecret": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Check session",
                "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}
            }
        }
    },
    "securityDefinitions": {
        "AdminSecret": {
            "type": "apiKey",
            "name": "X-Admin-Secret",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "localhost:8080",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Devfolio API",
	Description:      "Backend for a personal portfolio site: public content reads plus an admin content-management surface.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
