package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "Recursos Educativos API",
        "description": "Role-based catalogue of educational resources with report exports",
        "version": "1.0.0"
    },
    "basePath": "/api/v1",
    "schemes": [
        "http",
        "https"
    ],
    "tags": [
        {"name": "Authentication", "description": "Session cookie lifecycle"},
        {"name": "Resources", "description": "Educational resource catalogue"},
        {"name": "Taxonomy", "description": "Platforms, faculties, cycles and resource types"},
        {"name": "Users", "description": "Superadmin account administration"},
        {"name": "Reports", "description": "Report exports"},
        {"name": "Dashboard", "description": "Catalogue statistics"}
    ],
    "paths": {
        "/auth/register": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Register a new account",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RegisterRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "409": {"description": "Username taken", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Authenticate and set the session cookie",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["Authentication"],
                "summary": "Clear the session cookie and revoke the session",
                "responses": {
                    "204": {"description": "Session ended"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Authentication"],
                "summary": "Current identity and role label",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resources": {
            "get": {
                "tags": ["Resources"],
                "summary": "List own resources",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Resources"],
                "summary": "Create a resource",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResourceFields"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resources/all": {
            "get": {
                "tags": ["Resources"],
                "summary": "List every resource regardless of owner",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/resources/{id}": {
            "put": {
                "tags": ["Resources"],
                "summary": "Update an owned resource",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ResourceFields"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "delete": {
                "tags": ["Resources"],
                "summary": "Soft delete an owned resource",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "204": {"description": "Deleted"},
                    "403": {"description": "Role cannot delete", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/platforms": {
            "get": {"tags": ["Taxonomy"], "summary": "List platforms", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Taxonomy"], "summary": "Create platform (superadmin)", "responses": {"201": {"description": "Created"}}}
        },
        "/faculties": {
            "get": {"tags": ["Taxonomy"], "summary": "List faculties", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Taxonomy"], "summary": "Create faculty (superadmin)", "responses": {"201": {"description": "Created"}}}
        },
        "/cycles": {
            "get": {"tags": ["Taxonomy"], "summary": "List academic cycles", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Taxonomy"], "summary": "Create cycle (superadmin)", "responses": {"201": {"description": "Created"}}}
        },
        "/resource-types": {
            "get": {"tags": ["Taxonomy"], "summary": "List resource types", "responses": {"200": {"description": "OK"}}},
            "post": {"tags": ["Taxonomy"], "summary": "Create resource type (superadmin)", "responses": {"201": {"description": "Created"}}}
        },
        "/users": {
            "get": {
                "tags": ["Users"],
                "summary": "List users (superadmin)",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "page", "in": "query", "type": "integer"},
                    {"name": "page_size", "in": "query", "type": "integer"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/bulk": {
            "post": {
                "tags": ["Users"],
                "summary": "Bulk import users from CSV (superadmin)",
                "consumes": ["multipart/form-data"],
                "parameters": [
                    {"name": "file", "in": "formData", "required": true, "type": "file"}
                ],
                "responses": {
                    "200": {"description": "Per-row outcomes", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/users/{id}/role": {
            "put": {
                "tags": ["Users"],
                "summary": "Assign a role (superadmin)",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"},
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/RolePayload"}}
                ],
                "responses": {
                    "204": {"description": "Assigned"}
                }
            }
        },
        "/roles": {
            "get": {
                "tags": ["Users"],
                "summary": "List roles (superadmin)",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/reports/export": {
            "post": {
                "tags": ["Reports"],
                "summary": "Export a filtered resource report",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/ExportRequest"}}
                ],
                "responses": {
                    "200": {"description": "Binary report download"},
                    "400": {"description": "Missing resources array", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "401": {"description": "Unauthenticated", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        },
        "/dashboard/stats": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Catalogue statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            }
        }
    },
    "definitions": {
        "RegisterRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "name": {"type": "string"},
                "password": {"type": "string"},
                "email": {"type": "string"}
            },
            "required": ["username", "name", "password"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "username": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["username", "password"]
        },
        "ResourceFields": {
            "type": "object",
            "properties": {
                "titulo": {"type": "string"},
                "descripcion": {"type": "string"},
                "url": {"type": "string"},
                "asignatura": {"type": "string"},
                "typeId": {"type": "integer"},
                "platformId": {"type": "integer"},
                "facultyId": {"type": "integer"},
                "cycleId": {"type": "integer"},
                "publicado": {"type": "boolean"}
            },
            "required": ["titulo", "url", "typeId", "platformId", "facultyId", "cycleId"]
        },
        "RolePayload": {
            "type": "object",
            "properties": {
                "role": {"type": "string", "enum": ["superadmin", "coordinador", "docente"]}
            },
            "required": ["role"]
        },
        "ExportRequest": {
            "type": "object",
            "properties": {
                "resources": {"type": "array", "items": {"type": "object"}},
                "filters": {"$ref": "#/definitions/ReportFilter"},
                "format": {"type": "string", "enum": ["xlsx", "pdf", "csv"]}
            },
            "required": ["resources"]
        },
        "ReportFilter": {
            "type": "object",
            "properties": {
                "plataforma": {"type": "string"},
                "facultad": {"type": "string"},
                "ciclo": {"type": "string"},
                "tipo": {"type": "string"},
                "publicado": {"type": "string", "enum": ["todos", "publicados", "no-publicados"]}
            }
        },
        "Pagination": {
            "type": "object",
            "properties": {
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_count": {"type": "integer"}
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
                "pagination": {"$ref": "#/definitions/Pagination"},
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
