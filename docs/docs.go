// Package docs holds the OpenAPI description served at /swagger. It follows
// the layout swag init generates from the handler annotations.
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
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Sign in with email and password",
                "parameters": [{"description": "Credentials", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/account.LoginInput"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/account.SessionDTO"}},
                    "400": {"description": "Invalid input", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "401": {"description": "Invalid credentials", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "End the current session",
                "responses": {
                    "200": {"description": "Logout successful", "schema": {"$ref": "#/definitions/response.MessageResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/auth/session": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Current session and role",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/account.SessionDTO"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/submissions": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["submissions"],
                "summary": "Submit a project proposal",
                "parameters": [{"description": "Proposal", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/submission.CreateSubmissionInput"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/submission.Submission"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "503": {"description": "Data store unavailable", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/dashboard": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Admin dashboard",
                "parameters": [
                    {"type": "string", "description": "Exact status filter", "name": "status", "in": "query"},
                    {"type": "string", "description": "Free-text filter", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/application.Dashboard"}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/submissions": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "List submissions",
                "parameters": [
                    {"type": "string", "description": "Exact status filter", "name": "status", "in": "query"},
                    {"type": "string", "description": "Free-text filter", "name": "q", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/submission.Submission"}}},
                    "403": {"description": "Forbidden", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/submissions/{id}": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Get submission detail",
                "parameters": [{"type": "string", "description": "Submission ID", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/submission.Submission"}},
                    "404": {"description": "Submission not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/submissions/{id}/review": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Change a submission's status",
                "description": "Approved and rejected require comments. Supplying version enables a conflict check.",
                "parameters": [
                    {"type": "string", "description": "Submission ID", "name": "id", "in": "path", "required": true},
                    {"description": "Decision", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/submission.ReviewSubmissionInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/submission.Submission"}},
                    "400": {"description": "Validation failed", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "403": {"description": "Not a reviewer", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "404": {"description": "Submission not found", "schema": {"$ref": "#/definitions/response.ErrorResponse"}},
                    "409": {"description": "Version conflict", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/admin/activity": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Query the admin activity log",
                "parameters": [
                    {"type": "string", "name": "admin_id", "in": "query"},
                    {"type": "string", "name": "entity_type", "in": "query"},
                    {"type": "string", "name": "action", "in": "query"},
                    {"type": "string", "name": "start_time", "in": "query"},
                    {"type": "string", "name": "end_time", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"},
                    {"type": "integer", "name": "offset", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/activity.Entry"}}}
                }
            }
        },
        "/admin/notifications": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Inspect the outgoing email queue",
                "parameters": [
                    {"type": "string", "name": "status", "in": "query"},
                    {"type": "integer", "name": "limit", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/notification.Notification"}}}
                }
            }
        },
        "/admin/profiles": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "List staff profiles",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/profile.Profile"}}}
                }
            }
        },
        "/admin/profiles/{id}/role": {
            "put": {
                "security": [{"BearerAuth": []}],
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["profiles"],
                "summary": "Change a profile's role",
                "parameters": [
                    {"type": "string", "description": "Profile ID", "name": "id", "in": "path", "required": true},
                    {"description": "New role", "name": "input", "in": "body", "required": true, "schema": {"$ref": "#/definitions/profile.UpdateRoleInput"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/profile.Profile"}},
                    "403": {"description": "Only super_admin may change roles", "schema": {"$ref": "#/definitions/response.ErrorResponse"}}
                }
            }
        },
        "/healthz": {
            "get": {
                "produces": ["application/json"],
                "tags": ["health"],
                "summary": "Liveness and store reachability",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/response.HealthResponse"}},
                    "503": {"description": "Store unreachable", "schema": {"$ref": "#/definitions/response.HealthResponse"}}
                }
            }
        }
    },
    "definitions": {
        "account.LoginInput": {
            "type": "object",
            "required": ["email", "password"],
            "properties": {
                "email": {"type": "string", "example": "admin@example.edu"},
                "password": {"type": "string", "example": "password123"}
            }
        },
        "account.SessionDTO": {
            "type": "object",
            "properties": {
                "token": {"type": "string"},
                "session_id": {"type": "string"},
                "account_id": {"type": "string"},
                "email": {"type": "string"},
                "expires_at": {"type": "string"},
                "role": {"type": "string"},
                "is_admin": {"type": "boolean"}
            }
        },
        "activity.Entry": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "admin_id": {"type": "string"},
                "action": {"type": "string"},
                "entity_type": {"type": "string"},
                "entity_id": {"type": "string"},
                "details": {"type": "object"},
                "created_at": {"type": "string"}
            }
        },
        "application.Dashboard": {
            "type": "object",
            "properties": {
                "summary": {"$ref": "#/definitions/submission.Summary"},
                "submissions": {"type": "array", "items": {"$ref": "#/definitions/submission.Submission"}}
            }
        },
        "notification.Notification": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "to_email": {"type": "string"},
                "subject": {"type": "string"},
                "template_name": {"type": "string"},
                "status": {"type": "string"},
                "attempts": {"type": "integer"},
                "max_attempts": {"type": "integer"},
                "last_error": {"type": "string"},
                "scheduled_for": {"type": "string"},
                "sent_at": {"type": "string"}
            }
        },
        "profile.Profile": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "email": {"type": "string"},
                "full_name": {"type": "string"},
                "role": {"type": "string", "enum": ["super_admin", "admin", "faculty", "view_only"]},
                "email_on_new_project": {"type": "boolean"}
            }
        },
        "profile.UpdateRoleInput": {
            "type": "object",
            "required": ["role"],
            "properties": {
                "role": {"type": "string", "enum": ["super_admin", "admin", "faculty", "view_only"], "example": "faculty"}
            }
        },
        "response.ErrorResponse": {
            "type": "object",
            "properties": {
                "error": {"type": "string"},
                "fields": {"type": "object", "additionalProperties": {"type": "string"}}
            }
        },
        "response.HealthResponse": {
            "type": "object",
            "properties": {
                "status": {"type": "string"},
                "store": {"type": "string"}
            }
        },
        "response.MessageResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"}
            }
        },
        "submission.CreateSubmissionInput": {
            "type": "object",
            "required": ["student_name", "student_email", "roll_number", "branch", "year", "category", "project_title", "description", "duration", "required_resources"],
            "properties": {
                "student_name": {"type": "string"},
                "student_email": {"type": "string"},
                "roll_number": {"type": "string"},
                "branch": {"type": "string"},
                "year": {"type": "string"},
                "contact_number": {"type": "string"},
                "is_team_project": {"type": "boolean"},
                "team_size": {"type": "integer"},
                "team_members": {"type": "string"},
                "category": {"type": "string"},
                "project_title": {"type": "string"},
                "description": {"type": "string"},
                "expected_outcomes": {"type": "string"},
                "duration": {"type": "string"},
                "required_resources": {"type": "array", "items": {"type": "string"}},
                "other_resources": {"type": "string"}
            }
        },
        "submission.ReviewSubmissionInput": {
            "type": "object",
            "required": ["status"],
            "properties": {
                "status": {"type": "string", "enum": ["pending", "under_review", "approved", "rejected", "completed"]},
                "comments": {"type": "string"},
                "version": {"type": "integer"}
            }
        },
        "submission.Submission": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "student_name": {"type": "string"},
                "student_email": {"type": "string"},
                "roll_number": {"type": "string"},
                "project_title": {"type": "string"},
                "status": {"type": "string"},
                "faculty_comments": {"type": "string"},
                "reviewed_by": {"type": "string"},
                "reviewed_at": {"type": "string"},
                "version": {"type": "integer"},
                "created_at": {"type": "string"},
                "updated_at": {"type": "string"}
            }
        },
        "submission.Summary": {
            "type": "object",
            "properties": {
                "total": {"type": "integer"},
                "pending": {"type": "integer"},
                "under_review": {"type": "integer"},
                "approved": {"type": "integer"},
                "rejected": {"type": "integer"},
                "completed": {"type": "integer"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header"
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Robotics Lab Project Review API",
	Description:      "Project proposal intake and faculty review workflow.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
