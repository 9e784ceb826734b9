package swagger

import "github.com/swaggo/swag"

const docTemplate = `{
    "swagger": "2.0",
    "info": {
        "title": "OrgFee API",
        "description": "Student organization membership and fee management",
        "version": "1.0.0"
    },
    "basePath": "/",
    "schemes": [
        "http"
    ],
    "tags": [
        {"name": "Students", "description": "Student roster"},
        {"name": "Organizations", "description": "Student organizations"},
        {"name": "Committees", "description": "Organization committees"},
        {"name": "Memberships", "description": "Student-organization memberships"},
        {"name": "Fees", "description": "Fees issued to members"},
        {"name": "Events", "description": "Organization events"},
        {"name": "Auth", "description": "Authentication"},
        {"name": "Reports", "description": "Asynchronous exports"},
        {"name": "Dashboard", "description": "Aggregate summary"}
    ],
    "paths": {
        "/health": {
            "get": {
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/ready": {
            "get": {
                "summary": "Readiness check",
                "responses": {
                    "200": {"description": "Ready"}
                }
            }
        },
        "/students": {
            "get": {
                "tags": ["Students"],
                "summary": "List students",
                "parameters": [
                    {"name": "search", "in": "query", "type": "string"},
                    {"name": "degreeProgram", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Students"],
                "summary": "Register student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateStudentRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "400": {"description": "Missing fields"},
                    "409": {"description": "Already exists"}
                }
            },
            "put": {
                "tags": ["Students"],
                "summary": "Update student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateStudentRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Students"],
                "summary": "Delete student",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/StudentKey"}}
                ],
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/organization": {
            "get": {
                "tags": ["Organizations"],
                "summary": "List organizations with member counts",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/ResponseEnvelope"}}
                }
            },
            "post": {
                "tags": ["Organizations"],
                "summary": "Register organization",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateOrganizationRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already exists"}
                }
            },
            "put": {
                "tags": ["Organizations"],
                "summary": "Update organization",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Organizations"],
                "summary": "Delete organization",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/organization-committee": {
            "get": {
                "tags": ["Committees"],
                "summary": "List committees",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Committees"],
                "summary": "Register committee",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateCommitteeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            },
            "put": {
                "tags": ["Committees"],
                "summary": "Update committee",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Committees"],
                "summary": "Delete committee",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/organization-committee/{organizationId}": {
            "get": {
                "tags": ["Committees"],
                "summary": "List committees of one organization",
                "parameters": [
                    {"name": "organizationId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/membership": {
            "get": {
                "tags": ["Memberships"],
                "summary": "List memberships",
                "parameters": [
                    {"name": "organizationId", "in": "query", "type": "string"},
                    {"name": "studentNumber", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Memberships"],
                "summary": "Register membership",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateMembershipRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already exists"}
                }
            },
            "put": {
                "tags": ["Memberships"],
                "summary": "Update membership",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Memberships"],
                "summary": "Delete membership",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/membership/active": {
            "get": {
                "tags": ["Memberships"],
                "summary": "List active members",
                "parameters": [
                    {"name": "organizationId", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/membership/status": {
            "patch": {
                "tags": ["Memberships"],
                "summary": "Change membership status",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateMembershipStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/fee": {
            "get": {
                "tags": ["Fees"],
                "summary": "List fees",
                "parameters": [
                    {"name": "organizationId", "in": "query", "type": "string"},
                    {"name": "status", "in": "query", "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Fees"],
                "summary": "Issue fee",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateFeeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"},
                    "409": {"description": "Already exists"}
                }
            },
            "put": {
                "tags": ["Fees"],
                "summary": "Update fee",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Fees"],
                "summary": "Delete fee",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/fee/unpaid": {
            "get": {
                "tags": ["Fees"],
                "summary": "List unpaid fees",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/fee/status": {
            "patch": {
                "tags": ["Fees"],
                "summary": "Change fee payment status",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/UpdateFeeStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/fee/{studentNumber}": {
            "get": {
                "tags": ["Fees"],
                "summary": "List fees issued to one student",
                "parameters": [
                    {"name": "studentNumber", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/organization-event": {
            "get": {
                "tags": ["Events"],
                "summary": "List events",
                "responses": {
                    "200": {"description": "OK"}
                }
            },
            "post": {
                "tags": ["Events"],
                "summary": "Register event",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateEventRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created"}
                }
            },
            "put": {
                "tags": ["Events"],
                "summary": "Update event",
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            },
            "delete": {
                "tags": ["Events"],
                "summary": "Delete event",
                "responses": {
                    "200": {"description": "Deleted"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/organization-event/{organizationId}": {
            "get": {
                "tags": ["Events"],
                "summary": "List events hosted by one organization",
                "parameters": [
                    {"name": "organizationId", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        },
        "/auth/login": {
            "post": {
                "tags": ["Auth"],
                "summary": "Authenticate",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/LoginRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Invalid credentials"}
                }
            }
        },
        "/auth/me": {
            "get": {
                "tags": ["Auth"],
                "summary": "Current user",
                "responses": {
                    "200": {"description": "OK"},
                    "401": {"description": "Unauthorized"}
                }
            }
        },
        "/reports": {
            "post": {
                "tags": ["Reports"],
                "summary": "Queue a report export",
                "parameters": [
                    {"name": "payload", "in": "body", "required": true, "schema": {"$ref": "#/definitions/CreateReportRequest"}}
                ],
                "responses": {
                    "202": {"description": "Accepted"}
                }
            }
        },
        "/reports/{id}": {
            "get": {
                "tags": ["Reports"],
                "summary": "Report job status",
                "parameters": [
                    {"name": "id", "in": "path", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "OK"},
                    "404": {"description": "Not found"}
                }
            }
        },
        "/reports/download": {
            "get": {
                "tags": ["Reports"],
                "summary": "Download a finished report",
                "parameters": [
                    {"name": "token", "in": "query", "required": true, "type": "string"}
                ],
                "responses": {
                    "200": {"description": "File"},
                    "400": {"description": "Invalid or expired token"}
                }
            }
        },
        "/dashboard/summary": {
            "get": {
                "tags": ["Dashboard"],
                "summary": "Aggregate counts and outstanding fee total",
                "responses": {
                    "200": {"description": "OK"}
                }
            }
        }
    },
    "definitions": {
        "CreateStudentRequest": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_initial": {"type": "string"},
                "last_name": {"type": "string"},
                "gender": {"type": "string"},
                "degree_program": {"type": "string"}
            },
            "required": ["student_number", "gender"]
        },
        "UpdateStudentRequest": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"},
                "first_name": {"type": "string"},
                "middle_initial": {"type": "string"},
                "last_name": {"type": "string"},
                "gender": {"type": "string"},
                "degree_program": {"type": "string"}
            },
            "required": ["student_number"]
        },
        "StudentKey": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"}
            },
            "required": ["student_number"]
        },
        "CreateOrganizationRequest": {
            "type": "object",
            "properties": {
                "organization_id": {"type": "string"},
                "organization_name": {"type": "string"}
            },
            "required": ["organization_id"]
        },
        "CreateCommitteeRequest": {
            "type": "object",
            "properties": {
                "organization_id": {"type": "string"},
                "committee_name": {"type": "string"}
            },
            "required": ["organization_id"]
        },
        "CreateMembershipRequest": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"},
                "organization_id": {"type": "string"},
                "committee_id": {"type": "integer"},
                "membership_date": {"type": "string", "format": "date-time"},
                "status": {"type": "string", "enum": ["Active", "Inactive", "Alumni", "Expelled", "Suspended"]},
                "role": {"type": "string"}
            },
            "required": ["student_number", "organization_id"]
        },
        "UpdateMembershipStatusRequest": {
            "type": "object",
            "properties": {
                "student_number": {"type": "string"},
                "organization_id": {"type": "string"},
                "status": {"type": "string", "enum": ["Active", "Inactive", "Alumni", "Expelled", "Suspended"]}
            },
            "required": ["student_number", "organization_id", "status"]
        },
        "CreateFeeRequest": {
            "type": "object",
            "properties": {
                "fee_id": {"type": "string"},
                "label": {"type": "string"},
                "status": {"type": "string", "enum": ["Unpaid", "Paid", "Late"]},
                "amount": {"type": "number"},
                "date_issue": {"type": "string", "format": "date-time"},
                "due_date": {"type": "string", "format": "date-time"},
                "organization_id": {"type": "string"},
                "student_number": {"type": "string"}
            },
            "required": ["fee_id", "amount", "organization_id", "student_number"]
        },
        "UpdateFeeStatusRequest": {
            "type": "object",
            "properties": {
                "fee_id": {"type": "string"},
                "status": {"type": "string", "enum": ["Unpaid", "Paid", "Late"]}
            },
            "required": ["fee_id", "status"]
        },
        "CreateEventRequest": {
            "type": "object",
            "properties": {
                "organization_id": {"type": "string"},
                "event_name": {"type": "string"}
            },
            "required": ["organization_id", "event_name"]
        },
        "LoginRequest": {
            "type": "object",
            "properties": {
                "email": {"type": "string"},
                "password": {"type": "string"}
            },
            "required": ["email", "password"]
        },
        "CreateReportRequest": {
            "type": "object",
            "properties": {
                "type": {"type": "string", "enum": ["membership_balances", "unpaid_fees", "committee_roster"]},
                "format": {"type": "string", "enum": ["csv", "pdf"]},
                "organization_id": {"type": "string"}
            },
            "required": ["type", "format"]
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
