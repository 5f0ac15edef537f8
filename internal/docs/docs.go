// Package docs holds the OpenAPI description served at /swagger.
// Regenerate with: swag init -g cmd/api/main.go -o internal/docs
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
        "/admin/stats": {
            "get": {
                "security": [{"BearerAuth": []}],
                "produces": ["application/json"],
                "tags": ["admin"],
                "summary": "Sales statistics",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.StatsResponse"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List products",
                "parameters": [
                    {"type": "integer", "description": "Page number", "name": "page", "in": "query"},
                    {"type": "integer", "description": "Items per page (max 100)", "name": "page_size", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/pagination.PageResponse-models_Product"}},
                    "400": {"description": "Invalid page parameters", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/products/{code}": {
            "get": {
                "description": "Look up the product master by JAN/EAN or in-store code (8 to 25 digits)",
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Find a product by code",
                "parameters": [
                    {"type": "string", "description": "Product code", "name": "code", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.Product"}},
                    "400": {"description": "Malformed code", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Product not registered", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/trades": {
            "post": {
                "description": "Price every line from the product master, compute tax and store the trade atomically",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Register a trade",
                "parameters": [
                    {"description": "Trade header and lines", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/handlers.CreateTradeRequest"}}
                ],
                "responses": {
                    "201": {"description": "Trade registered", "schema": {"$ref": "#/definitions/handlers.TradeResponse"}},
                    "400": {"description": "Invalid input or unknown product", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "409": {"description": "Integrity conflict", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "503": {"description": "Storage unavailable", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        },
        "/trades/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["trades"],
                "summary": "Get a trade",
                "parameters": [
                    {"type": "integer", "description": "Trade ID", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/handlers.TradeDetailResponse"}},
                    "400": {"description": "Invalid id", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}},
                    "404": {"description": "Trade not found", "schema": {"$ref": "#/definitions/respond.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "handlers.CreateTradeRequest": {
            "type": "object",
            "required": ["emp_cd", "pos_no", "store_cd", "trade_lines"],
            "properties": {
                "emp_cd": {"type": "string", "maxLength": 10},
                "pos_no": {"type": "string", "maxLength": 3},
                "store_cd": {"type": "string", "maxLength": 5},
                "trade_lines": {"type": "array", "minItems": 1, "items": {"$ref": "#/definitions/handlers.TradeLineRequest"}}
            }
        },
        "handlers.StatsResponse": {
            "type": "object",
            "properties": {
                "correlation_id": {"type": "string"},
                "total_products": {"type": "integer"},
                "total_sales": {"type": "integer"},
                "total_transactions": {"type": "integer"}
            }
        },
        "handlers.TradeDetailResponse": {
            "type": "object",
            "properties": {
                "trade": {"$ref": "#/definitions/models.Trade"},
                "trade_lines": {"type": "array", "items": {"$ref": "#/definitions/models.TradeLine"}}
            }
        },
        "handlers.TradeLineRequest": {
            "type": "object",
            "required": ["prd_id"],
            "properties": {
                "prd_id": {"type": "integer"},
                "qty": {"type": "integer", "minimum": 1, "maximum": 2147483647}
            }
        },
        "handlers.TradeResponse": {
            "type": "object",
            "properties": {
                "message": {"type": "string"},
                "success": {"type": "boolean"},
                "total_amt": {"type": "integer"},
                "total_amt_ex_tax": {"type": "integer"},
                "total_tax": {"type": "integer"},
                "trade_id": {"type": "integer"}
            }
        },
        "models.Product": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "name": {"type": "string"},
                "prd_id": {"type": "integer"},
                "price": {"type": "integer"},
                "tax_cd": {"type": "string", "enum": ["10", "08", "00"]}
            }
        },
        "models.Trade": {
            "type": "object",
            "properties": {
                "datetime": {"type": "string"},
                "emp_cd": {"type": "string"},
                "pos_no": {"type": "string"},
                "store_cd": {"type": "string"},
                "total_amt": {"type": "integer"},
                "trd_id": {"type": "integer"},
                "ttl_amt_ex_tax": {"type": "integer"},
                "ttl_tax": {"type": "integer"}
            }
        },
        "models.TradeLine": {
            "type": "object",
            "properties": {
                "dtl_id": {"type": "integer"},
                "line_amt": {"type": "integer"},
                "line_amt_ex_tax": {"type": "integer"},
                "line_tax": {"type": "integer"},
                "prd_code": {"type": "string"},
                "prd_id": {"type": "integer"},
                "prd_name": {"type": "string"},
                "prd_price": {"type": "integer"},
                "qty": {"type": "integer"},
                "tax_cd": {"type": "string"},
                "trd_id": {"type": "integer"}
            }
        },
        "pagination.PageResponse-models_Product": {
            "type": "object",
            "properties": {
                "data": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}},
                "page": {"type": "integer"},
                "page_size": {"type": "integer"},
                "total_items": {"type": "integer"},
                "total_pages": {"type": "integer"}
            }
        },
        "respond.ErrorDetail": {
            "type": "object",
            "properties": {
                "code": {"type": "string"},
                "details": {"type": "object", "additionalProperties": true},
                "message": {"type": "string"}
            }
        },
        "respond.ErrorResponse": {
            "type": "object",
            "properties": {
                "correlation_id": {"type": "string"},
                "error": {"$ref": "#/definitions/respond.ErrorDetail"}
            }
        }
    },
    "securityDefinitions": {
        "BearerAuth": {
            "description": "Type \"Bearer\" followed by a space and JWT token.",
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
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "POS API",
	Description:      "Point-of-sale backend: product lookup and tax-inclusive trade registration.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
