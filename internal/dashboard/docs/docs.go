// Package docs holds the generated Swagger specification.
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
        "/news": {
            "get": {
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Get enriched news",
                "parameters": [
                    {"type": "string", "name": "category", "in": "query"},
                    {"type": "string", "name": "query", "in": "query"}
                ],
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NewsState"}}}
            }
        },
        "/news/refresh": {
            "post": {
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Refresh the news feed",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.NewsState"}}}
            }
        },
        "/news/content": {
            "get": {
                "produces": ["application/json"],
                "tags": ["news"],
                "summary": "Extract readable article text",
                "parameters": [{"type": "string", "name": "url", "in": "query", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ArticleContentResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/sentiment/classify": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["sentiment"],
                "summary": "Classify one text",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ClassifyRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.ClassificationResult"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "502": {"description": "Bad Gateway", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/chat": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["text/event-stream"],
                "tags": ["chat"],
                "summary": "Stream an assistant reply",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.ChatRequest"}}],
                "responses": {
                    "200": {"description": "SSE stream of text deltas", "schema": {"type": "string"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/journal": {
            "get": {
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "List trades",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.Trade"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Record a trade",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateTradeRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.Trade"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/journal/stats": {
            "get": {
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Journal statistics",
                "responses": {"200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.JournalStatsResponse"}}}
            }
        },
        "/journal/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Get one trade",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Trade"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "patch": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["journal"],
                "summary": "Update a trade",
                "parameters": [
                    {"type": "string", "name": "id", "in": "path", "required": true},
                    {"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.UpdateTradeRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.Trade"}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            },
            "delete": {
                "tags": ["journal"],
                "summary": "Delete a trade",
                "parameters": [{"type": "string", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/watchlist": {
            "get": {
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "List the watchlist",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/dto.WatchlistEntry"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["watchlist"],
                "summary": "Pin a symbol",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.AddWatchlistRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.WatchlistItem"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/watchlist/{symbol}": {
            "delete": {
                "tags": ["watchlist"],
                "summary": "Unpin a symbol",
                "parameters": [{"type": "string", "name": "symbol", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/alerts": {
            "get": {
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "List price alerts",
                "responses": {"200": {"description": "OK", "schema": {"type": "array", "items": {"$ref": "#/definitions/entity.PriceAlert"}}}}
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["alerts"],
                "summary": "Register a price alert",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.CreateAlertRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/entity.PriceAlert"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/alerts/{id}": {
            "delete": {
                "tags": ["alerts"],
                "summary": "Delete a price alert",
                "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}],
                "responses": {"204": {"description": "No Content"}}
            }
        },
        "/calculator/position-size": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["calculator"],
                "summary": "Compute a position size",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.PositionSizeRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.PositionSizeResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/register": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Register a user",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RegisterRequest"}}],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/login": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Open a session",
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.LoginRequest"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/dto.SessionResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/logout": {
            "post": {
                "tags": ["auth"],
                "summary": "Close the session",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "204": {"description": "No Content"},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/me": {
            "get": {
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Get the session user",
                "security": [{"BearerAuth": []}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        },
        "/auth/me/risk-profile": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["auth"],
                "summary": "Update the risk profile",
                "security": [{"BearerAuth": []}],
                "parameters": [{"name": "body", "in": "body", "required": true, "schema": {"$ref": "#/definitions/dto.RiskProfile"}}],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/entity.User"}},
                    "401": {"description": "Unauthorized", "schema": {"$ref": "#/definitions/dto.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "dto.NewsState": {"type": "object"},
        "dto.ArticleContentResponse": {"type": "object"},
        "dto.ClassifyRequest": {"type": "object"},
        "dto.ClassificationResult": {"type": "object"},
        "dto.ChatRequest": {"type": "object"},
        "dto.CreateTradeRequest": {"type": "object"},
        "dto.UpdateTradeRequest": {"type": "object"},
        "dto.JournalStatsResponse": {"type": "object"},
        "dto.WatchlistEntry": {"type": "object"},
        "dto.AddWatchlistRequest": {"type": "object"},
        "dto.CreateAlertRequest": {"type": "object"},
        "dto.PositionSizeRequest": {"type": "object"},
        "dto.PositionSizeResponse": {"type": "object"},
        "dto.RegisterRequest": {"type": "object"},
        "dto.LoginRequest": {"type": "object"},
        "dto.SessionResponse": {"type": "object"},
        "dto.RiskProfile": {"type": "object"},
        "dto.ErrorResponse": {"type": "object"},
        "entity.Trade": {"type": "object"},
        "entity.WatchlistItem": {"type": "object"},
        "entity.PriceAlert": {"type": "object"},
        "entity.User": {"type": "object"}
    },
    "securityDefinitions": {
        "BearerAuth": {"type": "apiKey", "name": "Authorization", "in": "header"}
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it.
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api/v1",
	Schemes:          []string{},
	Title:            "TradePulse Dashboard API",
	Description:      "Backend for the TradePulse day-trading dashboard.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
