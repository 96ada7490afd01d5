package router

import (
	"fmt"
	"net/http"
)

func registerSwaggerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	})

	mux.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	})

	mux.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	})
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Bank System API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.onload = function() {
      window.ui = SwaggerUIBundle({
        url: "%s",
        dom_id: "#swagger-ui"
      });
    };
  </script>
</body>
</html>`

const openAPI = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Bank System API",
    "version": "1.0.0"
  },
  "components": {
    "securitySchemes": {
      "BearerAuth": {
        "type": "http",
        "scheme": "bearer",
        "bearerFormat": "JWT"
      }
    }
  },
  "paths": {
    "/register": {
      "post": {
        "summary": "Register a new user with its account and profile",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string", "minLength": 3},
                  "email": {"type": "string"},
                  "firstName": {"type": "string"},
                  "lastName": {"type": "string"},
                  "password": {"type": "string", "minLength": 8}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Registered"},
          "400": {"description": "Validation error"},
          "409": {"description": "Username already taken"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/login": {
      "post": {
        "summary": "Exchange credentials for a bearer token",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["username", "password"],
                "properties": {
                  "username": {"type": "string"},
                  "password": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Token issued"},
          "400": {"description": "Validation error"},
          "401": {"description": "Invalid credentials"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/dashboard": {
      "get": {
        "summary": "Account summary with recent transactions and lifetime totals",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Dashboard fetched"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account": {
      "get": {
        "summary": "Get the authenticated user's account",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Account fetched"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Account not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/deposit": {
      "post": {
        "summary": "Deposit into the authenticated user's account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount"],
                "properties": {
                  "amount": {"type": "string", "example": "100.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Deposit applied"},
          "400": {"description": "Invalid amount"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/withdraw": {
      "post": {
        "summary": "Withdraw from the authenticated user's account",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount"],
                "properties": {
                  "amount": {"type": "string", "example": "50.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Withdrawal applied"},
          "400": {"description": "Invalid amount"},
          "401": {"description": "Unauthorized"},
          "409": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/account/transfer": {
      "post": {
        "summary": "Transfer to another account by its 12-digit number",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["receiverAccountNumber", "amount"],
                "properties": {
                  "receiverAccountNumber": {"type": "string", "pattern": "^[0-9]{12}$"},
                  "amount": {"type": "string", "example": "200.00"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Transfer applied"},
          "400": {"description": "Invalid amount or self transfer"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Receiver account not found"},
          "409": {"description": "Insufficient funds"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions": {
      "get": {
        "summary": "Transaction history, optionally filtered and exported as CSV",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "start_date", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "end_date", "in": "query", "schema": {"type": "string", "format": "date"}},
          {"name": "type", "in": "query", "schema": {"type": "string", "enum": ["all", "deposit", "withdraw", "transfer"]}},
          {"name": "export", "in": "query", "schema": {"type": "string", "enum": ["csv"]}}
        ],
        "responses": {
          "200": {"description": "History fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/pdf": {
      "get": {
        "summary": "Monthly transaction statement as PDF",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "PDF statement"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/transactions/{id}/receipt": {
      "get": {
        "summary": "Single-transaction receipt as PDF",
        "security": [{"BearerAuth": []}],
        "parameters": [
          {"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "PDF receipt"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Transaction not found"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/profile": {
      "get": {
        "summary": "Get the authenticated user's profile",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Profile fetched"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "Profile not found"},
          "500": {"description": "Server error"}
        }
      },
      "put": {
        "summary": "Update name and email",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "firstName": {"type": "string"},
                  "lastName": {"type": "string"},
                  "email": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Profile updated"},
          "400": {"description": "Validation error"},
          "401": {"description": "Unauthorized"},
          "500": {"description": "Server error"}
        }
      }
    },
    "/profile/image": {
      "get": {
        "summary": "Download the profile image",
        "security": [{"BearerAuth": []}],
        "responses": {
          "200": {"description": "Image bytes"},
          "401": {"description": "Unauthorized"},
          "404": {"description": "No image uploaded"}
        }
      },
      "post": {
        "summary": "Upload a profile image",
        "security": [{"BearerAuth": []}],
        "requestBody": {
          "required": true,
          "content": {
            "multipart/form-data": {
              "schema": {
                "type": "object",
                "required": ["profile_image"],
                "properties": {
                  "profile_image": {"type": "string", "format": "binary"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Image stored"},
          "400": {"description": "Unsupported file"},
          "401": {"description": "Unauthorized"}
        }
      }
    }
  }
}`
