package router

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

func registerSwaggerRoutes(router *mux.Router) {
	router.HandleFunc("/swagger", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/swagger/", http.StatusMovedPermanently)
	}).Methods(http.MethodGet)

	router.HandleFunc("/swagger/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, swaggerHTML, "/swagger/openapi.json")
	}).Methods(http.MethodGet)

	router.HandleFunc("/swagger/openapi.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(openAPI))
	}).Methods(http.MethodGet)
}

const swaggerHTML = `<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>SomalUganda Remit API Docs</title>
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
    "title": "SomalUganda Remit API",
    "version": "1.0.0"
  },
  "paths": {
    "/health": {
      "get": {
        "summary": "Liveness check",
        "responses": {
          "200": {"description": "Service is up"}
        }
      }
    },
    "/quote": {
      "get": {
        "summary": "Price a transfer",
        "parameters": [
          {"name": "amount", "in": "query", "required": true, "schema": {"type": "string", "example": "100"}},
          {"name": "direction", "in": "query", "required": false, "schema": {"$ref": "#/components/schemas/Direction"}}
        ],
        "responses": {
          "200": {"description": "Quote computed"},
          "400": {"description": "Validation error"}
        }
      }
    },
    "/banks": {
      "get": {
        "summary": "List banks in the recipient country",
        "parameters": [
          {"name": "direction", "in": "query", "required": false, "schema": {"$ref": "#/components/schemas/Direction"}},
          {"name": "q", "in": "query", "required": false, "schema": {"type": "string"}}
        ],
        "responses": {
          "200": {"description": "Banks fetched"},
          "400": {"description": "Validation error"}
        }
      }
    },
    "/transfers/sessions": {
      "post": {
        "summary": "Start a transfer session",
        "responses": {
          "201": {"description": "Session started at AMOUNT"}
        }
      }
    },
    "/transfers/sessions/{id}": {
      "get": {
        "summary": "Get a transfer session",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {
          "200": {"description": "Session fetched"},
          "404": {"description": "Session not found"}
        }
      }
    },
    "/transfers/sessions/{id}/amount": {
      "put": {
        "summary": "Set amount and direction",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["amount", "direction"],
                "properties": {
                  "amount": {"type": "number", "example": 100},
                  "direction": {"$ref": "#/components/schemas/Direction"}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Amount saved"},
          "400": {"description": "Validation error"},
          "404": {"description": "Session not found"},
          "409": {"description": "Step not allowed"}
        }
      }
    },
    "/transfers/sessions/{id}/parties": {
      "put": {
        "summary": "Set sender and recipient details",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["senderName", "senderPhone", "recipient"],
                "properties": {
                  "senderName": {"type": "string"},
                  "senderPhone": {"type": "string", "example": "615123456"},
                  "senderEmail": {"type": "string"},
                  "notifyOnWhatsapp": {"type": "boolean"},
                  "recipient": {
                    "type": "object",
                    "required": ["fullName", "phone", "withdrawalMethod"],
                    "properties": {
                      "fullName": {"type": "string"},
                      "phone": {"type": "string", "example": "772123456"},
                      "withdrawalMethod": {"type": "string", "enum": ["MOBILE_MONEY", "BANK_TRANSFER"]},
                      "network": {"type": "string", "enum": ["MTN_UGANDA", "AIRTEL_UGANDA", "EVC_PLUS", "ZAAD", "SAHAL"]},
                      "bankName": {"type": "string"},
                      "accountNumber": {"type": "string"}
                    }
                  }
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Details saved"},
          "400": {"description": "Validation error"},
          "404": {"description": "Session not found"},
          "409": {"description": "Step not allowed"}
        }
      }
    },
    "/transfers/sessions/{id}/review": {
      "get": {
        "summary": "Payment instructions for the agent",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {
          "200": {"description": "Review fetched"},
          "404": {"description": "Session not found"},
          "409": {"description": "Step not allowed"}
        }
      }
    },
    "/transfers/sessions/{id}/back": {
      "post": {
        "summary": "Go back one step",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {
          "200": {"description": "Moved back"},
          "404": {"description": "Session not found"},
          "409": {"description": "Step not allowed"}
        }
      }
    },
    "/transfers/sessions/{id}/confirm": {
      "post": {
        "summary": "Confirm the manual payment reference",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["reference"],
                "properties": {
                  "reference": {"type": "string", "minLength": 4, "example": "CI2309XY"}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Transaction recorded"},
          "400": {"description": "Validation error"},
          "404": {"description": "Session not found"},
          "409": {"description": "Step not allowed or submission already in progress"},
          "500": {"description": "Ledger write failed"}
        }
      }
    },
    "/transfers/sessions/{id}/reset": {
      "post": {
        "summary": "Start a new draft on the session",
        "parameters": [{"$ref": "#/components/parameters/SessionID"}],
        "responses": {
          "200": {"description": "Session reset"},
          "404": {"description": "Session not found"}
        }
      }
    },
    "/assistant/guide": {
      "post": {
        "summary": "Ask the help guide",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"type": "object", "required": ["question"], "properties": {"question": {"type": "string"}}}
            }
          }
        },
        "responses": {
          "200": {"description": "Answer"},
          "400": {"description": "Validation error"}
        }
      }
    },
    "/assistant/chat": {
      "post": {
        "summary": "Community chat replies",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["message"],
                "properties": {
                  "message": {"type": "string"},
                  "history": {"type": "array", "items": {"$ref": "#/components/schemas/ChatMessage"}}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "Zero to two replies"},
          "400": {"description": "Validation error"}
        }
      }
    },
    "/preferences/theme": {
      "get": {
        "summary": "Get the UI theme",
        "responses": {
          "200": {"description": "Theme fetched"}
        }
      },
      "put": {
        "summary": "Set the UI theme",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"type": "object", "required": ["theme"], "properties": {"theme": {"type": "string", "enum": ["light", "dark"]}}}
            }
          }
        },
        "responses": {
          "200": {"description": "Theme saved"},
          "400": {"description": "Validation error"}
        }
      }
    },
    "/admin/unlock": {
      "post": {
        "summary": "Check the admin PIN",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {"type": "object", "required": ["pin"], "properties": {"pin": {"type": "string"}}}
            }
          }
        },
        "responses": {
          "200": {"description": "Unlocked"},
          "401": {"description": "Incorrect PIN"}
        }
      }
    },
    "/admin/transactions": {
      "get": {
        "summary": "List ledger records",
        "security": [{"AdminPin": []}],
        "parameters": [
          {"name": "q", "in": "query", "schema": {"type": "string"}},
          {"name": "status", "in": "query", "schema": {"type": "string", "enum": ["SUCCESS", "FAILED", "PENDING", "WAITING_VERIFICATION"]}},
          {"name": "sortBy", "in": "query", "schema": {"type": "string", "enum": ["timestamp", "amount", "fees"]}},
          {"name": "sortOrder", "in": "query", "schema": {"type": "string", "enum": ["asc", "desc"]}}
        ],
        "responses": {
          "200": {"description": "Records fetched"},
          "400": {"description": "Validation error"},
          "401": {"description": "Incorrect PIN"}
        }
      },
      "post": {
        "summary": "Record a manual order",
        "security": [{"AdminPin": []}],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["senderName", "amount", "currency"],
                "properties": {
                  "senderName": {"type": "string"},
                  "amount": {"type": "number", "example": 200},
                  "currency": {"type": "string", "enum": ["USD", "UGX", "SOS"]}
                }
              }
            }
          }
        },
        "responses": {
          "201": {"description": "Recorded"},
          "400": {"description": "Validation error"},
          "401": {"description": "Incorrect PIN"}
        }
      }
    },
    "/admin/transactions/{id}/approve": {
      "post": {
        "summary": "Approve a pending transaction and notify both parties",
        "security": [{"AdminPin": []}],
        "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
        "responses": {
          "200": {"description": "Approved, with notification feedback"},
          "401": {"description": "Incorrect PIN"},
          "404": {"description": "Transaction not found"},
          "409": {"description": "Transaction cannot be approved"}
        }
      }
    },
    "/admin/transactions/export": {
      "get": {
        "summary": "Download the ledger as CSV",
        "security": [{"AdminPin": []}],
        "responses": {
          "200": {"description": "CSV file", "content": {"text/csv": {}}},
          "401": {"description": "Incorrect PIN"},
          "422": {"description": "No data to export"}
        }
      }
    },
    "/admin/analytics": {
      "get": {
        "summary": "Seven-day volume and revenue",
        "security": [{"AdminPin": []}],
        "responses": {
          "200": {"description": "Analytics fetched"},
          "401": {"description": "Incorrect PIN"}
        }
      }
    }
  },
  "components": {
    "securitySchemes": {
      "AdminPin": {
        "type": "apiKey",
        "in": "header",
        "name": "X-Admin-PIN"
      }
    },
    "parameters": {
      "SessionID": {"name": "id", "in": "path", "required": true, "schema": {"type": "string", "format": "uuid"}}
    },
    "schemas": {
      "Direction": {"type": "string", "enum": ["SOM_TO_UGA", "UGA_TO_SOM"]},
      "ChatMessage": {
        "type": "object",
        "properties": {
          "sender": {"type": "string"},
          "text": {"type": "string"}
        }
      }
    }
  }
}`
