// Package docs holds the Swagger 2.0 document served under /swagger.
// It is maintained by hand; keep each path in step with the @Router
// annotations in internal/handlers.
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
        "/accounting/accounts": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lookups"
                ],
                "summary": "List the chart of accounts",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "x-go-type": "domain.Account"
                            }
                        }
                    }
                }
            }
        },
        "/accounting/categories": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "lookups"
                ],
                "summary": "List journal categories",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "x-go-type": "domain.Category"
                            }
                        }
                    }
                }
            }
        },
        "/accounting/journal": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Posts an income or expense record against a debit and a credit account. Fails with 409 when the month is closed.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Create a journal entry",
                "parameters": [
                    {
                        "description": "Journal entry",
                        "name": "entry",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.CreateJournalEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.JournalEntry"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Lists entries ordered by date, optionally restricted to a year or month, an account, a category or a search term.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "List journal entries",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Month (requires year)",
                        "name": "month",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Search in description, journal and reference number",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Debit or credit account",
                        "name": "account_id",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "Category",
                        "name": "category_id",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "default": 50
                    },
                    {
                        "type": "integer",
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.ListJournalEntriesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/journal/{entryID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Get a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "entryID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.JournalEntry"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Update a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "entryID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "entry",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.UpdateJournalEntryRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.JournalEntry"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "journal"
                ],
                "summary": "Delete a journal entry",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Entry ID",
                        "name": "entryID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Conflict",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/monthly-closings": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "monthly-closings"
                ],
                "summary": "List monthly closings",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "array",
                            "items": {
                                "type": "object",
                                "x-go-type": "domain.MonthlyClosing"
                            }
                        }
                    }
                }
            }
        },
        "/accounting/monthly-closings/close": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Computes income and expense totals for the month and stores a pending closing. With sync_first the upstream modules are synchronized beforehand; a sync failure does not block the closing.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "monthly-closings"
                ],
                "summary": "Close a month",
                "parameters": [
                    {
                        "description": "Period",
                        "name": "closing",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.CreateMonthlyClosingRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.MonthlyClosingResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "A closing already exists for the period",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/monthly-closings/{closingID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "monthly-closings"
                ],
                "summary": "Get a monthly closing with its category breakdown",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Closing ID",
                        "name": "closingID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.ClosingDetail"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Changes notes and, with recalculate, recomputes the totals from the journal.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "monthly-closings"
                ],
                "summary": "Update a pending monthly closing",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Closing ID",
                        "name": "closingID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Changes",
                        "name": "closing",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.UpdateMonthlyClosingRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.MonthlyClosing"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already finalized",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "monthly-closings"
                ],
                "summary": "Delete a pending monthly closing",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Closing ID",
                        "name": "closingID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already finalized",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/monthly-closings/{closingID}/finalize": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Moves a pending closing to finalized. Journal entries of the month become read-only.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "monthly-closings"
                ],
                "summary": "Finalize a monthly closing",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Closing ID",
                        "name": "closingID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.MonthlyClosing"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "409": {
                        "description": "Already finalized",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/payables": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payables"
                ],
                "summary": "List or search payables",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search in supplier, invoice number and description",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "pending, partially_paid, paid or overdue",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "default": 50
                    },
                    {
                        "type": "integer",
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.ListPayablesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payables"
                ],
                "summary": "Create a payable",
                "parameters": [
                    {
                        "description": "Payable",
                        "name": "payable",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.CreatePayableRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Payable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/payables/mark-overdue": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payables"
                ],
                "summary": "Flag unpaid payables past their due date as overdue",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.MarkOverdueResponse"
                        }
                    }
                }
            }
        },
        "/accounting/payables/{payableID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payables"
                ],
                "summary": "Get a payable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Payable ID",
                        "name": "payableID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Payable"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Status is recomputed from amount, payment amount and due date.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payables"
                ],
                "summary": "Update a payable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Payable ID",
                        "name": "payableID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "payable",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.UpdatePayableRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Payable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "payables"
                ],
                "summary": "Delete a payable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Payable ID",
                        "name": "payableID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/payables/{payableID}/payments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "payables"
                ],
                "summary": "Record a payment against a payable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Payable ID",
                        "name": "payableID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Payment",
                        "name": "payment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.RecordPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Payable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/receivables": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "List or search receivables",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Search in customer, invoice number and description",
                        "name": "search",
                        "in": "query"
                    },
                    {
                        "type": "string",
                        "description": "pending, partially_paid, paid or overdue",
                        "name": "status",
                        "in": "query"
                    },
                    {
                        "type": "integer",
                        "description": "Page size",
                        "name": "limit",
                        "in": "query",
                        "default": 50
                    },
                    {
                        "type": "integer",
                        "description": "Offset",
                        "name": "offset",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.ListReceivablesResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "Create a receivable",
                "parameters": [
                    {
                        "description": "Receivable",
                        "name": "receivable",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.CreateReceivableRequest"
                        }
                    }
                ],
                "responses": {
                    "201": {
                        "description": "Created",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Receivable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/receivables/mark-overdue": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "Flag unpaid receivables past their due date as overdue",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.MarkOverdueResponse"
                        }
                    }
                }
            }
        },
        "/accounting/receivables/{receivableID}": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "Get a receivable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Receivable ID",
                        "name": "receivableID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Receivable"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "put": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Status is recomputed from amount, payment amount and due date.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "Update a receivable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Receivable ID",
                        "name": "receivableID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Fields to change",
                        "name": "receivable",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.UpdateReceivableRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Receivable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            },
            "delete": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "Delete a receivable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Receivable ID",
                        "name": "receivableID",
                        "in": "path",
                        "required": true
                    }
                ],
                "responses": {
                    "204": {
                        "description": "No Content"
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/receivables/{receivableID}/payments": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "receivables"
                ],
                "summary": "Record a payment against a receivable",
                "parameters": [
                    {
                        "type": "string",
                        "description": "Receivable ID",
                        "name": "receivableID",
                        "in": "path",
                        "required": true
                    },
                    {
                        "description": "Payment",
                        "name": "payment",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.RecordPaymentRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.Receivable"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "404": {
                        "description": "Not Found",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/reports/balance-sheet": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Balance sheet as of a date",
                "parameters": [
                    {
                        "type": "string",
                        "description": "As-of date (YYYY-MM-DD), defaults to today",
                        "name": "date",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.BalanceSheetReport"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/reports/cash-flow": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Cash flow statement",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Month",
                        "name": "month",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.CashFlowStatement"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/reports/income-expense": {
            "get": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "reports"
                ],
                "summary": "Income and expense report",
                "parameters": [
                    {
                        "type": "integer",
                        "description": "Year",
                        "name": "year",
                        "in": "query",
                        "required": true
                    },
                    {
                        "type": "integer",
                        "description": "Month",
                        "name": "month",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.IncomeExpenseReport"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/sync/all": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "description": "Runs fees, rentals and member profits in order. A failing pass is reported, not returned. With async=true the run is queued and 202 is returned.",
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Run all synchronizations",
                "parameters": [
                    {
                        "type": "boolean",
                        "description": "Queue the run on the background worker",
                        "name": "async",
                        "in": "query"
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.SyncResult"
                        }
                    },
                    "202": {
                        "description": "Accepted",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.SyncAcceptedResponse"
                        }
                    },
                    "409": {
                        "description": "Another sync is running",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "503": {
                        "description": "No background queue configured",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/sync/fees": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Synchronize pending membership fees into receivables",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.ReceivableSyncResult"
                        }
                    },
                    "409": {
                        "description": "Another sync is running",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Fee module unavailable",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/sync/member-profits": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Synchronize pending member profit shares into payables",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.PayableSyncResult"
                        }
                    },
                    "409": {
                        "description": "Another sync is running",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Profit module unavailable",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/sync/pre-closing": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Synchronize and summarize a month before closing it",
                "parameters": [
                    {
                        "description": "Period",
                        "name": "period",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.PreClosingSyncRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.ClosingSyncSummary"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/accounting/sync/rentals": {
            "post": {
                "security": [
                    {
                        "BearerAuth": []
                    }
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "sync"
                ],
                "summary": "Synchronize pending rental payments into receivables",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "domain.ReceivableSyncResult"
                        }
                    },
                    "409": {
                        "description": "Another sync is running",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "502": {
                        "description": "Rental module unavailable",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/auth/login": {
            "post": {
                "description": "Authenticates an operator and returns a JWT access token.",
                "consumes": [
                    "application/json"
                ],
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "auth"
                ],
                "summary": "Operator login",
                "parameters": [
                    {
                        "description": "Login Credentials",
                        "name": "login",
                        "in": "body",
                        "required": true,
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.LoginRequest"
                        }
                    }
                ],
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "dto.LoginResponse"
                        }
                    },
                    "400": {
                        "description": "Bad Request",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "401": {
                        "description": "Unauthorized",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    },
                    "500": {
                        "description": "Internal Server Error",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.ErrorResponse"
                        }
                    }
                }
            }
        },
        "/health": {
            "get": {
                "produces": [
                    "application/json"
                ],
                "tags": [
                    "root"
                ],
                "summary": "Report service and dependency health",
                "responses": {
                    "200": {
                        "description": "OK",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.healthResponse"
                        }
                    },
                    "503": {
                        "description": "Service Unavailable",
                        "schema": {
                            "type": "object",
                            "x-go-type": "handlers.healthResponse"
                        }
                    }
                }
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
	Host:             "localhost:8080",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Asset Management Accounting API",
	Description:      "Bookkeeping, upstream synchronization and monthly closing for the asset management back office.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
